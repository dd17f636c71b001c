package ndi

import "testing"

func TestTestPatternSize(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{1280, 720, 1280 * 720 * 2},
		{640, 480, 640 * 480 * 2},
		{2, 2, 8},
		{3, 2, 8}, // odd width rounds down to 2
	}
	for _, tt := range tests {
		buf := TestPattern(PatternColorBars, tt.w, tt.h)
		if len(buf) != tt.want {
			t.Errorf("TestPattern(%d, %d) = %d bytes, want %d", tt.w, tt.h, len(buf), tt.want)
		}
	}
}

func TestTestPatternInvalidDimensions(t *testing.T) {
	if TestPattern(PatternColorBars, 0, 720) != nil {
		t.Error("zero width must yield nil")
	}
	if TestPattern(PatternColorBars, 1280, -1) != nil {
		t.Error("negative height must yield nil")
	}
}

// All generated samples must stay in studio range: luma 16..235, chroma
// 16..240.
func TestTestPatternStudioRange(t *testing.T) {
	for _, p := range []PatternType{PatternColorBars, PatternGradient, PatternCheckerboard} {
		buf := TestPattern(p, 64, 48)
		for i, b := range buf {
			isLuma := i%2 == 1 // UYVY: even bytes chroma, odd bytes luma
			if isLuma && (b < 16 || b > 235) {
				t.Fatalf("%s: luma %d at byte %d out of range", p, b, i)
			}
			if !isLuma && (b < 16 || b > 240) {
				t.Fatalf("%s: chroma %d at byte %d out of range", p, b, i)
			}
		}
	}
}

func TestGradientMonotonic(t *testing.T) {
	buf := TestPattern(PatternGradient, 256, 2)
	prev := uint8(0)
	for x := 0; x < 256; x++ {
		y := buf[x*2+1]
		if y < prev {
			t.Fatalf("luma decreases at column %d: %d < %d", x, y, prev)
		}
		prev = y
	}
	if buf[1] != 16 {
		t.Errorf("gradient start luma = %d, want 16", buf[1])
	}
}

func TestCheckerboardAlternates(t *testing.T) {
	buf := TestPattern(PatternCheckerboard, 64, 64)
	// Opposite corners of adjacent 32px squares.
	if buf[1] != 235 {
		t.Errorf("first square luma = %d, want 235", buf[1])
	}
	if got := buf[32*2+1]; got != 16 {
		t.Errorf("second square luma = %d, want 16", got)
	}
}

func TestParsePatternType(t *testing.T) {
	tests := []struct {
		in      string
		want    PatternType
		wantErr bool
	}{
		{"colorbars", PatternColorBars, false},
		{"bars", PatternColorBars, false},
		{"", PatternColorBars, false},
		{"gradient", PatternGradient, false},
		{"checkerboard", PatternCheckerboard, false},
		{"checker", PatternCheckerboard, false},
		{"plasma", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePatternType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePatternType(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParsePatternType(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestRGBToYUVKnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		y       uint8
		uvNear  bool // chroma should sit near neutral 128
	}{
		{"black", 16, 16, 16, 30, true},
		{"white", 235, 235, 235, 218, true},
	}
	for _, tt := range tests {
		y, u, v := rgbToYUV(tt.r, tt.g, tt.b)
		if diff := int(y) - int(tt.y); diff < -2 || diff > 2 {
			t.Errorf("%s: luma = %d, want ~%d", tt.name, y, tt.y)
		}
		if tt.uvNear {
			if diff := int(u) - 128; diff < -2 || diff > 2 {
				t.Errorf("%s: U = %d, want ~128", tt.name, u)
			}
			if diff := int(v) - 128; diff < -2 || diff > 2 {
				t.Errorf("%s: V = %d, want ~128", tt.name, v)
			}
		}
	}
}
