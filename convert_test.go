package ndi

import "testing"

func uyvyFrame(w, h int, data []byte) *VideoFrame {
	return &VideoFrame{
		Width:      w,
		Height:     h,
		FourCC:     FourCCUYVY,
		FrameRateN: 30,
		FrameRateD: 1,
		Data:       data,
	}
}

func TestRGBAFromUYVYGray(t *testing.T) {
	// 2x1 mid-gray: Y=126, neutral chroma.
	f := uyvyFrame(2, 1, []byte{128, 126, 128, 126})
	img, err := f.RGBA()
	if err != nil {
		t.Fatalf("RGBA: %v", err)
	}
	r, g, b, a := img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3]
	if a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
	// 1.164*(126-16) = 128
	for name, v := range map[string]uint8{"r": r, "g": g, "b": b} {
		if diff := int(v) - 128; diff < -2 || diff > 2 {
			t.Errorf("%s = %d, want ~128", name, v)
		}
	}
}

// Colors produced by rgbToYUV must convert back to roughly the same RGB.
func TestYUVRoundTrip(t *testing.T) {
	colors := [][3]uint8{
		{192, 0, 0},
		{0, 192, 0},
		{0, 0, 192},
		{192, 192, 0},
		{100, 150, 200},
	}
	for _, c := range colors {
		y, u, v := rgbToYUV(c[0], c[1], c[2])
		r, g, b := yuvToRGB(y, u, v)
		for i, got := range []uint8{r, g, b} {
			if diff := int(got) - int(c[i]); diff < -6 || diff > 6 {
				t.Errorf("color %v channel %d: got %d, want ~%d", c, i, got, c[i])
			}
		}
	}
}

func TestRGBAFromBGRA(t *testing.T) {
	f := &VideoFrame{
		Width:      1,
		Height:     1,
		FourCC:     FourCCBGRA,
		FrameRateN: 30,
		FrameRateD: 1,
		Data:       []byte{10, 20, 30, 40}, // B G R A
	}
	img, err := f.RGBA()
	if err != nil {
		t.Fatalf("RGBA: %v", err)
	}
	want := []byte{30, 20, 10, 40}
	for i, w := range want {
		if img.Pix[i] != w {
			t.Errorf("pix[%d] = %d, want %d", i, img.Pix[i], w)
		}
	}
}

func TestRGBAFromBGRXIgnoresAlpha(t *testing.T) {
	f := &VideoFrame{
		Width:      1,
		Height:     1,
		FourCC:     FourCCBGRX,
		FrameRateN: 30,
		FrameRateD: 1,
		Data:       []byte{10, 20, 30, 0},
	}
	img, err := f.RGBA()
	if err != nil {
		t.Fatalf("RGBA: %v", err)
	}
	if img.Pix[3] != 255 {
		t.Errorf("BGRX alpha = %d, want opaque 255", img.Pix[3])
	}
}

func TestRGBARejectsOddWidthUYVY(t *testing.T) {
	// 3x1 at 2 bytes per pixel: the trailing pixel has no chroma partner,
	// so conversion must fail cleanly instead of reading past the row.
	f := uyvyFrame(3, 1, make([]byte, 6))
	if _, err := f.RGBA(); err == nil {
		t.Fatal("odd-width UYVY frame should be rejected")
	}
}

func TestRGBAUnsupportedFourCC(t *testing.T) {
	f := &VideoFrame{
		Width:      2,
		Height:     2,
		FourCC:     FourCCNV12,
		FrameRateN: 30,
		FrameRateD: 1,
		Data:       make([]byte, FourCCNV12.BufferSize(2, 2)),
	}
	if _, err := f.RGBA(); err == nil {
		t.Error("NV12 conversion should be rejected")
	}
}

func TestRGBARespectsStride(t *testing.T) {
	// 2x2 UYVY with 4 bytes of per-line padding.
	f := uyvyFrame(2, 2, []byte{
		128, 16, 128, 16, 0, 0, 0, 0,
		128, 235, 128, 235, 0, 0, 0, 0,
	})
	f.LineStride = 8
	img, err := f.RGBA()
	if err != nil {
		t.Fatalf("RGBA: %v", err)
	}
	if img.Pix[0] >= 10 {
		t.Errorf("row 0 should be black, got r=%d", img.Pix[0])
	}
	row1 := img.Pix[img.Stride:]
	if row1[0] <= 240 {
		t.Errorf("row 1 should be white, got r=%d", row1[0])
	}
}
