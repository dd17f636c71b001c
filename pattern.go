package ndi

import "fmt"

// PatternType selects the synthetic image TestPattern draws.
type PatternType int

const (
	PatternColorBars    PatternType = iota // SMPTE-style color bars
	PatternGradient                        // horizontal luma gradient
	PatternCheckerboard                    // black/white checkerboard
)

func (p PatternType) String() string {
	switch p {
	case PatternColorBars:
		return "colorbars"
	case PatternGradient:
		return "gradient"
	case PatternCheckerboard:
		return "checkerboard"
	default:
		return "unknown"
	}
}

// ParsePatternType maps a pattern name to its PatternType.
func ParsePatternType(name string) (PatternType, error) {
	switch name {
	case "colorbars", "bars", "":
		return PatternColorBars, nil
	case "gradient":
		return PatternGradient, nil
	case "checkerboard", "checker":
		return PatternCheckerboard, nil
	default:
		return 0, fmt.Errorf("unknown pattern %q", name)
	}
}

// Simplified 8-bar SMPTE pattern, 75% intensity.
var colorBarsRGB = [8][3]uint8{
	{192, 192, 192}, // White
	{192, 192, 0},   // Yellow
	{0, 192, 192},   // Cyan
	{0, 192, 0},     // Green
	{192, 0, 192},   // Magenta
	{192, 0, 0},     // Red
	{0, 0, 192},     // Blue
	{16, 16, 16},    // Black
}

// TestPattern renders a pattern as a packed UYVY buffer of width*height*2
// bytes. Width is rounded down to an even pixel count as UYVY carries chroma
// per pixel pair.
func TestPattern(p PatternType, width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	width &^= 1
	buf := make([]byte, FourCCUYVY.BufferSize(width, height))

	switch p {
	case PatternGradient:
		drawGradientUYVY(buf, width, height)
	case PatternCheckerboard:
		drawCheckerboardUYVY(buf, width, height, 32)
	default:
		drawColorBarsUYVY(buf, width, height)
	}
	return buf
}

// drawColorBarsUYVY fills buf with 8 vertical bars. Each pixel pair is
// U Y0 V Y1; bar boundaries land on pair boundaries so chroma never bleeds.
func drawColorBarsUYVY(buf []byte, width, height int) {
	barWidth := width / 8
	if barWidth == 0 {
		barWidth = 1
	}
	for y := 0; y < height; y++ {
		row := buf[y*width*2:]
		for x := 0; x < width; x += 2 {
			barIdx := x / barWidth
			if barIdx > 7 {
				barIdx = 7
			}
			rgb := colorBarsRGB[barIdx]
			yVal, u, v := rgbToYUV(rgb[0], rgb[1], rgb[2])
			i := x * 2
			row[i] = u
			row[i+1] = yVal
			row[i+2] = v
			row[i+3] = yVal
		}
	}
}

func drawGradientUYVY(buf []byte, width, height int) {
	for y := 0; y < height; y++ {
		row := buf[y*width*2:]
		for x := 0; x < width; x += 2 {
			i := x * 2
			row[i] = 128 // neutral chroma
			row[i+1] = gradientLuma(x, width)
			row[i+2] = 128
			row[i+3] = gradientLuma(x+1, width)
		}
	}
}

// gradientLuma maps a column to a 16..235 studio-range luma ramp.
func gradientLuma(x, width int) uint8 {
	return uint8(16 + (x*219)/width)
}

func drawCheckerboardUYVY(buf []byte, width, height, size int) {
	for y := 0; y < height; y++ {
		row := buf[y*width*2:]
		for x := 0; x < width; x += 2 {
			i := x * 2
			row[i] = 128
			row[i+1] = checkerLuma(x, y, size)
			row[i+2] = 128
			row[i+3] = checkerLuma(x+1, y, size)
		}
	}
}

func checkerLuma(x, y, size int) uint8 {
	if ((x/size)+(y/size))%2 == 0 {
		return 235
	}
	return 16
}

// rgbToYUV converts RGB to studio-range YUV (BT.601).
func rgbToYUV(r, g, b uint8) (y, u, v uint8) {
	yf := 16.0 + 65.481*float64(r)/255.0 + 128.553*float64(g)/255.0 + 24.966*float64(b)/255.0
	uf := 128.0 - 37.797*float64(r)/255.0 - 74.203*float64(g)/255.0 + 112.0*float64(b)/255.0
	vf := 128.0 + 112.0*float64(r)/255.0 - 93.786*float64(g)/255.0 - 18.214*float64(b)/255.0

	y = uint8(clamp(yf, 16, 235))
	u = uint8(clamp(uf, 16, 240))
	v = uint8(clamp(vf, 16, 240))
	return
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
