package ndi

import (
	"fmt"
	"image"
)

// RGBA converts a received video frame into an image.RGBA. Supported layouts
// are the packed formats a receiver produces under the default color format:
// UYVY, BGRA, BGRX, RGBA, and RGBX.
func (f *VideoFrame) RGBA() (*image.RGBA, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))

	stride := f.LineStride
	if stride <= 0 {
		stride = f.FourCC.lineStride(f.Width)
	}

	switch f.FourCC {
	case FourCCUYVY:
		uyvyToRGBA(img, f.Data, f.Width, f.Height, stride)
	case FourCCBGRA, FourCCBGRX:
		packedToRGBA(img, f.Data, f.Width, f.Height, stride, 2, 1, 0, f.FourCC == FourCCBGRA)
	case FourCCRGBA, FourCCRGBX:
		packedToRGBA(img, f.Data, f.Width, f.Height, stride, 0, 1, 2, f.FourCC == FourCCRGBA)
	default:
		return nil, fmt.Errorf("cannot convert FourCC %s to RGBA", f.FourCC)
	}
	return img, nil
}

func uyvyToRGBA(img *image.RGBA, data []byte, width, height, stride int) {
	for y := 0; y < height; y++ {
		src := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x += 2 {
			i := x * 2
			u, y0, v, y1 := src[i], src[i+1], src[i+2], src[i+3]

			r, g, b := yuvToRGB(y0, u, v)
			j := x * 4
			dst[j], dst[j+1], dst[j+2], dst[j+3] = r, g, b, 255

			if x+1 < width {
				r, g, b = yuvToRGB(y1, u, v)
				dst[j+4], dst[j+5], dst[j+6], dst[j+7] = r, g, b, 255
			}
		}
	}
}

// packedToRGBA swizzles a 4-byte packed layout into RGBA. ri/gi/bi give the
// source byte offsets of the red, green, and blue channels.
func packedToRGBA(img *image.RGBA, data []byte, width, height, stride, ri, gi, bi int, hasAlpha bool) {
	for y := 0; y < height; y++ {
		src := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			i := x * 4
			j := x * 4
			dst[j] = src[i+ri]
			dst[j+1] = src[i+gi]
			dst[j+2] = src[i+bi]
			if hasAlpha {
				dst[j+3] = src[i+3]
			} else {
				dst[j+3] = 255
			}
		}
	}
}

// yuvToRGB converts studio-range YUV to RGB (BT.601, inverse of rgbToYUV).
func yuvToRGB(y, u, v uint8) (r, g, b uint8) {
	c := float64(y) - 16
	d := float64(u) - 128
	e := float64(v) - 128

	rf := 1.164*c + 1.596*e
	gf := 1.164*c - 0.392*d - 0.813*e
	bf := 1.164*c + 2.017*d

	r = uint8(clamp(rf, 0, 255))
	g = uint8(clamp(gf, 0, 255))
	b = uint8(clamp(bf, 0, 255))
	return
}
