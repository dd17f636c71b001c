// Core frame and capture types used across the ndi package.
package ndi

import "fmt"

// FourCC identifies a raw pixel layout as a four-character code.
type FourCC uint32

const (
	FourCCUYVY FourCC = 0x59565955 // YCbCr 4:2:2 packed
	FourCCBGRA FourCC = 0x41524742 // BGRA, 4 bytes per pixel
	FourCCBGRX FourCC = 0x58524742 // BGRX, alpha ignored
	FourCCRGBA FourCC = 0x41424752 // RGBA, 4 bytes per pixel
	FourCCRGBX FourCC = 0x58424752 // RGBX, alpha ignored
	FourCCNV12 FourCC = 0x3231564E // YUV 4:2:0, Y plane + interleaved UV
	FourCCI420 FourCC = 0x30323449 // YUV 4:2:0, Y + U + V planes
	FourCCP216 FourCC = 0x36313250 // 16-bit Y + 16-bit interleaved UV
)

func (f FourCC) String() string {
	b := [4]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08X", uint32(f))
		}
	}
	return string(b[:])
}

// BufferSize returns the minimum byte length of a frame buffer holding a
// width x height image in this layout, or 0 for an unknown FourCC.
func (f FourCC) BufferSize(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	switch f {
	case FourCCUYVY:
		return width * height * 2
	case FourCCBGRA, FourCCBGRX, FourCCRGBA, FourCCRGBX:
		return width * height * 4
	case FourCCNV12, FourCCI420:
		return width*height + 2*((width/2)*(height/2))
	case FourCCP216:
		return width * height * 4
	default:
		return 0
	}
}

// lineStride returns the default stride in bytes for packed layouts, 0 for
// planar ones (the runtime derives planar strides itself).
func (f FourCC) lineStride(width int) int {
	switch f {
	case FourCCUYVY:
		return width * 2
	case FourCCBGRA, FourCCBGRX, FourCCRGBA, FourCCRGBX:
		return width * 4
	default:
		return 0
	}
}

// FrameType tags the outcome of a single Capture call.
type FrameType int

const (
	FrameTypeNone     FrameType = 0 // timeout, nothing arrived
	FrameTypeVideo    FrameType = 1
	FrameTypeAudio    FrameType = 2
	FrameTypeMetadata FrameType = 3

	// frameTypeError and frameTypeStatusChange are runtime-internal outcomes:
	// the first surfaces as ErrCaptureFailed, the second as FrameTypeNone.
	frameTypeError        FrameType = 4
	frameTypeStatusChange FrameType = 100
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeNone:
		return "none"
	case FrameTypeVideo:
		return "video"
	case FrameTypeAudio:
		return "audio"
	case FrameTypeMetadata:
		return "metadata"
	case frameTypeError:
		return "error"
	case frameTypeStatusChange:
		return "status-change"
	default:
		return "unknown"
	}
}

// VideoFrame is one video frame. On receive, Data is a Go-owned copy of the
// native buffer; the native frame is freed before Capture returns.
type VideoFrame struct {
	Width      int
	Height     int
	FourCC     FourCC
	FrameRateN int // frame rate numerator, e.g. 30000
	FrameRateD int // frame rate denominator, e.g. 1001
	LineStride int // bytes per line for packed layouts
	Timecode   int64
	Timestamp  int64
	Data       []byte
}

// Clone creates a deep copy of the frame.
func (f *VideoFrame) Clone() *VideoFrame {
	clone := *f
	if f.Data != nil {
		clone.Data = make([]byte, len(f.Data))
		copy(clone.Data, f.Data)
	}
	return &clone
}

// validate checks the frame before it crosses into the runtime.
func (f *VideoFrame) validate() error {
	if f == nil {
		return fmt.Errorf("nil video frame")
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", f.Width, f.Height)
	}
	if f.FrameRateN <= 0 || f.FrameRateD <= 0 {
		return fmt.Errorf("invalid frame rate %d/%d", f.FrameRateN, f.FrameRateD)
	}
	// Chroma-subsampled layouts need even dimensions; the runtime shares
	// one chroma sample across horizontal (and for 4:2:0, vertical) pairs.
	switch f.FourCC {
	case FourCCUYVY, FourCCP216:
		if f.Width%2 != 0 {
			return fmt.Errorf("%s requires an even width, got %d", f.FourCC, f.Width)
		}
	case FourCCNV12, FourCCI420:
		if f.Width%2 != 0 || f.Height%2 != 0 {
			return fmt.Errorf("%s requires even dimensions, got %dx%d", f.FourCC, f.Width, f.Height)
		}
	}
	need := f.FourCC.BufferSize(f.Width, f.Height)
	if need == 0 {
		return fmt.Errorf("unsupported FourCC %s", f.FourCC)
	}
	if len(f.Data) < need {
		return fmt.Errorf("buffer too short: %d bytes, need %d for %s %dx%d",
			len(f.Data), need, f.FourCC, f.Width, f.Height)
	}
	return nil
}

// AudioFrame is one block of planar float audio. Data holds Channels planes
// of Samples floats each, ChannelStride bytes apart in the native layout.
type AudioFrame struct {
	SampleRate    int
	Channels      int
	Samples       int // samples per channel
	ChannelStride int // bytes between channel planes
	Timecode      int64
	Timestamp     int64
	Data          []float32
}

// Clone creates a deep copy of the audio frame.
func (f *AudioFrame) Clone() *AudioFrame {
	clone := *f
	if f.Data != nil {
		clone.Data = make([]float32, len(f.Data))
		copy(clone.Data, f.Data)
	}
	return &clone
}

func (f *AudioFrame) validate() error {
	if f == nil {
		return fmt.Errorf("nil audio frame")
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", f.SampleRate)
	}
	if f.Channels <= 0 || f.Samples <= 0 {
		return fmt.Errorf("invalid layout: %d channels, %d samples", f.Channels, f.Samples)
	}
	if len(f.Data) < f.Channels*f.Samples {
		return fmt.Errorf("buffer too short: %d floats, need %d", len(f.Data), f.Channels*f.Samples)
	}
	return nil
}

// MetadataFrame is one opaque metadata payload, conventionally UTF-8 XML.
type MetadataFrame struct {
	Timecode int64
	Data     string
}

// Capture is the tagged result of one Receiver.Capture call. Exactly one of
// Video, Audio, and Metadata is non-nil, matching Type; for FrameTypeNone all
// three are nil.
type Capture struct {
	Type     FrameType
	Video    *VideoFrame
	Audio    *AudioFrame
	Metadata *MetadataFrame
}
