package ndi

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// ColorFormat selects the pixel layouts a receiver decodes into.
type ColorFormat int32

const (
	ColorFormatBGRXBGRA ColorFormat = 0   // BGRX, BGRA when alpha is present
	ColorFormatUYVYBGRA ColorFormat = 1   // UYVY, BGRA when alpha is present
	ColorFormatRGBXRGBA ColorFormat = 2   // RGBX, RGBA when alpha is present
	ColorFormatUYVYRGBA ColorFormat = 3   // UYVY, RGBA when alpha is present
	ColorFormatFastest  ColorFormat = 100 // whatever the runtime decodes cheapest
	ColorFormatBest     ColorFormat = 101 // highest quality the stream carries
)

// Bandwidth selects how much of the stream a receiver pulls.
type Bandwidth int32

const (
	BandwidthMetadataOnly Bandwidth = -10
	BandwidthAudioOnly    Bandwidth = 10
	BandwidthLowest       Bandwidth = 0 // preview-quality stream
	BandwidthHighest      Bandwidth = 100
)

// ReceiverConfig configures a Receiver.
type ReceiverConfig struct {
	ColorFormat ColorFormat
	Bandwidth   Bandwidth
	// AllowVideoFields permits fielded (interlaced) frames. When false the
	// runtime delivers progressive frames only.
	AllowVideoFields bool
	// Name is the receiver's own advertised name. Empty lets the runtime
	// pick one.
	Name string
}

// DefaultReceiverConfig returns the default receiver configuration: UYVY
// video with BGRA for alpha streams, full bandwidth, progressive only.
func DefaultReceiverConfig() ReceiverConfig {
	return ReceiverConfig{
		ColorFormat: ColorFormatUYVYBGRA,
		Bandwidth:   BandwidthHighest,
	}
}

// Receiver connects to a named source and pulls frames from it. It wraps one
// native receive handle; calls are serialized internally. A Receiver starts
// unconnected; Connect rebinds it, tearing down any previous connection.
type Receiver struct {
	mu   sync.Mutex
	inst uintptr
}

// NewReceiver creates an unconnected receiver.
func NewReceiver(config ReceiverConfig) (*Receiver, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	inst := recvCreate(config)
	if inst == 0 {
		return nil, fmt.Errorf("create receiver: %w", ErrCreateFailed)
	}
	r := &Receiver{inst: inst}
	runtime.SetFinalizer(r, (*Receiver).finalize)
	return r, nil
}

// Connect binds the receiver to a source, typically one returned by
// Finder.Sources. Any previous connection is torn down first. The runtime
// treats connection as asynchronous: an unreachable source surfaces as
// Capture never returning frames, not as a Connect error.
func (r *Receiver) Connect(source Source) error {
	if source.Name == "" && source.URLAddress == "" {
		return fmt.Errorf("connect: source name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inst == 0 {
		return ErrClosed
	}
	recvConnect(r.inst, source)
	return nil
}

// ConnectByName binds the receiver to a source by its advertised name.
func (r *Receiver) ConnectByName(name string) error {
	return r.Connect(Source{Name: name})
}

// Disconnect tears down the current connection without releasing the handle.
func (r *Receiver) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inst == 0 {
		return ErrClosed
	}
	recvDisconnect(r.inst)
	return nil
}

// Capture waits up to timeout for the next frame. The result is tagged:
// exactly one of Video, Audio, and Metadata is set, matching Type, and a
// timeout yields FrameTypeNone with no payload. Frame buffers in the result
// are Go-owned copies; the native frame is freed before Capture returns.
// A runtime-reported receive error returns ErrCaptureFailed.
func (r *Receiver) Capture(timeout time.Duration) (Capture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inst == 0 {
		return Capture{}, ErrClosed
	}

	ft, video, audio, meta := recvCapture(r.inst, timeoutMs(timeout))
	switch ft {
	case FrameTypeVideo:
		return Capture{Type: FrameTypeVideo, Video: video}, nil
	case FrameTypeAudio:
		return Capture{Type: FrameTypeAudio, Audio: audio}, nil
	case FrameTypeMetadata:
		return Capture{Type: FrameTypeMetadata, Metadata: meta}, nil
	case frameTypeError:
		return Capture{}, ErrCaptureFailed
	default:
		// Timeout and status changes both mean "nothing yet, try again".
		return Capture{Type: FrameTypeNone}, nil
	}
}

// Close releases the native handle. Idempotent.
func (r *Receiver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inst != 0 {
		recvDestroy(r.inst)
		r.inst = 0
		runtime.SetFinalizer(r, nil)
	}
	return nil
}

func (r *Receiver) finalize() {
	_ = r.Close()
}
