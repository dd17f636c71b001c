package ndi

import (
	"fmt"
	"runtime"
	"sync"
)

// SenderConfig configures a Sender.
type SenderConfig struct {
	// Name is the human-readable stream name the sender advertises.
	// Required.
	Name string
	// Groups is a comma-separated list of NDI groups to advertise in.
	Groups string
	// ClockVideo rate-limits SendVideo to the declared frame rate inside
	// the runtime. When false the caller owns all pacing.
	ClockVideo bool
	// ClockAudio rate-limits SendAudio to the declared sample rate.
	ClockAudio bool
}

// Sender advertises a named outgoing stream and pushes frames to it. It
// wraps one native send handle; calls are serialized internally. Each send
// hands the frame to the runtime's queue and returns; beyond the single
// in-flight frame the sender neither paces nor buffers.
type Sender struct {
	mu   sync.Mutex
	inst uintptr
	name string
}

// NewSender creates a sender advertised under config.Name.
func NewSender(config SenderConfig) (*Sender, error) {
	if config.Name == "" {
		return nil, fmt.Errorf("sender name must not be empty")
	}
	if err := Initialize(); err != nil {
		return nil, err
	}
	inst := sendCreate(config)
	if inst == 0 {
		return nil, fmt.Errorf("create sender %q: %w", config.Name, ErrCreateFailed)
	}
	s := &Sender{inst: inst, name: config.Name}
	runtime.SetFinalizer(s, (*Sender).finalize)
	return s, nil
}

// Name returns the advertised stream name.
func (s *Sender) Name() string {
	return s.name
}

// SendVideo pushes one video frame. The frame buffer is read synchronously
// during the call and may be reused immediately after it returns. FrameRate
// defaults to 30/1 and FourCC to UYVY when left zero.
func (s *Sender) SendVideo(frame *VideoFrame) error {
	if frame != nil {
		if frame.FrameRateN == 0 && frame.FrameRateD == 0 {
			frame.FrameRateN, frame.FrameRateD = 30, 1
		}
		if frame.FourCC == 0 {
			frame.FourCC = FourCCUYVY
		}
		if frame.LineStride == 0 {
			frame.LineStride = frame.FourCC.lineStride(frame.Width)
		}
	}
	if err := frame.validate(); err != nil {
		return fmt.Errorf("send video: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inst == 0 {
		return ErrClosed
	}
	sendVideo(s.inst, frame)
	return nil
}

// SendAudio pushes one block of planar float audio. ChannelStride defaults
// to Samples*4 (tightly packed planes) when left zero.
func (s *Sender) SendAudio(frame *AudioFrame) error {
	if frame != nil && frame.ChannelStride == 0 {
		frame.ChannelStride = frame.Samples * 4
	}
	if err := frame.validate(); err != nil {
		return fmt.Errorf("send audio: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inst == 0 {
		return ErrClosed
	}
	sendAudio(s.inst, frame)
	return nil
}

// SendMetadata pushes one opaque metadata payload, conventionally UTF-8 XML.
func (s *Sender) SendMetadata(timecode int64, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inst == 0 {
		return ErrClosed
	}
	sendMetadata(s.inst, timecode, data)
	return nil
}

// SendTestPattern synthesizes one UYVY color-bar frame at the given
// dimensions and frame rate and sends it. Zero arguments default to
// 1280x720 at 30/1. Use TestPattern plus SendVideo for other patterns.
func (s *Sender) SendTestPattern(width, height, frameRateN, frameRateD int) error {
	if width == 0 {
		width = 1280
	}
	if height == 0 {
		height = 720
	}
	if frameRateN == 0 {
		frameRateN = 30
	}
	if frameRateD == 0 {
		frameRateD = 1
	}
	data := TestPattern(PatternColorBars, width, height)
	if data == nil {
		return fmt.Errorf("send test pattern: invalid dimensions %dx%d", width, height)
	}
	return s.SendVideo(&VideoFrame{
		Width:      width &^ 1,
		Height:     height,
		FourCC:     FourCCUYVY,
		FrameRateN: frameRateN,
		FrameRateD: frameRateD,
		Data:       data,
	})
}

// Close releases the native handle. Idempotent.
func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inst != 0 {
		sendDestroy(s.inst)
		s.inst = 0
		runtime.SetFinalizer(s, nil)
	}
	return nil
}

func (s *Sender) finalize() {
	_ = s.Close()
}
