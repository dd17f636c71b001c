package ndi

import (
	"errors"
	"testing"
)

func TestNewSenderRequiresName(t *testing.T) {
	// Name validation happens before the runtime is touched.
	if _, err := NewSender(SenderConfig{}); err == nil {
		t.Error("NewSender with empty name should fail")
	}
}

func TestSenderClosedOperations(t *testing.T) {
	s := &Sender{name: "Closed"}

	frame := &VideoFrame{
		Width:      64,
		Height:     48,
		FourCC:     FourCCUYVY,
		FrameRateN: 30,
		FrameRateD: 1,
		Data:       make([]byte, 64*48*2),
	}
	if err := s.SendVideo(frame); !errors.Is(err, ErrClosed) {
		t.Errorf("SendVideo on closed sender = %v, want ErrClosed", err)
	}
	audio := &AudioFrame{
		SampleRate: 48000,
		Channels:   1,
		Samples:    480,
		Data:       make([]float32, 480),
	}
	if err := s.SendAudio(audio); !errors.Is(err, ErrClosed) {
		t.Errorf("SendAudio on closed sender = %v, want ErrClosed", err)
	}
	if err := s.SendMetadata(0, "<x/>"); !errors.Is(err, ErrClosed) {
		t.Errorf("SendMetadata on closed sender = %v, want ErrClosed", err)
	}
	if err := s.SendTestPattern(0, 0, 0, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("SendTestPattern on closed sender = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on closed sender = %v, want nil", err)
	}
	if s.Name() != "Closed" {
		t.Error("Name must survive Close")
	}
}

// Invalid frames are rejected before reaching the runtime, even on a closed
// sender: validation comes first for deterministic errors.
func TestSendVideoValidation(t *testing.T) {
	s := &Sender{}
	err := s.SendVideo(&VideoFrame{Width: 0, Height: 720})
	if err == nil || errors.Is(err, ErrClosed) {
		t.Errorf("invalid frame = %v, want validation error", err)
	}
	if err := s.SendVideo(nil); err == nil {
		t.Error("nil frame should be rejected")
	}
}

func TestSendVideoAppliesDefaults(t *testing.T) {
	s := &Sender{}
	f := &VideoFrame{
		Width:  64,
		Height: 48,
		Data:   make([]byte, 64*48*2),
	}
	// Fails with ErrClosed, after defaulting; the defaults stay applied.
	if err := s.SendVideo(f); !errors.Is(err, ErrClosed) {
		t.Fatalf("SendVideo = %v, want ErrClosed", err)
	}
	if f.FrameRateN != 30 || f.FrameRateD != 1 {
		t.Errorf("frame rate defaulted to %d/%d, want 30/1", f.FrameRateN, f.FrameRateD)
	}
	if f.FourCC != FourCCUYVY {
		t.Errorf("FourCC defaulted to %s, want UYVY", f.FourCC)
	}
	if f.LineStride != 64*2 {
		t.Errorf("LineStride defaulted to %d, want %d", f.LineStride, 64*2)
	}
}

func TestSenderLifecycle(t *testing.T) {
	skipWithoutRuntime(t)

	s, err := NewSender(SenderConfig{Name: "Go Lifecycle Test"})
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	if s.Name() != "Go Lifecycle Test" {
		t.Errorf("Name = %q", s.Name())
	}

	if err := s.SendTestPattern(640, 360, 30, 1); err != nil {
		t.Errorf("SendTestPattern: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("double Close: %v", err)
	}
	if err := s.SendTestPattern(0, 0, 0, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("send after Close = %v, want ErrClosed", err)
	}
}
