package ndi

import (
	"strings"
	"testing"
	"time"
)

// End-to-end tests against the live runtime. They need the NDI runtime
// installed and mDNS traffic permitted on the local segment; without the
// runtime they skip.

func TestDiscoveryRoundTrip(t *testing.T) {
	skipWithoutRuntime(t)

	sender, err := NewSender(SenderConfig{Name: "TestSender"})
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	defer sender.Close()

	finder, err := NewFinder(DefaultFinderConfig())
	if err != nil {
		t.Fatalf("NewFinder: %v", err)
	}
	defer finder.Close()

	// Advertisement propagates asynchronously; poll inside a 3 s budget.
	deadline := time.Now().Add(3 * time.Second)
	for {
		sources, err := finder.Sources(500 * time.Millisecond)
		if err != nil {
			t.Fatalf("Sources: %v", err)
		}
		for _, s := range sources {
			if strings.Contains(s.Name, "TestSender") {
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("TestSender not discovered within 3s, saw %v", sources)
		}
	}
}

func TestPatternRoundTrip(t *testing.T) {
	skipWithoutRuntime(t)

	sender, err := NewSender(SenderConfig{Name: "Go Pattern RoundTrip"})
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	defer sender.Close()

	receiver, err := NewReceiver(DefaultReceiverConfig())
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}
	defer receiver.Close()

	if err := receiver.ConnectByName(sender.Name()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	// Keep frames flowing while the receiver locks on.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(time.Second / 30)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = sender.SendTestPattern(1280, 720, 30, 1)
			}
		}
	}()

	deadline := time.Now().Add(10 * time.Second)
	for {
		c, err := receiver.Capture(time.Second)
		if err != nil {
			t.Fatalf("Capture: %v", err)
		}
		assertCaptureConsistent(t, c)
		if c.Type != FrameTypeVideo {
			if time.Now().After(deadline) {
				t.Fatal("no video frame within 10s")
			}
			continue
		}

		v := c.Video
		if v.Width != 1280 || v.Height != 720 {
			t.Errorf("frame %dx%d, want 1280x720", v.Width, v.Height)
		}
		if v.FrameRateN != 30 || v.FrameRateD != 1 {
			t.Errorf("frame rate %d/%d, want 30/1", v.FrameRateN, v.FrameRateD)
		}
		if len(v.Data) == 0 {
			t.Error("video frame carries no pixel data")
		}
		return
	}
}

func TestCaptureTimeoutBounded(t *testing.T) {
	skipWithoutRuntime(t)

	receiver, err := NewReceiver(DefaultReceiverConfig())
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}
	defer receiver.Close()

	const timeout = 300 * time.Millisecond
	start := time.Now()
	c, err := receiver.Capture(timeout)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if c.Type != FrameTypeNone {
		t.Errorf("unconnected Capture = %v, want none", c.Type)
	}
	if elapsed > timeout+2*time.Second {
		t.Errorf("Capture took %v, want <= %v plus overhead", elapsed, timeout)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	skipWithoutRuntime(t)

	sender, err := NewSender(SenderConfig{Name: "Go Metadata RoundTrip"})
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	defer sender.Close()

	receiver, err := NewReceiver(ReceiverConfig{Bandwidth: BandwidthMetadataOnly})
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}
	defer receiver.Close()

	if err := receiver.ConnectByName(sender.Name()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	const payload = "<go_test value=\"42\"/>"
	deadline := time.Now().Add(10 * time.Second)
	for {
		if err := sender.SendMetadata(0, payload); err != nil {
			t.Fatalf("SendMetadata: %v", err)
		}
		c, err := receiver.Capture(500 * time.Millisecond)
		if err != nil {
			t.Fatalf("Capture: %v", err)
		}
		assertCaptureConsistent(t, c)
		if c.Type == FrameTypeMetadata {
			if !strings.Contains(c.Metadata.Data, "go_test") {
				t.Errorf("metadata = %q, want payload containing go_test", c.Metadata.Data)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("no metadata frame within 10s")
		}
	}
}
