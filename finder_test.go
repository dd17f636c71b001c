package ndi

import (
	"errors"
	"testing"
	"time"
)

func TestFinderClosedOperations(t *testing.T) {
	// Zero value carries no handle, behaving like a closed finder.
	f := &Finder{}

	if _, err := f.Sources(time.Second); !errors.Is(err, ErrClosed) {
		t.Errorf("Sources on closed finder = %v, want ErrClosed", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close on closed finder = %v, want nil", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestFinderLifecycle(t *testing.T) {
	skipWithoutRuntime(t)

	f, err := NewFinder(DefaultFinderConfig())
	if err != nil {
		t.Fatalf("NewFinder: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("double Close: %v", err)
	}
	if _, err := f.Sources(0); !errors.Is(err, ErrClosed) {
		t.Errorf("Sources after Close = %v, want ErrClosed", err)
	}
}

// A scan must return within bounded overhead above its timeout and must
// report an empty network as an empty list, not an error.
func TestFinderScanBounded(t *testing.T) {
	skipWithoutRuntime(t)

	f, err := NewFinder(DefaultFinderConfig())
	if err != nil {
		t.Fatalf("NewFinder: %v", err)
	}
	defer f.Close()

	const timeout = 500 * time.Millisecond
	start := time.Now()
	sources, err := f.Sources(timeout)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if elapsed > timeout+2*time.Second {
		t.Errorf("scan took %v, want <= %v plus overhead", elapsed, timeout)
	}
	// sources may legitimately be empty; it must just not be an error.
	_ = sources
}
