package ndi

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// FinderConfig configures a Finder.
type FinderConfig struct {
	// ShowLocalSources includes sources advertised by this machine.
	ShowLocalSources bool
	// Groups is a comma-separated list of NDI groups to scan. Empty scans
	// the default group set.
	Groups string
	// ExtraIPs is a comma-separated list of addresses to query directly,
	// for sources outside the local mDNS segment.
	ExtraIPs string
}

// DefaultFinderConfig returns the default finder configuration.
func DefaultFinderConfig() FinderConfig {
	return FinderConfig{ShowLocalSources: true}
}

// Finder scans the local network for advertised sources. It wraps one native
// find handle; calls are serialized internally and the handle is released by
// Close. A Finder is not safe for use after Close.
type Finder struct {
	mu   sync.Mutex
	inst uintptr
}

// NewFinder creates a network source finder.
func NewFinder(config FinderConfig) (*Finder, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	inst := findCreate(config)
	if inst == 0 {
		return nil, fmt.Errorf("create finder: %w", ErrCreateFailed)
	}
	f := &Finder{inst: inst}
	// Backstop for a missed Close; explicit Close remains the contract.
	runtime.SetFinalizer(f, (*Finder).finalize)
	return f, nil
}

// Sources waits up to timeout for the set of visible sources to change, then
// returns a copy of the current list. An empty network yields an empty list,
// not an error. The call returns no later than timeout plus scheduling
// overhead.
func (f *Finder) Sources(timeout time.Duration) ([]Source, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inst == 0 {
		return nil, ErrClosed
	}
	findWaitForSources(f.inst, timeoutMs(timeout))
	return findCurrentSources(f.inst), nil
}

// Close releases the native handle. Idempotent: second and later calls are
// no-ops.
func (f *Finder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inst != 0 {
		findDestroy(f.inst)
		f.inst = 0
		runtime.SetFinalizer(f, nil)
	}
	return nil
}

func (f *Finder) finalize() {
	_ = f.Close()
}
