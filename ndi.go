package ndi

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Errors returned by the binding layer. Runtime-level failures are wrapped
// with context; these sentinels remain matchable with errors.Is.
var (
	// ErrRuntimeNotFound indicates the NDI shared library could not be located.
	ErrRuntimeNotFound = errors.New("ndi runtime not found")
	// ErrCPUNotSupported indicates the runtime refused to start on this CPU.
	ErrCPUNotSupported = errors.New("ndi runtime does not support this CPU")
	// ErrInitFailed indicates NDIlib_initialize returned false.
	ErrInitFailed = errors.New("ndi runtime initialization failed")
	// ErrCreateFailed indicates the runtime refused to allocate a native handle.
	ErrCreateFailed = errors.New("ndi handle creation failed")
	// ErrClosed is returned by any operation on a released handle.
	ErrClosed = errors.New("ndi handle closed")
	// ErrRuntimeDestroyed is returned by Initialize once Destroy has torn the
	// runtime down; the process cannot bring it back up.
	ErrRuntimeDestroyed = errors.New("ndi runtime destroyed")
	// ErrCaptureFailed indicates the runtime reported a receive error.
	ErrCaptureFailed = errors.New("ndi capture failed")
)

var (
	initOnce    sync.Once
	initErr     error
	initialized atomic.Bool
)

// Initialize loads the NDI runtime and initializes it. It is idempotent:
// concurrent and repeated calls perform the work once and return the
// memoized result. Finder, Sender, and Receiver constructors call it
// implicitly. After Destroy it returns ErrRuntimeDestroyed.
func Initialize() error {
	initOnce.Do(func() {
		if err := libLoad(); err != nil {
			initErr = fmt.Errorf("load runtime: %w", err)
			return
		}
		if !libInitialize() {
			if !libIsSupportedCPU() {
				initErr = ErrCPUNotSupported
				return
			}
			initErr = ErrInitFailed
			return
		}
		initialized.Store(true)
	})
	if initErr == nil && !initialized.Load() {
		return ErrRuntimeDestroyed
	}
	return initErr
}

// Destroy releases process-wide runtime state. Call it at most once, during
// process teardown, after every adapter has been closed. Safe to call when
// Initialize never ran or failed.
func Destroy() {
	if initialized.CompareAndSwap(true, false) {
		libDestroy()
	}
}

// IsAvailable reports whether the runtime can be loaded and initialized on
// this machine.
func IsAvailable() bool {
	return Initialize() == nil
}

// Version returns the runtime's version string.
func Version() (string, error) {
	if err := Initialize(); err != nil {
		return "", err
	}
	return libVersion(), nil
}

// IsSupportedCPU reports whether the runtime supports the current CPU.
// It loads the library but does not initialize it; false is returned when
// the library cannot be loaded at all.
func IsSupportedCPU() bool {
	if err := libLoad(); err != nil {
		return false
	}
	return libIsSupportedCPU()
}

// timeoutMs converts a caller-supplied timeout to the millisecond value the
// runtime expects. Zero and negative durations poll (0 ms).
func timeoutMs(d time.Duration) uint32 {
	ms := d.Milliseconds()
	if ms <= 0 {
		return 0
	}
	if ms > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(ms)
}
