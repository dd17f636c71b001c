//go:build (darwin || linux) && !cgo

// C-string helpers shared by the purego backend.

package ndi

import "unsafe"

// goStringFromPtr copies a NUL-terminated C string into a Go string.
func goStringFromPtr(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	p := unsafe.Pointer(ptr)
	var length int
	for *(*byte)(unsafe.Pointer(uintptr(p) + uintptr(length))) != 0 {
		length++
	}
	if length == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(p), length))
}

// goStringN copies exactly n bytes starting at ptr into a Go string.
func goStringN(ptr uintptr, n int) string {
	if ptr == 0 || n <= 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
}

// cString returns s as a NUL-terminated byte slice, or nil for the empty
// string so callers pass NULL instead of "".
func cString(s string) []byte {
	if s == "" {
		return nil
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func bytePtr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
