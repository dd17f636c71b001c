// Package ndi provides Go bindings for the NDI network video runtime:
// source discovery, frame transmission, and frame reception.
//
// Key pieces include:
//   - Finder for scanning the local network for advertised sources
//   - Sender for advertising a named stream and pushing video/audio/metadata
//   - Receiver for connecting to a named source and capturing frames
//   - Plain value types for video, audio, and metadata frames
//
// # Architecture
//
//	Discover: Finder.Sources -> []Source
//	Send:     VideoFrame/AudioFrame -> Sender.SendVideo/SendAudio
//	Receive:  Receiver.Connect -> Receiver.Capture -> Capture{Video|Audio|Metadata}
//
// All calls are synchronous and bounded by caller-supplied timeouts. Each
// Finder, Sender, and Receiver wraps exactly one native handle; calls on a
// single handle are serialized internally, and Close releases the handle
// exactly once. Frame buffers returned by Capture are always copies owned by
// Go and never alias runtime memory.
//
// # Native Runtime
//
// Bindings load the NDI shared library (libndi) at runtime. Set
// NDILIB_REDIST_FOLDER or NDI_RUNTIME_DIR to the directory containing the
// library. By default the package uses purego (CGO_ENABLED=0). With CGO
// enabled it links against the runtime directly for lower overhead.
//
// Initialize must succeed before any adapter is constructed; the constructors
// call it themselves, so most programs never call it explicitly.
package ndi
