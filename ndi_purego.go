//go:build (darwin || linux) && !cgo

// purego backend: loads the NDI runtime with dlopen and calls it through
// registered function pointers. No cgo required (CGO_ENABLED=0).

package ndi

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	libOnce   sync.Once
	libHandle uintptr
	libErr    error
)

// NDIlib_* function pointers, registered by loadSymbols.
var (
	ndiInitialize     func() bool
	ndiDestroy        func()
	ndiVersion        func() uintptr
	ndiIsSupportedCPU func() bool

	ndiFindCreate  func(settings uintptr) uintptr
	ndiFindDestroy func(inst uintptr)
	ndiFindWait    func(inst uintptr, timeoutMs uint32) bool
	ndiFindSources func(inst uintptr, numSources uintptr) uintptr

	ndiSendCreate   func(settings uintptr) uintptr
	ndiSendDestroy  func(inst uintptr)
	ndiSendVideo    func(inst uintptr, frame uintptr)
	ndiSendAudio    func(inst uintptr, frame uintptr)
	ndiSendMetadata func(inst uintptr, frame uintptr)

	ndiRecvCreate       func(settings uintptr) uintptr
	ndiRecvDestroy      func(inst uintptr)
	ndiRecvConnect      func(inst uintptr, source uintptr)
	ndiRecvCapture      func(inst uintptr, video, audio, metadata uintptr, timeoutMs uint32) int32
	ndiRecvFreeVideo    func(inst uintptr, frame uintptr)
	ndiRecvFreeAudio    func(inst uintptr, frame uintptr)
	ndiRecvFreeMetadata func(inst uintptr, frame uintptr)
)

// C struct mirrors. Layouts match the 64-bit NDI SDK headers and are
// verified by TestNativeLayouts.

type ndiSourceT struct {
	ndiName    uintptr // const char*
	urlAddress uintptr // const char*
}

type ndiFindCreateT struct {
	showLocalSources bool
	_                [7]byte
	groups           uintptr // const char*
	extraIPs         uintptr // const char*
}

type ndiSendCreateT struct {
	ndiName    uintptr // const char*
	groups     uintptr // const char*
	clockVideo bool
	clockAudio bool
	_          [6]byte
}

type ndiRecvCreateT struct {
	source           ndiSourceT
	colorFormat      int32
	bandwidth        int32
	allowVideoFields bool
	_                [7]byte
	recvName         uintptr // const char*
}

type ndiVideoFrameT struct {
	xres               int32
	yres               int32
	fourCC             uint32
	frameRateN         int32
	frameRateD         int32
	pictureAspectRatio float32
	frameFormatType    int32
	_                  [4]byte
	timecode           int64
	data               uintptr // uint8_t*
	lineStride         int32
	_                  [4]byte
	metadata           uintptr // const char*
	timestamp          int64
}

type ndiAudioFrameT struct {
	sampleRate    int32
	noChannels    int32
	noSamples     int32
	_             [4]byte
	timecode      int64
	data          uintptr // float*
	channelStride int32
	_             [4]byte
	metadata      uintptr // const char*
	timestamp     int64
}

type ndiMetadataFrameT struct {
	length   int32
	_        [4]byte
	timecode int64
	data     uintptr // char*
}

const ndiFrameFormatProgressive = 1

func libLoad() error {
	libOnce.Do(func() {
		libErr = loadLibrary()
	})
	return libErr
}

func loadLibrary() error {
	var lastErr error
	for _, path := range libraryPaths() {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		libHandle = handle
		loadSymbols()
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("%w: %v", ErrRuntimeNotFound, lastErr)
	}
	return ErrRuntimeNotFound
}

// libraryPaths returns candidate runtime locations in preference order.
// NDILIB_REDIST_FOLDER is the convention the official runtime installers set.
func libraryPaths() []string {
	names := []string{"libndi.so.6", "libndi.so.5", "libndi.so"}
	if runtime.GOOS == "darwin" {
		names = []string{"libndi.dylib"}
	}

	var paths []string
	addDir := func(dir string) {
		for _, name := range names {
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	if dir := os.Getenv("NDILIB_REDIST_FOLDER"); dir != "" {
		addDir(dir)
	}
	if dir := os.Getenv("NDI_RUNTIME_DIR"); dir != "" {
		addDir(dir)
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		addDir(exeDir)
		addDir(filepath.Join(exeDir, "..", "lib"))
	}

	switch runtime.GOOS {
	case "darwin":
		addDir("/usr/local/lib")
		addDir("/opt/homebrew/lib")
		addDir("/Library/NDI SDK for Apple/lib/macOS")
	case "linux":
		addDir("/usr/local/lib")
		addDir("/usr/lib")
	}

	// Bare names last, for the dynamic loader's own search path.
	paths = append(paths, names...)
	return paths
}

func loadSymbols() {
	purego.RegisterLibFunc(&ndiInitialize, libHandle, "NDIlib_initialize")
	purego.RegisterLibFunc(&ndiDestroy, libHandle, "NDIlib_destroy")
	purego.RegisterLibFunc(&ndiVersion, libHandle, "NDIlib_version")
	purego.RegisterLibFunc(&ndiIsSupportedCPU, libHandle, "NDIlib_is_supported_CPU")

	purego.RegisterLibFunc(&ndiFindCreate, libHandle, "NDIlib_find_create_v2")
	purego.RegisterLibFunc(&ndiFindDestroy, libHandle, "NDIlib_find_destroy")
	purego.RegisterLibFunc(&ndiFindWait, libHandle, "NDIlib_find_wait_for_sources")
	purego.RegisterLibFunc(&ndiFindSources, libHandle, "NDIlib_find_get_current_sources")

	purego.RegisterLibFunc(&ndiSendCreate, libHandle, "NDIlib_send_create")
	purego.RegisterLibFunc(&ndiSendDestroy, libHandle, "NDIlib_send_destroy")
	purego.RegisterLibFunc(&ndiSendVideo, libHandle, "NDIlib_send_send_video_v2")
	purego.RegisterLibFunc(&ndiSendAudio, libHandle, "NDIlib_send_send_audio_v2")
	purego.RegisterLibFunc(&ndiSendMetadata, libHandle, "NDIlib_send_send_metadata")

	purego.RegisterLibFunc(&ndiRecvCreate, libHandle, "NDIlib_recv_create_v3")
	purego.RegisterLibFunc(&ndiRecvDestroy, libHandle, "NDIlib_recv_destroy")
	purego.RegisterLibFunc(&ndiRecvConnect, libHandle, "NDIlib_recv_connect")
	purego.RegisterLibFunc(&ndiRecvCapture, libHandle, "NDIlib_recv_capture_v2")
	purego.RegisterLibFunc(&ndiRecvFreeVideo, libHandle, "NDIlib_recv_free_video_v2")
	purego.RegisterLibFunc(&ndiRecvFreeAudio, libHandle, "NDIlib_recv_free_audio_v2")
	purego.RegisterLibFunc(&ndiRecvFreeMetadata, libHandle, "NDIlib_recv_free_metadata")
}

func libInitialize() bool     { return ndiInitialize() }
func libDestroy()             { ndiDestroy() }
func libVersion() string      { return goStringFromPtr(ndiVersion()) }
func libIsSupportedCPU() bool { return ndiIsSupportedCPU() }

func findCreate(config FinderConfig) uintptr {
	groups := cString(config.Groups)
	extraIPs := cString(config.ExtraIPs)
	settings := ndiFindCreateT{
		showLocalSources: config.ShowLocalSources,
		groups:           bytePtr(groups),
		extraIPs:         bytePtr(extraIPs),
	}
	inst := ndiFindCreate(uintptr(unsafe.Pointer(&settings)))
	runtime.KeepAlive(groups)
	runtime.KeepAlive(extraIPs)
	runtime.KeepAlive(&settings)
	return inst
}

func findWaitForSources(inst uintptr, timeoutMs uint32) bool {
	return ndiFindWait(inst, timeoutMs)
}

// findCurrentSources copies the finder's source list into Go-owned values.
// The native array stays valid until the next finder call, which the
// per-handle lock guarantees cannot overlap.
func findCurrentSources(inst uintptr) []Source {
	var count uint32
	arr := ndiFindSources(inst, uintptr(unsafe.Pointer(&count)))
	if arr == 0 || count == 0 {
		return nil
	}
	native := unsafe.Slice((*ndiSourceT)(unsafe.Pointer(arr)), count)
	sources := make([]Source, count)
	for i, src := range native {
		sources[i] = Source{
			Name:       goStringFromPtr(src.ndiName),
			URLAddress: goStringFromPtr(src.urlAddress),
		}
	}
	return sources
}

func findDestroy(inst uintptr) {
	ndiFindDestroy(inst)
}

func sendCreate(config SenderConfig) uintptr {
	name := cString(config.Name)
	groups := cString(config.Groups)
	settings := ndiSendCreateT{
		ndiName:    bytePtr(name),
		groups:     bytePtr(groups),
		clockVideo: config.ClockVideo,
		clockAudio: config.ClockAudio,
	}
	inst := ndiSendCreate(uintptr(unsafe.Pointer(&settings)))
	runtime.KeepAlive(name)
	runtime.KeepAlive(groups)
	runtime.KeepAlive(&settings)
	return inst
}

func sendVideo(inst uintptr, f *VideoFrame) {
	native := ndiVideoFrameT{
		xres:            int32(f.Width),
		yres:            int32(f.Height),
		fourCC:          uint32(f.FourCC),
		frameRateN:      int32(f.FrameRateN),
		frameRateD:      int32(f.FrameRateD),
		frameFormatType: ndiFrameFormatProgressive,
		timecode:        f.Timecode,
		data:            uintptr(unsafe.Pointer(&f.Data[0])),
		lineStride:      int32(f.LineStride),
	}
	ndiSendVideo(inst, uintptr(unsafe.Pointer(&native)))
	runtime.KeepAlive(f.Data)
	runtime.KeepAlive(&native)
}

func sendAudio(inst uintptr, f *AudioFrame) {
	native := ndiAudioFrameT{
		sampleRate:    int32(f.SampleRate),
		noChannels:    int32(f.Channels),
		noSamples:     int32(f.Samples),
		timecode:      f.Timecode,
		data:          uintptr(unsafe.Pointer(&f.Data[0])),
		channelStride: int32(f.ChannelStride),
	}
	ndiSendAudio(inst, uintptr(unsafe.Pointer(&native)))
	runtime.KeepAlive(f.Data)
	runtime.KeepAlive(&native)
}

func sendMetadata(inst uintptr, timecode int64, data string) {
	payload := cString(data)
	native := ndiMetadataFrameT{
		length:   int32(len(payload)),
		timecode: timecode,
		data:     bytePtr(payload),
	}
	ndiSendMetadata(inst, uintptr(unsafe.Pointer(&native)))
	runtime.KeepAlive(payload)
	runtime.KeepAlive(&native)
}

func sendDestroy(inst uintptr) {
	ndiSendDestroy(inst)
}

func recvCreate(config ReceiverConfig) uintptr {
	name := cString(config.Name)
	settings := ndiRecvCreateT{
		colorFormat:      int32(config.ColorFormat),
		bandwidth:        int32(config.Bandwidth),
		allowVideoFields: config.AllowVideoFields,
		recvName:         bytePtr(name),
	}
	inst := ndiRecvCreate(uintptr(unsafe.Pointer(&settings)))
	runtime.KeepAlive(name)
	runtime.KeepAlive(&settings)
	return inst
}

func recvConnect(inst uintptr, source Source) {
	name := cString(source.Name)
	url := cString(source.URLAddress)
	native := ndiSourceT{
		ndiName:    bytePtr(name),
		urlAddress: bytePtr(url),
	}
	ndiRecvConnect(inst, uintptr(unsafe.Pointer(&native)))
	runtime.KeepAlive(name)
	runtime.KeepAlive(url)
	runtime.KeepAlive(&native)
}

func recvDisconnect(inst uintptr) {
	// NULL source disconnects.
	ndiRecvConnect(inst, 0)
}

// recvCapture waits for one frame, copies its payload into Go memory, frees
// the native frame, and returns the tagged result.
func recvCapture(inst uintptr, timeoutMs uint32) (FrameType, *VideoFrame, *AudioFrame, *MetadataFrame) {
	var video ndiVideoFrameT
	var audio ndiAudioFrameT
	var meta ndiMetadataFrameT

	ft := FrameType(ndiRecvCapture(inst,
		uintptr(unsafe.Pointer(&video)),
		uintptr(unsafe.Pointer(&audio)),
		uintptr(unsafe.Pointer(&meta)),
		timeoutMs))

	switch ft {
	case FrameTypeVideo:
		out := copyVideoFrame(&video)
		ndiRecvFreeVideo(inst, uintptr(unsafe.Pointer(&video)))
		return ft, out, nil, nil
	case FrameTypeAudio:
		out := copyAudioFrame(&audio)
		ndiRecvFreeAudio(inst, uintptr(unsafe.Pointer(&audio)))
		return ft, nil, out, nil
	case FrameTypeMetadata:
		out := copyMetadataFrame(&meta)
		ndiRecvFreeMetadata(inst, uintptr(unsafe.Pointer(&meta)))
		return ft, nil, nil, out
	default:
		return ft, nil, nil, nil
	}
}

func copyVideoFrame(native *ndiVideoFrameT) *VideoFrame {
	f := &VideoFrame{
		Width:      int(native.xres),
		Height:     int(native.yres),
		FourCC:     FourCC(native.fourCC),
		FrameRateN: int(native.frameRateN),
		FrameRateD: int(native.frameRateD),
		LineStride: int(native.lineStride),
		Timecode:   native.timecode,
		Timestamp:  native.timestamp,
	}
	// For planar layouts lineStride covers the luma plane only; fall back
	// to the full-image size the FourCC implies.
	size := 0
	switch f.FourCC {
	case FourCCUYVY, FourCCBGRA, FourCCBGRX, FourCCRGBA, FourCCRGBX:
		size = int(native.lineStride) * f.Height
	}
	if size <= 0 {
		size = f.FourCC.BufferSize(f.Width, f.Height)
	}
	if native.data != 0 && size > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(native.data)), size)
		f.Data = make([]byte, size)
		copy(f.Data, src)
	}
	return f
}

// copyAudioFrame repacks the native strided planes tightly: channel c starts
// at c*Samples in Data.
func copyAudioFrame(native *ndiAudioFrameT) *AudioFrame {
	f := &AudioFrame{
		SampleRate: int(native.sampleRate),
		Channels:   int(native.noChannels),
		Samples:    int(native.noSamples),
		Timecode:   native.timecode,
		Timestamp:  native.timestamp,
	}
	f.ChannelStride = f.Samples * 4
	if native.data != 0 && f.Channels > 0 && f.Samples > 0 {
		strideFloats := int(native.channelStride) / 4
		total := (f.Channels-1)*strideFloats + f.Samples
		src := unsafe.Slice((*float32)(unsafe.Pointer(native.data)), total)
		f.Data = make([]float32, f.Channels*f.Samples)
		for c := 0; c < f.Channels; c++ {
			copy(f.Data[c*f.Samples:(c+1)*f.Samples], src[c*strideFloats:])
		}
	}
	return f
}

func copyMetadataFrame(native *ndiMetadataFrameT) *MetadataFrame {
	f := &MetadataFrame{Timecode: native.timecode}
	if native.data != 0 {
		// length includes the terminating NUL when set.
		if native.length > 0 {
			f.Data = goStringN(native.data, int(native.length-1))
		} else {
			f.Data = goStringFromPtr(native.data)
		}
	}
	return f
}

func recvDestroy(inst uintptr) {
	ndiRecvDestroy(inst)
}
