//go:build cgo

// cgo backend: links against the NDI runtime directly. The declarations
// below match the NDI SDK headers (Processing.NDI.Lib.h).

package ndi

/*
#cgo darwin LDFLAGS: -L/Library/NDI\ SDK\ for\ Apple/lib/macOS -lndi
#cgo linux LDFLAGS: -lndi

#include <stdlib.h>
#include <stdbool.h>
#include <stdint.h>

typedef struct NDIlib_source_t {
	const char* p_ndi_name;
	const char* p_url_address;
} NDIlib_source_t;

typedef struct NDIlib_find_create_t {
	bool show_local_sources;
	const char* p_groups;
	const char* p_extra_ips;
} NDIlib_find_create_t;

typedef struct NDIlib_send_create_t {
	const char* p_ndi_name;
	const char* p_groups;
	bool clock_video;
	bool clock_audio;
} NDIlib_send_create_t;

typedef struct NDIlib_recv_create_v3_t {
	NDIlib_source_t source_to_connect_to;
	int color_format;
	int bandwidth;
	bool allow_video_fields;
	const char* p_ndi_recv_name;
} NDIlib_recv_create_v3_t;

typedef struct NDIlib_video_frame_v2_t {
	int xres;
	int yres;
	uint32_t FourCC;
	int frame_rate_N;
	int frame_rate_D;
	float picture_aspect_ratio;
	int frame_format_type;
	int64_t timecode;
	uint8_t* p_data;
	int line_stride_in_bytes;
	const char* p_metadata;
	int64_t timestamp;
} NDIlib_video_frame_v2_t;

typedef struct NDIlib_audio_frame_v2_t {
	int sample_rate;
	int no_channels;
	int no_samples;
	int64_t timecode;
	float* p_data;
	int channel_stride_in_bytes;
	const char* p_metadata;
	int64_t timestamp;
} NDIlib_audio_frame_v2_t;

typedef struct NDIlib_metadata_frame_t {
	int length;
	int64_t timecode;
	char* p_data;
} NDIlib_metadata_frame_t;

typedef void* NDIlib_find_instance_t;
typedef void* NDIlib_send_instance_t;
typedef void* NDIlib_recv_instance_t;

extern bool NDIlib_initialize(void);
extern void NDIlib_destroy(void);
extern const char* NDIlib_version(void);
extern bool NDIlib_is_supported_CPU(void);

extern NDIlib_find_instance_t NDIlib_find_create_v2(const NDIlib_find_create_t* p_create_settings);
extern void NDIlib_find_destroy(NDIlib_find_instance_t p_instance);
extern bool NDIlib_find_wait_for_sources(NDIlib_find_instance_t p_instance, uint32_t timeout_in_ms);
extern const NDIlib_source_t* NDIlib_find_get_current_sources(NDIlib_find_instance_t p_instance, uint32_t* p_no_sources);

extern NDIlib_send_instance_t NDIlib_send_create(const NDIlib_send_create_t* p_create_settings);
extern void NDIlib_send_destroy(NDIlib_send_instance_t p_instance);
extern void NDIlib_send_send_video_v2(NDIlib_send_instance_t p_instance, const NDIlib_video_frame_v2_t* p_video_data);
extern void NDIlib_send_send_audio_v2(NDIlib_send_instance_t p_instance, const NDIlib_audio_frame_v2_t* p_audio_data);
extern void NDIlib_send_send_metadata(NDIlib_send_instance_t p_instance, const NDIlib_metadata_frame_t* p_metadata);

extern NDIlib_recv_instance_t NDIlib_recv_create_v3(const NDIlib_recv_create_v3_t* p_create_settings);
extern void NDIlib_recv_destroy(NDIlib_recv_instance_t p_instance);
extern void NDIlib_recv_connect(NDIlib_recv_instance_t p_instance, const NDIlib_source_t* p_src);
extern int NDIlib_recv_capture_v2(NDIlib_recv_instance_t p_instance, NDIlib_video_frame_v2_t* p_video_data, NDIlib_audio_frame_v2_t* p_audio_data, NDIlib_metadata_frame_t* p_metadata, uint32_t timeout_in_ms);
extern void NDIlib_recv_free_video_v2(NDIlib_recv_instance_t p_instance, const NDIlib_video_frame_v2_t* p_video_data);
extern void NDIlib_recv_free_audio_v2(NDIlib_recv_instance_t p_instance, const NDIlib_audio_frame_v2_t* p_audio_data);
extern void NDIlib_recv_free_metadata(NDIlib_recv_instance_t p_instance, const NDIlib_metadata_frame_t* p_metadata);
*/
import "C"

import "unsafe"

// libLoad is a no-op under cgo: the runtime is linked at build time.
func libLoad() error { return nil }

func libInitialize() bool     { return bool(C.NDIlib_initialize()) }
func libDestroy()             { C.NDIlib_destroy() }
func libVersion() string      { return C.GoString(C.NDIlib_version()) }
func libIsSupportedCPU() bool { return bool(C.NDIlib_is_supported_CPU()) }

// optCString returns NULL for the empty string so defaults apply.
func optCString(s string) *C.char {
	if s == "" {
		return nil
	}
	return C.CString(s)
}

func freeCString(p *C.char) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

func findCreate(config FinderConfig) uintptr {
	settings := C.NDIlib_find_create_t{
		show_local_sources: C.bool(config.ShowLocalSources),
		p_groups:           optCString(config.Groups),
		p_extra_ips:        optCString(config.ExtraIPs),
	}
	defer freeCString(settings.p_groups)
	defer freeCString(settings.p_extra_ips)
	return uintptr(C.NDIlib_find_create_v2(&settings))
}

func findWaitForSources(inst uintptr, timeoutMs uint32) bool {
	return bool(C.NDIlib_find_wait_for_sources(C.NDIlib_find_instance_t(unsafe.Pointer(inst)), C.uint32_t(timeoutMs)))
}

func findCurrentSources(inst uintptr) []Source {
	var count C.uint32_t
	arr := C.NDIlib_find_get_current_sources(C.NDIlib_find_instance_t(unsafe.Pointer(inst)), &count)
	if arr == nil || count == 0 {
		return nil
	}
	native := unsafe.Slice(arr, int(count))
	sources := make([]Source, int(count))
	for i, src := range native {
		sources[i] = Source{
			Name:       C.GoString(src.p_ndi_name),
			URLAddress: C.GoString(src.p_url_address),
		}
	}
	return sources
}

func findDestroy(inst uintptr) {
	C.NDIlib_find_destroy(C.NDIlib_find_instance_t(unsafe.Pointer(inst)))
}

func sendCreate(config SenderConfig) uintptr {
	settings := C.NDIlib_send_create_t{
		p_ndi_name:  optCString(config.Name),
		p_groups:    optCString(config.Groups),
		clock_video: C.bool(config.ClockVideo),
		clock_audio: C.bool(config.ClockAudio),
	}
	defer freeCString(settings.p_ndi_name)
	defer freeCString(settings.p_groups)
	return uintptr(C.NDIlib_send_create(&settings))
}

func sendVideo(inst uintptr, f *VideoFrame) {
	native := C.NDIlib_video_frame_v2_t{
		xres:                 C.int(f.Width),
		yres:                 C.int(f.Height),
		FourCC:               C.uint32_t(f.FourCC),
		frame_rate_N:         C.int(f.FrameRateN),
		frame_rate_D:         C.int(f.FrameRateD),
		frame_format_type:    1, // progressive
		timecode:             C.int64_t(f.Timecode),
		p_data:               (*C.uint8_t)(unsafe.Pointer(&f.Data[0])),
		line_stride_in_bytes: C.int(f.LineStride),
	}
	C.NDIlib_send_send_video_v2(C.NDIlib_send_instance_t(unsafe.Pointer(inst)), &native)
}

func sendAudio(inst uintptr, f *AudioFrame) {
	native := C.NDIlib_audio_frame_v2_t{
		sample_rate:             C.int(f.SampleRate),
		no_channels:             C.int(f.Channels),
		no_samples:              C.int(f.Samples),
		timecode:                C.int64_t(f.Timecode),
		p_data:                  (*C.float)(unsafe.Pointer(&f.Data[0])),
		channel_stride_in_bytes: C.int(f.ChannelStride),
	}
	C.NDIlib_send_send_audio_v2(C.NDIlib_send_instance_t(unsafe.Pointer(inst)), &native)
}

func sendMetadata(inst uintptr, timecode int64, data string) {
	payload := C.CString(data)
	defer C.free(unsafe.Pointer(payload))
	native := C.NDIlib_metadata_frame_t{
		length:   C.int(len(data) + 1),
		timecode: C.int64_t(timecode),
		p_data:   payload,
	}
	C.NDIlib_send_send_metadata(C.NDIlib_send_instance_t(unsafe.Pointer(inst)), &native)
}

func sendDestroy(inst uintptr) {
	C.NDIlib_send_destroy(C.NDIlib_send_instance_t(unsafe.Pointer(inst)))
}

func recvCreate(config ReceiverConfig) uintptr {
	settings := C.NDIlib_recv_create_v3_t{
		color_format:       C.int(config.ColorFormat),
		bandwidth:          C.int(config.Bandwidth),
		allow_video_fields: C.bool(config.AllowVideoFields),
		p_ndi_recv_name:    optCString(config.Name),
	}
	defer freeCString(settings.p_ndi_recv_name)
	return uintptr(C.NDIlib_recv_create_v3(&settings))
}

func recvConnect(inst uintptr, source Source) {
	native := C.NDIlib_source_t{
		p_ndi_name:    optCString(source.Name),
		p_url_address: optCString(source.URLAddress),
	}
	defer freeCString(native.p_ndi_name)
	defer freeCString(native.p_url_address)
	C.NDIlib_recv_connect(C.NDIlib_recv_instance_t(unsafe.Pointer(inst)), &native)
}

func recvDisconnect(inst uintptr) {
	C.NDIlib_recv_connect(C.NDIlib_recv_instance_t(unsafe.Pointer(inst)), nil)
}

func recvCapture(inst uintptr, timeoutMs uint32) (FrameType, *VideoFrame, *AudioFrame, *MetadataFrame) {
	var video C.NDIlib_video_frame_v2_t
	var audio C.NDIlib_audio_frame_v2_t
	var meta C.NDIlib_metadata_frame_t

	handle := C.NDIlib_recv_instance_t(unsafe.Pointer(inst))
	ft := FrameType(C.NDIlib_recv_capture_v2(handle, &video, &audio, &meta, C.uint32_t(timeoutMs)))

	switch ft {
	case FrameTypeVideo:
		out := copyVideoFrameC(&video)
		C.NDIlib_recv_free_video_v2(handle, &video)
		return ft, out, nil, nil
	case FrameTypeAudio:
		out := copyAudioFrameC(&audio)
		C.NDIlib_recv_free_audio_v2(handle, &audio)
		return ft, nil, out, nil
	case FrameTypeMetadata:
		out := copyMetadataFrameC(&meta)
		C.NDIlib_recv_free_metadata(handle, &meta)
		return ft, nil, nil, out
	default:
		return ft, nil, nil, nil
	}
}

func copyVideoFrameC(native *C.NDIlib_video_frame_v2_t) *VideoFrame {
	f := &VideoFrame{
		Width:      int(native.xres),
		Height:     int(native.yres),
		FourCC:     FourCC(native.FourCC),
		FrameRateN: int(native.frame_rate_N),
		FrameRateD: int(native.frame_rate_D),
		LineStride: int(native.line_stride_in_bytes),
		Timecode:   int64(native.timecode),
		Timestamp:  int64(native.timestamp),
	}
	// For planar layouts lineStride covers the luma plane only; fall back
	// to the full-image size the FourCC implies.
	size := 0
	switch f.FourCC {
	case FourCCUYVY, FourCCBGRA, FourCCBGRX, FourCCRGBA, FourCCRGBX:
		size = f.LineStride * f.Height
	}
	if size <= 0 {
		size = f.FourCC.BufferSize(f.Width, f.Height)
	}
	if native.p_data != nil && size > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(native.p_data)), size)
		f.Data = make([]byte, size)
		copy(f.Data, src)
	}
	return f
}

func copyAudioFrameC(native *C.NDIlib_audio_frame_v2_t) *AudioFrame {
	f := &AudioFrame{
		SampleRate: int(native.sample_rate),
		Channels:   int(native.no_channels),
		Samples:    int(native.no_samples),
		Timecode:   int64(native.timecode),
		Timestamp:  int64(native.timestamp),
	}
	f.ChannelStride = f.Samples * 4
	if native.p_data != nil && f.Channels > 0 && f.Samples > 0 {
		strideFloats := int(native.channel_stride_in_bytes) / 4
		total := (f.Channels-1)*strideFloats + f.Samples
		src := unsafe.Slice((*float32)(unsafe.Pointer(native.p_data)), total)
		f.Data = make([]float32, f.Channels*f.Samples)
		for c := 0; c < f.Channels; c++ {
			copy(f.Data[c*f.Samples:(c+1)*f.Samples], src[c*strideFloats:])
		}
	}
	return f
}

func copyMetadataFrameC(native *C.NDIlib_metadata_frame_t) *MetadataFrame {
	f := &MetadataFrame{Timecode: int64(native.timecode)}
	if native.p_data != nil {
		if native.length > 0 {
			f.Data = C.GoStringN(native.p_data, native.length-1)
		} else {
			f.Data = C.GoString(native.p_data)
		}
	}
	return f
}
