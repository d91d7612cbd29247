// Command libyolo exposes the detector core as a C-style ABI, built with
// `go build -buildmode=c-shared`, mirroring the original C++ bridge's
// symbol set so existing native callers (Flutter FFI, JNI, etc.) bind
// against the same entry points.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"sync"
	"unsafe"

	"github.com/robert008/flutter-yolo-open-kit/internal/result"
	"github.com/robert008/flutter-yolo-open-kit/internal/yolo"
	"github.com/robert008/flutter-yolo-open-kit/internal/yolog"
)

const version = "0.0.1"

var (
	mu       sync.Mutex
	detector *yolo.DetectorState
)

//export yolo_init
func yolo_init(modelPath *C.char) C.int {
	mu.Lock()
	defer mu.Unlock()

	if detector != nil {
		detector.Release()
	}
	detector = yolo.New()

	if err := detector.Init(C.GoString(modelPath)); err != nil {
		yolog.S().Errorw("yolo_init failed", "error", err)
		return 0
	}
	return 1
}

//export yolo_detect_path
func yolo_detect_path(imagePath *C.char, confThreshold, iouThreshold C.float) *C.char {
	mu.Lock()
	d := detector
	mu.Unlock()

	if d == nil {
		return cRecord(result.ErrorResult(result.CodeNotInitialized, "detector not initialized"))
	}
	res := d.DetectFromPath(C.GoString(imagePath), float32(confThreshold), float32(iouThreshold))
	return cRecord(res)
}

//export yolo_detect_buffer
func yolo_detect_buffer(imageData *C.uchar, width, height, stride C.int, confThreshold, iouThreshold C.float) *C.char {
	mu.Lock()
	d := detector
	mu.Unlock()

	if d == nil {
		return cRecord(result.ErrorResult(result.CodeNotInitialized, "detector not initialized"))
	}

	size := int(stride) * int(height)
	data := C.GoBytes(unsafe.Pointer(imageData), C.int(size))
	res := d.DetectFromBuffer(data, int(width), int(height), int(stride), float32(confThreshold), float32(iouThreshold))
	return cRecord(res)
}

//export yolo_detect_yuv
func yolo_detect_yuv(
	yData, uData, vData *C.uchar,
	width, height, yRowStride, uvRowStride, uvPixelStride, rotation C.int,
	confThreshold, iouThreshold C.float,
) *C.char {
	mu.Lock()
	d := detector
	mu.Unlock()

	if d == nil {
		return cRecord(result.ErrorResult(result.CodeNotInitialized, "detector not initialized"))
	}

	ySize := int(yRowStride) * int(height)
	halfH := int(height) / 2
	uvSize := int(uvRowStride) * halfH

	// The relative order of the U and V planes in the caller's shared
	// buffer only survives as long as we still hold the original C
	// pointers; C.GoBytes below makes independent Go allocations whose
	// addresses say nothing about the source layout, so the comparison
	// has to happen here, not in ingress.
	vBeforeU := uintptr(unsafe.Pointer(vData)) < uintptr(unsafe.Pointer(uData))

	y := C.GoBytes(unsafe.Pointer(yData), C.int(ySize))
	u := C.GoBytes(unsafe.Pointer(uData), C.int(uvSize))
	v := C.GoBytes(unsafe.Pointer(vData), C.int(uvSize))

	res := d.DetectFromYUV(
		y, u, v,
		int(width), int(height), int(yRowStride), int(uvRowStride), int(uvPixelStride),
		vBeforeU, int(rotation),
		float32(confThreshold), float32(iouThreshold),
	)
	return cRecord(res)
}

//export yolo_set_classes
func yolo_set_classes(classNamesJSON *C.char) {
	mu.Lock()
	d := detector
	mu.Unlock()
	if d == nil {
		return
	}

	var names []string
	if err := json.Unmarshal([]byte(C.GoString(classNamesJSON)), &names); err != nil {
		yolog.S().Warnw("yolo_set_classes: invalid class list", "error", err)
		return
	}
	d.SetClassNames(names)
}

//export yolo_release
func yolo_release() {
	mu.Lock()
	defer mu.Unlock()
	if detector != nil {
		detector.Release()
		detector = nil
	}
}

//export yolo_is_initialized
func yolo_is_initialized() C.int {
	mu.Lock()
	d := detector
	mu.Unlock()
	if d != nil && d.IsInitialized() {
		return 1
	}
	return 0
}

//export yolo_get_version
func yolo_get_version() *C.char {
	return C.CString(version)
}

//export free_string
func free_string(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func cRecord(res result.Result) *C.char {
	rec := result.Marshal(res)
	defer rec.Release()
	return C.CString(rec.String())
}

func main() {}
