package yolo

import (
	"time"

	"github.com/robert008/flutter-yolo-open-kit/internal/decode"
	"github.com/robert008/flutter-yolo-open-kit/internal/family"
	"github.com/robert008/flutter-yolo-open-kit/internal/ingress"
	"github.com/robert008/flutter-yolo-open-kit/internal/nms"
	"github.com/robert008/flutter-yolo-open-kit/internal/preprocess"
	"github.com/robert008/flutter-yolo-open-kit/internal/result"
	"github.com/robert008/flutter-yolo-open-kit/internal/yolog"
)

// DetectFromPath decodes the image at path and runs detection.
func (d *DetectorState) DetectFromPath(path string, confThreshold, iouThreshold float32) result.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return result.ErrorResult(result.CodeNotInitialized, "detector not initialized")
	}

	img, err := ingress.FromPath(path)
	if err != nil {
		yolog.S().Warnw("image load failed", "path", path, "error", err)
		return result.ErrorResult(result.CodeImageLoadFailed, err.Error())
	}

	return d.runLocked(img, confThreshold, iouThreshold)
}

// DetectFromBuffer runs detection on a borrowed BGRA buffer.
func (d *DetectorState) DetectFromBuffer(data []byte, width, height, stride int, confThreshold, iouThreshold float32) result.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return result.ErrorResult(result.CodeNotInitialized, "detector not initialized")
	}

	img, err := ingress.FromBGRA(data, width, height, stride)
	if err != nil {
		yolog.S().Warnw("buffer preprocess failed", "error", err)
		return result.ErrorResult(result.CodePreprocessError, err.Error())
	}

	return d.runLocked(img, confThreshold, iouThreshold)
}

// DetectFromYUV runs detection on a tri-planar YUV camera frame. Output
// dimensions are post-rotation. vBeforeU only matters for semi-planar
// input (uvPixelStride == 2) and must reflect the true layout of the
// source buffer the caller read u and v from; see ingress.FromYUV.
func (d *DetectorState) DetectFromYUV(
	y, u, v []byte,
	width, height, yRowStride, uvRowStride, uvPixelStride int,
	vBeforeU bool,
	rotation int,
	confThreshold, iouThreshold float32,
) result.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return result.ErrorResult(result.CodeNotInitialized, "detector not initialized")
	}

	img, err := ingress.FromYUV(y, u, v, width, height, yRowStride, uvRowStride, uvPixelStride, vBeforeU, rotation)
	if err != nil {
		yolog.S().Warnw("yuv preprocess failed", "error", err)
		return result.ErrorResult(result.CodePreprocessError, err.Error())
	}

	return d.runLocked(img, confThreshold, iouThreshold)
}

// runLocked runs preprocessing, inference, decode and NMS against an
// already-ingested image. Caller must hold d.mu.
func (d *DetectorState) runLocked(img *ingress.Image, confThreshold, iouThreshold float32) result.Result {
	start := time.Now()

	pre := preprocess.Run(img, d.fam, d.inputWidth, d.inputHeight)

	info := &sessionInfo{inputNames: d.inputNames, outputNames: d.outputNames}
	output, shape, err := d.runtime.run(info, pre.Tensor, d.inputWidth, d.inputHeight, pre.ScaleFactorH, pre.ScaleFactorW)
	if err != nil {
		yolog.S().Errorw("inference failed", "error", err)
		return result.ErrorResult(result.CodeRuntimeError, err.Error())
	}

	detections := d.decodeLocked(output, shape, img.Width, img.Height, confThreshold, pre)

	if d.fam != family.C {
		detections = nms.Run(detections, iouThreshold)
	}

	elapsed := time.Since(start).Milliseconds()
	return result.NewResult(detections, elapsed, img.Width, img.Height)
}

func (d *DetectorState) decodeLocked(output []float32, shape []int64, origW, origH int, confThreshold float32, pre preprocess.Result) []result.Detection {
	switch d.fam {
	case family.A:
		_, features := shapeDims(shape)
		if features <= 0 {
			features = 5 + d.numClasses
		}
		return decode.FamilyA(output, d.grid, features, d.numClasses, confThreshold, pre.Scale, pre.PadX, pre.PadY, origW, origH, d.classNames)
	case family.B:
		d1, d2 := shapeDims(shape)
		return decode.FamilyB(output, d1, d2, confThreshold, pre.Scale, pre.PadX, pre.PadY, origW, origH, d.classNames)
	case family.C:
		numDetections := numRows(shape)
		return decode.FamilyC(output, numDetections, confThreshold, origW, origH, d.classNames)
	default:
		return nil
	}
}

// shapeDims returns the last two dimensions of a reported output shape.
func shapeDims(shape []int64) (int, int) {
	if len(shape) < 2 {
		return 0, 0
	}
	d1 := int(shape[len(shape)-2])
	d2 := int(shape[len(shape)-1])
	return d1, d2
}

// numRows returns the number of detection rows a family C output
// reports, treating a non-positive count as "no detections".
func numRows(shape []int64) int {
	if len(shape) < 2 {
		return 0
	}
	d1 := int(shape[len(shape)-2])
	d2 := int(shape[len(shape)-1])
	if d2 == 6 {
		return d1
	}
	return d2
}
