package decode

import (
	"math"

	"github.com/robert008/flutter-yolo-open-kit/internal/classnames"
	"github.com/robert008/flutter-yolo-open-kit/internal/result"
)

// FamilyA decodes an anchor-free, objectness-bearing output tensor of
// shape (len(grid), features) into candidate detections in
// original-image pixel space. features is the graph's own reported
// row width; numClasses only bounds the class-score argmax and may
// differ from features-5 when a caller has re-labeled the vocabulary
// with SetClassNames after Init. NMS is not applied here.
func FamilyA(
	output []float32,
	grid []GridCell,
	features int,
	numClasses int,
	confThreshold float32,
	scale float32,
	padX, padY int,
	origW, origH int,
	classNames []string,
) []result.Detection {
	var out []result.Detection

	classEnd := 5 + numClasses
	if classEnd > features {
		classEnd = features
	}

	for i, cell := range grid {
		base := i * features
		if base+features > len(output) {
			break
		}
		row := output[base : base+features]

		objectness := row[4]
		if !isFinite(objectness) || objectness < confThreshold {
			continue
		}

		maxClass, maxScore := argmax(row[5:classEnd])
		if !isFinite(maxScore) {
			continue
		}

		confidence := objectness * maxScore
		if confidence < confThreshold {
			continue
		}

		strideF := float32(cell.Stride)
		cx := (row[0] + float32(cell.X)) * strideF
		cy := (row[1] + float32(cell.Y)) * strideF
		w := float32(math.Exp(float64(row[2]))) * strideF
		h := float32(math.Exp(float64(row[3]))) * strideF

		if !isFinite(cx) || !isFinite(cy) || !isFinite(w) || !isFinite(h) {
			continue
		}

		d := result.Detection{
			ClassID:    maxClass,
			ClassName:  classnames.NameFor(classNames, maxClass),
			Confidence: confidence,
			X1:         (cx - w/2 - float32(padX)) / scale,
			Y1:         (cy - h/2 - float32(padY)) / scale,
			X2:         (cx + w/2 - float32(padX)) / scale,
			Y2:         (cy + h/2 - float32(padY)) / scale,
		}
		d.Clamp(float32(origW), float32(origH))
		out = append(out, d)
	}

	return out
}

func argmax(scores []float32) (int, float32) {
	maxIdx := 0
	maxVal := scores[0]
	for i, s := range scores {
		if s > maxVal {
			maxVal = s
			maxIdx = i
		}
	}
	return maxIdx, maxVal
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
