package decode

import (
	"github.com/robert008/flutter-yolo-open-kit/internal/classnames"
	"github.com/robert008/flutter-yolo-open-kit/internal/result"
)

// FamilyB decodes an anchor-free, objectness-free output tensor — shape
// (numBoxes, 4+numClasses) or its transpose (4+numClasses, numBoxes) — into
// candidate detections in original-image pixel space. NMS is not applied
// here.
func FamilyB(
	output []float32,
	d1, d2 int,
	confThreshold float32,
	scale float32,
	padX, padY int,
	origW, origH int,
	classNames []string,
) []result.Detection {
	numBoxes := d1
	features := d2
	transposed := false
	if d2 > d1 {
		numBoxes = d2
		features = d1
		transposed = true
	}
	numClasses := features - 4
	if numClasses <= 0 || numBoxes <= 0 {
		return nil
	}

	at := func(box, feat int) float32 {
		if transposed {
			return output[feat*numBoxes+box]
		}
		return output[box*features+feat]
	}

	var out []result.Detection
	scores := make([]float32, numClasses)

	for i := 0; i < numBoxes; i++ {
		for c := 0; c < numClasses; c++ {
			scores[c] = at(i, 4+c)
		}
		maxClass, maxScore := argmax(scores)
		if !isFinite(maxScore) || maxScore < confThreshold {
			continue
		}

		cx := at(i, 0)
		cy := at(i, 1)
		w := at(i, 2)
		h := at(i, 3)
		if !isFinite(cx) || !isFinite(cy) || !isFinite(w) || !isFinite(h) {
			continue
		}

		d := result.Detection{
			ClassID:    maxClass,
			ClassName:  classnames.NameFor(classNames, maxClass),
			Confidence: maxScore,
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
