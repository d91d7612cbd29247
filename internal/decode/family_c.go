package decode

import (
	"github.com/robert008/flutter-yolo-open-kit/internal/classnames"
	"github.com/robert008/flutter-yolo-open-kit/internal/result"
)

// FamilyC decodes an already-NMS'd in-graph output — rows of
// (class_id, score, x1, y1, x2, y2) already in original-image space,
// because the graph consumed scale_factor = input/original — into final
// detections. No further NMS is applied.
func FamilyC(
	output []float32,
	numDetections int,
	confThreshold float32,
	origW, origH int,
	classNames []string,
) []result.Detection {
	if numDetections <= 0 {
		return nil
	}

	var out []result.Detection
	for i := 0; i < numDetections; i++ {
		base := i * 6
		if base+6 > len(output) {
			break
		}
		row := output[base : base+6]

		classID := int(row[0])
		score := row[1]
		if classID < 0 || !isFinite(score) || score < confThreshold {
			continue
		}

		d := result.Detection{
			ClassID:    classID,
			ClassName:  classnames.NameFor(classNames, classID),
			Confidence: score,
			X1:         row[2],
			Y1:         row[3],
			X2:         row[4],
			Y2:         row[5],
		}
		d.Clamp(float32(origW), float32(origH))
		out = append(out, d)
	}

	return out
}
