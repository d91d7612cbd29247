// Package nms applies per-class greedy non-maximum suppression to a list
// of candidate detections. It is applied only for families A and B;
// family C's output is already deduplicated in-graph.
package nms

import (
	"sort"

	"github.com/robert008/flutter-yolo-open-kit/internal/result"
)

// Run sorts candidates by descending confidence and suppresses, for each
// surviving candidate, every later same-class candidate whose IoU exceeds
// iouThreshold. Survivors are returned in walk (sorted) order. Ties in
// confidence are broken by original index to keep the ordering stable.
func Run(candidates []result.Detection, iouThreshold float32) []result.Detection {
	if len(candidates) == 0 {
		return nil
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return candidates[order[a]].Confidence > candidates[order[b]].Confidence
	})

	suppressed := make([]bool, len(candidates))
	var survivors []result.Detection

	for i, oi := range order {
		if suppressed[oi] {
			continue
		}
		c := candidates[oi]
		survivors = append(survivors, c)

		for _, oj := range order[i+1:] {
			if suppressed[oj] {
				continue
			}
			other := candidates[oj]
			if other.ClassID != c.ClassID {
				continue
			}
			if IoU(c, other) > iouThreshold {
				suppressed[oj] = true
			}
		}
	}

	return survivors
}

// IoU computes the intersection-over-union of two axis-aligned boxes,
// returning 0 when the union area is zero.
func IoU(a, b result.Detection) float32 {
	ix1 := maxf(a.X1, b.X1)
	iy1 := maxf(a.Y1, b.Y1)
	ix2 := minf(a.X2, b.X2)
	iy2 := minf(a.Y2, b.Y2)

	iw := maxf(0, ix2-ix1)
	ih := maxf(0, iy2-iy1)
	inter := iw * ih

	areaA := maxf(0, a.X2-a.X1) * maxf(0, a.Y2-a.Y1)
	areaB := maxf(0, b.X2-b.X1) * maxf(0, b.Y2-b.Y1)
	union := areaA + areaB - inter

	if union <= 0 {
		return 0
	}
	return inter / union
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
