// Package family defines the tagged ModelFamily variant shared by the
// preprocessor, the runtime adapter, and the decoder.
package family

// Family identifies which of the three supported model output
// conventions a loaded graph uses.
type Family int

const (
	// A is anchor-free with explicit objectness and grid decoding
	// (historically "YOLOX"-shaped): output (N, 4+1+classes).
	A Family = iota
	// B is anchor-free without objectness ("YOLOv8"-shaped): output
	// (4+classes, N) or (N, 4+classes).
	B
	// C is already decoded with in-graph NMS ("PP-YOLOE"-shaped):
	// output (N, 6) plus an auxiliary scale_factor input.
	C
)

func (f Family) String() string {
	switch f {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	default:
		return "unknown"
	}
}
