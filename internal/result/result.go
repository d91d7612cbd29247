// Package result holds the detector's output types and the textual
// record serializer.
package result

// Detection is a single oriented axis-aligned bounding box with a class
// label and confidence, in original-image pixel coordinates.
type Detection struct {
	ClassID    int     `json:"class_id"`
	ClassName  string  `json:"class_name"`
	Confidence float32 `json:"confidence"`
	X1         float32 `json:"x1"`
	Y1         float32 `json:"y1"`
	X2         float32 `json:"x2"`
	Y2         float32 `json:"y2"`
}

// Clamp restricts the box to [0, width] x [0, height] and fixes up
// ordering so X1<=X2 and Y1<=Y2.
func (d *Detection) Clamp(width, height float32) {
	if d.X1 > d.X2 {
		d.X1, d.X2 = d.X2, d.X1
	}
	if d.Y1 > d.Y2 {
		d.Y1, d.Y2 = d.Y2, d.Y1
	}
	d.X1 = clampf(d.X1, 0, width)
	d.X2 = clampf(d.X2, 0, width)
	d.Y1 = clampf(d.Y1, 0, height)
	d.Y2 = clampf(d.Y2, 0, height)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Result is the full outcome of a detect call.
type Result struct {
	Detections      []Detection `json:"detections"`
	Count           int         `json:"count"`
	InferenceTimeMs int64       `json:"inference_time_ms"`
	ImageWidth      int         `json:"image_width"`
	ImageHeight     int         `json:"image_height"`
	Err             *Error      `json:"error,omitempty"`
}

// NewResult builds a successful Result, deriving Count from detections.
func NewResult(detections []Detection, inferenceTimeMs int64, width, height int) Result {
	if detections == nil {
		detections = []Detection{}
	}
	return Result{
		Detections:      detections,
		Count:           len(detections),
		InferenceTimeMs: inferenceTimeMs,
		ImageWidth:      width,
		ImageHeight:     height,
	}
}
