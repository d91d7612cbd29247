package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSuccess(t *testing.T) {
	res := NewResult([]Detection{
		{ClassID: 2, ClassName: "car", Confidence: 0.91234, X1: 1.005, Y1: 2, X2: 10.5, Y2: 20},
	}, 42, 640, 480)

	rec := Marshal(res)
	s := rec.String()

	assert.Contains(t, s, `"class_id":2`)
	assert.Contains(t, s, `"class_name":"car"`)
	assert.Contains(t, s, `"confidence":0.9123`)
	assert.Contains(t, s, `"count":1`)
	assert.Contains(t, s, `"inference_time_ms":42`)
	assert.Contains(t, s, `"image_width":640`)
	assert.Contains(t, s, `"image_height":480`)
}

func TestMarshalEmptyDetections(t *testing.T) {
	res := NewResult(nil, 5, 100, 100)
	rec := Marshal(res)
	require.Equal(t, 0, res.Count)
	assert.Contains(t, rec.String(), `"detections":[]`)
}

func TestMarshalError(t *testing.T) {
	res := ErrorResult(CodeNotInitialized, "detector not initialized")
	rec := Marshal(res)
	s := rec.String()
	assert.Contains(t, s, `"error":"detector not initialized"`)
	assert.Contains(t, s, `"code":"NOT_INITIALIZED"`)
}

func TestDetectionClampFixesOrder(t *testing.T) {
	d := Detection{X1: 50, X2: 10, Y1: 30, Y2: 5}
	d.Clamp(100, 100)
	assert.LessOrEqual(t, d.X1, d.X2)
	assert.LessOrEqual(t, d.Y1, d.Y2)
}

func TestDetectionClampBounds(t *testing.T) {
	d := Detection{X1: -5, X2: 200, Y1: -5, Y2: 200}
	d.Clamp(100, 80)
	assert.Equal(t, float32(0), d.X1)
	assert.Equal(t, float32(100), d.X2)
	assert.Equal(t, float32(0), d.Y1)
	assert.Equal(t, float32(80), d.Y2)
}
