package yolo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert008/flutter-yolo-open-kit/internal/result"
)

func TestNewDetectorStartsUninitialized(t *testing.T) {
	d := New()
	assert.False(t, d.IsInitialized())
}

func TestDetectFromPathBeforeInitReturnsNotInitialized(t *testing.T) {
	d := New()
	res := d.DetectFromPath("/tmp/any.jpg", 0.5, 0.5)
	require.NotNil(t, res.Err)
	assert.Equal(t, result.CodeNotInitialized, res.Err.Code)
	assert.Empty(t, res.Detections)
	assert.Equal(t, 0, res.Count)
}

func TestDetectFromBufferBeforeInitReturnsNotInitialized(t *testing.T) {
	d := New()
	res := d.DetectFromBuffer(make([]byte, 16), 2, 2, 8, 0.5, 0.5)
	require.NotNil(t, res.Err)
	assert.Equal(t, result.CodeNotInitialized, res.Err.Code)
}

func TestDetectFromYUVBeforeInitReturnsNotInitialized(t *testing.T) {
	d := New()
	res := d.DetectFromYUV(nil, nil, nil, 4, 4, 4, 4, 1, false, 0, 0.5, 0.5)
	require.NotNil(t, res.Err)
	assert.Equal(t, result.CodeNotInitialized, res.Err.Code)
}

func TestReleaseIsIdempotent(t *testing.T) {
	d := New()
	d.Release()
	d.Release()
	assert.False(t, d.IsInitialized())
}

func TestSetClassNamesIgnoresEmpty(t *testing.T) {
	d := New()
	original := d.classNames
	d.SetClassNames(nil)
	assert.Equal(t, original, d.classNames)
}

func TestSetClassNamesReplacesVocabulary(t *testing.T) {
	d := New()
	d.SetClassNames([]string{"cat", "dog"})
	assert.Equal(t, []string{"cat", "dog"}, d.classNames)
	assert.Equal(t, 2, d.numClasses)
}
