package decode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert008/flutter-yolo-open-kit/internal/classnames"
)

func TestBuildGridEnumerationOrder(t *testing.T) {
	cells := BuildGrid(640)

	// 80*80 + 40*40 + 20*20 = 6400+1600+400 = 8400
	require.Len(t, cells, 8400)

	// Stride-major: the first 6400 cells are all stride 8, row-major
	// within that block (gy outer, gx inner).
	require.Equal(t, 8, cells[0].Stride)
	require.Equal(t, 0, cells[0].X)
	require.Equal(t, 0, cells[0].Y)
	require.Equal(t, 1, cells[1].X)
	require.Equal(t, 0, cells[1].Y)
	require.Equal(t, 0, cells[80].X)
	require.Equal(t, 1, cells[80].Y)

	// First cell of the stride-16 block starts right after the 6400
	// stride-8 cells.
	require.Equal(t, 16, cells[6400].Stride)
	require.Equal(t, 0, cells[6400].X)
	require.Equal(t, 0, cells[6400].Y)

	require.Equal(t, 32, cells[8000].Stride)
}

func TestFamilyADecodesAndInvertsLetterbox(t *testing.T) {
	grid := []GridCell{{X: 10, Y: 10, Stride: 8}}
	numClasses := 3

	// cx,cy in cell-relative units so that cx=(row0+gridX)*stride = 100,
	// cy = 100 too: row0=row1=(100/8)-10 = 2.5.
	row := []float32{2.5, 2.5, float32(math.Log(50.0 / 8.0)), float32(math.Log(50.0 / 8.0)), 0.9, 0.1, 0.8, 0.05}

	dets := FamilyA(row, grid, 5+numClasses, numClasses, 0.5, 1.0, 0, 0, 1000, 1000, classnames.Default)
	require.Len(t, dets, 1)
	d := dets[0]
	assert.Equal(t, 1, d.ClassID)
	assert.InDelta(t, 0.9*0.8, d.Confidence, 1e-4)
	assert.InDelta(t, 75, d.X1, 1)
	assert.InDelta(t, 125, d.X2, 1)
}

func TestFamilyADropsBelowObjectnessThreshold(t *testing.T) {
	grid := []GridCell{{X: 0, Y: 0, Stride: 8}}
	row := []float32{0, 0, 0, 0, 0.1, 0.9, 0.8}
	dets := FamilyA(row, grid, 7, 2, 0.5, 1.0, 0, 0, 100, 100, classnames.Default)
	assert.Empty(t, dets)
}

func TestFamilyADropsNaNObjectness(t *testing.T) {
	grid := []GridCell{{X: 0, Y: 0, Stride: 8}}
	row := []float32{0, 0, 0, 0, float32(math.NaN()), 0.9, 0.8}
	dets := FamilyA(row, grid, 7, 2, 0.0, 1.0, 0, 0, 100, 100, classnames.Default)
	assert.Empty(t, dets)
}

func TestFamilyBRowMajorLayout(t *testing.T) {
	// 7 boxes, 2 classes => features = 6; d1=7 (boxes), d2=6 (features).
	// FamilyB takes the larger dim as the box count, so the box count must
	// exceed the feature count; the five all-zero boxes fall below the
	// threshold and are dropped.
	output := []float32{
		100, 100, 40, 40, 0.9, 0.1,
		200, 200, 20, 20, 0.2, 0.95,
		0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0,
	}
	dets := FamilyB(output, 7, 6, 0.5, 1.0, 0, 0, 1000, 1000, classnames.Default)
	require.Len(t, dets, 2)
	assert.Equal(t, 0, dets[0].ClassID)
	assert.InDelta(t, 80, dets[0].X1, 1e-3)
	assert.InDelta(t, 120, dets[0].X2, 1e-3)
	assert.Equal(t, 1, dets[1].ClassID)
}

func TestFamilyBTransposedLayout(t *testing.T) {
	// features=6, boxes=7, stored as (features, boxes): d1=6, d2=7.
	// box0 = (100,100,40,40, class scores 0.9,0.1)
	// box1 = (200,200,20,20, class scores 0.2,0.95)
	// boxes 2..6 are all zero and fall below the threshold.
	output := []float32{
		100, 200, 0, 0, 0, 0, 0, // cx
		100, 200, 0, 0, 0, 0, 0, // cy
		40, 20, 0, 0, 0, 0, 0, // w
		40, 20, 0, 0, 0, 0, 0, // h
		0.9, 0.2, 0, 0, 0, 0, 0, // class0 score
		0.1, 0.95, 0, 0, 0, 0, 0, // class1 score
	}
	dets := FamilyB(output, 6, 7, 0.5, 1.0, 0, 0, 1000, 1000, classnames.Default)
	require.Len(t, dets, 2)
	assert.Equal(t, 0, dets[0].ClassID)
	assert.Equal(t, 1, dets[1].ClassID)
}

func TestFamilyCDropsLowScoreAndNegativeClass(t *testing.T) {
	output := []float32{
		0, 0.9, 10, 10, 50, 50, // kept
		-1, 0.95, 10, 10, 50, 50, // class_id < 0, dropped
		2, 0.1, 10, 10, 50, 50, // score < threshold, dropped
	}
	dets := FamilyC(output, 3, 0.5, 1000, 1000, classnames.Default)
	require.Len(t, dets, 1)
	assert.Equal(t, 0, dets[0].ClassID)
}

func TestFamilyCDegenerateCountIsEmpty(t *testing.T) {
	dets := FamilyC(nil, 0, 0.5, 100, 100, classnames.Default)
	assert.Empty(t, dets)

	dets = FamilyC(nil, -3, 0.5, 100, 100, classnames.Default)
	assert.Empty(t, dets)
}

func TestFamilyAClampsToImageBounds(t *testing.T) {
	grid := []GridCell{{X: 0, Y: 0, Stride: 8}}
	// cx=cy=0 (row0=row1=-0), huge box so corners fall outside bounds.
	row := []float32{0, 0, float32(math.Log(200)), float32(math.Log(200)), 0.9, 0.9}
	dets := FamilyA(row, grid, 6, 1, 0.5, 1.0, 0, 0, 50, 50, classnames.Default)
	require.Len(t, dets, 1)
	d := dets[0]
	assert.GreaterOrEqual(t, d.X1, float32(0))
	assert.LessOrEqual(t, d.X2, float32(50))
	assert.GreaterOrEqual(t, d.Y1, float32(0))
	assert.LessOrEqual(t, d.Y2, float32(50))
}
