package yolo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert008/flutter-yolo-open-kit/internal/family"
)

func TestIdentifyFamilyAFromObjectnessOutput(t *testing.T) {
	info := &sessionInfo{
		inputs:  []tensorInfo{{name: "images", shape: []int64{1, 3, 640, 640}}},
		outputs: []tensorInfo{{name: "output0", shape: []int64{1, 8400, 85}}},
	}
	ident, err := identify(info)
	require.NoError(t, err)
	assert.Equal(t, family.A, ident.fam)
	assert.Equal(t, 80, ident.numClasses)
	assert.Equal(t, 640, ident.inputWidth)
	assert.Equal(t, 640, ident.inputHeight)
}

func TestIdentifyFamilyBFromNoObjectnessOutput(t *testing.T) {
	info := &sessionInfo{
		inputs:  []tensorInfo{{name: "images", shape: []int64{1, 3, 640, 640}}},
		outputs: []tensorInfo{{name: "output0", shape: []int64{1, 84, 8400}}},
	}
	ident, err := identify(info)
	require.NoError(t, err)
	assert.Equal(t, family.B, ident.fam)
	assert.Equal(t, 80, ident.numClasses)
}

func TestIdentifyFamilyCFromScaleFactorInput(t *testing.T) {
	info := &sessionInfo{
		inputs: []tensorInfo{
			{name: "image", shape: []int64{1, 3, 640, 640}},
			{name: "scale_factor", shape: []int64{1, 2}},
		},
		outputs: []tensorInfo{{name: "output", shape: []int64{-1, 6}}},
	}
	ident, err := identify(info)
	require.NoError(t, err)
	assert.Equal(t, family.C, ident.fam)
}

func TestIdentifyFamilyCFromDecodedOutputShapeAlone(t *testing.T) {
	info := &sessionInfo{
		inputs:  []tensorInfo{{name: "image", shape: []int64{1, 3, 320, 640}}},
		outputs: []tensorInfo{{name: "output", shape: []int64{-1, 6}}},
	}
	ident, err := identify(info)
	require.NoError(t, err)
	assert.Equal(t, family.C, ident.fam)
}

func TestIdentifyGenericFallbackByFeatureCount(t *testing.T) {
	info := &sessionInfo{
		inputs:  []tensorInfo{{name: "images", shape: []int64{1, 3, 640, 640}}},
		outputs: []tensorInfo{{name: "output0", shape: []int64{1, 8400, 9}}},
	}
	ident, err := identify(info)
	require.NoError(t, err)
	assert.Equal(t, family.A, ident.fam)
	assert.Equal(t, 4, ident.numClasses)
}

func TestIdentifyRejectsNonSquareFamilyAInput(t *testing.T) {
	info := &sessionInfo{
		inputs:  []tensorInfo{{name: "images", shape: []int64{1, 3, 480, 640}}},
		outputs: []tensorInfo{{name: "output0", shape: []int64{1, 8400, 85}}},
	}
	_, err := identify(info)
	require.Error(t, err)
}
