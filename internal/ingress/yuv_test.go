package ingress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromYUVPlanarProducesExpectedDims(t *testing.T) {
	const w, h = 8, 8
	y := make([]byte, w*h)
	for i := range y {
		y[i] = 128
	}
	u := make([]byte, (w/2)*(h/2))
	v := make([]byte, (w/2)*(h/2))
	for i := range u {
		u[i] = 128
		v[i] = 128
	}

	img, err := FromYUV(y, u, v, w, h, w, w/2, 1, false, 0)
	require.NoError(t, err)
	require.Equal(t, w, img.Width)
	require.Equal(t, h, img.Height)
	// Mid-gray Y with neutral chroma should produce a near-gray BGR pixel.
	i := img.at(0, 0)
	require.InDelta(t, 128, int(img.Pix[i]), 2)
	require.InDelta(t, 128, int(img.Pix[i+1]), 2)
	require.InDelta(t, 128, int(img.Pix[i+2]), 2)
}

func TestFromYUVRotation90SwapsDims(t *testing.T) {
	const w, h = 8, 4
	y := make([]byte, w*h)
	u := make([]byte, (w/2)*(h/2))
	v := make([]byte, (w/2)*(h/2))

	img, err := FromYUV(y, u, v, w, h, w, w/2, 1, false, 90)
	require.NoError(t, err)
	require.Equal(t, h, img.Width)
	require.Equal(t, w, img.Height)
}

func TestFromYUVSemiPlanarNV21Order(t *testing.T) {
	const w, h = 4, 4
	y := make([]byte, w*h)
	// A single shared buffer laid out V,U,V,U,... (already NV21). The
	// caller is responsible for knowing this from the source buffer and
	// passing vBeforeU=true; assembleChroma no longer infers it from
	// slice addresses.
	vu := make([]byte, (w/2)*(h/2)*2)
	for i := 0; i < len(vu); i += 2 {
		vu[i] = 200   // V
		vu[i+1] = 100 // U
	}
	vFull := vu
	uFull := vu[1:]

	img, err := FromYUV(y, uFull, vFull, w, h, w, w, 2, true, 0)
	require.NoError(t, err)
	require.Equal(t, w, img.Width)
	require.Equal(t, h, img.Height)
}

func TestFromBGRAIgnoresAlpha(t *testing.T) {
	const w, h = 2, 2
	stride := w * 4
	data := make([]byte, stride*h)
	for i := 0; i < len(data); i += 4 {
		data[i] = 10   // B
		data[i+1] = 20 // G
		data[i+2] = 30 // R
		data[i+3] = 77 // A, must be ignored
	}
	img, err := FromBGRA(data, w, h, stride)
	require.NoError(t, err)
	require.Equal(t, byte(10), img.Pix[0])
	require.Equal(t, byte(20), img.Pix[1])
	require.Equal(t, byte(30), img.Pix[2])
}

func TestFromBGRARejectsShortStride(t *testing.T) {
	_, err := FromBGRA(make([]byte, 4), 2, 2, 4)
	require.Error(t, err)
}
