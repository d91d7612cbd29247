package ingress

import (
	"fmt"
)

// FromYUV assembles a tri-planar (or semi-planar) YUV 4:2:0 camera frame
// into NV21, converts it to BGR, and rotates it clockwise by the
// requested number of degrees. The returned image's Width/Height are the
// post-rotation dimensions.
//
// vBeforeU only matters when uvPixelStride == 2 (semi-planar chroma):
// it tells assembleChroma whether the two interleaved planes are already
// in NV21 (V,U) order or need swapping from NV12 (U,V) order. The caller
// must determine this from the original buffer/pointer layout before the
// planes reach here — once u and v have been copied into independent Go
// slices (as the cgo boundary does), their relative addresses no longer
// say anything about the source layout.
func FromYUV(y, u, v []byte, width, height, yRowStride, uvRowStride, uvPixelStride int, vBeforeU bool, rotation int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if uvPixelStride != 1 && uvPixelStride != 2 {
		return nil, fmt.Errorf("invalid uv_pixel_stride %d", uvPixelStride)
	}

	nv21 := make([]byte, width*height+(width*height)/2)

	copyYPlane(nv21[:width*height], y, width, height, yRowStride)
	assembleChroma(nv21[width*height:], u, v, width, height, uvRowStride, uvPixelStride, vBeforeU)

	bgr := nv21ToBGR(nv21, width, height)
	bgr = rotateClockwise(bgr, normalizeRotation(rotation))
	return bgr, nil
}

func normalizeRotation(rotation int) int {
	switch rotation {
	case 90, 180, 270:
		return rotation
	default:
		return 0
	}
}

func copyYPlane(dst, y []byte, width, height, yRowStride int) {
	if yRowStride == width {
		copy(dst, y[:width*height])
		return
	}
	for row := 0; row < height; row++ {
		copy(dst[row*width:row*width+width], y[row*yRowStride:row*yRowStride+width])
	}
}

// assembleChroma writes the NV21 (VU-interleaved, half-resolution) chroma
// plane into dst, handling both fully-planar and semi-planar inputs.
// vBeforeU (only consulted when uvPixelStride == 2) says whether u and v
// are views into a shared buffer already laid out V-then-U (NV21) rather
// than U-then-V (NV12); see FromYUV's doc comment for why this must be
// passed in rather than inferred from u/v's Go slice addresses.
func assembleChroma(dst, u, v []byte, width, height, uvRowStride, uvPixelStride int, vBeforeU bool) {
	halfW, halfH := width/2, height/2

	if uvPixelStride == 1 {
		for row := 0; row < halfH; row++ {
			for col := 0; col < halfW; col++ {
				src := row*uvRowStride + col
				dstOff := row*width + 2*col
				dst[dstOff] = v[src]
				dst[dstOff+1] = u[src]
			}
		}
		return
	}

	// uvPixelStride == 2: semi-planar, interleaved in a shared buffer.
	if vBeforeU {
		// Already NV21 (VU order): copy rows honoring uv_row_stride.
		if uvRowStride == width {
			copy(dst, v[:width*halfH])
		} else {
			for row := 0; row < halfH; row++ {
				copy(dst[row*width:row*width+width], v[row*uvRowStride:row*uvRowStride+width])
			}
		}
		return
	}

	// NV12 order (UV): swap pairs into VU order.
	for row := 0; row < halfH; row++ {
		for col := 0; col < halfW; col++ {
			src := row*uvRowStride + col*2
			dstOff := row*width + col*2
			dst[dstOff] = v[src]
			dst[dstOff+1] = u[src]
		}
	}
}

// nv21ToBGR converts an NV21 buffer (Y plane + VU-interleaved
// half-resolution chroma) to packed BGR using BT.601 coefficients.
func nv21ToBGR(nv21 []byte, width, height int) *Image {
	out := newImage(width, height)
	chromaOff := width * height
	for gy := 0; gy < height; gy++ {
		uvRow := (gy / 2) * width
		for gx := 0; gx < width; gx++ {
			yy := int(nv21[gy*width+gx])
			uvCol := (gx / 2) * 2
			vv := int(nv21[chromaOff+uvRow+uvCol]) - 128
			uu := int(nv21[chromaOff+uvRow+uvCol+1]) - 128

			r := yy + (91881*vv)/65536
			g := yy - (22554*uu)/65536 - (46802*vv)/65536
			bl := yy + (116130*uu)/65536

			i := out.at(gx, gy)
			out.Pix[i] = clampByte(bl)
			out.Pix[i+1] = clampByte(g)
			out.Pix[i+2] = clampByte(r)
		}
	}
	return out
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
