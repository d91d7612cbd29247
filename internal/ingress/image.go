// Package ingress converts the three input shapes accepted by the
// detector (on-disk image, packed BGRA buffer, tri-planar YUV camera
// frame) into a contiguous 3-channel BGR buffer in original orientation.
package ingress

import "image"

// Image is a tightly packed 3-channel BGR buffer: Pix has length
// Width*Height*3, row-major, no padding between rows.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

func newImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]byte, width*height*3)}
}

func (im *Image) at(x, y int) int {
	return (y*im.Width + x) * 3
}

// rotateClockwise rotates a BGR image by the given number of degrees
// clockwise. Values outside {0,90,180,270} are treated as 0.
func rotateClockwise(src *Image, degrees int) *Image {
	switch degrees {
	case 90:
		dst := newImage(src.Height, src.Width)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				dx := src.Height - 1 - y
				dy := x
				copyPixel(dst, dx, dy, src, x, y)
			}
		}
		return dst
	case 180:
		dst := newImage(src.Width, src.Height)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				dx := src.Width - 1 - x
				dy := src.Height - 1 - y
				copyPixel(dst, dx, dy, src, x, y)
			}
		}
		return dst
	case 270:
		dst := newImage(src.Height, src.Width)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				dx := y
				dy := src.Width - 1 - x
				copyPixel(dst, dx, dy, src, x, y)
			}
		}
		return dst
	default:
		return src
	}
}

func copyPixel(dst *Image, dx, dy int, src *Image, sx, sy int) {
	d := dst.at(dx, dy)
	s := src.at(sx, sy)
	dst.Pix[d], dst.Pix[d+1], dst.Pix[d+2] = src.Pix[s], src.Pix[s+1], src.Pix[s+2]
}

// fromGoImage converts a decoded stdlib image.Image into a packed BGR
// Image, used by the path-based ingress.
func fromGoImage(img image.Image) *Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := newImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bch, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := out.at(x, y)
			out.Pix[i] = byte(bch >> 8)
			out.Pix[i+1] = byte(g >> 8)
			out.Pix[i+2] = byte(r >> 8)
		}
	}
	return out
}
