// Package preprocess turns an ingested BGR image into the planar CHW
// float tensor a model expects, per family.
package preprocess

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"

	"github.com/robert008/flutter-yolo-open-kit/internal/family"
	"github.com/robert008/flutter-yolo-open-kit/internal/ingress"
)

// Result is the tensor plus the geometric transform the decoder needs to
// invert it (scale/pad for letterbox families; scale_factor for family C).
type Result struct {
	Tensor []float32 // length 3*inputW*inputH, CHW
	Scale  float32   // letterbox scale (A, B only)
	PadX   int       // letterbox horizontal padding (A, B only)
	PadY   int       // letterbox vertical padding (A, B only)
	// ScaleFactor is (inputH/origH, inputW/origW), surfaced for family C
	// as an auxiliary graph input.
	ScaleFactorH float32
	ScaleFactorW float32
}

const letterboxGray = 114

// Run preprocesses src for the given family and target model input size.
func Run(src *ingress.Image, fam family.Family, inputW, inputH int) Result {
	switch fam {
	case family.C:
		return directResize(src, inputW, inputH)
	default:
		return letterbox(src, fam, inputW, inputH)
	}
}

func letterbox(src *ingress.Image, fam family.Family, inputW, inputH int) Result {
	scaleX := float32(inputW) / float32(src.Width)
	scaleY := float32(inputH) / float32(src.Height)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	newW := roundInt(float32(src.Width) * scale)
	newH := roundInt(float32(src.Height) * scale)
	padX := (inputW - newW) / 2
	padY := (inputH - newH) / 2

	resized := resizeBGR(src, newW, newH)

	canvas := make([]byte, inputW*inputH*3)
	for i := 0; i < len(canvas); i += 3 {
		canvas[i], canvas[i+1], canvas[i+2] = letterboxGray, letterboxGray, letterboxGray
	}
	for y := 0; y < newH; y++ {
		srcRow := y * newW * 3
		dstRow := ((y+padY)*inputW + padX) * 3
		copy(canvas[dstRow:dstRow+newW*3], resized[srcRow:srcRow+newW*3])
	}

	tensor := toCHW(canvas, inputW, inputH, fam)

	return Result{Tensor: tensor, Scale: scale, PadX: padX, PadY: padY}
}

func directResize(src *ingress.Image, inputW, inputH int) Result {
	resized := resizeBGR(src, inputW, inputH)
	tensor := toCHW(resized, inputW, inputH, family.C)
	return Result{
		Tensor:       tensor,
		ScaleFactorH: float32(inputH) / float32(src.Height),
		ScaleFactorW: float32(inputW) / float32(src.Width),
	}
}

// resizeBGR resizes a packed BGR buffer to exactly w x h using linear
// interpolation, returning a new packed BGR buffer.
func resizeBGR(src *ingress.Image, w, h int) []byte {
	img := &bgrImage{src}
	out := resize.Resize(uint(w), uint(h), img, resize.Bilinear)
	b := out.Bounds()
	packed := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bch, _ := out.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			packed[i] = byte(bch >> 8)
			packed[i+1] = byte(g >> 8)
			packed[i+2] = byte(r >> 8)
		}
	}
	return packed
}

// toCHW packs a WxH BGR buffer into a planar CHW tensor with the
// per-family channel order and normalization.
func toCHW(bgr []byte, w, h int, fam family.Family) []float32 {
	channelSize := w * h
	tensor := make([]float32, 3*channelSize)
	for idx := 0; idx < channelSize; idx++ {
		b := float32(bgr[idx*3])
		g := float32(bgr[idx*3+1])
		r := float32(bgr[idx*3+2])

		switch fam {
		case family.A:
			tensor[idx] = b
			tensor[channelSize+idx] = g
			tensor[2*channelSize+idx] = r
		default: // B, C: RGB / 255
			tensor[idx] = r / 255.0
			tensor[channelSize+idx] = g / 255.0
			tensor[2*channelSize+idx] = b / 255.0
		}
	}
	return tensor
}

func roundInt(v float32) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

// bgrImage adapts an ingress.Image (packed BGR) to image.Image so it can
// be handed to github.com/nfnt/resize.
type bgrImage struct {
	im *ingress.Image
}

func (b *bgrImage) ColorModel() color.Model { return color.RGBAModel }
func (b *bgrImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.im.Width, b.im.Height)
}
func (b *bgrImage) At(x, y int) color.Color {
	i := (y*b.im.Width + x) * 3
	return color.RGBA{R: b.im.Pix[i+2], G: b.im.Pix[i+1], B: b.im.Pix[i], A: 255}
}
