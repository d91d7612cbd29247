package ingress

import "fmt"

// FromBGRA wraps a read-only BGRA buffer (pointer/length semantics: data
// is borrowed, never mutated, never retained past this call) and
// converts it to BGR, honoring stride when it differs from width*4.
func FromBGRA(data []byte, width, height, stride int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if stride < width*4 {
		return nil, fmt.Errorf("stride %d smaller than width*4 (%d)", stride, width*4)
	}
	if len(data) < stride*(height-1)+width*4 {
		return nil, fmt.Errorf("buffer too small for %dx%d at stride %d", width, height, stride)
	}

	out := newImage(width, height)
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			p := x * 4
			o := out.at(x, y)
			out.Pix[o] = row[p]     // B
			out.Pix[o+1] = row[p+1] // G
			out.Pix[o+2] = row[p+2] // R, alpha at p+3 ignored
		}
	}
	return out, nil
}
