package ingress

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// FromPath reads and decodes an on-disk image to BGR. On any failure it
// returns an error the caller should report as IMAGE_LOAD_FAILED.
func FromPath(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return fromGoImage(img), nil
}
