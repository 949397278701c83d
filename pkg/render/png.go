package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG encodes the image to a PNG file at path.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
