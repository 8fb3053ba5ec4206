package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// FileDecoder reads image files from disk.
//
// Texture coordinates in OBJ files have their origin at the bottom-left, so
// model textures are decoded with FlipV set. Cubemap faces are not flipped.
type FileDecoder struct {
	FlipV bool
}

// Decode reads and decodes the image at path into RGBA.
func (d FileDecoder) Decode(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	img, err := DecodeBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	if d.FlipV {
		img = transform.FlipV(img)
	}
	return img, nil
}

// DecodeBytes decodes an image. ext selects the TGA decoder, which has no
// magic number; every other format is detected from its header.
func DecodeBytes(data []byte, ext string) (*image.RGBA, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return clone.AsRGBA(img), nil
}
