package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// tgaHeader builds a header for a 24-bit true-color image.
func tgaHeader(imageType byte, w, h int, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = 24
	hdr[17] = descriptor
	return hdr
}

func bgr(c color.RGBA) []byte {
	return []byte{c.B, c.G, c.R}
}

// checker returns a 2x2 image: top row red, green; bottom row blue, white.
func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, green)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 1, white)
	return img
}

func assertChecker(t *testing.T, img *image.RGBA) {
	t.Helper()
	want := map[image.Point]color.RGBA{
		{0, 0}: red, {1, 0}: green, {0, 1}: blue, {1, 1}: white,
	}
	for p, c := range want {
		if got := img.RGBAAt(p.X, p.Y); got != c {
			t.Errorf("pixel %v = %v, want %v", p, got, c)
		}
	}
}

func TestDecodeTGA_Uncompressed(t *testing.T) {
	// Bottom-up storage: bottom row first.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 0)
	data = append(data, bgr(blue)...)
	data = append(data, bgr(white)...)
	data = append(data, bgr(red)...)
	data = append(data, bgr(green)...)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	assertChecker(t, img)
}

func TestDecodeTGA_TopToBottom(t *testing.T) {
	data := tgaHeader(TGATypeUncompressed, 2, 2, 0x20)
	data = append(data, bgr(red)...)
	data = append(data, bgr(green)...)
	data = append(data, bgr(blue)...)
	data = append(data, bgr(white)...)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	assertChecker(t, img)
}

func TestDecodeTGA_RLE(t *testing.T) {
	data := tgaHeader(TGATypeRLE, 3, 1, 0x20)
	// Run of two red pixels, then one raw blue pixel.
	data = append(data, 0x81)
	data = append(data, bgr(red)...)
	data = append(data, 0x00)
	data = append(data, bgr(blue)...)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	for x, want := range []color.RGBA{red, red, blue} {
		if got := img.RGBAAt(x, 0); got != want {
			t.Errorf("pixel %d = %v, want %v", x, got, want)
		}
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	colorMapped := tgaHeader(TGATypeUncompressed, 1, 1, 0)
	colorMapped[1] = 1

	grey := tgaHeader(3, 1, 1, 0)

	deep := tgaHeader(TGATypeUncompressed, 1, 1, 0)
	deep[16] = 16

	tests := []struct {
		name      string
		data      []byte
		truncated bool
	}{
		{"short header", []byte{0, 0, 2}, false},
		{"color mapped", colorMapped, false},
		{"greyscale", grey, false},
		{"16 bit", deep, false},
		{"missing pixels", tgaHeader(TGATypeUncompressed, 2, 2, 0), true},
		{"rle cut short", append(tgaHeader(TGATypeRLE, 4, 1, 0), 0x83), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrTGATruncated); got != tt.truncated {
				t.Errorf("errors.Is(err, ErrTGATruncated) = %v, err = %v", got, err)
			}
		})
	}
}

func TestFileDecoder(t *testing.T) {
	dir := t.TempDir()

	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, checker()); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, checker()); err != nil {
		t.Fatal(err)
	}

	tga := tgaHeader(TGATypeUncompressed, 2, 2, 0x20)
	for _, c := range []color.RGBA{red, green, blue, white} {
		tga = append(tga, bgr(c)...)
	}

	files := map[string][]byte{
		"checker.png": pngBuf.Bytes(),
		"checker.bmp": bmpBuf.Bytes(),
		"checker.TGA": tga,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}

	for name := range files {
		t.Run(name, func(t *testing.T) {
			img, err := FileDecoder{}.Decode(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			assertChecker(t, img)

			flipped, err := FileDecoder{FlipV: true}.Decode(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("Decode flipped: %v", err)
			}
			if got := flipped.RGBAAt(0, 0); got != blue {
				t.Errorf("flipped top-left = %v, want %v", got, blue)
			}
			if got := flipped.RGBAAt(1, 1); got != green {
				t.Errorf("flipped bottom-right = %v, want %v", got, green)
			}
		})
	}
}

func TestFileDecoder_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := (FileDecoder{}).Decode(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	if _, err := (FileDecoder{}).Decode(garbage); !errors.Is(err, image.ErrFormat) {
		t.Errorf("garbage error = %v, want image.ErrFormat", err)
	}
}
