package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// ErrEmptyImage is returned when an image has no pixels to upload.
var ErrEmptyImage = errors.New("empty image")

// GLUploader creates mipmapped, repeating 2D textures on the current context.
type GLUploader struct{}

// Upload uploads img and returns the new texture ID.
func (GLUploader) Upload(img *image.RGBA) (uint32, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0, ErrEmptyImage
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &texID)
		return 0, fmt.Errorf("glTexImage2D: error 0x%x", code)
	}
	return texID, nil
}

// Release deletes a texture created by Upload.
func (GLUploader) Release(id uint32) {
	Delete(id)
}

// CubemapFaces is the number of faces in a cubemap, ordered +X, -X, +Y, -Y, +Z, -Z.
const CubemapFaces = 6

// LoadCubemap decodes the six faces and uploads them as a cubemap.
// A face that fails to decode is logged and left empty. An error is returned
// only when no face could be loaded.
func LoadCubemap(faces []string, log *zap.Logger) (uint32, error) {
	if len(faces) != CubemapFaces {
		return 0, fmt.Errorf("cubemap needs %d faces, got %d", CubemapFaces, len(faces))
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	decoder := FileDecoder{}
	loaded := 0
	for i, path := range faces {
		img, err := decoder.Decode(path)
		if err != nil {
			log.Warn("cubemap face failed to load", zap.String("path", path), zap.Error(err))
			continue
		}
		w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		loaded++
	}

	if loaded == 0 {
		gl.DeleteTextures(1, &texID)
		return 0, errors.New("no cubemap face could be loaded")
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	return texID, nil
}

// Delete releases textures. Zero IDs are skipped.
func Delete(ids ...uint32) {
	for _, id := range ids {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}
