// Package model holds imported geometry (meshes, textures, instances) and the
// Wavefront OBJ importer that builds it.
package model

import (
	"image"

	"github.com/Faultbox/objviewer/pkg/formats"
	"github.com/Faultbox/objviewer/pkg/math"
)

// Texture semantic tags, matching the sampler names in the scene shader.
const (
	TextureDiffuse  = "texture_diffuse"
	TextureSpecular = "texture_specular"
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
// The layout is uploaded to the GPU as-is.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Texture is a GPU texture handle tagged with how the shader samples it.
// Path identifies the source image and is the dedup key within a Model.
type Texture struct {
	ID   uint32
	Type string
	Path string
}

// Mesh holds one flushed group of faces, ready for GPU upload.
// It is not modified after the importer creates it.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Textures []Texture
	Material *formats.Material // nil when no usemtl matched
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Union returns the smallest box containing b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

// ImageDecoder loads an image file into RGBA pixels.
type ImageDecoder interface {
	Decode(path string) (*image.RGBA, error)
}

// TextureUploader turns decoded pixels into a GPU texture handle.
type TextureUploader interface {
	Upload(img *image.RGBA) (uint32, error)
}

// TextureReleaser is implemented by uploaders that can free a texture.
// Textures uploaded by a failed import are released through it.
type TextureReleaser interface {
	Release(id uint32)
}
