package model

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/formats"
	"github.com/Faultbox/objviewer/pkg/math"
)

// Model is an ordered list of meshes plus the textures they reference.
//
// A Model has a single writer: it is filled by LoadOBJ on the thread that
// owns the GL context and must not be mutated concurrently.
type Model struct {
	meshes   []*Mesh
	textures textureSet

	decoder  ImageDecoder
	uploader TextureUploader
	log      *zap.Logger

	// Instances holds per-instance offsets for instanced drawing.
	// Empty means the model is drawn once.
	Instances []math.Vec3
}

// NewModel creates an empty model. A nil decoder or uploader disables texture
// loading; a nil logger uses the global "model" logger.
func NewModel(decoder ImageDecoder, uploader TextureUploader, log *zap.Logger) *Model {
	if log == nil {
		log = logger.Named("model")
	}
	return &Model{
		decoder:  decoder,
		uploader: uploader,
		log:      log,
	}
}

// Meshes returns the meshes in import order.
func (m *Model) Meshes() []*Mesh {
	return m.meshes
}

// Textures returns every cached texture in load order.
func (m *Model) Textures() []Texture {
	return m.textures.list()
}

// Bounds returns the union of all mesh bounds. ok is false for an empty model.
func (m *Model) Bounds() (b Bounds, ok bool) {
	for i, mesh := range m.meshes {
		if i == 0 {
			b = mesh.Bounds
			continue
		}
		b = b.Union(mesh.Bounds)
	}
	return b, len(m.meshes) > 0
}

// InstancedBounds returns Bounds grown to cover every instance offset.
// Without instances it equals Bounds.
func (m *Model) InstancedBounds() (Bounds, bool) {
	b, ok := m.Bounds()
	if !ok || len(m.Instances) == 0 {
		return b, ok
	}

	lo, hi := m.Instances[0], m.Instances[0]
	for _, o := range m.Instances[1:] {
		lo = lo.Min(o)
		hi = hi.Max(o)
	}
	return Bounds{Min: b.Min.Add(lo), Max: b.Max.Add(hi)}, true
}

// VertexCount returns the total number of vertices over all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.meshes {
		n += len(mesh.Vertices)
	}
	return n
}

// TriangleCount returns the total number of triangles over all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.meshes {
		n += len(mesh.Indices) / 3
	}
	return n
}

// LoadTextures resolves the diffuse and specular maps of mtl to textures.
//
// Each path is decoded and uploaded at most once per Model. Empty paths are
// skipped. A path that fails to decode or upload is cached with ID 0 so it is
// not retried.
func (m *Model) LoadTextures(mtl *formats.Material) []Texture {
	return m.resolveTextures(mtl, &m.textures)
}

// resolveTextures looks each map up in the model cache, then in pending.
// Misses are loaded and added to pending.
func (m *Model) resolveTextures(mtl *formats.Material, pending *textureSet) []Texture {
	if mtl == nil {
		return nil
	}

	var out []Texture
	for _, slot := range []struct {
		path string
		typ  string
	}{
		{mtl.DiffusePath, TextureDiffuse},
		{mtl.SpecularPath, TextureSpecular},
	} {
		if slot.path == "" {
			continue
		}
		tex, ok := m.textures.get(slot.path)
		if !ok {
			tex, ok = pending.get(slot.path)
		}
		if !ok {
			tex = m.load(slot.path, slot.typ)
			pending.add(tex)
		}
		tex.Type = slot.typ
		out = append(out, tex)
	}
	return out
}

func (m *Model) load(path, typ string) Texture {
	tex := Texture{Type: typ, Path: path}
	if m.decoder != nil && m.uploader != nil {
		tex.ID = m.upload(path)
	}
	return tex
}

func (m *Model) upload(path string) uint32 {
	img, err := m.decoder.Decode(path)
	if err != nil {
		m.log.Warn("failed to load texture", zap.String("path", path), zap.Error(err))
		return 0
	}
	id, err := m.uploader.Upload(img)
	if err != nil {
		m.log.Warn("failed to upload texture", zap.String("path", path), zap.Error(err))
		return 0
	}
	m.log.Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Uint32("id", id),
	)
	return id
}

// release frees the GPU handles of textures that were never committed.
// Uploaders that cannot free textures are left alone.
func (m *Model) release(textures []Texture) {
	r, ok := m.uploader.(TextureReleaser)
	if !ok {
		return
	}
	for _, tex := range textures {
		if tex.ID != 0 {
			r.Release(tex.ID)
		}
	}
}

// commit appends staged meshes and textures once an import has succeeded.
func (m *Model) commit(meshes []*Mesh, textures *textureSet) {
	m.meshes = append(m.meshes, meshes...)
	for _, tex := range textures.list() {
		m.textures.add(tex)
	}
}

// textureSet is a texture cache keyed by resolved path, kept in load order.
type textureSet struct {
	byPath map[string]Texture
	order  []string
}

func (t *textureSet) get(path string) (Texture, bool) {
	tex, ok := t.byPath[path]
	return tex, ok
}

func (t *textureSet) add(tex Texture) {
	if t.byPath == nil {
		t.byPath = make(map[string]Texture)
	}
	if _, ok := t.byPath[tex.Path]; !ok {
		t.order = append(t.order, tex.Path)
	}
	t.byPath[tex.Path] = tex
}

func (t *textureSet) list() []Texture {
	out := make([]Texture, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, t.byPath[p])
	}
	return out
}
