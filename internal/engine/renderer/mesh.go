package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/pkg/formats"
	"github.com/Faultbox/objviewer/pkg/math"
)

// Vertex attribute locations shared by the scene and normals shaders.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexCoord = 2
	attribOffset   = 3
)

// GPUModel is a model uploaded to vertex buffers.
type GPUModel struct {
	Name      string
	meshes    []*gpuMesh
	instances int32
	bounds    model.Bounds
	hasBounds bool

	instanceVBO uint32
}

type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	bindings   []samplerBinding
	material   materialParams
}

// UploadModel creates vertex arrays for every mesh in m. Instance offsets,
// if any, are shared by all meshes through one buffer.
func UploadModel(name string, m *model.Model) *GPUModel {
	g := &GPUModel{Name: name}
	g.bounds, g.hasBounds = m.InstancedBounds()

	if len(m.Instances) > 0 {
		g.instances = int32(len(m.Instances))
		gl.GenBuffers(1, &g.instanceVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, g.instanceVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Instances)*int(unsafe.Sizeof(math.Vec3{})), unsafe.Pointer(&m.Instances[0]), gl.STATIC_DRAW)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	}

	for _, mesh := range m.Meshes() {
		if len(mesh.Indices) == 0 {
			continue
		}
		g.meshes = append(g.meshes, g.uploadMesh(mesh))
	}
	return g
}

func (g *GPUModel) uploadMesh(mesh *model.Mesh) *gpuMesh {
	gm := &gpuMesh{
		indexCount: int32(len(mesh.Indices)),
		bindings:   samplerBindings(mesh.Textures),
		material:   newMaterialParams(mesh.Material),
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.GenBuffers(1, &gm.vbo)
	gl.GenBuffers(1, &gm.ebo)

	gl.BindVertexArray(gm.vao)

	stride := int32(unsafe.Sizeof(model.Vertex{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(model.Vertex{}.Position))))
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(model.Vertex{}.Normal))))
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointer(attribTexCoord, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(model.Vertex{}.TexCoord))))
	gl.EnableVertexAttribArray(attribTexCoord)

	if g.instanceVBO != 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, g.instanceVBO)
		gl.VertexAttribPointer(attribOffset, 3, gl.FLOAT, false, int32(unsafe.Sizeof(math.Vec3{})), nil)
		gl.EnableVertexAttribArray(attribOffset)
		gl.VertexAttribDivisor(attribOffset, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	return gm
}

// Bounds returns the model-space box covering every mesh and instance.
func (g *GPUModel) Bounds() (model.Bounds, bool) {
	return g.bounds, g.hasBounds
}

// draw issues one draw call per mesh. Textures and material uniforms are set
// only when withMaterial is true.
func (g *GPUModel) draw(prog *shader.Program, withMaterial bool) {
	for _, gm := range g.meshes {
		if withMaterial {
			gm.apply(prog)
		}
		gl.BindVertexArray(gm.vao)
		if g.instances > 0 {
			gl.DrawElementsInstanced(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil, g.instances)
		} else {
			gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
		}
	}
	gl.BindVertexArray(0)
}

func (gm *gpuMesh) apply(prog *shader.Program) {
	hasDiffuse, hasSpecular := false, false
	for _, b := range gm.bindings {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(b.unit))
		gl.BindTexture(gl.TEXTURE_2D, b.id)
		prog.SetInt(b.uniform, b.unit)
		switch b.typ {
		case model.TextureDiffuse:
			hasDiffuse = true
		case model.TextureSpecular:
			hasSpecular = true
		}
	}
	gl.ActiveTexture(gl.TEXTURE0)

	prog.SetBool("material.hasDiffuseMap", hasDiffuse)
	prog.SetBool("material.hasSpecularMap", hasSpecular)
	prog.SetVec3("material.diffuse", gm.material.diffuse)
	prog.SetVec3("material.specular", gm.material.specular)
	prog.SetVec3("material.emissive", gm.material.emissive)
	prog.SetFloat("material.specularExponent", gm.material.specularExponent)
	prog.SetFloat("material.dissolve", gm.material.dissolve)
}

// Delete releases all buffers. Textures belong to the model.Model.
func (g *GPUModel) Delete() {
	for _, gm := range g.meshes {
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
	}
	g.meshes = nil
	if g.instanceVBO != 0 {
		gl.DeleteBuffers(1, &g.instanceVBO)
		g.instanceVBO = 0
	}
}

// samplerBinding assigns one texture to a texture unit and sampler uniform.
type samplerBinding struct {
	unit    int32
	uniform string
	typ     string
	id      uint32
}

// samplerBindings numbers textures per type in order, so the first diffuse
// texture binds to material.texture_diffuse1. Textures that failed to load
// (ID 0) are skipped and do not consume a number.
func samplerBindings(textures []model.Texture) []samplerBinding {
	var bindings []samplerBinding
	counts := make(map[string]int)
	for _, tex := range textures {
		if tex.ID == 0 {
			continue
		}
		counts[tex.Type]++
		bindings = append(bindings, samplerBinding{
			unit:    int32(len(bindings)),
			uniform: fmt.Sprintf("material.%s%d", tex.Type, counts[tex.Type]),
			typ:     tex.Type,
			id:      tex.ID,
		})
	}
	return bindings
}

type materialParams struct {
	diffuse          math.Vec3
	specular         math.Vec3
	emissive         math.Vec3
	specularExponent float32
	dissolve         float32
}

// newMaterialParams falls back to a plain grey surface for meshes without a
// material.
func newMaterialParams(mtl *formats.Material) materialParams {
	if mtl == nil {
		return materialParams{
			diffuse:          math.Splat3(0.8),
			specular:         math.Splat3(0.2),
			specularExponent: 32,
			dissolve:         1,
		}
	}
	return materialParams{
		diffuse:          mtl.Diffuse,
		specular:         mtl.Specular,
		emissive:         mtl.Emissive,
		specularExponent: mtl.SpecularExponent,
		dissolve:         mtl.Dissolve,
	}
}
