// Package renderer draws the viewer scene with OpenGL.
//
// A frame renders lit meshes, the skybox and debug overlays into an offscreen
// framebuffer, then draws that buffer to the window through a screen quad.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/debug"
	"github.com/Faultbox/objviewer/internal/engine/framebuffer"
	"github.com/Faultbox/objviewer/internal/engine/lighting"
	"github.com/Faultbox/objviewer/internal/engine/renderer/shaders"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/engine/texture"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/math"
)

// matricesBinding is the uniform buffer binding point of the Matrices block.
const matricesBinding = 0

// normalLength is the length of debug normal lines in view-space units.
const normalLength = 0.05

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOVDeg float32
	Near   float32
	Far    float32
}

// Object is one model placed in the world.
type Object struct {
	Model     *GPUModel
	Transform math.Mat4
}

// Frame is everything needed to draw one frame.
type Frame struct {
	View        math.Mat4
	ViewPos     math.Vec3
	Sun         lighting.DirLight
	Flashlight  lighting.SpotLight
	Objects     []Object
	Wireframe   bool
	Normals     bool
	PostProcess bool
	Bounds      bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	scene   *shader.Program
	screen  *shader.Program
	skybox  *shader.Program
	normals *shader.Program
	lines   *shader.Program

	matricesUBO uint32
	projection  math.Mat4

	target *framebuffer.Framebuffer

	quadVAO, quadVBO     uint32
	skyboxVAO, skyboxVBO uint32
	linesVAO, linesVBO   uint32
	cubemap              uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if err := r.createPrograms(); err != nil {
		r.Close()
		return nil, err
	}

	r.createMatricesUBO()
	r.createQuad()
	r.createSkybox()
	r.createLines()

	var err error
	r.target, err = framebuffer.New(int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		r.Close()
		return nil, err
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) createPrograms() error {
	var err error
	if r.scene, err = shader.New("scene", shaders.SceneVertexShader, shaders.SceneFragmentShader, ""); err != nil {
		return err
	}
	if r.screen, err = shader.New("screen", shaders.ScreenVertexShader, shaders.ScreenFragmentShader, ""); err != nil {
		return err
	}
	if r.skybox, err = shader.New("skybox", shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader, ""); err != nil {
		return err
	}
	if r.normals, err = shader.New("normals", shaders.NormalsVertexShader, shaders.NormalsFragmentShader, shaders.NormalsGeometryShader); err != nil {
		return err
	}
	if r.lines, err = shader.New("lines", shaders.LinesVertexShader, shaders.LinesFragmentShader, ""); err != nil {
		return err
	}

	for _, p := range []*shader.Program{r.scene, r.skybox, r.normals, r.lines} {
		if err := p.BindUniformBlock("Matrices", matricesBinding); err != nil {
			return err
		}
	}
	return nil
}

// createMatricesUBO allocates the projection and view block shared by all
// world-space programs.
func (r *Renderer) createMatricesUBO() {
	size := 2 * int(unsafe.Sizeof(math.Mat4{}))
	gl.GenBuffers(1, &r.matricesUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.matricesUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferRange(gl.UNIFORM_BUFFER, matricesBinding, r.matricesUBO, 0, size)
}

func (r *Renderer) setMatrix(slot int, m math.Mat4) {
	size := int(unsafe.Sizeof(m))
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.matricesUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, slot*size, size, unsafe.Pointer(m.Ptr()))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (r *Renderer) createQuad() {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, unsafe.Pointer(&quadVertices[0]), gl.STATIC_DRAW)

	// Position (x, y) + texcoord (u, v)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (r *Renderer) createSkybox() {
	gl.GenVertexArrays(1, &r.skyboxVAO)
	gl.GenBuffers(1, &r.skyboxVBO)
	gl.BindVertexArray(r.skyboxVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.skyboxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVertices)*4, unsafe.Pointer(&skyboxVertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (r *Renderer) createLines() {
	gl.GenVertexArrays(1, &r.linesVAO)
	gl.GenBuffers(1, &r.linesVBO)
	gl.BindVertexArray(r.linesVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.linesVBO)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// LoadSkybox loads the six cubemap faces. Missing faces are logged and the
// viewer runs without a skybox if none load.
func (r *Renderer) LoadSkybox(faces []string) {
	if len(faces) == 0 {
		return
	}
	id, err := texture.LoadCubemap(faces, r.log)
	if err != nil {
		r.log.Warn("skybox disabled", zap.Error(err))
		return
	}
	texture.Delete(r.cubemap)
	r.cubemap = id
}

// Resize handles window resize and rebuilds the projection.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = max(width, 1)
	r.config.Height = max(height, 1)

	r.projection = Projection(r.config)
	r.setMatrix(0, r.projection)
	r.target.Resize(int32(r.config.Width), int32(r.config.Height))

	r.log.Debug("renderer resized",
		zap.Int("width", r.config.Width),
		zap.Int("height", r.config.Height),
	)
}

// Projection builds the perspective matrix for a viewport.
func Projection(cfg Config) math.Mat4 {
	aspect := float32(max(cfg.Width, 1)) / float32(max(cfg.Height, 1))
	return math.Perspective(math.Radians(cfg.FOVDeg), aspect, cfg.Near, cfg.Far)
}

// Draw renders a frame to the window's back buffer.
func (r *Renderer) Draw(f Frame) {
	r.setMatrix(1, f.View)

	r.target.Bind()
	gl.Enable(gl.DEPTH_TEST)
	r.target.Clear(0.1, 0.1, 0.1, 1.0)

	if f.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	r.drawScene(f)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	if f.Normals {
		r.drawNormals(f)
	}
	if f.Bounds {
		r.drawBounds(f.Objects)
	}
	r.drawSkybox(f.View)

	// Screen pass
	r.target.Unbind()
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.screen.Use()
	r.screen.SetInt("screenTexture", 0)
	r.screen.SetBool("postProcess", f.PostProcess)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.target.ColorTexture())
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawScene(f Frame) {
	r.scene.Use()
	r.scene.SetVec3("viewPos", f.ViewPos)
	f.Sun.Apply(r.scene, "dirLight")
	f.Flashlight.Apply(r.scene, "spotLight")

	for _, obj := range f.Objects {
		r.scene.SetMat4("model", obj.Transform)
		r.scene.SetMat3("normalMatrix", math.NormalMatrix(obj.Transform))
		obj.Model.draw(r.scene, true)
	}
}

// drawNormals overlays vertex normals. Normals are drawn in view space, so
// the normal matrix includes the view transform.
func (r *Renderer) drawNormals(f Frame) {
	r.normals.Use()
	r.normals.SetFloat("magnitude", normalLength)
	for _, obj := range f.Objects {
		r.normals.SetMat4("model", obj.Transform)
		r.normals.SetMat3("normalMatrix", math.NormalMatrix(f.View.Mul(obj.Transform)))
		obj.Model.draw(r.normals, false)
	}
}

func (r *Renderer) drawBounds(objects []Object) {
	var verts []float32
	for _, obj := range objects {
		b, ok := obj.Model.Bounds()
		if !ok {
			continue
		}
		lo, hi := debug.TransformedBounds(obj.Transform, b.Min, b.Max)
		verts = append(verts, debug.BBoxWireframeVertices(lo, hi)...)
	}
	if len(verts) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.linesVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.lines.Use()
	r.lines.SetVec3("color", math.Vec3{X: 0, Y: 1, Z: 0.4})
	gl.BindVertexArray(r.linesVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))
	gl.BindVertexArray(0)
}

// drawSkybox draws last with depth test LEQUAL so it only fills empty pixels.
func (r *Renderer) drawSkybox(view math.Mat4) {
	if r.cubemap == 0 {
		return
	}

	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	r.skybox.Use()
	r.skybox.SetMat4("skyboxView", math.Mat4FromMat3(math.Mat3FromMat4(view)))
	r.skybox.SetInt("skybox", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, r.cubemap)
	gl.BindVertexArray(r.skyboxVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(skyboxVertices)/3))
	gl.BindVertexArray(0)

	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
}

// Capture reads the window's back buffer after Draw, before the swap.
func (r *Renderer) Capture() *image.RGBA {
	return framebuffer.ReadImage(0, int32(r.config.Width), int32(r.config.Height))
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")

	for _, p := range []*shader.Program{r.scene, r.screen, r.skybox, r.normals, r.lines} {
		if p != nil {
			p.Delete()
		}
	}
	if r.target != nil {
		r.target.Destroy()
	}
	for _, vao := range []*uint32{&r.quadVAO, &r.skyboxVAO, &r.linesVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, buf := range []*uint32{&r.quadVBO, &r.skyboxVBO, &r.linesVBO, &r.matricesUBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
		}
	}
	texture.Delete(r.cubemap)
}
