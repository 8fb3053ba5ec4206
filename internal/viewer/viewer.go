// Package viewer implements the interactive scene viewer: it loads the
// configured objects, runs the frame loop and maps input to the camera and
// render toggles.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/debug"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/engine/lighting"
	"github.com/Faultbox/objviewer/internal/engine/renderer"
	"github.com/Faultbox/objviewer/internal/engine/texture"
	"github.com/Faultbox/objviewer/internal/engine/window"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/math"
)

// Title is the window title prefix.
const Title = "objviewer"

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.State
	camera   *camera.FlyCamera

	objects  []SceneObject
	drawList []renderer.Object

	toggles    Toggles
	sun        lighting.DirLight
	flashlight lighting.SpotLight
	shots      *debug.ScreenshotCapture
}

// New creates the window and renderer and loads the scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("objects", len(cfg.Scene.Objects)),
	)

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		FOVDeg: cfg.Camera.FOVDeg,
		Near:   cfg.Camera.Near,
		Far:    cfg.Camera.Far,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.loadScene(); err != nil {
		v.Close()
		return nil, err
	}

	v.input = input.NewState()
	v.camera = camera.NewFlyCamera()
	v.camera.SetPosition(vec3(cfg.Camera.Position))
	v.camera.Speed = cfg.Camera.Speed
	v.camera.AngleChange = math.Radians(cfg.Camera.SensitivityDeg)
	if cfg.Scene.FitCamera {
		if b, ok := SceneBounds(v.objects); ok {
			v.camera.FitToBounds(b.Min, b.Max, math.Radians(cfg.Camera.FOVDeg))
			v.log.Debug("camera fitted", zap.Any("position", v.camera.Position()))
		}
	}

	v.toggles = Toggles{
		Wireframe:   cfg.Graphics.Wireframe,
		Normals:     cfg.Graphics.NormalsDebug,
		PostProcess: cfg.Graphics.PostProcess,
		Bounds:      cfg.Graphics.ShowBounds,
		Flashlight:  cfg.Lighting.Flashlight,
	}
	v.sun = lighting.NewSun(cfg.Lighting.SunLongitudeDeg, cfg.Lighting.SunLatitudeDeg)
	v.flashlight = lighting.NewFlashlight()
	v.shots = debug.NewScreenshotCapture(cfg.Scene.Screenshots, Title)

	v.log.Info("viewer initialized successfully")
	return v, nil
}

func (v *Viewer) loadScene() error {
	v.renderer.LoadSkybox(v.cfg.Scene.Skybox)

	objects, err := LoadScene(v.cfg.Scene.Objects,
		texture.FileDecoder{FlipV: true}, texture.GLUploader{}, logger.Log)
	if err != nil {
		return err
	}
	v.objects = objects

	for _, obj := range objects {
		v.drawList = append(v.drawList, renderer.Object{
			Model:     renderer.UploadModel(obj.Name, obj.Model),
			Transform: obj.Transform,
		})
		v.log.Info("object ready",
			zap.String("name", obj.Name),
			zap.Int("meshes", len(obj.Model.Meshes())),
			zap.Int("triangles", obj.Model.TriangleCount()),
			zap.Int("instances", len(obj.Model.Instances)),
		)
	}
	return nil
}

// Run starts the main loop and returns when the window closes or Esc is
// pressed.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		v.input.BeginFrame()
		v.window.PollEvents(v.input)
		if v.input.Quit() {
			v.running = false
			break
		}
		if w, h, ok := v.input.Resized(); ok {
			v.renderer.Resize(w, h)
		}

		// 2. Update camera and toggles
		v.update(dt)

		// 3. Render
		v.renderer.Draw(v.frame())
		if v.input.Pressed(input.KeyScreenshot) {
			v.screenshot()
		}

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			v.window.SetTitle(fmt.Sprintf("%s | %.0f fps", Title, fps))
			v.log.Debug("fps", zap.Float64("fps", fps), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) update(dt float32) {
	steer(v.camera, v.input, dt)
	v.toggles.Update(v.input)

	if v.input.Pressed(input.KeyFocus) {
		if i := focus(v.camera, v.objects, math.Radians(v.cfg.Camera.FOVDeg)); i >= 0 {
			v.log.Info("camera focused", zap.String("object", v.objects[i].Name))
		} else {
			v.log.Debug("nothing to focus")
		}
	}

	v.flashlight.Enabled = v.toggles.Flashlight
	v.flashlight.Follow(v.camera.Position(), v.camera.Front())
}

func (v *Viewer) frame() renderer.Frame {
	return renderer.Frame{
		View:        v.camera.ViewMatrix(),
		ViewPos:     v.camera.Position(),
		Sun:         v.sun,
		Flashlight:  v.flashlight,
		Objects:     v.drawList,
		Wireframe:   v.toggles.Wireframe,
		Normals:     v.toggles.Normals,
		PostProcess: v.toggles.PostProcess,
		Bounds:      v.toggles.Bounds,
	}
}

func (v *Viewer) screenshot() {
	path, err := v.shots.Capture(v.renderer.Capture())
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources, then the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	for _, obj := range v.drawList {
		obj.Model.Delete()
	}
	for _, obj := range v.objects {
		for _, tex := range obj.Model.Textures() {
			texture.Delete(tex.ID)
		}
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
