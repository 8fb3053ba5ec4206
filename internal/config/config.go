// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Lighting LightingConfig `yaml:"lighting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	Fullscreen   bool `yaml:"fullscreen"`
	VSync        bool `yaml:"vsync"`
	Wireframe    bool `yaml:"wireframe"`
	NormalsDebug bool `yaml:"normals_debug"`
	PostProcess  bool `yaml:"post_process"`
	ShowBounds   bool `yaml:"show_bounds"`
}

// CameraConfig holds the fly camera settings.
type CameraConfig struct {
	Position       [3]float32 `yaml:"position"`
	Speed          float32    `yaml:"speed"`           // units per second
	SensitivityDeg float32    `yaml:"sensitivity_deg"` // degrees per mouse unit per second
	FOVDeg         float32    `yaml:"fov_deg"`
	Near           float32    `yaml:"near"`
	Far            float32    `yaml:"far"`
}

// SceneConfig lists what the viewer loads at startup.
type SceneConfig struct {
	Objects     []ObjectConfig `yaml:"objects"`
	Skybox      []string       `yaml:"skybox"` // +X, -X, +Y, -Y, +Z, -Z
	Screenshots string         `yaml:"screenshots"`
	FitCamera   bool           `yaml:"fit_camera"` // frame the loaded objects on startup
}

// ObjectConfig places one OBJ file in the scene.
// The model matrix is translate, then rotate, then scale.
type ObjectConfig struct {
	Path         string      `yaml:"path"`
	Position     [3]float32  `yaml:"position"`
	RotationDeg  float32     `yaml:"rotation_deg"`
	RotationAxis [3]float32  `yaml:"rotation_axis"`
	Scale        [3]float32  `yaml:"scale"`
	Ring         *RingConfig `yaml:"ring,omitempty"`
}

// ScaleOrDefault returns Scale, or unit scale when it was left unset.
func (o ObjectConfig) ScaleOrDefault() [3]float32 {
	if o.Scale == ([3]float32{}) {
		return [3]float32{1, 1, 1}
	}
	return o.Scale
}

// RingConfig draws an object instanced around the Y axis.
type RingConfig struct {
	PerRing int     `yaml:"per_ring"`
	Rings   int     `yaml:"rings"`
	Gap     float32 `yaml:"gap"`
}

// LightingConfig places the sun and sets up the camera flashlight.
type LightingConfig struct {
	SunLongitudeDeg float32 `yaml:"sun_longitude_deg"`
	SunLatitudeDeg  float32 `yaml:"sun_latitude_deg"`
	Flashlight      bool    `yaml:"flashlight"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Validation errors.
var (
	ErrInvalidSize     = errors.New("window size must be positive")
	ErrInvalidClipping = errors.New("camera near plane must be positive and less than far")
	ErrInvalidFOV      = errors.New("camera fov must be between 1 and 179 degrees")
	ErrMissingPath     = errors.New("scene object has no path")
	ErrSkyboxFaces     = errors.New("skybox needs exactly 6 faces")
	ErrInvalidRing     = errors.New("instance ring needs positive per_ring and rings")
	ErrRotationAxis    = errors.New("rotation needs a non-zero axis")
	ErrSunLatitude     = errors.New("sun latitude must be between -90 and 90 degrees")
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       800,
			Height:      600,
			Fullscreen:  false,
			VSync:       true,
			PostProcess: true,
		},
		Camera: CameraConfig{
			Position:       [3]float32{0, 0, 3},
			Speed:          3,
			SensitivityDeg: 8,
			FOVDeg:         45,
			Near:           0.1,
			Far:            100,
		},
		Scene: SceneConfig{
			Objects: []ObjectConfig{
				{
					Path:  "objects/plane/plane.obj",
					Scale: [3]float32{1, 1, 1},
				},
				{
					Path:  "objects/cube/cube.obj",
					Scale: [3]float32{1, 1, 1},
					Ring:  &RingConfig{PerRing: 100, Rings: 20, Gap: 3},
				},
				{
					Path:         "objects/backpack/backpack.obj",
					Position:     [3]float32{0, -0.13, 0},
					RotationDeg:  90,
					RotationAxis: [3]float32{0, 1, 0},
					Scale:        [3]float32{0.2, 0.2, 0.2},
				},
			},
			Skybox: []string{
				"images/skybox/right.jpg",
				"images/skybox/left.jpg",
				"images/skybox/top.jpg",
				"images/skybox/bottom.jpg",
				"images/skybox/front.jpg",
				"images/skybox/back.jpg",
			},
			Screenshots: "screenshots",
		},
		Lighting: LightingConfig{
			SunLongitudeDeg: 45,
			SunLatitudeDeg:  50,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("%w: near=%g far=%g", ErrInvalidClipping, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOVDeg < 1 || c.Camera.FOVDeg > 179 {
		return fmt.Errorf("%w: %g", ErrInvalidFOV, c.Camera.FOVDeg)
	}
	for i, obj := range c.Scene.Objects {
		if obj.Path == "" {
			return fmt.Errorf("%w: objects[%d]", ErrMissingPath, i)
		}
		if obj.RotationDeg != 0 && obj.RotationAxis == ([3]float32{}) {
			return fmt.Errorf("%w: %s", ErrRotationAxis, obj.Path)
		}
		if r := obj.Ring; r != nil && (r.PerRing <= 0 || r.Rings <= 0) {
			return fmt.Errorf("%w: %s", ErrInvalidRing, obj.Path)
		}
	}
	if c.Lighting.SunLatitudeDeg < -90 || c.Lighting.SunLatitudeDeg > 90 {
		return fmt.Errorf("%w: %g", ErrSunLatitude, c.Lighting.SunLatitudeDeg)
	}
	if n := len(c.Scene.Skybox); n != 0 && n != 6 {
		return fmt.Errorf("%w: got %d", ErrSkyboxFaces, n)
	}
	return nil
}
