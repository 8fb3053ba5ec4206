package viewer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/debug"
	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/math"
)

// ErrEmptyScene is returned when objects were configured but none loaded.
var ErrEmptyScene = errors.New("no scene object could be loaded")

// SceneObject is a loaded model and where it sits in the world.
type SceneObject struct {
	Name      string
	Model     *model.Model
	Transform math.Mat4
}

// ObjectTransform builds the model matrix of an object: translate, then
// rotate, then scale.
func ObjectTransform(o config.ObjectConfig) math.Mat4 {
	m := math.Translate(math.Identity4(), vec3(o.Position))
	if o.RotationDeg != 0 {
		m = math.Rotate(m, math.Radians(o.RotationDeg), vec3(o.RotationAxis).Normalize())
	}
	return math.Scale(m, vec3(o.ScaleOrDefault()))
}

// LoadScene imports every configured object. An object that fails to import
// is logged and skipped; the scene fails only if nothing loads. A nil logger
// uses the global "scene" logger.
func LoadScene(objects []config.ObjectConfig, decoder model.ImageDecoder, uploader model.TextureUploader, log *zap.Logger) ([]SceneObject, error) {
	if log == nil {
		log = logger.Named("scene")
	}
	var (
		out     []SceneObject
		lastErr error
	)
	for _, o := range objects {
		m := model.NewModel(decoder, uploader, log.Named("model"))
		if err := model.LoadOBJ(o.Path, m, model.WithLogger(log.Named("objloader"))); err != nil {
			log.Error("object skipped", zap.String("path", o.Path), zap.Error(err))
			lastErr = err
			continue
		}
		if r := o.Ring; r != nil {
			m.Instances = model.RingInstances(r.PerRing, r.Rings, r.Gap)
		}

		out = append(out, SceneObject{
			Name:      objectName(o.Path),
			Model:     m,
			Transform: ObjectTransform(o),
		})
	}

	if len(objects) > 0 && len(out) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmptyScene, lastErr)
	}
	return out, nil
}

// SceneBounds returns the world-space box around all objects and instances.
func SceneBounds(objects []SceneObject) (model.Bounds, bool) {
	var (
		total model.Bounds
		found bool
	)
	for _, obj := range objects {
		world, ok := obj.WorldBounds()
		if !ok {
			continue
		}
		if !found {
			total, found = world, true
			continue
		}
		total = total.Union(world)
	}
	return total, found
}

// WorldBounds returns the object's box, instances included, in world space.
func (o SceneObject) WorldBounds() (model.Bounds, bool) {
	b, ok := o.Model.InstancedBounds()
	if !ok {
		return model.Bounds{}, false
	}
	lo, hi := debug.TransformedBounds(o.Transform, b.Min, b.Max)
	return model.Bounds{Min: lo, Max: hi}, true
}

func objectName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
