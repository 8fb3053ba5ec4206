package formats

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/pkg/math"
)

// MaxLineBytes bounds a single OBJ or MTL line.
const MaxLineBytes = 1 << 20

// Material is one "newmtl" record from an MTL file.
// Texture paths are already resolved against the OBJ directory.
type Material struct {
	Name             string
	SpecularExponent float32 // Ns

	// Shading terms. The importer only stores them.
	Ambient        math.Vec3 // Ka
	Diffuse        math.Vec3 // Kd
	Specular       math.Vec3 // Ks
	Emissive       math.Vec3 // Ke
	OpticalDensity float32   // Ni
	Dissolve       float32   // d
	Illum          int       // illum

	DiffusePath  string // map_Kd
	SpecularPath string // map_Ks
	BumpPath     string // map_Bump
}

func newMaterial(name string) Material {
	return Material{Name: name, Dissolve: 1}
}

// ParseMTL reads an MTL stream. name is used in diagnostics; dir is the
// directory texture paths are resolved against.
//
// Unknown directives are logged and skipped. A malformed Ns value is an error;
// malformed values of the unused colour directives are only logged.
// A trailing record without a name is dropped.
func ParseMTL(r io.Reader, name, dir string, log *zap.Logger) ([]Material, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("file", name), zap.String("type", "MTL"))

	var materials []Material
	current := newMaterial("")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		keyword, rest, ok := SplitDirective(raw)
		if !ok {
			continue
		}

		warnPartial := func(extra int) {
			if extra > 0 {
				log.Warn("partial line handled", zap.Int("line", lineNo), zap.String("text", raw))
			}
		}

		switch keyword {
		case "newmtl":
			if current.Name != "" {
				materials = append(materials, current)
			}
			current = newMaterial(rest)

		case "Ns":
			v, extra, err := ParseFloats(rest, 1)
			if err != nil {
				return nil, At(err, name, lineNo)
			}
			warnPartial(extra)
			current.SpecularExponent = v[0]

		case "Ka", "Kd", "Ks", "Ke":
			c, extra, err := ParseVec3(rest)
			if err != nil {
				log.Warn("ignoring colour", zap.Int("line", lineNo), zap.String("text", raw), zap.Error(err))
				continue
			}
			warnPartial(extra)
			switch keyword {
			case "Ka":
				current.Ambient = c
			case "Kd":
				current.Diffuse = c
			case "Ks":
				current.Specular = c
			case "Ke":
				current.Emissive = c
			}

		case "Ni", "d":
			v, extra, err := ParseFloats(rest, 1)
			if err != nil {
				log.Warn("ignoring value", zap.Int("line", lineNo), zap.String("text", raw), zap.Error(err))
				continue
			}
			warnPartial(extra)
			if keyword == "Ni" {
				current.OpticalDensity = v[0]
			} else {
				current.Dissolve = v[0]
			}

		case "illum":
			n, err := strconv.Atoi(rest)
			if err != nil {
				log.Warn("ignoring illum", zap.Int("line", lineNo), zap.String("text", raw))
				continue
			}
			current.Illum = n

		case "map_Kd":
			current.DiffusePath = ResolvePath(dir, rest)
		case "map_Ks":
			current.SpecularPath = ResolvePath(dir, rest)
		case "map_Bump", "map_bump", "bump":
			current.BumpPath = ResolvePath(dir, rest)

		default:
			log.Warn("line unhandled", zap.Int("line", lineNo), zap.String("text", raw))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	if current.Name != "" {
		materials = append(materials, current)
	}
	return materials, nil
}

// ResolvePath resolves a path found inside an OBJ or MTL file against dir.
// Windows separators are accepted; absolute paths are kept as-is.
func ResolvePath(dir, p string) string {
	if p == "" {
		return ""
	}
	p = filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
