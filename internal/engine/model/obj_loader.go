package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/formats"
)

// LoaderOption configures an OBJ import.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	log *zap.Logger
}

// WithLogger sets the logger used for import diagnostics.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(o *loaderOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// LoadOBJ imports the Wavefront OBJ file at path into m.
//
// Meshes and textures are added to m only if the whole file imports
// successfully; textures uploaded by a failed import are released.
// Texture and material paths are resolved against the directory of path.
func LoadOBJ(path string, m *Model, opts ...LoaderOption) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ReadOBJ(f, path, filepath.Dir(path), m, opts...)
}

// ReadOBJ imports OBJ data from r. name is used in diagnostics and dir is the
// directory that mtllib and texture paths are resolved against.
func ReadOBJ(r io.Reader, name, dir string, m *Model, opts ...LoaderOption) error {
	o := loaderOptions{log: logger.Named("objloader")}
	for _, opt := range opts {
		opt(&o)
	}

	s := &importSession{
		file:      name,
		dir:       dir,
		model:     m,
		base:      o.log,
		log:       o.log.With(zap.String("file", name), zap.String("type", "OBJ")),
		materials: make(map[string]*formats.Material),
	}
	if err := s.run(r); err != nil {
		m.release(s.pending.list())
		return err
	}

	m.commit(s.staged, &s.pending)
	s.log.Info("model loaded",
		zap.Int("meshes", len(s.staged)),
		zap.Int("positions", len(s.pools.positions)),
		zap.Int("materials", len(s.materials)),
	)
	return nil
}

// importSession holds the state of one OBJ import. Nothing in it outlives
// the call to ReadOBJ except the committed meshes and textures.
type importSession struct {
	file  string
	dir   string
	model *Model
	base  *zap.Logger
	log   *zap.Logger

	pools pools
	faces []formats.Face

	materials map[string]*formats.Material
	material  *formats.Material
	textures  []Texture
	pending   textureSet // loaded by this import, not yet in the model
	meshName  string

	staged []*Mesh
	lineNo int
}

func (s *importSession) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), formats.MaxLineBytes)

	for scanner.Scan() {
		s.lineNo++
		if err := s.handleLine(scanner.Text()); err != nil {
			return formats.At(err, s.file, s.lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", s.file, err)
	}

	return s.flush()
}

func (s *importSession) handleLine(raw string) error {
	keyword, rest, ok := formats.SplitDirective(raw)
	if !ok {
		return nil
	}

	switch keyword {
	case "v":
		v, extra, err := formats.ParseVec3(rest)
		if err != nil {
			return err
		}
		s.warnPartial(raw, extra)
		s.pools.positions = append(s.pools.positions, v)

	case "vn":
		v, extra, err := formats.ParseVec3(rest)
		if err != nil {
			return err
		}
		s.warnPartial(raw, extra)
		s.pools.normals = append(s.pools.normals, v)

	case "vt":
		v, extra, err := formats.ParseVec2(rest)
		if err != nil {
			return err
		}
		s.warnPartial(raw, extra)
		s.pools.texCoords = append(s.pools.texCoords, v)

	case "f":
		face, err := formats.ParseFace(rest, s.pools.counts())
		if err != nil {
			return err
		}
		face.Line = s.lineNo
		s.faces = append(s.faces, face)

	case "o":
		if err := s.flush(); err != nil {
			return err
		}
		s.meshName = rest

	case "usemtl":
		if rest == "" {
			return &formats.ParseError{Token: raw, Err: formats.ErrMissingDirective}
		}
		if err := s.flush(); err != nil {
			return err
		}
		s.useMaterial(rest)

	case "mtllib":
		if rest == "" {
			return &formats.ParseError{Token: raw, Err: formats.ErrMissingDirective}
		}
		for _, lib := range strings.Fields(rest) {
			s.loadMaterialLibrary(lib)
		}

	case "s":
		// Smoothing groups are not used; normals come from the file.

	default:
		s.log.Warn("line unhandled", zap.Int("line", s.lineNo), zap.String("text", raw))
	}
	return nil
}

func (s *importSession) warnPartial(raw string, extra int) {
	if extra > 0 {
		s.log.Warn("partial line handled", zap.Int("line", s.lineNo), zap.String("text", raw))
	}
}

// flush turns the pending faces into a staged mesh. Faces are dropped
// without a mesh unless every attribute pool has data.
func (s *importSession) flush() error {
	if len(s.faces) == 0 {
		return nil
	}
	faces := s.faces
	s.faces = nil

	if !s.pools.complete() {
		s.log.Debug("faces dropped, attribute pools incomplete",
			zap.Int("faces", len(faces)),
			zap.Int("positions", len(s.pools.positions)),
			zap.Int("normals", len(s.pools.normals)),
			zap.Int("texcoords", len(s.pools.texCoords)),
		)
		return nil
	}

	mesh, err := buildMesh(s.file, faces, &s.pools)
	if err != nil {
		return err
	}
	mesh.Name = s.meshName
	mesh.Material = s.material
	mesh.Textures = append([]Texture(nil), s.textures...)

	s.staged = append(s.staged, mesh)
	s.log.Debug("mesh built",
		zap.String("name", mesh.Name),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(mesh.Indices)),
		zap.Int("textures", len(mesh.Textures)),
	)
	return nil
}

func (s *importSession) useMaterial(name string) {
	mtl, ok := s.materials[name]
	if !ok {
		s.log.Debug("unknown material", zap.Int("line", s.lineNo), zap.String("material", name))
		s.material = nil
		s.textures = nil
		return
	}
	s.material = mtl
	s.textures = s.model.resolveTextures(mtl, &s.pending)
}

// loadMaterialLibrary parses an MTL file. Failures are logged and leave the
// material table unchanged.
func (s *importSession) loadMaterialLibrary(rel string) {
	path := formats.ResolvePath(s.dir, rel)

	f, err := os.Open(path)
	if err != nil {
		s.log.Warn("failed to open material library", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	mats, err := formats.ParseMTL(f, path, s.dir, s.base)
	if err != nil {
		s.log.Warn("failed to parse material library", zap.String("path", path), zap.Error(err))
		return
	}
	for i := range mats {
		s.materials[mats[i].Name] = &mats[i]
	}
	s.log.Debug("material library loaded", zap.String("path", path), zap.Int("materials", len(mats)))
}
