package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objviewer/pkg/formats"
	"github.com/Faultbox/objviewer/pkg/math"
)

// ErrMissingPosition is returned for a face corner without a position index.
var ErrMissingPosition = errors.New("face corner has no position")

// IndexError reports a face index that does not address its attribute pool.
// The same type is returned for indices rejected while parsing a face line.
type IndexError = formats.IndexError

// pools holds the vertex attributes read so far. OBJ indices address them
// globally, so they live for the whole file.
type pools struct {
	positions []math.Vec3
	normals   []math.Vec3
	texCoords []math.Vec2
}

func (p *pools) counts() formats.PoolCounts {
	return formats.PoolCounts{
		Positions: len(p.positions),
		TexCoords: len(p.texCoords),
		Normals:   len(p.normals),
	}
}

func (p *pools) complete() bool {
	return len(p.positions) > 0 && len(p.normals) > 0 && len(p.texCoords) > 0
}

// buildMesh assembles the vertices of faces into a new mesh.
// Polygons are fan triangulated; indices start at 0.
func buildMesh(file string, faces []formats.Face, p *pools) (*Mesh, error) {
	mesh := &Mesh{}

	for _, face := range faces {
		base := uint32(len(mesh.Vertices))
		for _, c := range face.Corners {
			v, err := p.vertex(file, face.Line, c)
			if err != nil {
				return nil, err
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}
		for i := 1; i+1 < len(face.Corners); i++ {
			mesh.Indices = append(mesh.Indices, base, base+uint32(i), base+uint32(i+1))
		}
	}

	mesh.Bounds = computeBounds(mesh.Vertices)
	return mesh, nil
}

// vertex gathers one face corner. Absent texture coordinates and normals
// default to the zero vector.
func (p *pools) vertex(file string, line int, c formats.VertexIndices) (Vertex, error) {
	var v Vertex

	if c.Position == formats.AbsentIndex {
		return v, fmt.Errorf("%s:%d: %w", file, line, ErrMissingPosition)
	}
	if c.Position >= len(p.positions) {
		return v, &IndexError{File: file, Line: line, Attribute: "position", Index: c.Position + 1, PoolSize: len(p.positions)}
	}
	v.Position = p.positions[c.Position]

	if c.TexCoord != formats.AbsentIndex {
		if c.TexCoord >= len(p.texCoords) {
			return v, &IndexError{File: file, Line: line, Attribute: "texcoord", Index: c.TexCoord + 1, PoolSize: len(p.texCoords)}
		}
		v.TexCoord = p.texCoords[c.TexCoord]
	}

	if c.Normal != formats.AbsentIndex {
		if c.Normal >= len(p.normals) {
			return v, &IndexError{File: file, Line: line, Attribute: "normal", Index: c.Normal + 1, PoolSize: len(p.normals)}
		}
		v.Normal = p.normals[c.Normal]
	}

	return v, nil
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		updateBounds(&b, v.Position)
	}
	return b
}

func updateBounds(b *Bounds, p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}
