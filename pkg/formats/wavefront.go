// Package formats provides parsers for the Wavefront OBJ and MTL text formats.
package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Wavefront parse errors.
var (
	ErrMalformedNumber  = errors.New("malformed number")
	ErrMissingField     = errors.New("missing field")
	ErrBadIndex         = errors.New("malformed vertex index")
	ErrIndexOutOfRange  = errors.New("vertex index out of range")
	ErrDegenerateFace   = errors.New("face has fewer than 3 corners")
	ErrMissingDirective = errors.New("directive requires an argument")
)

// AbsentIndex marks a vertex attribute that the face descriptor left out.
const AbsentIndex = -1

// ParseError describes a token that could not be parsed.
// File and Line are filled in by the caller that owns the line.
type ParseError struct {
	File  string
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%v: %q", e.Err, e.Token)
	}
	return fmt.Sprintf("%s:%d: %v: %q", e.File, e.Line, e.Err, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IndexError reports a face index that does not address its attribute pool.
type IndexError struct {
	File      string
	Line      int
	Attribute string // "position", "texcoord" or "normal"
	Index     int    // as written in the file
	PoolSize  int
}

func (e *IndexError) Error() string {
	msg := fmt.Sprintf("%s index %d out of range (pool size %d)", e.Attribute, e.Index, e.PoolSize)
	if e.File == "" {
		return msg
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// At attaches a file position to err if it is a *ParseError, or an
// *IndexError that has no position yet. Other errors are returned unchanged.
func At(err error, file string, line int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.File = file
		pe.Line = line
	}
	var ie *IndexError
	if errors.As(err, &ie) && ie.File == "" {
		ie.File = file
		ie.Line = line
	}
	return err
}

// SplitDirective splits a raw line into its keyword and the remaining text.
// ok is false for blank lines and comments.
func SplitDirective(line string) (keyword, rest string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return "", "", false
	}
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, "", true
	}
	return line[:i], strings.TrimSpace(line[i+1:]), true
}

// ParseFloats parses exactly n leading floats from rest.
// extra reports how many unconsumed fields followed them.
func ParseFloats(rest string, n int) (values []float32, extra int, err error) {
	fields := strings.Fields(rest)
	if len(fields) < n {
		return nil, 0, &ParseError{Token: rest, Err: ErrMissingField}
	}
	values = make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, 0, &ParseError{Token: fields[i], Err: ErrMalformedNumber}
		}
		values[i] = float32(f)
	}
	return values, len(fields) - n, nil
}

// ParseVec3 parses "x y z".
func ParseVec3(rest string) (math.Vec3, int, error) {
	v, extra, err := ParseFloats(rest, 3)
	if err != nil {
		return math.Vec3{}, 0, err
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, extra, nil
}

// ParseVec2 parses "u v".
func ParseVec2(rest string) (math.Vec2, int, error) {
	v, extra, err := ParseFloats(rest, 2)
	if err != nil {
		return math.Vec2{}, 0, err
	}
	return math.Vec2{X: v[0], Y: v[1]}, extra, nil
}

// VertexIndices holds zero-based indices into the position, texture
// coordinate and normal pools. Any of them may be AbsentIndex.
type VertexIndices struct {
	Position int
	TexCoord int
	Normal   int
}

// Face is one polygon from an "f" line.
type Face struct {
	Corners []VertexIndices
	Line    int
}

// PoolCounts are the attribute pool sizes at the time a face is read.
// Negative OBJ indices are resolved against them.
type PoolCounts struct {
	Positions int
	TexCoords int
	Normals   int
}

// ParseFace parses the descriptors of an "f" line.
// Each descriptor is p, p/t, p//n or p/t/n; corners may be any number >= 3.
func ParseFace(rest string, pools PoolCounts) (Face, error) {
	fields := strings.Fields(rest)
	if len(fields) < 3 {
		return Face{}, &ParseError{Token: rest, Err: ErrDegenerateFace}
	}

	face := Face{Corners: make([]VertexIndices, 0, len(fields))}
	for _, desc := range fields {
		idx, err := ParseVertexIndices(desc, pools)
		if err != nil {
			return Face{}, err
		}
		face.Corners = append(face.Corners, idx)
	}
	return face, nil
}

// ParseVertexIndices parses a single "p/t/n" descriptor.
//
// Fields are consumed left to right. An empty field or a raw 0 yields
// AbsentIndex. Positive indices are one-based and converted to zero-based.
// Negative indices count back from the end of the pool as it is now; one
// that reaches before the start returns an *IndexError.
func ParseVertexIndices(desc string, pools PoolCounts) (VertexIndices, error) {
	vi := VertexIndices{Position: AbsentIndex, TexCoord: AbsentIndex, Normal: AbsentIndex}

	parts := strings.Split(desc, "/")
	if len(parts) > 3 {
		return vi, &ParseError{Token: desc, Err: ErrBadIndex}
	}

	targets := [3]*int{&vi.Position, &vi.TexCoord, &vi.Normal}
	sizes := [3]int{pools.Positions, pools.TexCoords, pools.Normals}
	names := [3]string{"position", "texcoord", "normal"}
	for i, p := range parts {
		if p == "" {
			continue
		}
		raw, err := strconv.Atoi(p)
		if err != nil {
			return vi, &ParseError{Token: desc, Err: ErrBadIndex}
		}
		resolved, ok := resolveIndex(raw, sizes[i])
		if !ok {
			return vi, &IndexError{Attribute: names[i], Index: raw, PoolSize: sizes[i]}
		}
		*targets[i] = resolved
	}
	return vi, nil
}

func resolveIndex(raw, size int) (int, bool) {
	switch {
	case raw > 0:
		return raw - 1, true
	case raw < 0:
		idx := size + raw
		return idx, idx >= 0
	default:
		return AbsentIndex, true
	}
}
