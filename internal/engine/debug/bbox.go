package debug

import "github.com/Faultbox/objviewer/pkg/math"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// BBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BBoxWireframeVertices(minB, maxB math.Vec3) []float32 {
	minX, minY, minZ := minB.X, minB.Y, minB.Z
	maxX, maxY, maxZ := maxB.X, maxB.Y, maxB.Z
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// TransformedBounds returns the axis-aligned box enclosing local bounds after
// transforming all eight corners by m.
func TransformedBounds(m math.Mat4, minB, maxB math.Vec3) (math.Vec3, math.Vec3) {
	var outMin, outMax math.Vec3
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: minB.X, Y: minB.Y, Z: minB.Z}
		if i&1 != 0 {
			corner.X = maxB.X
		}
		if i&2 != 0 {
			corner.Y = maxB.Y
		}
		if i&4 != 0 {
			corner.Z = maxB.Z
		}
		p := m.TransformPoint(corner)
		if i == 0 {
			outMin, outMax = p, p
			continue
		}
		outMin = outMin.Min(p)
		outMax = outMax.Max(p)
	}
	return outMin, outMax
}
