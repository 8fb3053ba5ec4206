// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms lit meshes, with an optional per-instance offset.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades meshes with a sun and an optional flashlight.
//
//go:embed scene.frag
var SceneFragmentShader string

// ScreenVertexShader draws the fullscreen quad.
//
//go:embed screen.vert
var ScreenVertexShader string

// ScreenFragmentShader samples the offscreen color buffer.
//
//go:embed screen.frag
var ScreenFragmentShader string

// SkyboxVertexShader is the vertex shader for the skybox cube.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for the skybox cube.
//
//go:embed skybox.frag
var SkyboxFragmentShader string

// NormalsVertexShader passes view-space positions and normals on.
//
//go:embed normals.vert
var NormalsVertexShader string

// NormalsGeometryShader emits one line per vertex normal.
//
//go:embed normals.geom
var NormalsGeometryShader string

// NormalsFragmentShader colors the normal lines.
//
//go:embed normals.frag
var NormalsFragmentShader string

// LinesVertexShader is the vertex shader for world-space debug lines.
//
//go:embed lines.vert
var LinesVertexShader string

// LinesFragmentShader draws debug lines in a flat color.
//
//go:embed lines.frag
var LinesFragmentShader string
