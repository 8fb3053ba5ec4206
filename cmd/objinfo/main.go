// objinfo is a CLI utility for inspecting Wavefront OBJ and MTL files
// without opening a window.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/Faultbox/objviewer/internal/engine/model"
	"github.com/Faultbox/objviewer/internal/engine/texture"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "mtl":
		cmdMTL(args)
	case "textures", "tex":
		cmdTextures(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objinfo - Wavefront OBJ/MTL inspection utility

Usage:
  objinfo <command> [options]

Commands:
  info [-v] <file.obj>     Import a model and show mesh statistics
  mtl <file.mtl>           List the materials of a material library
  textures <file.obj>      Decode every texture a model references

Import warnings are printed to stderr; use -log to change the level.

Examples:
  objinfo info objects/backpack/backpack.obj
  objinfo info -v -log debug objects/cube/cube.obj
  objinfo mtl objects/backpack/backpack.mtl`)
}

// initLogger sends import diagnostics to the console.
func initLogger(level string) {
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
}

// placeholderUploader hands out texture IDs without a GL context.
type placeholderUploader struct{ next uint32 }

func (u *placeholderUploader) Upload(*image.RGBA) (uint32, error) {
	u.next++
	return u.next, nil
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	verbose := fs.Bool("v", false, "List every mesh")
	level := fs.String("log", "warn", "Log level for import diagnostics")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo info [-v] <file.obj>")
		os.Exit(1)
	}
	initLogger(*level)
	defer logger.Sync()

	path := fs.Arg(0)
	m := model.NewModel(nil, nil, nil)
	if err := model.LoadOBJ(path, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	materials := make(map[string]bool)
	for _, mesh := range m.Meshes() {
		if mesh.Material != nil {
			materials[mesh.Material.Name] = true
		}
	}

	fmt.Printf("Model:     %s\n", path)
	fmt.Printf("Meshes:    %d\n", len(m.Meshes()))
	fmt.Printf("Vertices:  %d\n", m.VertexCount())
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Materials: %d\n", len(materials))
	if b, ok := m.Bounds(); ok {
		fmt.Printf("Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}

	if !*verbose {
		return
	}
	fmt.Println()
	fmt.Println("Meshes:")
	for i, mesh := range m.Meshes() {
		name := mesh.Name
		if name == "" {
			name = "(unnamed)"
		}
		mtl := "-"
		if mesh.Material != nil {
			mtl = mesh.Material.Name
		}
		fmt.Printf("  %3d %-24s %8d tris  %s\n", i, name, len(mesh.Indices)/3, mtl)
	}
}

func cmdMTL(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo mtl <file.mtl>")
		os.Exit(1)
	}
	initLogger("warn")
	defer logger.Sync()

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	materials, err := formats.ParseMTL(f, path, filepath.Dir(path), logger.Named("mtl"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Library:   %s\n", path)
	fmt.Printf("Materials: %d\n", len(materials))
	for _, mtl := range materials {
		fmt.Println()
		fmt.Printf("  %s\n", mtl.Name)
		fmt.Printf("    Ns %-8g d %-6g illum %d\n", mtl.SpecularExponent, mtl.Dissolve, mtl.Illum)
		fmt.Printf("    Kd (%.3f, %.3f, %.3f)\n", mtl.Diffuse.X, mtl.Diffuse.Y, mtl.Diffuse.Z)
		printMap("map_Kd", mtl.DiffusePath)
		printMap("map_Ks", mtl.SpecularPath)
		printMap("map_Bump", mtl.BumpPath)
	}
}

func printMap(directive, path string) {
	if path == "" {
		return
	}
	status := "ok"
	if _, err := os.Stat(path); err != nil {
		status = "missing"
	}
	fmt.Printf("    %-8s %s (%s)\n", directive, path, status)
}

func cmdTextures(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo textures <file.obj>")
		os.Exit(1)
	}
	initLogger("error")
	defer logger.Sync()

	path := args[0]
	m := model.NewModel(texture.FileDecoder{FlipV: true}, &placeholderUploader{}, nil)
	if err := model.LoadOBJ(path, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, tex := range m.Textures() {
		status := "ok"
		if tex.ID == 0 {
			status = "FAILED"
			failed++
		}
		fmt.Printf("  %-6s %s\n", status, tex.Path)
	}
	fmt.Printf("\n%d textures, %d failed\n", len(m.Textures()), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
