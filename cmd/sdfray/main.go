package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mtarnawa/sdfray/pkg/engine"
	"github.com/mtarnawa/sdfray/pkg/mesh"
	"github.com/mtarnawa/sdfray/pkg/render"
	"github.com/mtarnawa/sdfray/pkg/scene"
)

func main() {
	width := flag.Int("width", 512, "Output image width in pixels")
	height := flag.Int("height", 512, "Output image height in pixels")
	steps := flag.Int("steps", 0, "Max raymarch steps per ray (0 = default)")
	timeout := flag.Duration("timeout", 0, "Abort the render after this duration (0 = no limit)")
	stl := flag.String("stl", "", "Also export the surface as an STL file at this path")
	cells := flag.Int("cells", 0, "Marching cubes resolution for STL export (0 = default)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		usage()
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "error: missing input asset path")
		usage()
		os.Exit(2)
	}
	input := args[0]
	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	if len(args) > 1 {
		output = args[1]
	}

	s, err := loadScene(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg := render.DefaultSettings()
	cfg.Width = *width
	cfg.Height = *height
	if *steps > 0 {
		cfg.MaxSteps = *steps
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	img, err := render.Render(ctx, s, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: render failed: %v\n", err)
		os.Exit(1)
	}
	if err := render.WritePNG(img, output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %q (%dx%d) to %s in %v\n",
		s.Name, cfg.Width, cfg.Height, output, time.Since(start).Round(time.Millisecond))

	if *stl != "" {
		if err := mesh.ToSTL(s, *cells, *stl); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported STL to %s\n", *stl)
	}
}

// loadScene routes by extension: Lisp scripts go through the scene engine,
// everything else is parsed as a JSON asset document.
func loadScene(path string) (*scene.Scene, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".lisp" && ext != ".zy" {
		return scene.LoadFile(path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, evalErrs, err := engine.NewEngine().Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		return nil, fmt.Errorf("script %s has %d error(s)", path, len(evalErrs))
	}
	return s, nil
}

func usage() {
	fmt.Println("sdfray renders SDF asset documents to PNG icons")
	fmt.Println("Usage: sdfray [options] <asset.json|scene.lisp> [output.png]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Assets ending in .lisp or .zy are evaluated by the scene")
	fmt.Println("engine; everything else is parsed as a JSON asset document.")
	fmt.Println("Pixels whose ray misses the surface are left transparent.")
}
