package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene   string
	width   int
	height  int
	depth   int
	workers int
	format  string
	out     string
	help    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.scene, "scene", "default", "Scene: a built-in name or json:<file> from the scenes directory")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", renderer.DefaultConfig().MaxDepth, "Maximum reflection/refraction depth")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = use CPU count)")
	fs.StringVar(&opts.format, "format", "png", "Output format: png or ppm")
	fs.StringVar(&opts.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.help {
		printHelp(output, fs)
		return opts, flag.ErrHelp
	}

	opts.format = strings.ToLower(opts.format)
	if opts.format != "png" && opts.format != "ppm" {
		return opts, fmt.Errorf("unsupported format %q: use png or ppm", opts.format)
	}
	if opts.width < 0 || opts.height < 0 {
		return opts, fmt.Errorf("image size %dx%d must not be negative", opts.width, opts.height)
	}
	if opts.depth < 0 {
		return opts, fmt.Errorf("depth %d must not be negative", opts.depth)
	}
	return opts, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Whitted Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-10s - %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListJSONScenes(); err == nil {
		for _, info := range files {
			fmt.Fprintf(w, "  %-10s - %s\n", info.ID, info.Description)
		}
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger()
	logger.Printf("Starting Whitted Raytracer...\n")

	selected, err := createScene(opts.scene, opts.width, opts.height)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%dx%d)\n", selected.Name, selected.Camera.HSize, selected.Camera.VSize)

	rt := renderer.NewRaytracer(renderer.Config{
		MaxDepth:   opts.depth,
		TileSize:   renderer.DefaultConfig().TileSize,
		NumWorkers: opts.workers,
	}, logger)

	img, _, err := rt.Render(ctx, selected.Camera, selected.World)
	if err != nil {
		return err
	}

	filename := opts.out
	if filename == "" {
		filename = filepath.Join(createOutputDir(opts.scene), fmt.Sprintf("render_%s.%s", time.Now().Format("20060102_150405"), opts.format))
	}
	if err := saveCanvas(img, filename, opts.format); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a scene ID, applying any image size override
func createScene(sceneID string, width, height int) (*scene.Scene, error) {
	if sceneID == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}
	s, err := loaders.LoadScene(sceneID, geometry.CameraConfig{Width: width, Height: height})
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// createOutputDir names the output directory for a scene ID
func createOutputDir(sceneID string) string {
	name := sceneID
	if base, ok := scene.IsJSONSceneID(sceneID); ok {
		name = base
	}
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." {
		name = "scene"
	}
	return filepath.Join("output", name)
}

// saveCanvas writes the canvas to filename, creating parent directories
func saveCanvas(c *canvas.Canvas, filename, format string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := writeCanvas(c, file, format); err != nil {
		return fmt.Errorf("error saving %s: %w", strings.ToUpper(format), err)
	}
	return file.Close()
}

func writeCanvas(c *canvas.Canvas, w io.Writer, format string) error {
	switch format {
	case "ppm":
		return c.WritePPM(w)
	case "png":
		return c.WritePNG(w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
