package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

const scenesDir = "scenes"

type options struct {
	scene      string
	sceneFile  string
	envFile    string
	width      int
	height     int
	samples    int
	iterations int
	workers    int
	tileSize   int
	out        string
	thumb      uint
	annotate   bool
	upload     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "default", "Built-in scene name or path to a .json scene")
	flag.StringVar(&opts.sceneFile, "scene-file", "", "JSON scene file (overrides -scene)")
	flag.StringVar(&opts.envFile, "env", ".env", "Optional .env file with output and S3 settings")
	flag.IntVar(&opts.width, "width", 512, "Image width in pixels")
	flag.IntVar(&opts.height, "height", 1024, "Image height in pixels")
	flag.IntVar(&opts.samples, "samples", 1, "Shadow samples per pixel (1 = hard shadows)")
	flag.IntVar(&opts.iterations, "iterations", renderer.DefaultIterations, "Frames rendered per strategy")
	flag.IntVar(&opts.workers, "workers", 0, "Tile pool workers (0 = RAYTRACER_WORKERS or CPU count)")
	flag.IntVar(&opts.tileSize, "tile", renderer.DefaultTileSize, "Tile edge length in pixels")
	flag.StringVar(&opts.out, "out", "", "Output PNG path (default <output dir>/<scene>/render_<timestamp>.png)")
	flag.UintVar(&opts.thumb, "thumb", 0, "Also write a thumbnail no larger than this many pixels")
	flag.BoolVar(&opts.annotate, "annotate", false, "Draw strategy timings onto the saved image")
	flag.BoolVar(&opts.upload, "upload", false, "Upload the frame to the configured S3 bucket")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func showHelp() {
	fmt.Println("Phong Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
	}
	for _, info := range scenes {
		id := info.ID
		if info.Type == "json" {
			id = info.FilePath
		}
		fmt.Printf("  %-28s %s\n", id, info.Description)
	}
	fmt.Println()
	fmt.Println("Every strategy must produce the same frame; a mismatch is reported as an error.")
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}

	sceneName := opts.scene
	if opts.sceneFile != "" {
		sceneName = opts.sceneFile
	}
	selected, err := createScene(sceneName)
	if err != nil {
		return err
	}
	fmt.Printf("Using scene %s (%d bodies)\n", sceneName, len(selected.Bodies))

	workers := opts.workers
	if workers == 0 {
		workers = cfg.Workers
	}
	strategies := []renderer.Strategy{
		renderer.NewSequential(),
		renderer.NewTilePool(workers, opts.tileSize),
	}

	renderConfig := renderer.Config{Width: opts.width, Height: opts.height, ShadowSamples: opts.samples}
	report, err := renderer.Benchmark(ctx, selected, renderConfig, opts.iterations, strategies, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	lines := summarize(report)
	for _, line := range lines {
		fmt.Println(line)
	}

	img := report.Frame.Image()
	fmt.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img))

	var final image.Image = img
	if opts.annotate {
		final = output.Annotate(img, lines...)
	}

	filename := opts.out
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(cfg.OutputDir, sceneID(sceneName), fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := output.SavePNG(filename, final); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.thumb > 0 {
		thumbName := strings.TrimSuffix(filename, filepath.Ext(filename)) + "_thumb.png"
		if err := output.SavePNG(thumbName, output.Thumbnail(final, opts.thumb)); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbName)
	}

	if opts.upload {
		if !cfg.S3.Enabled() {
			return fmt.Errorf("upload requested but S3_BUCKET is not set")
		}
		uploader, err := output.NewS3Uploader(output.S3Options(cfg.S3))
		if err != nil {
			return err
		}
		key := path.Join(sceneID(sceneName), filepath.Base(filename))
		size, err := output.Publish(ctx, uploader, key, final)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%d bytes)\n", key, size)
	}

	return nil
}

// createScene resolves a built-in scene name or a JSON scene path
func createScene(nameOrPath string) (*scene.Scene, error) {
	s, err := scene.Create(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	return s, nil
}

// sceneID turns a scene name or file path into a directory-safe identifier
func sceneID(nameOrPath string) string {
	base := filepath.Base(nameOrPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// summarize formats one line per strategy plus the speedup of the fastest
// over the first
func summarize(report *renderer.BenchmarkReport) []string {
	lines := make([]string, 0, len(report.Stats)+1)
	for _, s := range report.Stats {
		lines = append(lines, fmt.Sprintf("%-20s %8.3f ms/frame  %6.1f Mpx/s",
			s.Strategy, float64(s.PerFrame.Microseconds())/1000, s.PixelsPerSecond()/1e6))
	}
	if len(report.Stats) > 1 {
		base := report.Stats[0]
		fastest := report.Fastest()
		if fastest.PerFrame > 0 {
			lines = append(lines, fmt.Sprintf("fastest: %s (%.2fx over %s)",
				fastest.Strategy, float64(base.PerFrame)/float64(fastest.PerFrame), base.Strategy))
		}
	}
	return lines
}
