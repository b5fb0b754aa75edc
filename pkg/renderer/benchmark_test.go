package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// skipOrigin forgets to render pixel (0, 0)
type skipOrigin struct{}

func (skipOrigin) Name() string { return "skip-origin" }

func (skipOrigin) Run(width, height int, fn PixelFunc) error {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 && y == 0 {
				continue
			}
			fn(x, y)
		}
	}
	return nil
}

func TestBenchmark_StrategiesAgree(t *testing.T) {
	logger := &recordingLogger{}
	config := Config{Width: 24, Height: 48, ShadowSamples: 2}
	strategies := []Strategy{NewSequential(), NewTilePool(3, 16)}

	report, err := Benchmark(context.Background(), scene.NewDefaultScene(), config, 3, strategies, logger)
	if err != nil {
		t.Fatalf("Benchmark: %v", err)
	}

	if len(report.Stats) != 2 {
		t.Fatalf("Expected stats for 2 strategies, got %d", len(report.Stats))
	}
	for i, stats := range report.Stats {
		if stats.Strategy != strategies[i].Name() {
			t.Errorf("Stats %d: expected strategy %q, got %q", i, strategies[i].Name(), stats.Strategy)
		}
		if stats.Iterations != 3 || stats.Pixels != 24*48 {
			t.Errorf("Stats %d: unexpected iterations/pixels %d/%d", i, stats.Iterations, stats.Pixels)
		}
	}
	if report.Frame == nil || report.Frame.Width != 24 || report.Frame.Height != 48 {
		t.Fatalf("Unexpected frame %+v", report.Frame)
	}

	expected, err := Render(scene.NewDefaultScene(), config, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !report.Frame.Equal(expected) {
		t.Error("Benchmark frame differs from a plain render")
	}

	if len(logger.lines) != 4 {
		t.Fatalf("Expected 4 log lines, got %d: %q", len(logger.lines), logger.lines)
	}
	if logger.lines[0] != "Running 3 frames with sequential...\n" {
		t.Errorf("Unexpected first log line %q", logger.lines[0])
	}
	if !strings.HasPrefix(logger.lines[1], "Duration: ") {
		t.Errorf("Unexpected duration line %q", logger.lines[1])
	}
}

func TestBenchmark_DetectsMismatch(t *testing.T) {
	config := Config{Width: 8, Height: 8, ShadowSamples: 1}
	strategies := []Strategy{NewSequential(), skipOrigin{}}

	report, err := Benchmark(context.Background(), scene.NewSingleSphereScene(), config, 1, strategies, nil)
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("Expected ErrMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "(0, 0)") {
		t.Errorf("Expected the differing pixel in the error, got %v", err)
	}
	if report == nil || len(report.Stats) != 2 {
		t.Errorf("Expected partial report with both timings, got %+v", report)
	}
}

func TestBenchmark_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Benchmark(ctx, scene.NewSingleSphereScene(), Config{Width: 4, Height: 4}, 5, []Strategy{NewSequential()}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestBenchmark_InvalidArguments(t *testing.T) {
	s := scene.NewSingleSphereScene()
	config := Config{Width: 4, Height: 4}

	if _, err := Benchmark(context.Background(), s, config, 0, []Strategy{NewSequential()}, nil); err == nil {
		t.Error("Expected error for zero iterations")
	}
	if _, err := Benchmark(context.Background(), s, config, 1, nil, nil); err == nil {
		t.Error("Expected error for no strategies")
	}
	if _, err := Benchmark(context.Background(), &scene.Scene{}, config, 1, []Strategy{NewSequential()}, nil); !errors.Is(err, scene.ErrNoBodies) {
		t.Errorf("Expected ErrNoBodies, got %v", err)
	}
}

func TestBenchmarkReport_Fastest(t *testing.T) {
	report := &BenchmarkReport{Stats: []RenderStats{
		{Strategy: "a", PerFrame: 30},
		{Strategy: "b", PerFrame: 10},
		{Strategy: "c", PerFrame: 20},
	}}
	if got := report.Fastest().Strategy; got != "b" {
		t.Errorf("Expected fastest b, got %s", got)
	}
}
