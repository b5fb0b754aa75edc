package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// ErrMismatch is returned when two strategies produce different frame buffers
var ErrMismatch = errors.New("strategies produced different frames")

// DefaultIterations is the number of frames each strategy renders
const DefaultIterations = 200

// BenchmarkReport holds the timings of every strategy and the frame they agreed on
type BenchmarkReport struct {
	Stats []RenderStats
	Frame *FrameBuffer
}

// Fastest returns the stats of the strategy with the lowest per-frame time
func (br *BenchmarkReport) Fastest() RenderStats {
	var best RenderStats
	for i, s := range br.Stats {
		if i == 0 || s.PerFrame < best.PerFrame {
			best = s
		}
	}
	return best
}

// Benchmark renders the scene iterations times with each strategy in turn and
// checks that all strategies produced the same frame. The context is checked
// between frames.
func Benchmark(ctx context.Context, s *scene.Scene, config Config, iterations int, strategies []Strategy, logger core.Logger) (*BenchmarkReport, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	if len(strategies) == 0 {
		return nil, errors.New("no strategies to benchmark")
	}
	if logger == nil {
		logger = discardLogger{}
	}
	config = config.Normalize()

	report := &BenchmarkReport{}
	for _, strategy := range strategies {
		fb, err := prepare(s, config)
		if err != nil {
			return nil, err
		}

		logger.Printf("Running %d frames with %s...\n", iterations, strategy.Name())
		start := time.Now()
		for i := 0; i < iterations; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := RenderInto(fb, s, config, strategy); err != nil {
				return nil, err
			}
		}
		total := time.Since(start)

		stats := RenderStats{
			Strategy:   strategy.Name(),
			Iterations: iterations,
			Total:      total,
			PerFrame:   total / time.Duration(iterations),
			Pixels:     config.Width * config.Height,
		}
		logger.Printf("Duration: %.3f ms (%.3f ms/frame)\n",
			float64(total.Microseconds())/1000, float64(stats.PerFrame.Microseconds())/1000)
		report.Stats = append(report.Stats, stats)

		if report.Frame == nil {
			report.Frame = fb
			continue
		}
		if x, y, differs := report.Frame.FirstDifference(fb); differs {
			return report, fmt.Errorf("%w: %s and %s disagree at pixel (%d, %d)",
				ErrMismatch, report.Stats[0].Strategy, strategy.Name(), x, y)
		}
	}

	return report, nil
}
