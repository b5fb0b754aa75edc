package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "result", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// StrategyResult is the timing of one strategy in a benchmark
type StrategyResult struct {
	Strategy        string  `json:"strategy"`
	Iterations      int     `json:"iterations"`
	TotalMs         float64 `json:"totalMs"`
	PerFrameMs      float64 `json:"perFrameMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

// FrameResult is sent once every strategy has rendered and agreed on the frame
type FrameResult struct {
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	ImageData  string           `json:"imageData"` // Base64 encoded PNG
	Strategies []StrategyResult `json:"strategies"`
	Fastest    string           `json:"fastest"`
	Luminance  float64          `json:"luminance"`
	ElapsedMs  int64            `json:"elapsedMs"`
}

// handleRender benchmarks the sequential sweep against the tile pool and
// streams console output and the final frame via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sceneObj, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	startTime := time.Now()
	strategies := []renderer.Strategy{
		renderer.NewSequential(),
		renderer.NewTilePool(s.workers, req.TileSize),
	}
	report, err := renderer.Benchmark(ctx, sceneObj, req.config(), req.Iterations, strategies, webLogger)

	// The logger is idle once Benchmark returns
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.handleFrameComplete(ctx, sseEventChan, report, startTime)

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes every SSE event from a single goroutine until the
// channel is closed or the client goes away
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			select {
			case <-ctx.Done():
				return
			default:
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards logger output to the SSE channel
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleFrameComplete encodes the agreed frame with its timings and sends it
func (s *Server) handleFrameComplete(ctx context.Context, sseEventChan chan SSEEvent, report *renderer.BenchmarkReport, startTime time.Time) {
	img := report.Frame.Image()
	imageData, err := imageToBase64PNG(img)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode frame: %v", err))
		return
	}

	result := FrameResult{
		Width:     report.Frame.Width,
		Height:    report.Frame.Height,
		ImageData: imageData,
		Fastest:   report.Fastest().Strategy,
		Luminance: renderer.CalculateAverageLuminance(img),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	for _, st := range report.Stats {
		result.Strategies = append(result.Strategies, StrategyResult{
			Strategy:        st.Strategy,
			Iterations:      st.Iterations,
			TotalMs:         float64(st.Total.Microseconds()) / 1000,
			PerFrameMs:      float64(st.PerFrame.Microseconds()) / 1000,
			PixelsPerSecond: st.PixelsPerSecond(),
		})
	}

	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Error marshaling frame result: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "result", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
