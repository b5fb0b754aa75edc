package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Server serves renders of the built-in and JSON scenes over HTTP
type Server struct {
	port      int
	scenesDir string
	workers   int
}

// NewServer creates a new web server. workers <= 0 uses one tile worker per CPU.
func NewServer(port int, scenesDir string, workers int) *Server {
	return &Server{port: port, scenesDir: scenesDir, workers: workers}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene ID, e.g. "default" or "json:pedestal"
	Width      int    `json:"width"`      // Image width
	Height     int    `json:"height"`     // Image height
	Samples    int    `json:"samples"`    // Shadow samples per pixel
	Iterations int    `json:"iterations"` // Frames per strategy when benchmarking
	TileSize   int    `json:"tileSize"`   // Tile edge length for the pool
	Glyph      bool   `json:"glyph"`      // Draw the light as a visible sphere
}

func (req *RenderRequest) config() renderer.Config {
	return renderer.Config{Width: req.Width, Height: req.Height, ShadowSamples: req.Samples}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/frame.png", s.handleFrame)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the JSON scenes on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleFrame renders a single frame with the tile pool and returns it as PNG
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	sceneObj, err := s.createScene(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fb, err := renderer.Render(sceneObj, req.config(), renderer.NewTilePool(s.workers, req.TileSize))
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		return
	}
	data, err := output.EncodePNG(fb.Image())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 512, 1, 2048); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 1024, 1, 2048); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 1, 1, 256); err != nil {
		return nil, err
	}
	if req.Iterations, err = parseIntParam(query, "iterations", 1, 1, 1000); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tileSize", renderer.DefaultTileSize, 1, 512); err != nil {
		return nil, err
	}
	if value := query.Get("glyph"); value != "" {
		if req.Glyph, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid glyph: %s", value)
		}
	}

	// Performance warning
	if req.Width*req.Height*req.Samples*req.Iterations > 64*512*1024 {
		log.Printf("Render warning: %dx%d with %d samples and %d iterations may render slowly",
			req.Width, req.Height, req.Samples, req.Iterations)
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves the requested scene. JSON scenes are only looked up
// inside the server's scenes directory.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	var (
		sceneObj *scene.Scene
		err      error
	)
	if file, ok := strings.CutPrefix(req.Scene, "json:"); ok {
		sceneObj, err = scene.Load(filepath.Join(s.scenesDir, filepath.Base(file)+".json"))
	} else {
		sceneObj, err = scene.ByName(req.Scene)
	}
	if err != nil {
		return nil, fmt.Errorf("unknown scene %s: %w", req.Scene, err)
	}
	if req.Glyph {
		sceneObj = sceneObj.WithLightGlyph()
	}
	return sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	data, err := output.EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
