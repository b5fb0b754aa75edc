package renderer

import (
	"fmt"
	"image"
	"runtime"
	"sync"
)

// DefaultTileSize matches the 16x16 local work size of a GPU workgroup
const DefaultTileSize = 16

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []Tile {
	var tiles []Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile Tile
	Fn   PixelFunc
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Pixels int
	Error  error
}

// TilePool renders an image as a grid of tiles spread over a fixed set of
// worker goroutines. Tiles never overlap, so workers write disjoint pixels.
type TilePool struct {
	numWorkers int
	tileSize   int
}

// NewTilePool creates a tile pool. numWorkers <= 0 uses the CPU count and
// tileSize <= 0 uses DefaultTileSize.
func NewTilePool(numWorkers, tileSize int) *TilePool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &TilePool{numWorkers: numWorkers, tileSize: tileSize}
}

func (tp *TilePool) Name() string {
	return fmt.Sprintf("tiles-%dx%d-w%d", tp.tileSize, tp.tileSize, tp.numWorkers)
}

// GetNumWorkers returns the number of workers in the pool
func (tp *TilePool) GetNumWorkers() int {
	return tp.numWorkers
}

// TileSize returns the edge length of a tile in pixels
func (tp *TilePool) TileSize() int {
	return tp.tileSize
}

// Run renders every tile and waits for all workers to finish
func (tp *TilePool) Run(width, height int, fn PixelFunc) error {
	tiles := NewTileGrid(width, height, tp.tileSize)
	if len(tiles) == 0 {
		return nil
	}

	taskQueue := make(chan TileTask, len(tiles))     // Buffer for all tiles
	resultQueue := make(chan TileResult, len(tiles)) // Buffer for all results

	var wg sync.WaitGroup
	for i := 0; i < min(tp.numWorkers, len(tiles)); i++ {
		wg.Add(1)
		go tileWorker(&wg, taskQueue, resultQueue)
	}

	for _, tile := range tiles {
		taskQueue <- TileTask{Tile: tile, Fn: fn}
	}
	close(taskQueue) // No more tasks

	wg.Wait()
	close(resultQueue)

	rendered := 0
	for result := range resultQueue {
		if result.Error != nil {
			return fmt.Errorf("tile %d: %w", result.TileID, result.Error)
		}
		rendered += result.Pixels
	}
	if rendered != width*height {
		return fmt.Errorf("rendered %d of %d pixels", rendered, width*height)
	}
	return nil
}

// tileWorker is the main worker loop
func tileWorker(wg *sync.WaitGroup, tasks <-chan TileTask, results chan<- TileResult) {
	defer wg.Done()

	for task := range tasks {
		results <- renderTile(task)
	}
}

// renderTile visits every pixel of one tile, turning a kernel panic into an error
func renderTile(task TileTask) (result TileResult) {
	result.TileID = task.Tile.ID
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("panic: %v", r)
		}
	}()

	b := task.Tile.Bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			task.Fn(x, y)
			result.Pixels++
		}
	}
	return result
}
