// Package api exposes the generated world and the streaming queries over
// HTTP and WebSocket.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/driftline/worldgen/internal/chunk"
	"github.com/driftline/worldgen/internal/decoration"
	"github.com/driftline/worldgen/internal/engine"
)

type Handler struct {
	engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{engine: e}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "worldgen-api",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

// GetWorldInfo reports the installed world and the current generation
// progress.
func (h *Handler) GetWorldInfo(w http.ResponseWriter, r *http.Request) {
	cfg := h.engine.Config()
	progress := h.engine.Progress()

	response := map[string]interface{}{
		"world_size":    cfg.WorldSize,
		"chunk_size":    cfg.ChunkSize,
		"tile_size":     cfg.TileSize,
		"sample_stride": cfg.SampleStride,
		"generating":    progress.Generating,
	}
	if state := h.engine.State(); state != nil {
		response["seed"] = state.Map.Seed()
		response["ready"] = true
	} else {
		response["ready"] = false
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

// GetProgress reports the generation progress fraction and stage label.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.engine.Progress())
}

// GenerateWorld starts an asynchronous regeneration run.
func (h *Handler) GenerateWorld(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed int64 `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.engine.Generate(req.Seed)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{
		"status": "generating",
		"seed":   req.Seed,
	})
}

type tileResponse struct {
	X           int      `json:"x"`
	Y           int      `json:"y"`
	Biome       string   `json:"biome"`
	Elevation   float64  `json:"elevation"`
	Temperature float64  `json:"temperature"`
	Moisture    float64  `json:"moisture"`
	Resources   []string `json:"resources"`
	Decorations []string `json:"decorations"`
}

// GetTile returns one tile with its resources and decorations.
func (h *Handler) GetTile(w http.ResponseWriter, r *http.Request) {
	state := h.engine.State()
	if state == nil {
		h.renderError(w, r, http.StatusServiceUnavailable, "world not generated yet", nil)
		return
	}

	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid tile x coordinate", err)
		return
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid tile y coordinate", err)
		return
	}
	if !state.Map.InBounds(x, y) {
		h.renderError(w, r, http.StatusBadRequest, "tile coordinate out of range", nil)
		return
	}

	tile := state.Map.TileAt(x, y)
	resources := make([]string, len(tile.Resources))
	for i, res := range tile.Resources {
		resources[i] = res.String()
	}
	kinds := decoration.ForTile(tile.Biome, x, y, state.Map.Size())
	decorations := make([]string, len(kinds))
	for i, k := range kinds {
		decorations[i] = k.String()
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, tileResponse{
		X:           x,
		Y:           y,
		Biome:       tile.Biome.String(),
		Elevation:   tile.Elevation,
		Temperature: tile.Temperature,
		Moisture:    tile.Moisture,
		Resources:   resources,
		Decorations: decorations,
	})
}

type chunkResponse struct {
	Coord  chunk.Coord  `json:"coord"`
	Bounds chunk.Bounds `json:"bounds"`
	// Biomes holds one id per tile in the bounds, x-major.
	Biomes []uint8 `json:"biomes"`
}

// GetChunk returns the tile range of one chunk with its biome ids, read
// from the compressed view. A chunk outside the world returns an empty
// range rather than an error.
func (h *Handler) GetChunk(w http.ResponseWriter, r *http.Request) {
	state := h.engine.State()
	if state == nil {
		h.renderError(w, r, http.StatusServiceUnavailable, "world not generated yet", nil)
		return
	}

	cx, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk x coordinate", err)
		return
	}
	cy, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk y coordinate", err)
		return
	}

	coord := chunk.Coord{X: cx, Y: cy}
	bounds := h.engine.Chunks().BoundsOf(coord)

	biomes := []uint8{}
	if !bounds.Empty() {
		biomes = make([]uint8, 0, (bounds.EndX-bounds.StartX)*(bounds.EndY-bounds.StartY))
		for x := bounds.StartX; x < bounds.EndX; x++ {
			for y := bounds.StartY; y < bounds.EndY; y++ {
				biomes = append(biomes, state.Compressed.BiomeAt(x, y).ID())
			}
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, chunkResponse{Coord: coord, Bounds: bounds, Biomes: biomes})
}

// GetVisibleChunks returns the target chunk set for a viewer position and
// radius, the same computation the streaming pass uses.
func (h *Handler) GetVisibleChunks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := strconv.ParseFloat(q.Get("x"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid viewer x", err)
		return
	}
	y, err := strconv.ParseFloat(q.Get("y"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid viewer y", err)
		return
	}
	radius := h.engine.Config().StreamRadius
	if raw := q.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius < 0 {
			h.renderError(w, r, http.StatusBadRequest, "invalid radius", err)
			return
		}
	}

	target := h.engine.Chunks().VisibleChunkSet(x, y, radius)
	coords := sortedCoords(target)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"count":  len(coords),
		"chunks": coords,
	})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		log.Error("api error", "error", err, "message", message, "status", status)
		if status >= 500 {
			message = "internal server error"
		}
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message, Code: status})
}
