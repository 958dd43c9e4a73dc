package api

import (
	"net/http"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/driftline/worldgen/internal/chunk"
	"github.com/driftline/worldgen/internal/engine"
)

// StreamHandler streams chunk load/unload diffs to WebSocket clients as
// their viewer moves. Each connection tracks its own active chunk set, so
// the shared engine manager is never written from connection goroutines.
type StreamHandler struct {
	engine   *engine.Engine
	upgrader websocket.Upgrader
}

func NewStreamHandler(e *engine.Engine) *StreamHandler {
	return &StreamHandler{
		engine: e,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// viewerUpdate is the client-to-server message: where the viewer is now.
type viewerUpdate struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius,omitempty"`
}

// chunkDiff is the server-to-client message: what changed since the last
// update. Coordinate slices are sorted so the stream is deterministic for
// a given movement sequence.
type chunkDiff struct {
	Load   []chunkResponse `json:"load"`
	Unload []chunk.Coord   `json:"unload"`
	Active int             `json:"active"`
}

func (s *StreamHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	log.Debug("stream client connected", "remote", conn.RemoteAddr())

	active := make(map[chunk.Coord]struct{})
	for {
		var update viewerUpdate
		if err := conn.ReadJSON(&update); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("stream read failed", "error", err)
			}
			return
		}

		diff, next := s.diffFor(active, update)
		active = next
		if err := conn.WriteJSON(diff); err != nil {
			log.Error("stream write failed", "error", err)
			return
		}
	}
}

// diffFor computes the load/unload diff between the connection's active
// set and the target set for the new viewer position, and returns the new
// active set. Pure with respect to shared state: only the read-only
// manager geometry and the installed world state are consulted.
func (s *StreamHandler) diffFor(active map[chunk.Coord]struct{}, update viewerUpdate) (chunkDiff, map[chunk.Coord]struct{}) {
	radius := update.Radius
	if radius <= 0 {
		radius = s.engine.Config().StreamRadius
	}

	manager := s.engine.Chunks()
	state := s.engine.State()

	target := map[chunk.Coord]struct{}{}
	if state != nil {
		target = manager.VisibleChunkSet(update.X, update.Y, radius)
	}

	diff := chunkDiff{Load: []chunkResponse{}, Unload: []chunk.Coord{}, Active: len(target)}
	for _, c := range sortedCoords(active) {
		if _, ok := target[c]; !ok {
			diff.Unload = append(diff.Unload, c)
		}
	}
	for _, c := range sortedCoords(target) {
		if _, ok := active[c]; ok {
			continue
		}
		bounds := manager.BoundsOf(c)
		payload := chunkResponse{Coord: c, Bounds: bounds, Biomes: []uint8{}}
		if state != nil && !bounds.Empty() {
			payload.Biomes = make([]uint8, 0, (bounds.EndX-bounds.StartX)*(bounds.EndY-bounds.StartY))
			for x := bounds.StartX; x < bounds.EndX; x++ {
				for y := bounds.StartY; y < bounds.EndY; y++ {
					payload.Biomes = append(payload.Biomes, state.Compressed.BiomeAt(x, y).ID())
				}
			}
		}
		diff.Load = append(diff.Load, payload)
	}
	return diff, target
}

func sortedCoords(set map[chunk.Coord]struct{}) []chunk.Coord {
	out := make([]chunk.Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}
