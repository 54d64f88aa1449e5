package system

import (
	"math"
	"slices"
	"time"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	coresys "github.com/emberwild/worldcore/internal/core/system"
	"github.com/emberwild/worldcore/internal/spatial"
	"github.com/emberwild/worldcore/internal/world"
	"go.uber.org/zap"
)

// MovementSystem integrates velocity into position, resolves collisions per
// axis and re-indexes every entity that moved. Phase 2 (Movement).
//
// A blocked axis keeps only CollisionModifier of its displacement, taking
// the smallest modifier among the entries hit: 0 stops the mover, 0.5
// halves its speed through a bush. Exempt entries never block.
type MovementSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewMovementSystem(ws *world.State, log *zap.Logger) *MovementSystem {
	return &MovementSystem{world: ws, log: log}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }
func (s *MovementSystem) Name() string         { return "movement" }

func (s *MovementSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	if secs <= 0 {
		return
	}
	ids := s.world.Velocities.IDs()
	slices.Sort(ids)
	for _, id := range ids {
		vel, _ := s.world.Velocities.Get(id)
		if vel.VX == 0 && vel.VY == 0 {
			continue
		}
		s.step(id, vel, secs)
	}
}

func (s *MovementSystem) step(id ecs.EntityID, vel *component.Velocity, secs float64) {
	ws := s.world
	pos, ok := ws.Positions.Get(id)
	if !ok {
		return
	}
	col, ok := ws.Colliders.Get(id)
	if !ok {
		// carried or otherwise out of the world
		return
	}
	opts := ws.Options()
	w, h := col.Width(), col.Height()
	from := col.Box()

	nx := clampRange(pos.X+vel.VX*secs, 0, opts.Width()-w)
	if m, hit := s.blockedBy(id, from, spatial.BoxAt(nx, pos.Y, w, h)); hit {
		nx = pos.X + (nx-pos.X)*m
	}
	ny := clampRange(pos.Y+vel.VY*secs, 0, opts.Height()-h)
	if m, hit := s.blockedBy(id, from, spatial.BoxAt(nx, ny, w, h)); hit {
		ny = pos.Y + (ny-pos.Y)*m
	}
	if nx == pos.X && ny == pos.Y {
		return
	}

	box := spatial.BoxAt(nx, ny, w, h)
	if !ws.Index.Move(id, box) {
		s.log.Error("mover missing from spatial index", zap.Stringer("entity", id))
		if err := ws.Index.Insert(spatial.Entry{Entity: id, Box: box}); err != nil {
			s.log.Error("reindex mover", zap.Stringer("entity", id), zap.Error(err))
			return
		}
	}
	col.SetBox(box)
	pos.X, pos.Y = nx, ny
}

// blockedBy returns the smallest collision modifier among non-exempt
// entries that box strictly overlaps. Solid entries the mover already
// overlapped at from are ignored so a stuck entity can walk out.
func (s *MovementSystem) blockedBy(id ecs.EntityID, from, box spatial.Box) (float64, bool) {
	m, hit := 1.0, false
	for _, e := range s.world.Index.Search(box) {
		if e.Entity == id || !e.Box.Overlaps(box) {
			continue
		}
		c, ok := s.world.Colliders.Get(e.Entity)
		if !ok || c.Exempt {
			continue
		}
		if c.CollisionModifier <= 0 && e.Box.Overlaps(from) {
			continue
		}
		m, hit = math.Min(m, c.CollisionModifier), true
	}
	return math.Max(m, 0), hit
}

func clampRange(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, math.Max(lo, hi)))
}
