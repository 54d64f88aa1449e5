package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/spatial"
	"go.uber.org/zap"
)

// SpawnParams bounds a safe-spawn search.
type SpawnParams struct {
	WorldWidth      float64 // pixels
	WorldHeight     float64 // pixels
	CellSize        float64
	MaxAttempts     int
	MaxCellDistance int
	// Probe size; zero means one cell.
	ProbeWidth, ProbeHeight float64
}

// SpawnSearch is the outcome of a safe-spawn search. Attempts counts the
// probes that were blocked.
type SpawnSearch struct {
	X, Y     float64
	Attempts int
}

// SpawnParams returns the search bounds configured for this world.
func (s *State) SpawnParams() SpawnParams {
	return SpawnParams{
		WorldWidth:      s.opts.Width(),
		WorldHeight:     s.opts.Height(),
		CellSize:        s.opts.CellSize,
		MaxAttempts:     s.opts.MaxAttempts,
		MaxCellDistance: s.opts.MaxCellDistance,
	}
}

// SafeCoordinates searches near (x, y) with the world's configured bounds
// and a one-cell probe.
func (s *State) SafeCoordinates(x, y float64) (SpawnSearch, error) {
	return s.SafeCoordinatesWith(x, y, s.SpawnParams())
}

// SafeCoordinatesWith returns coordinates near (x, y) whose probe box does
// not overlap any blocking entity (anything that is neither a tile nor an
// item). Each blocked probe draws a new candidate at a random whole-cell
// offset from (x, y), clamped to the world. After MaxAttempts blocked probes
// the last candidate is returned together with ErrNoSafeSpotFound.
func (s *State) SafeCoordinatesWith(x, y float64, p SpawnParams) (SpawnSearch, error) {
	pw, ph := p.ProbeWidth, p.ProbeHeight
	if pw <= 0 {
		pw = p.CellSize
	}
	if ph <= 0 {
		ph = p.CellSize
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	res := SpawnSearch{
		X: clamp(x, 0, p.WorldWidth-pw),
		Y: clamp(y, 0, p.WorldHeight-ph),
	}
	for {
		if !s.blocked(spatial.BoxAt(res.X, res.Y, pw, ph)) {
			return res, nil
		}
		res.Attempts++
		if res.Attempts >= maxAttempts {
			break
		}
		dx := s.cellOffset(p.MaxCellDistance) * p.CellSize
		dy := s.cellOffset(p.MaxCellDistance) * p.CellSize
		res.X = clamp(x+dx, 0, p.WorldWidth-pw)
		res.Y = clamp(y+dy, 0, p.WorldHeight-ph)
	}

	s.log.Warn("no safe spawn position, object density too high",
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.Int("attempts", res.Attempts),
	)
	return res, ErrNoSafeSpotFound
}

// cellOffset draws a whole number of cells in [-d, d).
func (s *State) cellOffset(d int) float64 {
	return math.Floor((s.rng.Float64() - 0.5) * 2 * float64(d))
}

// blocked reports whether box strictly overlaps any entity whose type
// occupies space.
func (s *State) blocked(box spatial.Box) bool {
	for _, e := range s.Index.Search(box) {
		if !e.Box.Overlaps(box) {
			continue
		}
		if t := s.TypeOf(e.Entity); t != nil && t.Blocking() {
			return true
		}
	}
	return false
}

// GenerateStaticObject places a static object at the nearest safe spot to
// (x, y). A crowded map still gets the object, at the last probed position.
func (s *State) GenerateStaticObject(x, y float64, typeID string) (ecs.EntityID, error) {
	return s.placeSafely(component.KindStaticObject, x, y, typeID)
}

// SpawnCreature places a focus-capable creature at the nearest safe spot.
func (s *State) SpawnCreature(x, y float64, typeID string) (ecs.EntityID, error) {
	return s.placeSafely(component.KindCreature, x, y, typeID)
}

// GenerateItem drops an item exactly at (x, y). Items never block, so no
// search is needed.
func (s *State) GenerateItem(x, y float64, typeID string) (ecs.EntityID, error) {
	id, err := s.CreateEntity(component.KindItem, x, y, typeID)
	if err != nil {
		return ecs.NullEntity, err
	}
	s.log.Debug("item generated", zap.String("item", s.EntityName(id)), zap.Float64("x", x), zap.Float64("y", y))
	return id, nil
}

func (s *State) placeSafely(kind component.Kind, x, y float64, typeID string) (ecs.EntityID, error) {
	t := s.types.Get(typeID)
	if t == nil {
		return ecs.NullEntity, fmt.Errorf("place %s %q: %w", kind, typeID, ErrUnknownType)
	}
	p := s.SpawnParams()
	p.ProbeWidth, p.ProbeHeight = t.Width, t.Height
	if pw, ph, ok := s.presenter.Dimensions(typeID); ok {
		p.ProbeWidth, p.ProbeHeight = pw, ph
	}

	spot, err := s.SafeCoordinatesWith(x, y, p)
	if err != nil && !errors.Is(err, ErrNoSafeSpotFound) {
		return ecs.NullEntity, err
	}
	id, err := s.CreateEntity(kind, spot.X, spot.Y, typeID)
	if err != nil {
		return ecs.NullEntity, err
	}
	s.verbose("object placed",
		zap.String("entity", s.EntityName(id)),
		zap.Float64("x", spot.X),
		zap.Float64("y", spot.Y),
		zap.Int("blocked_probes", spot.Attempts),
	)
	return id, nil
}

// GenerateTileset covers every cell with a ground tile picked at random from
// typeIDs. Returns the number of tiles placed.
func (s *State) GenerateTileset(typeIDs []string) (int, error) {
	if len(typeIDs) == 0 {
		return 0, nil
	}
	n := 0
	for row := 0; row < s.opts.Rows; row++ {
		for col := 0; col < s.opts.Cols; col++ {
			typeID := typeIDs[s.rng.Intn(len(typeIDs))]
			x, y := float64(col)*s.opts.CellSize, float64(row)*s.opts.CellSize
			if _, err := s.CreateEntity(component.KindStaticObject, x, y, typeID); err != nil {
				return n, fmt.Errorf("tile (%d,%d): %w", col, row, err)
			}
			n++
		}
	}
	s.log.Info("tileset generated", zap.Int("tiles", n), zap.Int("cols", s.opts.Cols), zap.Int("rows", s.opts.Rows))
	return n, nil
}

// Scatter places n objects picked from typeIDs at random cells. Static
// objects and creatures go through the safe-spawn search, items are dropped
// where they land. Placement failures are logged and skipped.
func (s *State) Scatter(n int, typeIDs []string) []ecs.EntityID {
	if len(typeIDs) == 0 || n <= 0 {
		return nil
	}
	out := make([]ecs.EntityID, 0, n)
	for i := 0; i < n; i++ {
		typeID := typeIDs[s.rng.Intn(len(typeIDs))]
		x := float64(s.rng.Intn(max(s.opts.Cols, 1))) * s.opts.CellSize
		y := float64(s.rng.Intn(max(s.opts.Rows, 1))) * s.opts.CellSize

		var (
			id  ecs.EntityID
			err error
		)
		t := s.types.Get(typeID)
		switch {
		case t == nil:
			err = fmt.Errorf("scatter %q: %w", typeID, ErrUnknownType)
		case t.Kind() == component.KindItem:
			id, err = s.GenerateItem(x, y, typeID)
		case t.Kind() == component.KindCreature:
			id, err = s.SpawnCreature(x, y, typeID)
		default:
			id, err = s.GenerateStaticObject(x, y, typeID)
		}
		if err != nil {
			s.log.Error("scatter", zap.String("type", typeID), zap.Error(err))
			continue
		}
		out = append(out, id)
	}
	s.log.Info("objects scattered", zap.Int("requested", n), zap.Int("placed", len(out)))
	return out
}
