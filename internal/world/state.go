package world

import (
	"math/rand"
	"time"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/config"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/core/event"
	"github.com/emberwild/worldcore/internal/data"
	"github.com/emberwild/worldcore/internal/scripting"
	"github.com/emberwild/worldcore/internal/spatial"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options are the tunables of a simulation, fixed at world initialization.
type Options struct {
	Cols, Rows      int     // world size in cells
	CellSize        float64 // pixels per cell
	MaxAttempts     int     // safe-spawn probes
	MaxCellDistance int     // safe-spawn offset bound, in cells
	SpreadRadius    float64 // loot drop half-width, pixels
	FocusRange      float64 // pixels from the holder's edge
	FocusCone       float64 // full cone angle in degrees
	DefaultSpeed    float64 // pixels per second
	Verbose         bool    // emit verbose-debug log lines
}

// OptionsFromConfig maps the loaded configuration onto world options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Cols:            cfg.World.Width,
		Rows:            cfg.World.Height,
		CellSize:        cfg.World.CellSize,
		MaxAttempts:     cfg.Spawn.MaxAttempts,
		MaxCellDistance: cfg.Spawn.MaxCellDistance,
		SpreadRadius:    cfg.Loot.SpreadRadius,
		FocusRange:      cfg.Focus.Range,
		FocusCone:       cfg.Focus.ConeDegrees,
		DefaultSpeed:    cfg.Movement.DefaultSpeed,
		Verbose:         cfg.Logging.Verbose,
	}
}

// Width returns the world width in pixels.
func (o Options) Width() float64 { return float64(o.Cols) * o.CellSize }

// Height returns the world height in pixels.
func (o Options) Height() float64 { return float64(o.Rows) * o.CellSize }

// Deps holds the collaborators injected at world initialization.
type Deps struct {
	Types     *data.TypeRegistry
	Loot      *data.LootTable
	Scripts   *scripting.Engine // nil = base damage only
	Presenter Presenter         // nil = HeadlessPresenter
	Bus       *event.Bus        // nil = private bus
	Rand      *rand.Rand        // nil = seeded from clock
	Log       *zap.Logger       // nil = no-op
}

// State is the live world: the ECS world, every component store, and the
// spatial index. Exclusively owned by the tick driver; systems receive it by
// reference each tick and must not cache anything from it across ticks.
// Accessed only from the tick goroutine, no locks needed.
type State struct {
	ECS   *ecs.World
	Index *spatial.Index

	Identities  *ecs.ComponentStore[component.Identity]
	Positions   *ecs.ComponentStore[component.Position]
	Velocities  *ecs.ComponentStore[component.Velocity]
	Healths     *ecs.ComponentStore[component.Health]
	Colliders   *ecs.ComponentStore[component.Collider]
	Foci        *ecs.ComponentStore[component.Focus]
	Inventories *ecs.ComponentStore[component.Inventory]
	Carried     *ecs.ComponentStore[component.Carried]
	Visuals     *ecs.ComponentStore[component.Visual]

	opts      Options
	types     *data.TypeRegistry
	loot      *data.LootTable
	scripts   *scripting.Engine
	presenter Presenter
	bus       *event.Bus
	rng       *rand.Rand
	log       *zap.Logger
	title     cases.Caser

	pendingDestroy map[ecs.EntityID]struct{}
}

// NewState wires a world from explicit options and collaborators.
func NewState(opts Options, deps Deps) *State {
	w := ecs.NewWorld()
	s := &State{
		ECS:   w,
		Index: spatial.NewIndex(),

		Identities:  ecs.NewComponentStore[component.Identity](w),
		Positions:   ecs.NewComponentStore[component.Position](w),
		Velocities:  ecs.NewComponentStore[component.Velocity](w),
		Healths:     ecs.NewComponentStore[component.Health](w),
		Colliders:   ecs.NewComponentStore[component.Collider](w),
		Foci:        ecs.NewComponentStore[component.Focus](w),
		Inventories: ecs.NewComponentStore[component.Inventory](w),
		Carried:     ecs.NewComponentStore[component.Carried](w),
		Visuals:     ecs.NewComponentStore[component.Visual](w),

		opts:      opts,
		types:     deps.Types,
		loot:      deps.Loot,
		scripts:   deps.Scripts,
		presenter: deps.Presenter,
		bus:       deps.Bus,
		rng:       deps.Rand,
		log:       deps.Log,
		title:     cases.Title(language.English),

		pendingDestroy: make(map[ecs.EntityID]struct{}),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.types == nil {
		s.types, _ = data.NewTypeRegistry()
	}
	if s.loot == nil {
		s.loot = data.NewLootTable(nil)
	}
	if s.presenter == nil {
		s.presenter = NewHeadlessPresenter(s.log)
	}
	if s.bus == nil {
		s.bus = event.NewBus()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

func (s *State) Options() Options           { return s.opts }
func (s *State) Types() *data.TypeRegistry  { return s.types }
func (s *State) Loot() *data.LootTable      { return s.loot }
func (s *State) Bus() *event.Bus            { return s.bus }
func (s *State) Presenter() Presenter       { return s.presenter }
func (s *State) Log() *zap.Logger           { return s.log }
func (s *State) Scripts() *scripting.Engine { return s.scripts }

// Alive reports whether id is a live handle.
func (s *State) Alive(id ecs.EntityID) bool {
	return s.ECS.Alive(id)
}

// EntityCount returns the number of live entities.
func (s *State) EntityCount() int {
	return s.ECS.Pool().Live()
}

// TypeOf returns the static type of a live entity, or nil.
func (s *State) TypeOf(id ecs.EntityID) *data.EntityType {
	ident, ok := s.Identities.Get(id)
	if !ok {
		return nil
	}
	return s.types.Get(ident.TypeID)
}

// verbose logs at the verbose-debug level, which sits below Debug and is
// switched on by configuration.
func (s *State) verbose(msg string, fields ...zap.Field) {
	if s.opts.Verbose {
		s.log.Debug(msg, fields...)
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
