package system_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/core/event"
	coresys "github.com/emberwild/worldcore/internal/core/system"
	"github.com/emberwild/worldcore/internal/data"
	"github.com/emberwild/worldcore/internal/system"
	"github.com/emberwild/worldcore/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const tick = 100 * time.Millisecond

type sim struct {
	ws        *world.State
	runner    *coresys.Runner
	presenter *world.HeadlessPresenter
}

func newSim(t *testing.T) *sim {
	t.Helper()
	types, err := data.NewTypeRegistry(
		data.EntityType{ID: "grass", KindName: "staticObject", Category: data.CategoryTile, Width: 32, Height: 32, Exempt: true, CollisionModifier: 0.9},
		data.EntityType{ID: "rock", KindName: "staticObject", Category: "rock", Width: 32, Height: 32, Health: 5},
		data.EntityType{ID: "bush", KindName: "staticObject", Category: "bush", Width: 32, Height: 32, Health: 1, CollisionModifier: 0.5},
		data.EntityType{ID: "tree", KindName: "staticObject", Category: "tree", Width: 32, Height: 32, Health: 3},
		data.EntityType{ID: "log", KindName: "item", Category: data.CategoryItem, Width: 16, Height: 16, Pickup: true, CollisionModifier: 1},
		data.EntityType{ID: "player", KindName: "creature", Category: "creature", Width: 32, Height: 32, Health: 100, Speed: 100, Damage: 1},
	)
	require.NoError(t, err)

	log := zap.NewNop()
	p := world.NewHeadlessPresenter(log)
	opts := world.Options{
		Cols:            50,
		Rows:            50,
		CellSize:        32,
		MaxAttempts:     100,
		MaxCellDistance: 10,
		SpreadRadius:    16,
		FocusRange:      48,
		FocusCone:       120,
		DefaultSpeed:    100,
	}
	ws := world.NewState(opts, world.Deps{
		Types: types,
		Loot: data.NewLootTable(map[string][]data.DropRule{
			"tree": {{ItemID: "log", Probability: 1, Min: 1, Max: 1}},
		}),
		Presenter: p,
		Rand:      rand.New(rand.NewSource(7)),
		Log:       log,
	})
	r := coresys.NewRunner()
	system.RegisterAll(r, ws, log)
	return &sim{ws: ws, runner: r, presenter: p}
}

func (s *sim) create(t *testing.T, kind component.Kind, x, y float64, typeID string) ecs.EntityID {
	t.Helper()
	id, err := s.ws.CreateEntity(kind, x, y, typeID)
	require.NoError(t, err)
	return id
}

func (s *sim) position(id ecs.EntityID) component.Position {
	p, _ := s.ws.Positions.Get(id)
	return *p
}

func (s *sim) assertConsistent(t *testing.T) {
	t.Helper()
	s.ws.Colliders.Each(func(id ecs.EntityID, c *component.Collider) {
		e, ok := s.ws.Index.Get(id)
		if assert.True(t, ok, "entity %s not indexed", id) {
			assert.Equal(t, c.Box(), e.Box)
		}
	})
	assert.Equal(t, s.ws.Colliders.Len(), s.ws.Index.Len())
	s.ws.Foci.Each(func(id ecs.EntityID, f *component.Focus) {
		if f.Focused() {
			assert.True(t, s.ws.Alive(f.Target), "%s focuses dead %s", id, f.Target)
		}
	})
}

func TestRegisterAllPhaseOrder(t *testing.T) {
	s := newSim(t)
	s.runner.Tick(tick)

	var names []string
	for _, st := range s.runner.Stats() {
		names = append(names, st.Name)
		assert.Equal(t, int64(1), st.Executions)
	}
	assert.Equal(t, []string{"lifecycle", "health", "movement", "focus", "inventory", "output"}, names)
}

func TestMovementIntegratesAndReindexes(t *testing.T) {
	s := newSim(t)
	id := s.create(t, component.KindCreature, 100, 100, "player")
	require.NoError(t, s.ws.Move(id, component.DirRight))

	s.runner.Tick(tick)
	assert.Equal(t, component.Position{X: 110, Y: 100}, s.position(id))
	e, ok := s.ws.Index.Get(id)
	require.True(t, ok)
	assert.Equal(t, 110.0, e.MinX)
	assert.Equal(t, 142.0, e.MaxX)
	s.assertConsistent(t)
}

func TestMovementSkipsStationary(t *testing.T) {
	s := newSim(t)
	id := s.create(t, component.KindCreature, 100, 100, "player")
	before, _ := s.ws.Index.Get(id)

	s.runner.Tick(tick)
	after, _ := s.ws.Index.Get(id)
	assert.Equal(t, before, after)
}

func TestMovementBlockedBySolid(t *testing.T) {
	s := newSim(t)
	id := s.create(t, component.KindCreature, 100, 100, "player")
	s.create(t, component.KindStaticObject, 150, 100, "rock")
	require.NoError(t, s.ws.Move(id, component.DirRight))

	s.runner.Tick(250 * time.Millisecond)
	assert.Equal(t, component.Position{X: 100, Y: 100}, s.position(id))
	s.assertConsistent(t)
}

func TestMovementSlowedByBush(t *testing.T) {
	s := newSim(t)
	id := s.create(t, component.KindCreature, 100, 100, "player")
	s.create(t, component.KindStaticObject, 150, 100, "bush")
	require.NoError(t, s.ws.Move(id, component.DirRight))

	s.runner.Tick(250 * time.Millisecond)
	assert.Equal(t, 112.5, s.position(id).X)
	s.assertConsistent(t)
}

func TestMovementIgnoresExemptTiles(t *testing.T) {
	s := newSim(t)
	id := s.create(t, component.KindCreature, 100, 100, "player")
	s.create(t, component.KindStaticObject, 128, 100, "grass")
	require.NoError(t, s.ws.Move(id, component.DirRight))

	s.runner.Tick(tick)
	assert.Equal(t, 110.0, s.position(id).X)
}

func TestMovementClampsToWorld(t *testing.T) {
	s := newSim(t)
	id := s.create(t, component.KindCreature, 1560, 0, "player")
	require.NoError(t, s.ws.Move(id, component.DirRight))

	s.runner.Tick(time.Second)
	assert.Equal(t, 1568.0, s.position(id).X)

	require.NoError(t, s.ws.Move(id, component.DirUp))
	s.runner.Tick(time.Second)
	assert.Equal(t, 0.0, s.position(id).Y)
	s.assertConsistent(t)
}

func TestActionEventsApplyInLifecycle(t *testing.T) {
	s := newSim(t)
	id := s.create(t, component.KindCreature, 100, 100, "player")

	event.Emit(s.ws.Bus(), event.ActionRequested{EntityID: id, Action: event.ActionMoveDown})
	s.runner.Tick(tick)
	assert.Equal(t, component.Position{X: 100, Y: 110}, s.position(id))

	event.Emit(s.ws.Bus(), event.ActionRequested{EntityID: id, Action: event.ActionStop})
	s.runner.Tick(tick)
	assert.Equal(t, component.Position{X: 100, Y: 110}, s.position(id))
}

func TestFocusAcquiredAndClearedOnDestroy(t *testing.T) {
	s := newSim(t)
	player := s.create(t, component.KindCreature, 320, 320, "player")
	tree := s.create(t, component.KindStaticObject, 320, 360, "tree")

	s.runner.Tick(tick)
	fc, _ := s.ws.Foci.Get(player)
	assert.Equal(t, tree, fc.Target)

	var removed []ecs.EntityID
	event.Subscribe(s.ws.Bus(), func(ev event.EntityRemoved) { removed = append(removed, ev.EntityID) })

	event.Emit(s.ws.Bus(), event.EntityDestroyed{EntityID: tree})
	s.runner.Tick(tick)
	assert.False(t, s.ws.Alive(tree))
	s.assertConsistent(t)

	s.runner.Tick(tick)
	assert.Equal(t, []ecs.EntityID{tree}, removed)
}

func TestAttackUntilDestroyed(t *testing.T) {
	s := newSim(t)
	player := s.create(t, component.KindCreature, 320, 320, "player")
	tree := s.create(t, component.KindStaticObject, 320, 360, "tree")
	s.runner.Tick(tick)

	for i := 0; i < 3; i++ {
		event.Emit(s.ws.Bus(), event.ActionRequested{EntityID: player, Action: event.ActionAttack})
		s.runner.Tick(tick)
	}
	assert.True(t, s.ws.Alive(tree), "destroy lands a tick after health hits zero")

	s.runner.Tick(tick)
	assert.False(t, s.ws.Alive(tree))
	assert.Equal(t, 2, s.ws.Identities.Len(), "player and one dropped log")
	s.assertConsistent(t)
}

func TestPickupRequestUsesSettledFocus(t *testing.T) {
	s := newSim(t)
	player := s.create(t, component.KindCreature, 320, 320, "player")
	item := s.create(t, component.KindItem, 328, 360, "log")

	var picked []event.ItemPickedUp
	event.Subscribe(s.ws.Bus(), func(ev event.ItemPickedUp) { picked = append(picked, ev) })

	event.Emit(s.ws.Bus(), event.ItemPickupRequested{HolderID: player})
	s.runner.Tick(tick)

	slots, ok := s.ws.GetInventory(player)
	require.True(t, ok)
	assert.Equal(t, item, slots[0])
	fc, _ := s.ws.Foci.Get(player)
	assert.False(t, fc.Focused())

	s.runner.Tick(tick)
	assert.Equal(t, []event.ItemPickedUp{{HolderID: player, ItemID: item}}, picked)
	s.assertConsistent(t)
}

func TestInventoryToggleForwarded(t *testing.T) {
	s := newSim(t)
	player := s.create(t, component.KindCreature, 0, 0, "player")

	event.Emit(s.ws.Bus(), event.InventoryToggleRequested{HolderID: player})
	s.runner.Tick(tick)
	assert.True(t, s.presenter.Toggles[player])
	assert.Equal(t, 1, s.ws.EntityCount())
}

func TestRandomWalkKeepsInvariants(t *testing.T) {
	s := newSim(t)
	rng := rand.New(rand.NewSource(3))
	var movers []ecs.EntityID
	for i := 0; i < 10; i++ {
		id, err := s.ws.SpawnCreature(float64(rng.Intn(40))*32, float64(rng.Intn(40))*32, "player")
		require.NoError(t, err)
		movers = append(movers, id)
	}
	s.ws.Scatter(60, []string{"rock", "bush", "tree", "log", "grass"})

	actions := []event.Action{
		event.ActionMoveUp, event.ActionMoveDown, event.ActionMoveLeft,
		event.ActionMoveRight, event.ActionStop, event.ActionAttack,
	}
	for i := 0; i < 200; i++ {
		for _, id := range movers {
			if !s.ws.Alive(id) {
				continue
			}
			event.Emit(s.ws.Bus(), event.ActionRequested{EntityID: id, Action: actions[rng.Intn(len(actions))]})
			if rng.Intn(10) == 0 {
				event.Emit(s.ws.Bus(), event.ItemPickupRequested{HolderID: id})
			}
		}
		s.runner.Tick(50 * time.Millisecond)
		s.assertConsistent(t)
	}
}
