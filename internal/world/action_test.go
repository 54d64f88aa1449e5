package world_test

import (
	"math/rand"
	"testing"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/data"
	"github.com/emberwild/worldcore/internal/scripting"
	"github.com/emberwild/worldcore/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMoveAndStop(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, component.KindCreature, 100, 100, "player")
	rock := f.create(t, component.KindStaticObject, 100, 140, "rock")
	require.NoError(t, f.ws.SetFocus(id, rock))

	tests := []struct {
		dir    component.Direction
		vx, vy float64
	}{
		{component.DirUp, 0, -100},
		{component.DirDown, 0, 100},
		{component.DirLeft, -100, 0},
		{component.DirRight, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			require.NoError(t, f.ws.Move(id, tt.dir))
			vel, _ := f.ws.Velocities.Get(id)
			assert.Equal(t, tt.vx, vel.VX)
			assert.Equal(t, tt.vy, vel.VY)
			assert.Equal(t, tt.dir, vel.Facing)
		})
	}

	fc, _ := f.ws.Foci.Get(id)
	assert.False(t, fc.Focused(), "moving clears focus")

	require.NoError(t, f.ws.Stop(id))
	vel, _ := f.ws.Velocities.Get(id)
	assert.Zero(t, vel.VX)
	assert.Zero(t, vel.VY)
	assert.Equal(t, component.DirRight, vel.Facing)

	assert.ErrorIs(t, f.ws.Move(rock, component.DirUp), world.ErrNoVelocity)
	assert.ErrorIs(t, f.ws.Stop(rock), world.ErrNoVelocity)
}

func TestAttackDamagesFocusTarget(t *testing.T) {
	f := newFixture(t)
	player := f.create(t, component.KindCreature, 100, 100, "player")
	tree := f.create(t, component.KindStaticObject, 100, 140, "tree")

	dmg, err := f.ws.Attack(player)
	require.NoError(t, err)
	assert.Zero(t, dmg, "no focus, no hit")

	require.NoError(t, f.ws.SetFocus(player, tree))
	dmg, err = f.ws.Attack(player)
	require.NoError(t, err)
	assert.Equal(t, 1.0, dmg)

	h, _ := f.ws.Healths.Get(tree)
	assert.Equal(t, 2.0, h.Current)
}

func TestAttackUsesCombatScript(t *testing.T) {
	eng, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(eng.Close)

	types, err := data.NewTypeRegistry(
		data.EntityType{ID: "brute", KindName: "creature", Category: "creature", Width: 32, Height: 32, Health: 100, Damage: 6},
		data.EntityType{ID: "rock", KindName: "staticObject", Category: "rock", Width: 32, Height: 32, Health: 50},
	)
	require.NoError(t, err)
	ws := world.NewState(defaultOptions(), world.Deps{
		Types:   types,
		Scripts: eng,
		Rand:    rand.New(rand.NewSource(1)),
	})

	brute, err := ws.CreateEntity(component.KindCreature, 0, 0, "brute")
	require.NoError(t, err)
	rock, err := ws.CreateEntity(component.KindStaticObject, 0, 40, "rock")
	require.NoError(t, err)
	require.NoError(t, ws.SetFocus(brute, rock))

	dmg, err := ws.Attack(brute)
	require.NoError(t, err)
	assert.Equal(t, 6.0, dmg)

	// wounded attackers deal half damage
	bh, _ := ws.Healths.Get(brute)
	bh.Current = 10
	dmg, err = ws.Attack(brute)
	require.NoError(t, err)
	assert.Equal(t, 3.0, dmg)

	rh, _ := ws.Healths.Get(rock)
	assert.Equal(t, 41.0, rh.Current)
}

func TestApplyDamage(t *testing.T) {
	f := newFixture(t)
	tree := f.create(t, component.KindStaticObject, 0, 0, "tree")
	item := f.create(t, component.KindItem, 64, 0, "log")

	require.NoError(t, f.ws.ApplyDamage(tree, 5))
	h, _ := f.ws.Healths.Get(tree)
	assert.Equal(t, -2.0, h.Current)

	assert.Error(t, f.ws.ApplyDamage(item, 1), "items have no health")
}
