package world_test

import (
	"testing"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFocusTarget(t *testing.T) {
	f := newFixture(t)
	holder := f.create(t, component.KindCreature, 320, 320, "player")
	below := f.create(t, component.KindStaticObject, 320, 360, "tree") // gap 8, facing down by default
	above := f.create(t, component.KindStaticObject, 320, 270, "rock") // gap 18, behind
	f.create(t, component.KindStaticObject, 320, 352, "grass")          // not interactable

	assert.Equal(t, below, f.ws.FindFocusTarget(holder))

	require.NoError(t, f.ws.Move(holder, component.DirUp))
	assert.Equal(t, above, f.ws.FindFocusTarget(holder))

	require.NoError(t, f.ws.Move(holder, component.DirLeft))
	assert.Equal(t, ecs.NullEntity, f.ws.FindFocusTarget(holder))
}

func TestFindFocusTargetPicksNearest(t *testing.T) {
	f := newFixture(t)
	holder := f.create(t, component.KindCreature, 320, 320, "player")
	f.create(t, component.KindStaticObject, 320, 390, "rock")
	near := f.create(t, component.KindItem, 328, 356, "log")

	assert.Equal(t, near, f.ws.FindFocusTarget(holder))
}

func TestFindFocusTargetTieBreaksOnHandle(t *testing.T) {
	f := newFixture(t, func(o *world.Options) { o.FocusCone = 360 })
	holder := f.create(t, component.KindCreature, 320, 320, "player")
	right := f.create(t, component.KindStaticObject, 360, 320, "rock")
	left := f.create(t, component.KindStaticObject, 280, 320, "rock")
	require.Less(t, right, left)

	assert.Equal(t, right, f.ws.FindFocusTarget(holder))
}

func TestFindFocusTargetOutOfRange(t *testing.T) {
	f := newFixture(t)
	holder := f.create(t, component.KindCreature, 320, 320, "player")
	f.create(t, component.KindStaticObject, 320, 420, "tree") // gap 68 > 48

	assert.Equal(t, ecs.NullEntity, f.ws.FindFocusTarget(holder))
}

func TestSetAndClearFocus(t *testing.T) {
	f := newFixture(t)
	holder := f.create(t, component.KindCreature, 0, 0, "player")
	rock := f.create(t, component.KindStaticObject, 0, 40, "rock")

	require.NoError(t, f.ws.SetFocus(holder, rock))
	fc, _ := f.ws.Foci.Get(holder)
	assert.Equal(t, rock, fc.Target)

	f.ws.ClearFocus(holder)
	assert.False(t, fc.Focused())

	assert.ErrorIs(t, f.ws.SetFocus(rock, holder), ecs.ErrUnknownEntity, "rocks cannot focus")

	require.NoError(t, f.ws.ReleaseEntity(component.KindStaticObject, rock))
	assert.ErrorIs(t, f.ws.SetFocus(holder, rock), ecs.ErrUnknownEntity)
}
