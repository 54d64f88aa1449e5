package world

import (
	"fmt"

	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/scripting"
	"go.uber.org/zap"
)

// Move sets id's velocity to its speed along dir and clears its focus; the
// focus system reselects a target ahead of the new heading.
func (s *State) Move(id ecs.EntityID, dir component.Direction) error {
	vel, ok := s.Velocities.Get(id)
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrNoVelocity)
	}
	ux, uy := dir.Unit()
	vel.VX, vel.VY = ux*vel.Speed, uy*vel.Speed
	vel.Facing = dir
	if f, ok := s.Foci.Get(id); ok {
		f.Clear()
	}
	return nil
}

// Stop zeroes id's velocity. Facing is kept.
func (s *State) Stop(id ecs.EntityID) error {
	vel, ok := s.Velocities.Get(id)
	if !ok {
		return fmt.Errorf("stop %s: %w", id, ErrNoVelocity)
	}
	vel.VX, vel.VY = 0, 0
	return nil
}

// Attack hits attacker's focus target. Damage comes from the combat script;
// targets without Health are ignored. Returns the damage dealt.
func (s *State) Attack(attacker ecs.EntityID) (float64, error) {
	if !s.ECS.Alive(attacker) {
		return 0, fmt.Errorf("attack: %s: %w", attacker, ecs.ErrUnknownEntity)
	}
	f, ok := s.Foci.Get(attacker)
	if !ok || !f.Focused() {
		return 0, nil
	}
	target := f.Target
	th, ok := s.Healths.Get(target)
	if !ok {
		return 0, nil
	}

	ctx := scripting.AttackContext{TargetHealth: th.Current, TargetMaxHealth: th.Max}
	if t := s.TypeOf(attacker); t != nil {
		ctx.AttackerDamage = t.Damage
	}
	if ah, ok := s.Healths.Get(attacker); ok {
		ctx.AttackerHealth, ctx.AttackerMaxHealth = ah.Current, ah.Max
	}
	if ident, ok := s.Identities.Get(target); ok {
		ctx.TargetCategory = ident.Category
	}

	res := scripting.AttackResult{Hit: true, Damage: max(ctx.AttackerDamage, 1)}
	if s.scripts != nil {
		res = s.scripts.CalcAttackDamage(ctx)
	}
	if !res.Hit || res.Damage <= 0 {
		s.verbose("attack missed", zap.Stringer("attacker", attacker), zap.Stringer("target", target))
		return 0, nil
	}
	return res.Damage, s.ApplyDamage(target, res.Damage)
}

// ApplyDamage lowers id's health. The health system picks up entities that
// reach zero on its next pass.
func (s *State) ApplyDamage(id ecs.EntityID, amount float64) error {
	h, ok := s.Healths.Get(id)
	if !ok {
		return fmt.Errorf("damage %s: %w", id, ecs.ErrUnknownEntity)
	}
	h.Current -= amount
	s.log.Debug("damage applied",
		zap.String("target", s.EntityName(id)),
		zap.Float64("amount", amount),
		zap.Float64("health", h.Current),
	)
	return nil
}
