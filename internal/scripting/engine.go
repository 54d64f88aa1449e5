package scripting

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed defaults/*.lua
var defaultScripts embed.FS

// Engine wraps a single gopher-lua VM for game formula execution.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine, loads the embedded defaults, then every
// script under scriptsDir/combat. A missing directory keeps the defaults.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadDefaults(); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load default scripts: %w", err)
	}

	if scriptsDir != "" {
		combatPath := filepath.Join(scriptsDir, "combat")
		if err := e.loadDir(combatPath); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load combat scripts: %w", err)
		}
	}

	return e, nil
}

func (e *Engine) loadDefaults() error {
	entries, err := defaultScripts.ReadDir("defaults")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		src, err := defaultScripts.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// AttackContext holds pre-packed data for an attack calculation.
type AttackContext struct {
	AttackerDamage    float64
	AttackerHealth    float64
	AttackerMaxHealth float64
	TargetHealth      float64
	TargetMaxHealth   float64
	TargetCategory    string
}

// AttackResult is returned by the Lua attack function.
type AttackResult struct {
	Hit    bool
	Damage float64
}

// CalcAttackDamage calls the Lua calc_attack_damage function. Script errors
// fall back to a one-point hit so combat never stalls.
func (e *Engine) CalcAttackDamage(ctx AttackContext) AttackResult {
	fallback := AttackResult{Hit: true, Damage: 1}

	fn := e.vm.GetGlobal("calc_attack_damage")
	if fn == lua.LNil {
		e.log.Error("lua function calc_attack_damage not found")
		return fallback
	}

	t := e.vm.NewTable()

	atk := e.vm.NewTable()
	atk.RawSetString("damage", lua.LNumber(ctx.AttackerDamage))
	atk.RawSetString("health", lua.LNumber(ctx.AttackerHealth))
	atk.RawSetString("max_health", lua.LNumber(ctx.AttackerMaxHealth))
	t.RawSetString("attacker", atk)

	tgt := e.vm.NewTable()
	tgt.RawSetString("health", lua.LNumber(ctx.TargetHealth))
	tgt.RawSetString("max_health", lua.LNumber(ctx.TargetMaxHealth))
	tgt.RawSetString("category", lua.LString(ctx.TargetCategory))
	t.RawSetString("target", tgt)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_attack_damage error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_attack_damage returned non-table")
		return fallback
	}

	return AttackResult{
		Hit:    rt.RawGetString("hit") == lua.LTrue,
		Damage: float64(lua.LVAsNumber(rt.RawGetString("damage"))),
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
