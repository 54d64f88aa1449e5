package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/emberwild/worldcore/internal/config"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"github.com/emberwild/worldcore/internal/core/event"
	coresys "github.com/emberwild/worldcore/internal/core/system"
	"github.com/emberwild/worldcore/internal/data"
	"github.com/emberwild/worldcore/internal/scripting"
	"github.com/emberwild/worldcore/internal/system"
	"github.com/emberwild/worldcore/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(cfg *config.Config) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             worldcore  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        headless survival simulation       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mworld:\033[0m %dx%d cells \033[90m(%.0f px each)\033[0m\n\n",
		cfg.World.Width, cfg.World.Height, cfg.World.CellSize)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/world.toml"
	if p := os.Getenv("WORLDCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg)

	// 3. Static data
	printSection("data")
	types, err := data.LoadTypeRegistry(cfg.Data.TypeList)
	if err != nil {
		return fmt.Errorf("type list: %w", err)
	}
	printStat("entity types", types.Count())
	loot, err := data.LoadLootTable(cfg.Data.LootList)
	if err != nil {
		return fmt.Errorf("loot list: %w", err)
	}
	printStat("loot tables", loot.Count())

	lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()
	printOK("combat scripts loaded")
	fmt.Println()

	// 4. World
	printSection("world")
	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ws := world.NewState(world.OptionsFromConfig(cfg), world.Deps{
		Types:     types,
		Loot:      loot,
		Scripts:   lua,
		Presenter: world.NewHeadlessPresenter(log),
		Rand:      rng,
		Log:       log.Named("world"),
	})

	tiles, err := ws.GenerateTileset(types.IDs(data.CategoryTile))
	if err != nil {
		return fmt.Errorf("tileset: %w", err)
	}
	printStat("tiles", tiles)

	var scatterTypes []string
	for _, id := range types.IDs("") {
		if t := types.Get(id); t.Category != data.CategoryTile && t.ID != "player" {
			scatterTypes = append(scatterTypes, id)
		}
	}
	objects := ws.Scatter(cfg.World.Scatter, scatterTypes)
	printStat("objects", len(objects))

	player, err := ws.SpawnCreature(cfg.World.PixelWidth()/2, cfg.World.PixelHeight()/2, "player")
	if err != nil {
		return fmt.Errorf("spawn player: %w", err)
	}
	printOK(fmt.Sprintf("%s spawned", ws.EntityName(player)))
	fmt.Println()

	// 5. Systems
	runner := coresys.NewRunner()
	system.RegisterAll(runner, ws, log)

	bus := ws.Bus()
	event.Subscribe(bus, func(ev event.ItemPickedUp) {
		log.Info("picked up", zap.Stringer("holder", ev.HolderID), zap.Stringer("item", ev.ItemID))
	})
	event.Subscribe(bus, func(ev event.EntityRemoved) {
		log.Debug("removed", zap.Stringer("entity", ev.EntityID))
	})

	// Autopilot stands in for an input device: it emits from its own
	// goroutine, the tick loop drains at the lifecycle phase.
	stop := make(chan struct{})
	go autopilot(bus, player, cfg.Simulation.TickRate*4, seed, stop)

	// 6. Tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("running")
	printReady(fmt.Sprintf("tick %s, %d entities", cfg.Simulation.TickRate, ws.EntityCount()))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Simulation.TickRate)
			if cfg.Simulation.MaxTicks > 0 && runner.Ticks() >= uint64(cfg.Simulation.MaxTicks) {
				close(stop)
				report(ws, runner, player, log)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			close(stop)
			report(ws, runner, player, log)
			return nil
		}
	}
}

// autopilot wanders the player around, hitting and collecting whatever it
// ends up facing.
func autopilot(bus *event.Bus, player ecs.EntityID, every time.Duration, seed int64, stop <-chan struct{}) {
	rng := rand.New(rand.NewSource(seed + 1))
	moves := []event.Action{
		event.ActionMoveUp, event.ActionMoveDown, event.ActionMoveLeft,
		event.ActionMoveRight, event.ActionStop,
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			switch n := rng.Intn(10); {
			case n < 5:
				event.Emit(bus, event.ActionRequested{EntityID: player, Action: moves[rng.Intn(len(moves))]})
			case n < 8:
				event.Emit(bus, event.ActionRequested{EntityID: player, Action: event.ActionAttack})
			case n < 9:
				event.Emit(bus, event.ItemPickupRequested{HolderID: player})
			default:
				event.Emit(bus, event.InventoryToggleRequested{HolderID: player})
			}
		}
	}
}

func report(ws *world.State, runner *coresys.Runner, player ecs.EntityID, log *zap.Logger) {
	for _, st := range runner.Stats() {
		log.Info("system stats",
			zap.String("system", st.Name),
			zap.Stringer("phase", st.Phase),
			zap.Int64("runs", st.Executions),
			zap.Duration("avg", st.AvgDuration()),
			zap.Duration("max", st.MaxDuration),
		)
	}
	log.Info("simulation stopped",
		zap.Uint64("ticks", runner.Ticks()),
		zap.Int("entities", ws.EntityCount()),
		zap.Int("indexed", ws.Index.Len()),
	)
	if ws.Alive(player) {
		fmt.Printf("\n  inventory of %s:\n%s\n", ws.EntityName(player), ws.ListInventory(player))
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
