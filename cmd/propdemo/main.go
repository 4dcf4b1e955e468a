package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/propcore/debugui"
	debugui_ebiten "github.com/plus3/propcore/debugui/ebiten"
	"github.com/plus3/propcore/game"
	"github.com/plus3/propcore/internal/config"
	"github.com/plus3/propcore/memdb"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	duration := flag.Float64("duration", cfg.Duration, "Seconds of simulated time to run headless.")
	entityCount := flag.Int("entities", cfg.Entities, "The population the spawner maintains.")
	tickRate := flag.Int("tick-rate", cfg.TickRate, "Frames per simulated second.")
	gcInterval := flag.Int("gc-interval", cfg.GCInterval, "Frames between garbage collection sweeps.")
	templates := flag.String("templates", cfg.TemplatesPath, "JSON file with entity templates.")
	profileMode := flag.String("profile", cfg.Profile, "Write a cpu or mem profile to the working directory.")
	logLevel := flag.String("log-level", cfg.LogLevel, "Minimum log level.")
	pretty := flag.Bool("pretty", cfg.LogPretty, "Human readable log output.")
	window := flag.Bool("window", false, "Open a window with the debug UI instead of running headless.")
	seed := flag.Int64("seed", 1, "Random seed for the simulation.")
	flag.Parse()

	cfg.Duration = *duration
	cfg.Entities = *entityCount
	cfg.TickRate = *tickRate
	cfg.GCInterval = *gcInterval
	cfg.TemplatesPath = *templates
	cfg.Profile = *profileMode
	cfg.LogLevel = *logLevel
	cfg.LogPretty = *pretty
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(cfg)

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	if err := run(cfg, logger, *window, *seed); err != nil {
		logger.Error().Err(err).Msg("propdemo failed")
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, _ := cfg.Level()
	logger := zerolog.New(os.Stderr)
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// simulation is the demo world: a director entity spawning units and damaging
// them at random.
type simulation struct {
	db       *memdb.Database
	runtime  *game.Runtime
	director *game.Entity
	spawner  *Spawner
	kills    int
}

func newSimulation(cfg config.Config, logger zerolog.Logger, seed int64) (*simulation, error) {
	db, err := newDatabase(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}

	sim := &simulation{db: db}
	sim.runtime = game.NewRuntime(db,
		game.WithLogger(logger),
		game.WithGCInterval(cfg.GCInterval),
		game.WithFixedStep(1.0/float64(cfg.TickRate)),
	)
	game.RegisterComponent[Velocity](sim.runtime.Components(), "Velocity")
	game.RegisterComponent[Health](sim.runtime.Components(), "Health")

	world := sim.runtime.DefaultWorld()
	sim.director, err = world.CreateEntity(memdb.EmptyTemplate)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create director")
	}

	r := rand.New(rand.NewSource(seed))
	sim.spawner = &Spawner{
		Template:   unitTemplate,
		Population: cfg.Entities,
		Rand:       r,
		Kills:      &sim.kills,
	}
	sim.director.AddProperty(sim.spawner)
	sim.director.AddProperty(&Hazard{Interval: 2, Amount: 25, Rand: r})
	return sim, nil
}

func run(cfg config.Config, logger zerolog.Logger, window bool, seed int64) error {
	sim, err := newSimulation(cfg, logger, seed)
	if err != nil {
		return err
	}

	if window {
		if _, err := debugui.SpawnDebugUI(sim.runtime.DefaultWorld()); err != nil {
			return err
		}
		backend := debugui_ebiten.NewImguiBackend("propdemo", 1280, 720)
		return debugui_ebiten.NewHost(sim.runtime, backend).Run()
	}

	report := sim.runHeadless(cfg, logger)
	fmt.Println("\n\n--- Property Runtime Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return eris.Wrap(err, "failed to generate report")
	}
	fmt.Println("--- End of Report ---")
	return nil
}

// runHeadless ticks the runtime with a fixed step until the configured
// simulated duration has elapsed.
func (sim *simulation) runHeadless(cfg config.Config, logger zerolog.Logger) *Report {
	frames := int(cfg.Duration * float64(cfg.TickRate))
	dt := 1.0 / float64(cfg.TickRate)

	report := &Report{
		Duration:   time.Duration(cfg.Duration * float64(time.Second)),
		TickRate:   cfg.TickRate,
		Population: cfg.Entities,
		GCInterval: cfg.GCInterval,
		FrameTime: Stats{
			Samples: make([]time.Duration, 0, frames),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Int("frames", frames).Float64("dt", dt).Msg("running headless simulation")
	sim.runtime.OnStart()
	startTime := time.Now()

	for range frames {
		frameStart := time.Now()
		sim.runtime.OnFixedFrame()
		sim.runtime.Tick(dt)
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
	}

	report.TotalTime = time.Since(startTime)
	sim.runtime.OnShutdown()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Frames = sim.runtime.Frame().Number
	report.Spawned = sim.spawner.Spawned
	report.Kills = sim.kills
	report.LiveEntities = sim.runtime.DefaultWorld().Len()
	report.Passes = sim.runtime.Properties().Stats().Passes
	report.Storage = sim.db.Stats()
	logger.Info().Uint64("frames", report.Frames).Dur("elapsed", report.TotalTime).Msg("simulation finished")
	return report
}
