package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultGCInterval is the number of frames between garbage collection sweeps.
const DefaultGCInterval = 60

// DefaultFixedStep is the FixedFrame step in seconds.
const DefaultFixedStep = 1.0 / 60

// Option configures a Runtime.
type Option func(r *Runtime)

// WithLogger sets the logger used by the runtime and its entities.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithApp installs the application callbacks.
func WithApp(app App) Option {
	return func(r *Runtime) {
		r.app = app
	}
}

// WithGCInterval sets how many frames pass between garbage collection sweeps.
// Zero or less disables periodic collection.
func WithGCInterval(frames int) Option {
	return func(r *Runtime) {
		r.gcInterval = frames
	}
}

// WithFixedStep sets the delta time, in seconds, reported to FixedFrame handlers.
func WithFixedStep(seconds float64) Option {
	return func(r *Runtime) {
		if seconds > 0 {
			r.fixedStep = seconds
		}
	}
}

// Runtime owns the process-scoped state of the behavior layer: the component
// bridge, the frame-event registries, the worlds and the application lifecycle.
// It is not safe for concurrent use; all calls happen on the driving goroutine.
type Runtime struct {
	backend    Backend
	components *ComponentBridge
	properties *PropertyManager
	commands   *Commands
	worlds     map[WorldId]*World
	app        App
	logger     zerolog.Logger

	running    bool
	frame      FrameInfo
	lastTick   time.Time
	gcInterval int
	fixedStep  float64
}

// NewRuntime creates a runtime over backend and registers the built-in Owner
// component. The backend must provide Owner.
func NewRuntime(backend Backend, opts ...Option) *Runtime {
	r := &Runtime{
		backend:    backend,
		components: newComponentBridge(backend),
		properties: NewPropertyManager(),
		commands:   newCommands(),
		worlds:     make(map[WorldId]*World),
		app:        BaseApp{},
		logger:     zerolog.Nop(),
		gcInterval: DefaultGCInterval,
		fixedStep:  DefaultFixedStep,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.frame.FixedDeltaTime = r.fixedStep

	RegisterComponent[Owner](r.components, OwnerComponent)
	return r
}

// Backend returns the simulation backend.
func (r *Runtime) Backend() Backend {
	return r.backend
}

// Components returns the component bridge.
func (r *Runtime) Components() *ComponentBridge {
	return r.components
}

// Properties returns the frame-event property manager.
func (r *Runtime) Properties() *PropertyManager {
	return r.properties
}

// Commands returns the end-of-frame command buffer.
func (r *Runtime) Commands() *Commands {
	return r.commands
}

// Logger returns the runtime logger.
func (r *Runtime) Logger() *zerolog.Logger {
	return &r.logger
}

// SetApp replaces the application callbacks.
func (r *Runtime) SetApp(app App) {
	if app == nil {
		app = BaseApp{}
	}
	r.app = app
}

// World returns the world with the given id.
func (r *Runtime) World(id WorldId) *World {
	w, ok := r.worlds[id]
	if !ok {
		w = newWorld(r, id)
		r.worlds[id] = w
	}
	return w
}

// DefaultWorld returns the backend's default world.
func (r *Runtime) DefaultWorld() *World {
	return r.World(r.backend.DefaultWorldId())
}

// Frame returns information about the current tick.
func (r *Runtime) Frame() FrameInfo {
	return r.frame
}

// Log writes a diagnostic line from script code.
func (r *Runtime) Log(text string) {
	r.logger.Info().Str("source", "script").Msg(text)
}

// IsRunning reports whether the runtime is between OnStart and OnShutdown.
func (r *Runtime) IsRunning() bool {
	return r.running
}

// OnStart opens the frame gate and starts the application.
func (r *Runtime) OnStart() {
	if r.running {
		return
	}
	r.running = true
	r.lastTick = time.Time{}
	r.logger.Info().Msg("runtime started")
	r.app.OnStart()
}

// OnShutdown stops the application, flushes pending commands and closes the frame gate.
func (r *Runtime) OnShutdown() {
	if !r.running {
		return
	}
	r.app.OnShutdown()
	r.commands.Flush()
	r.running = false
	r.logger.Info().Uint64("frames", r.frame.Number).Msg("runtime shut down")
}

// OnBeginFrame advances the frame counter and runs the BeginFrame pass.
func (r *Runtime) OnBeginFrame() {
	if !r.running {
		return
	}
	now := time.Now()
	dt := 0.0
	if !r.lastTick.IsZero() {
		dt = now.Sub(r.lastTick).Seconds()
	}
	r.beginFrame(dt)
	r.lastTick = now
}

func (r *Runtime) beginFrame(dt float64) {
	r.frame.Number++
	r.frame.DeltaTime = dt
	r.app.OnBeginFrame()
	r.properties.BeginFrame()
}

// OnFixedFrame runs the FixedFrame pass. It is driven on its own cadence by the
// host; handlers integrate with Frame().FixedDeltaTime.
func (r *Runtime) OnFixedFrame() {
	if !r.running {
		return
	}
	r.properties.FixedFrame()
}

// OnFrame runs the Frame pass.
func (r *Runtime) OnFrame() {
	if !r.running {
		return
	}
	r.app.OnFrame()
	r.properties.Frame()
}

// OnEndFrame runs the EndFrame pass, flushes the command buffer and, every
// gcInterval frames, collects entities the backend has invalidated.
func (r *Runtime) OnEndFrame() {
	if !r.running {
		return
	}
	r.properties.EndFrame()
	r.app.OnEndFrame()
	r.commands.Flush()

	if r.gcInterval > 0 && r.frame.Number%uint64(r.gcInterval) == 0 {
		r.CollectGarbage()
	}
}

// CollectGarbage sweeps every world for invalidated entities.
func (r *Runtime) CollectGarbage() int {
	collected := 0
	for _, w := range r.worlds {
		collected += w.CollectGarbage()
	}
	return collected
}

// Tick runs one full frame with the given delta time in seconds.
func (r *Runtime) Tick(dt float64) {
	if !r.running {
		return
	}
	r.beginFrame(dt)
	r.OnFrame()
	r.OnEndFrame()
}

// Run ticks the runtime at the given interval until the context is cancelled.
func (r *Runtime) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			r.Tick(dt)
		}
	}
}
