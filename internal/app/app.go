// Package app wires the configured scenario to the scheduler: it owns the
// application logger, loads the scenario, submits its workloads as fibers
// and reports the run's outcome.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vk/strand/internal/config"
	"github.com/vk/strand/internal/ctxlog"
	"github.com/vk/strand/internal/sched"
)

// Config holds everything the CLI hands the application. Scenario pool
// settings take precedence over the flag-derived values here.
type Config struct {
	ScenarioPath  string
	Workers       int
	QueueCapacity int
	LogFormat     string
	LogLevel      string
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	scenario *config.Scenario
}

// NewApp constructs the application with its own isolated logger and the
// scenario already loaded. A scenario that cannot be loaded is a fatal
// startup error; NewApp panics and the entrypoint recovers for a clean
// exit message.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	scenario, err := config.Load(ctx, cfg.ScenarioPath)
	if err != nil {
		panic(fmt.Errorf("failed to load scenario: %w", err))
	}
	logger.Debug("Scenario loaded.")

	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		scenario: scenario,
	}
}

// Run builds the pool, submits every workload's fibers and drives the run
// to completion.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	pool, err := sched.New(a.poolConfig())
	if err != nil {
		return err
	}

	submitted := 0
	for _, w := range a.scenario.Workloads {
		yields := w.Yields
		for i := 0; i < w.Fibers; i++ {
			pool.Submit(fmt.Sprintf("%s-%d", w.Name, i), func(f *sched.Fiber) {
				for j := 0; j < yields; j++ {
					f.Yield()
				}
			})
			submitted++
		}
	}
	a.logger.Info("Workloads submitted.", "fibers", submitted, "workers", pool.Workers())

	start := time.Now()
	if err := pool.Run(ctx); err != nil {
		return fmt.Errorf("pool run failed: %w", err)
	}
	elapsed := time.Since(start)

	stats := pool.Stats()
	a.logger.Info("Run complete.",
		"executed", stats.Executed,
		"stolen", stats.Stolen,
		"overflowed", stats.Overflowed,
		"switches", stats.Switches,
		"yields", stats.Yields,
		"elapsed", elapsed,
	)
	fmt.Fprintf(a.outW, "ran %d fibers across %d workers in %s (%d switches, %d steals)\n",
		stats.Executed, pool.Workers(), elapsed.Round(time.Millisecond), stats.Switches, stats.Stolen)
	return nil
}

// poolConfig merges the flag-derived sizing with the scenario's pool
// block; the scenario wins where it says something.
func (a *App) poolConfig() sched.Config {
	cfg := sched.Config{
		Workers:       a.cfg.Workers,
		QueueCapacity: a.cfg.QueueCapacity,
	}
	if p := a.scenario.Pool; p != nil {
		if p.Workers > 0 {
			cfg.Workers = p.Workers
		}
		if p.QueueCapacity > 0 {
			cfg.QueueCapacity = p.QueueCapacity
		}
		if p.StackSize > 0 {
			cfg.StackSize = p.StackSize
		}
	}
	return cfg
}
