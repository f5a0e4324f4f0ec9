package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/galaxies/internal/archive"
	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/data"
	"github.com/udisondev/galaxies/internal/db"
	"github.com/udisondev/galaxies/internal/sim"
)

const SimulatorConfigPath = "config/simulator.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath  string
	contentPath string
	encounter   string
	step        float64
	maxRounds   int
	seed        uint64
	parallelism int
}

func parseFlags(args []string) (flags, error) {
	f := flags{configPath: SimulatorConfigPath}
	if p := os.Getenv("GALAXIES_CONFIG"); p != "" {
		f.configPath = p
	}

	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", f.configPath, "simulator config (env GALAXIES_CONFIG)")
	fs.StringVar(&f.contentPath, "content", os.Getenv("GALAXIES_CONTENT"), "content YAML; embedded pack when empty (env GALAXIES_CONTENT)")
	fs.StringVar(&f.encounter, "encounter", "", "run only this encounter definition")
	fs.Float64Var(&f.step, "dt", sim.DefaultStep, "simulation time advanced per round")
	fs.IntVar(&f.maxRounds, "max-rounds", sim.DefaultMaxRounds, "rounds before an encounter is abandoned")
	fs.Uint64Var(&f.seed, "seed", 0, "roll seed; 0 draws a random one")
	fs.IntVar(&f.parallelism, "parallel", 0, "max encounters running at once (0 = all)")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	return f, nil
}

func run(ctx context.Context, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	// Load config FIRST to determine log level
	cfg, err := config.LoadSimulator(f.configPath)
	if err != nil {
		return fmt.Errorf("loading simulator config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("galaxies simulator starting", "log_level", cfg.LogLevel, "config", f.configPath)

	catalog, err := loadCatalog(f.contentPath)
	if err != nil {
		return err
	}

	defs := catalog.Encounters()
	if f.encounter != "" {
		def, err := catalog.Encounter(f.encounter)
		if err != nil {
			return err
		}
		defs = []data.EncounterDef{def}
	}
	if len(defs) == 0 {
		return errors.New("no encounters to run")
	}

	runner := sim.NewRunner(catalog, cfg.Combat)

	var sinks []archive.Sink
	if cfg.Archive.Database.Enabled {
		dsn := cfg.Archive.Database.DSN()
		database, err := db.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrationsPool(ctx, database.Pool()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database connected, migrations applied")

		repo := database.CombatLog()
		sinks = append(sinks, archive.NewPostgresSink(repo))
		runner.SetResultWriter(sim.NewDBResults(repo))
	}
	if cfg.Archive.Redis.Enabled {
		client, err := archive.NewRedisClient(ctx, cfg.Archive.Redis)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer client.Close()
		slog.Info("redis connected", "stream", cfg.Archive.Redis.Stream)

		sinks = append(sinks, archive.NewRedisStream(client, cfg.Archive.Redis.Stream, cfg.Archive.Redis.MaxLen))
	}

	var pump *archive.Pump
	if len(sinks) > 0 {
		pump = archive.NewPump(cfg.Archive, sinks...)
		runner.SetPublisher(pump)
	}

	g, gctx := errgroup.WithContext(ctx)
	if pump != nil {
		g.Go(func() error {
			// the pump outlives gctx cancellation long enough to flush
			return pump.Run(context.WithoutCancel(gctx))
		})
	}

	var reports []sim.Report
	g.Go(func() error {
		if pump != nil {
			defer pump.Close()
		}
		var err error
		reports, err = runner.RunAll(gctx, defs, sim.Options{
			Step:        f.step,
			MaxRounds:   f.maxRounds,
			Seed:        f.seed,
			Parallelism: f.parallelism,
			DebugAI:     logLevel == slog.LevelDebug,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if pump != nil {
		published, dropped, written, failed := pump.Stats()
		slog.Info("archive flushed",
			"published", published,
			"dropped", dropped,
			"written", written,
			"failed", failed)
	}

	printReports(os.Stdout, reports)
	return nil
}

func loadCatalog(path string) (*data.Catalog, error) {
	if path == "" {
		c, err := data.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("loading embedded content: %w", err)
		}
		return c, nil
	}
	c, err := data.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return c, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
