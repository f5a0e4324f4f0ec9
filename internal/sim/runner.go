// Package sim runs catalog encounters to completion.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/galaxies/internal/ai"
	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/data"
	"github.com/udisondev/galaxies/internal/dice"
	"github.com/udisondev/galaxies/internal/game/combat"
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
	"github.com/udisondev/galaxies/internal/uuid"
)

const (
	DefaultStep      = 1.0
	DefaultMaxRounds = 200
)

// Options control one simulation run.
type Options struct {
	// Step is the simulation time advanced after every round.
	Step float64
	// MaxRounds stops an encounter that has not finished.
	MaxRounds int
	// Seed makes rolls reproducible when non-zero. Encounter i uses Seed+i.
	Seed uint64
	// Parallelism bounds concurrently running encounters (0 = unbounded).
	Parallelism int
	// DebugAI logs every AI turn, including rejected actions.
	DebugAI bool
}

// Report summarises one finished encounter.
type Report struct {
	// Encounter is the run id: the definition id plus a unique suffix.
	Encounter  string
	Definition string
	Outcome    combat.Outcome
	Rounds     int
	Elapsed    float64
	Entries    int
	Survivors  []Survivor
}

// Survivor is a character still standing when the encounter ended.
type Survivor struct {
	ID      string
	Kind    model.Kind
	Level   int32
	Health  float64
	Summary stats.Summary
}

// ResultWriter stores encounter summaries.
type ResultWriter interface {
	SaveReport(ctx context.Context, r Report) error
}

// Publisher receives every combat log entry. Implemented by *archive.Pump.
type Publisher interface {
	Attach(log *combat.Log)
}

// Runner builds encounters from a catalog and drives them with BasicAI.
type Runner struct {
	catalog *data.Catalog
	cfg     config.Combat

	publisher Publisher
	results   ResultWriter
	ids       uuid.Generator
	runs      uuid.Generator
	newAI     func() ai.Controller
}

// NewRunner creates a Runner over catalog with combat tuning cfg.
func NewRunner(catalog *data.Catalog, cfg config.Combat) *Runner {
	return &Runner{
		catalog: catalog,
		cfg:     cfg,
		ids:     uuid.NewGoogleUUIDGenerator(),
		runs:    uuid.NewGoogleUUIDGenerator(),
		newAI:   func() ai.Controller { return ai.NewBasicAI() },
	}
}

// SetPublisher attaches every encounter log to p.
func (r *Runner) SetPublisher(p Publisher) {
	r.publisher = p
}

// SetResultWriter stores every report through w.
func (r *Runner) SetResultWriter(w ResultWriter) {
	r.results = w
}

// SetIDGenerator overrides the status effect instance id generator.
func (r *Runner) SetIDGenerator(ids uuid.Generator) {
	r.ids = ids
}

// SetRunIDGenerator overrides the suffix generator of encounter run ids.
func (r *Runner) SetRunIDGenerator(runs uuid.Generator) {
	r.runs = runs
}

// SetControllerFactory overrides the controller given to every participant.
func (r *Runner) SetControllerFactory(f func() ai.Controller) {
	r.newAI = f
}

// RunAll runs defs concurrently and returns reports in defs order.
// The first build or storage error cancels the remaining encounters.
func (r *Runner) RunAll(ctx context.Context, defs []data.EncounterDef, opts Options) ([]Report, error) {
	reports := make([]Report, len(defs))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for i, def := range defs {
		g.Go(func() error {
			rep, err := r.Run(gctx, def, sourceFor(opts.Seed, i), opts)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func sourceFor(seed uint64, i int) dice.Source {
	if seed == 0 {
		return dice.NewUnseededSource()
	}
	return dice.NewRandomSource(seed + uint64(i))
}

// Run builds def and steps it until one side wins, MaxRounds pass or ctx
// is cancelled. A cancelled run still returns its partial report.
//
// Workflow:
//  1. instantiate characters from templates, fill their pools, join
//  2. every round: each living participant takes one AI turn
//  3. advance effects, cooldowns and regeneration by Step
func (r *Runner) Run(ctx context.Context, def data.EncounterDef, rng dice.Source, opts Options) (Report, error) {
	opts = withDefaults(opts)

	enc, ticks, err := r.build(def, rng, opts.DebugAI)
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	rounds := 0
	for enc.Outcome() == combat.OutcomeOngoing && rounds < opts.MaxRounds {
		if ctx.Err() != nil {
			break
		}
		ticks.Tick(enc)
		enc.Update(opts.Step)
		rounds++
	}

	rep := report(enc, rounds)
	rep.Definition = def.ID
	slog.Info("encounter finished",
		"encounter", rep.Encounter,
		"outcome", rep.Outcome,
		"rounds", rep.Rounds,
		"entries", rep.Entries,
		"took", time.Since(start))

	if r.results != nil {
		if err := r.results.SaveReport(ctx, rep); err != nil {
			return rep, fmt.Errorf("saving report of %s: %w", def.ID, err)
		}
	}
	return rep, nil
}

func withDefaults(o Options) Options {
	if !(o.Step > 0) {
		o.Step = DefaultStep
	}
	if o.MaxRounds <= 0 {
		o.MaxRounds = DefaultMaxRounds
	}
	return o
}

func (r *Runner) build(def data.EncounterDef, rng dice.Source, debugAI bool) (*combat.Encounter, *ai.TickManager, error) {
	enc := combat.NewEncounter(def.ID+"/"+r.runs.New(), r.cfg, rng, r.ids)
	if r.publisher != nil {
		r.publisher.Attach(enc.Log())
	}
	ticks := ai.NewTickManager()
	ticks.SetDebug(debugAI)

	seen := make(map[string]int)
	for _, tmpl := range append(append([]string(nil), def.Players...), def.Enemies...) {
		seen[tmpl]++
		c, err := r.catalog.NewCharacter(tmpl, fmt.Sprintf("%s-%d", tmpl, seen[tmpl]))
		if err != nil {
			return nil, nil, fmt.Errorf("encounter %s: %w", def.ID, err)
		}
		stats.Spawn(c)
		if err := enc.Join(c); err != nil {
			return nil, nil, fmt.Errorf("encounter %s: %w", def.ID, err)
		}
		ticks.Register(c.ID(), r.newAI())
	}
	return enc, ticks, nil
}

func report(enc *combat.Encounter, rounds int) Report {
	rep := Report{
		Encounter: enc.ID(),
		Outcome:   enc.Outcome(),
		Rounds:    rounds,
		Elapsed:   enc.Elapsed(),
	}
	// Seq counts every append, including entries the ring already evicted.
	if last, ok := enc.Log().Last(); ok {
		rep.Entries = int(last.Seq)
	}
	for _, c := range enc.Participants() {
		if c.IsDead() {
			continue
		}
		rep.Survivors = append(rep.Survivors, Survivor{
			ID:      c.ID(),
			Kind:    c.Kind(),
			Level:   c.Level(),
			Health:  c.Health(),
			Summary: stats.Summarize(c),
		})
	}
	return rep
}
