package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/galaxies/internal/game/combat"
)

// LogRow is a persisted combat log entry. Effects keep only kind names.
type LogRow struct {
	Encounter  string
	Seq        uint64
	Type       string
	AttackerID string
	TargetID   string
	ActionID   string
	Damage     float64
	Critical   bool
	Blocked    bool
	Dodged     bool
	Effects    []string
	Timestamp  time.Time
}

// EncounterResult is the summary stored when an encounter finishes.
type EncounterResult struct {
	Encounter string
	Outcome   string
	Elapsed   float64
	Rounds    int
}

// CombatLogRepository stores combat log entries and encounter results.
type CombatLogRepository struct {
	pool *pgxpool.Pool
}

// NewCombatLogRepository создаёт repository поверх pool.
func NewCombatLogRepository(pool *pgxpool.Pool) *CombatLogRepository {
	return &CombatLogRepository{pool: pool}
}

// SaveEntries inserts entries in one transaction via COPY.
// Entries already stored (same encounter and seq) make the whole batch fail.
func (r *CombatLogRepository) SaveEntries(ctx context.Context, entries []combat.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.Encounter, int64(e.Seq), string(e.Type),
			e.AttackerID, e.TargetID, e.ActionID,
			e.Damage, e.Critical, e.Blocked, e.Dodged,
			e.EffectKinds(), e.Timestamp,
		})
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning combat log transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"combat_log"},
		[]string{
			"encounter_id", "seq", "event_type",
			"attacker_id", "target_id", "action_id",
			"damage", "critical", "blocked", "dodged",
			"effects", "logged_at",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying %d combat log entries: %w", len(entries), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing combat log entries: %w", err)
	}

	slog.Debug("saved combat log entries", "count", len(entries))
	return nil
}

// ListByEncounter returns stored entries of one encounter ordered by seq.
func (r *CombatLogRepository) ListByEncounter(ctx context.Context, encounterID string) ([]LogRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT encounter_id, seq, event_type, attacker_id, target_id, action_id,
		        damage, critical, blocked, dodged, effects, logged_at
		 FROM combat_log WHERE encounter_id = $1 ORDER BY seq`, encounterID)
	if err != nil {
		return nil, fmt.Errorf("querying combat log of %q: %w", encounterID, err)
	}
	defer rows.Close()

	var result []LogRow
	for rows.Next() {
		var (
			row LogRow
			seq int64
		)
		if err := rows.Scan(&row.Encounter, &seq, &row.Type, &row.AttackerID, &row.TargetID, &row.ActionID,
			&row.Damage, &row.Critical, &row.Blocked, &row.Dodged, &row.Effects, &row.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning combat log row: %w", err)
		}
		row.Seq = uint64(seq)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating combat log rows: %w", err)
	}
	return result, nil
}

// SaveResult upserts the summary of a finished encounter.
func (r *CombatLogRepository) SaveResult(ctx context.Context, res EncounterResult) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO encounter_results (encounter_id, outcome, elapsed, rounds)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (encounter_id) DO UPDATE
		 SET outcome = EXCLUDED.outcome, elapsed = EXCLUDED.elapsed,
		     rounds = EXCLUDED.rounds, finished_at = NOW()`,
		res.Encounter, res.Outcome, res.Elapsed, res.Rounds)
	if err != nil {
		return fmt.Errorf("saving result of %q: %w", res.Encounter, err)
	}
	return nil
}

// Result returns the stored summary of an encounter.
// Returns nil, nil if the encounter has no result yet.
func (r *CombatLogRepository) Result(ctx context.Context, encounterID string) (*EncounterResult, error) {
	res := EncounterResult{Encounter: encounterID}
	err := r.pool.QueryRow(ctx,
		`SELECT outcome, elapsed, rounds FROM encounter_results WHERE encounter_id = $1`,
		encounterID,
	).Scan(&res.Outcome, &res.Elapsed, &res.Rounds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying result of %q: %w", encounterID, err)
	}
	return &res, nil
}
