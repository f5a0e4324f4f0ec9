package sim

import (
	"context"

	"github.com/udisondev/galaxies/internal/db"
)

// ResultSaver is the storage side of DBResults.
type ResultSaver interface {
	SaveResult(ctx context.Context, res db.EncounterResult) error
}

// DBResults stores reports as encounter_results rows.
type DBResults struct {
	repo ResultSaver
}

// NewDBResults creates a ResultWriter over repo.
func NewDBResults(repo ResultSaver) *DBResults {
	return &DBResults{repo: repo}
}

// SaveReport implements ResultWriter.
func (d *DBResults) SaveReport(ctx context.Context, r Report) error {
	return d.repo.SaveResult(ctx, db.EncounterResult{
		Encounter: r.Encounter,
		Outcome:   r.Outcome.String(),
		Elapsed:   r.Elapsed,
		Rounds:    r.Rounds,
	})
}
