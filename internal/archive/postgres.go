package archive

import (
	"context"

	"github.com/udisondev/galaxies/internal/game/combat"
)

//go:generate mockgen -destination=mock/mock_entry_writer.go -package=mockarchive github.com/udisondev/galaxies/internal/archive EntryWriter

// EntryWriter is the persistence side of the Postgres sink.
// Implemented by db.CombatLogRepository.
type EntryWriter interface {
	SaveEntries(ctx context.Context, entries []combat.Entry) error
}

// PostgresSink writes batches through an EntryWriter.
type PostgresSink struct {
	w EntryWriter
}

// NewPostgresSink creates a sink over w.
func NewPostgresSink(w EntryWriter) *PostgresSink {
	return &PostgresSink{w: w}
}

// Name implements Sink.
func (s *PostgresSink) Name() string { return "postgres" }

// Write implements Sink.
func (s *PostgresSink) Write(ctx context.Context, entries []combat.Entry) error {
	return s.w.SaveEntries(ctx, entries)
}
