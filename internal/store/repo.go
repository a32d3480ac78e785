package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // ended_at >= From
	To    time.Time // ended_at < To
}

// PhaseRecord is one completed Session or Break.
type PhaseRecord struct {
	ID      string
	RunID   string // groups records from one app launch
	Phase   string // "Session" or "Break"
	Minutes int
	EndedAt time.Time
}

// PhaseTotals aggregates completed phases.
type PhaseTotals struct {
	Sessions       int
	SessionMinutes int
	Breaks         int
	BreakMinutes   int
}

// PhaseRepo records and queries completed phases.
type PhaseRepo interface {
	// AppendPhase stores a completed phase. An empty ID is filled in.
	AppendPhase(ctx context.Context, rec PhaseRecord) error

	// QueryPhases returns phases newest first.
	QueryPhases(ctx context.Context, opts QueryOpts) ([]PhaseRecord, error)

	// Totals aggregates phases that ended at or after since.
	Totals(ctx context.Context, since time.Time) (PhaseTotals, error)

	// Clear deletes every record and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
