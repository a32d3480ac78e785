package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const phaseTable = "phase_events"

// phaseRepo implements PhaseRepo with ent's SQL builder.
type phaseRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *phaseRepo) AppendPhase(ctx context.Context, rec PhaseRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query, args := builder().
		Insert(phaseTable).
		Columns("id", "run_id", "phase", "minutes", "ended_at").
		Values(rec.ID, rec.RunID, rec.Phase, rec.Minutes, rec.EndedAt.Unix()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save phase event: %w", err)
	}
	return nil
}

func (r *phaseRepo) QueryPhases(ctx context.Context, opts QueryOpts) ([]PhaseRecord, error) {
	sel := builder().
		Select("id", "run_id", "phase", "minutes", "ended_at").
		From(builder().Table(phaseTable)).
		OrderBy(entsql.Desc("ended_at"), entsql.Desc("rowid"))
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("ended_at", opts.From.Unix()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LT("ended_at", opts.To.Unix()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query phase events: %w", err)
	}
	defer rows.Close()

	var out []PhaseRecord
	for rows.Next() {
		var (
			rec     PhaseRecord
			endedAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Phase, &rec.Minutes, &endedAt); err != nil {
			return nil, fmt.Errorf("scan phase event: %w", err)
		}
		rec.EndedAt = time.Unix(endedAt, 0)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phase events: %w", err)
	}
	return out, nil
}

func (r *phaseRepo) Totals(ctx context.Context, since time.Time) (PhaseTotals, error) {
	query, args := builder().
		Select("phase", entsql.Count("*"), entsql.Sum("minutes")).
		From(builder().Table(phaseTable)).
		Where(entsql.GTE("ended_at", since.Unix())).
		GroupBy("phase").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return PhaseTotals{}, fmt.Errorf("query phase totals: %w", err)
	}
	defer rows.Close()

	var totals PhaseTotals
	for rows.Next() {
		var (
			phase   string
			count   int
			minutes sql.NullInt64
		)
		if err := rows.Scan(&phase, &count, &minutes); err != nil {
			return PhaseTotals{}, fmt.Errorf("scan phase totals: %w", err)
		}
		switch phase {
		case "Session":
			totals.Sessions = count
			totals.SessionMinutes = int(minutes.Int64)
		case "Break":
			totals.Breaks = count
			totals.BreakMinutes = int(minutes.Int64)
		}
	}
	if err := rows.Err(); err != nil {
		return PhaseTotals{}, fmt.Errorf("iterate phase totals: %w", err)
	}
	return totals, nil
}

func (r *phaseRepo) Clear(ctx context.Context) (int64, error) {
	query, args := builder().Delete(phaseTable).Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("clear phase events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear phase events: %w", err)
	}
	return n, nil
}
