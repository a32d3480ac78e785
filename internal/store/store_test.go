package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.PhaseRepo().AppendPhase(ctx, PhaseRecord{RunID: "r", Phase: "Session", Minutes: 25, EndedAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.PhaseRepo().QueryPhases(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records after reopen, want 1", len(got))
	}
}

func TestAppendAndQueryPhases(t *testing.T) {
	s := openTestStore(t)
	repo := s.PhaseRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []PhaseRecord{
		{RunID: "run-1", Phase: "Session", Minutes: 25, EndedAt: base},
		{RunID: "run-1", Phase: "Break", Minutes: 5, EndedAt: base.Add(5 * time.Minute)},
		{RunID: "run-1", Phase: "Session", Minutes: 50, EndedAt: base.Add(55 * time.Minute)},
	}
	for _, rec := range records {
		if err := repo.AppendPhase(ctx, rec); err != nil {
			t.Fatalf("AppendPhase: %v", err)
		}
	}

	got, err := repo.QueryPhases(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryPhases: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	if got[0].Minutes != 50 || got[2].Minutes != 25 {
		t.Errorf("records not newest first: %+v", got)
	}
	for _, rec := range got {
		if rec.ID == "" {
			t.Error("expected generated id")
		}
		if rec.RunID != "run-1" {
			t.Errorf("RunID = %q, want run-1", rec.RunID)
		}
	}
	if !got[1].EndedAt.Equal(base.Add(5 * time.Minute)) {
		t.Errorf("EndedAt = %v, want %v", got[1].EndedAt, base.Add(5*time.Minute))
	}
}

func TestQueryPhasesFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.PhaseRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		rec := PhaseRecord{RunID: "r", Phase: "Session", Minutes: i + 1, EndedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.AppendPhase(ctx, rec); err != nil {
			t.Fatalf("AppendPhase: %v", err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []int
	}{
		{"limit", QueryOpts{Limit: 2}, []int{5, 4}},
		{"from", QueryOpts{From: base.Add(3 * time.Hour)}, []int{5, 4}},
		{"to", QueryOpts{To: base.Add(2 * time.Hour)}, []int{2, 1}},
		{"window", QueryOpts{From: base.Add(time.Hour), To: base.Add(4 * time.Hour)}, []int{4, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryPhases(ctx, tt.opts)
			if err != nil {
				t.Fatalf("QueryPhases: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec.Minutes != tt.want[i] {
					t.Errorf("record %d minutes = %d, want %d", i, rec.Minutes, tt.want[i])
				}
			}
		})
	}
}

func TestTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.PhaseRepo()
	ctx := context.Background()

	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	records := []PhaseRecord{
		{Phase: "Session", Minutes: 25, EndedAt: today.Add(-time.Hour)}, // yesterday
		{Phase: "Session", Minutes: 25, EndedAt: today.Add(time.Hour)},
		{Phase: "Break", Minutes: 5, EndedAt: today.Add(2 * time.Hour)},
		{Phase: "Session", Minutes: 15, EndedAt: today.Add(3 * time.Hour)},
	}
	for _, rec := range records {
		if err := repo.AppendPhase(ctx, rec); err != nil {
			t.Fatalf("AppendPhase: %v", err)
		}
	}

	got, err := repo.Totals(ctx, today)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	want := PhaseTotals{Sessions: 2, SessionMinutes: 40, Breaks: 1, BreakMinutes: 5}
	if got != want {
		t.Errorf("Totals = %+v, want %+v", got, want)
	}

	empty, err := repo.Totals(ctx, today.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if empty != (PhaseTotals{}) {
		t.Errorf("Totals in the future = %+v, want zero", empty)
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.PhaseRepo()
	ctx := context.Background()

	for range 3 {
		if err := repo.AppendPhase(ctx, PhaseRecord{Phase: "Break", Minutes: 5, EndedAt: time.Now()}); err != nil {
			t.Fatalf("AppendPhase: %v", err)
		}
	}

	n, err := repo.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}

	got, err := repo.QueryPhases(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryPhases: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records after clear, want 0", len(got))
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("FOCUSFLOW_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "focusflow", "history.db"); got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}

	custom := filepath.Join(dir, "custom", "db.sqlite")
	t.Setenv("FOCUSFLOW_DB", custom)
	got, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != custom {
		t.Errorf("DefaultDBPath = %q, want %q", got, custom)
	}
}
