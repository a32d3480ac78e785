package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/store"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("recent")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		report, err := loadStats(cmd.Context(), st.PhaseRepo(), time.Now(), limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.render())
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 10, "Number of recent phases to list")
}

type statsReport struct {
	today  store.PhaseTotals
	total  store.PhaseTotals
	recent []store.PhaseRecord
}

func loadStats(ctx context.Context, repo store.PhaseRepo, now time.Time, limit int) (statsReport, error) {
	var r statsReport
	var err error
	if r.today, err = repo.Totals(ctx, startOfDay(now)); err != nil {
		return r, err
	}
	if r.total, err = repo.Totals(ctx, time.Time{}); err != nil {
		return r, err
	}
	if limit > 0 {
		if r.recent, err = repo.QueryPhases(ctx, store.QueryOpts{Limit: limit}); err != nil {
			return r, err
		}
	}
	return r, nil
}

func (r statsReport) render() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Focus totals"))
	b.WriteString("\n")
	b.WriteString(newTable("", "Sessions", "Focus", "Breaks", "Rest").
		Row(totalsRow("Today", r.today)...).
		Row(totalsRow("All time", r.total)...).
		String())

	if len(r.recent) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("No completed phases yet."))
		return b.String()
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render("Recent phases"))
	b.WriteString("\n")
	t := newTable("Ended", "Phase", "Minutes")
	for _, rec := range r.recent {
		t.Row(rec.EndedAt.Local().Format("Jan 02 15:04"), rec.Phase, strconv.Itoa(rec.Minutes))
	}
	b.WriteString(t.String())
	return b.String()
}

func newTable(headers ...string) *table.Table {
	border := lipgloss.NewStyle().Foreground(theme.Border)
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func totalsRow(label string, t store.PhaseTotals) []string {
	return []string{
		label,
		strconv.Itoa(t.Sessions),
		formatMinutes(t.SessionMinutes),
		strconv.Itoa(t.Breaks),
		formatMinutes(t.BreakMinutes),
	}
}

// formatMinutes renders a duration in minutes as "1h 05m" or "25m".
func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
