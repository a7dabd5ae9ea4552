package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leaguewire/gridreport/internal/awards"
)

// RenderJSON encodes the report as an indented JSON document.
func RenderJSON(d *Data) ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(out, '\n'), nil
}

// RenderMarkdown renders the report as a human-readable markdown document.
func RenderMarkdown(d *Data) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Week %d Report — %d Season\n\n", d.Week, d.Season)
	fmt.Fprintf(&b, "_League %s, generated %s_\n\n", d.LeagueID, d.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Weekly Awards\n\n")
	writeAward(&b, "Best free agent pickup", d.Pickups.Best)
	writeMention(&b, "started over", d.Pickups.BestMention)
	writeAward(&b, "Worst free agent pickup", d.Pickups.Worst)
	writeMention(&b, "benched below", d.Pickups.WorstMention)
	writeAward(&b, "Best drop", d.BestDrop)
	writeAward(&b, "Worst drop", d.WorstDrop)
	if ss := d.StartSit; ss != nil {
		fmt.Fprintf(&b, "- **Worst start/sit** — %s benched %s (%.2f) behind %s (%.2f), leaving %.2f on the bench\n",
			ss.TeamName, ss.BenchName, ss.BenchPoints, ss.StartName, ss.StartPoints, ss.Delta)
	}
	writeTrade(&b, "Best trade", d.BestTrade)
	writeTrade(&b, "Worst trade", d.WorstTrade)
	b.WriteString("\n")

	if tl := d.TradeLeader; tl != nil {
		b.WriteString("## Season Trade Leader\n\n")
		fmt.Fprintf(&b, "%s is up %+.2f on trade %s (executed week %d, counted weeks %s).\n\n",
			tl.TeamName, tl.Net, tl.TradeID, tl.ExecutionWeek, intList(tl.ContributingWeeks))
	}

	if len(d.Standings) > 0 {
		b.WriteString("## Standings\n\n")
		b.WriteString("| Team | Points For | vs Median |\n|---|---|---|\n")
		for _, row := range d.Standings {
			fmt.Fprintf(&b, "| %s | %.2f | %d-%d-%d |\n",
				row.TeamName, row.PointsFor, row.Median.Over, row.Median.Under, row.Median.At)
		}
		b.WriteString("\n")
	}

	if d.BestOfRest != nil {
		b.WriteString("## Best of the Rest\n\n")
		fmt.Fprintf(&b, "Season record vs the field: %d-%d-%d\n\n",
			d.BestOfRest.Record.Wins, d.BestOfRest.Record.Losses, d.BestOfRest.Record.Ties)
		b.WriteString("| Week | Total | Record |\n|---|---|---|\n")
		for _, wr := range d.BestOfRest.Weeks {
			fmt.Fprintf(&b, "| %d | %.2f | %d-%d-%d |\n",
				wr.Week, wr.Total, wr.Record.Wins, wr.Record.Losses, wr.Record.Ties)
		}
		b.WriteString("\n")
	}

	if len(d.Summaries) > 0 {
		b.WriteString("## Transaction Volume\n\n")
		b.WriteString("| Week | Adds | Claims | Drops | Trades |\n|---|---|---|---|---|\n")
		for _, s := range d.Summaries {
			fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n", s.Week, s.Adds, s.Claims, s.Drops, s.Trades)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n%d records skipped, %d attribution overrides, %d name fallbacks.\n",
		d.Counters.Skipped, d.Counters.Overrides, d.Counters.Fallbacks)
	return []byte(b.String())
}

// Save renders the report in the requested format and writes it under
// <outputDir>/reports/<season>/week_<n>.<ext>, returning the path written.
func Save(d *Data, outputDir, format string) (string, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case "json":
		body, err = RenderJSON(d)
	default:
		body = RenderMarkdown(d)
		format = "md"
	}
	if err != nil {
		return "", err
	}

	dir := filepath.Join(outputDir, "reports", fmt.Sprintf("%d", d.Season))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("week_%d.%s", d.Week, format))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func writeAward(b *strings.Builder, label string, a *awards.Award) {
	if a == nil {
		return
	}
	fmt.Fprintf(b, "- **%s** — %s: %s (%.2f)\n", label, a.TeamName, a.PlayerName, a.Points)
}

func writeMention(b *strings.Builder, phrase string, a *awards.Award) {
	if a == nil {
		return
	}
	fmt.Fprintf(b, "  - honorable mention, %s: %s (%.2f), %s\n", phrase, a.PlayerName, a.Points, a.TeamName)
}

func writeTrade(b *strings.Builder, label string, t *awards.TradeAward) {
	if t == nil {
		return
	}
	fmt.Fprintf(b, "- **%s** — %s: %s (%+.2f)\n", label, t.TeamName, t.Detail, t.Net)
}

func intList(weeks []int) string {
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = fmt.Sprintf("%d", w)
	}
	return strings.Join(parts, ", ")
}
