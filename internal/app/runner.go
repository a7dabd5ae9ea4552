// Package app orchestrates a full report run: fetch, window derivation,
// normalization, attribution, aggregation, ledger accumulation, award
// selection, and artifact output.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/leaguewire/gridreport/internal/aggregate"
	"github.com/leaguewire/gridreport/internal/attribute"
	"github.com/leaguewire/gridreport/internal/awards"
	"github.com/leaguewire/gridreport/internal/bor"
	"github.com/leaguewire/gridreport/internal/config"
	"github.com/leaguewire/gridreport/internal/diag"
	"github.com/leaguewire/gridreport/internal/event"
	"github.com/leaguewire/gridreport/internal/league"
	"github.com/leaguewire/gridreport/internal/ledger"
	"github.com/leaguewire/gridreport/internal/persistence"
	"github.com/leaguewire/gridreport/internal/platform"
	"github.com/leaguewire/gridreport/internal/report"
	"github.com/leaguewire/gridreport/internal/schedule"
	"github.com/leaguewire/gridreport/internal/scoring"
)

// Runner executes one report run for a configured league and season.
type Runner struct {
	cfg      config.Config
	client   *platform.Client
	sink     diag.Sink
	counters *diag.Counters
	archive  *persistence.Archive
	log      zerolog.Logger
}

// NewRunner wires a Runner. archive may be nil when archiving is disabled.
func NewRunner(cfg config.Config, client *platform.Client, sink diag.Sink, counters *diag.Counters, archive *persistence.Archive, log zerolog.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		client:   client,
		sink:     sink,
		counters: counters,
		archive:  archive,
		log:      log,
	}
}

// Run builds the report through the configured report week and writes the
// artifact, returning the assembled data and the artifact path.
func (r *Runner) Run(ctx context.Context) (*report.Data, string, error) {
	lg := r.cfg.League

	startMS, err := r.seasonStart(ctx)
	if err != nil {
		return nil, "", err
	}
	windows, err := schedule.Build(lg.Season, startMS, lg.NumWeeks, r.sink)
	if err != nil {
		return nil, "", err
	}

	standings, err := r.client.Standings(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch standings: %w", err)
	}
	teams := leagueTeams(standings)
	if len(teams) == 0 {
		return nil, "", &config.ConfigError{Field: "league.league_id", Reason: "has no teams"}
	}
	r.log.Info().Int("teams", len(teams)).Str("league", standings.League.Name).Msg("league loaded")

	view, scores, err := r.buildView(ctx, teams)
	if err != nil {
		return nil, "", err
	}

	events, err := r.collectEvents(ctx, teams, startMS)
	if err != nil {
		return nil, "", err
	}

	attributed, err := attribute.New(lg.Season, windows, r.sink).AssignAll(events)
	if err != nil {
		return nil, "", err
	}

	summary := aggregate.Build(attributed, scores)
	summary.LogWeekSummaries(lg.StartWeek, lg.WeekForReport, r.sink)

	book := ledger.New(attributed, scores, r.sink)
	book.AccumulateThrough(lg.WeekForReport)

	data := r.assemble(view, scores, summary, book, attributed)

	path, err := report.Save(data, r.cfg.Output.Dir, r.cfg.Output.Format)
	if err != nil {
		return nil, "", err
	}
	r.log.Info().Str("path", path).Msg("report written")

	if r.archive != nil {
		if err := r.archiveRun(ctx, summary, book); err != nil {
			return nil, "", err
		}
	}
	return data, path, nil
}

// seasonStart returns the season's first window start: the configured
// override when set, otherwise the start-week scoreboard's period epoch.
func (r *Runner) seasonStart(ctx context.Context) (int64, error) {
	if r.cfg.League.StartEpochMS > 0 {
		return r.cfg.League.StartEpochMS, nil
	}
	sb, err := r.client.Scoreboard(ctx, r.cfg.League.StartWeek)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch scoreboard for week %d: %w", r.cfg.League.StartWeek, err)
	}
	start := sb.SchedulePeriod.Low.StartEpochMilli.Int64()
	if start <= 0 {
		return 0, &config.ConfigError{Field: "league.start_epoch_ms", Reason: "not derivable from scoreboard"}
	}
	return start, nil
}

// buildView materializes weekly rosters, matchup totals, and free-agent
// pools for every covered week, and indexes player weekly points as it goes.
func (r *Runner) buildView(ctx context.Context, teams []platform.TeamRef) (*league.View, *scoring.Index, error) {
	lg := r.cfg.League
	view := league.NewView()
	scores := scoring.NewIndex()
	store := bor.NewWeekStore(r.cfg.Output.Dir, lg.Season, lg.Platform, lg.LeagueID, lg.WeekForReport)

	for week := lg.StartWeek; week <= lg.WeekForReport; week++ {
		for _, ref := range teams {
			raw, err := r.client.Roster(ctx, ref.ID.String(), week)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to fetch roster for team %s week %d: %w", ref.ID.String(), week, err)
			}
			team := mapRoster(ref, raw, lg.BenchPositions)
			view.AddTeam(week, team)
			for _, p := range team.Roster {
				scores.Set(p.ID, week, p.Points)
			}
		}

		sb, err := r.client.Scoreboard(ctx, week)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch scoreboard for week %d: %w", week, err)
		}
		applyMatchupTotals(view, week, sb)

		pool, err := r.freeAgents(ctx, store, week)
		if err != nil {
			return nil, nil, err
		}
		byID := make(map[string]league.Player, len(pool))
		for _, p := range pool {
			byID[p.ID] = p
			scores.Set(p.ID, week, p.Points)
		}
		view.FreeAgentsByWeek[week] = byID
	}
	return view, scores, nil
}

// freeAgents returns a week's free-agent pool. Prior weeks are served only
// from the on-disk cache; the report week is fetched on a miss and written
// back so future runs treat it as history.
func (r *Runner) freeAgents(ctx context.Context, store *bor.WeekStore, week int) ([]league.Player, error) {
	pool, ok, err := store.Load(week)
	if err != nil {
		return nil, err
	}
	if ok {
		return pool, nil
	}
	if week != r.cfg.League.WeekForReport {
		r.sink.Skip("missing_free_agent_cache", fmt.Sprintf("week %d", week))
		return nil, nil
	}

	listing, err := r.client.FreeAgents(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch free agents for week %d: %w", week, err)
	}
	pool = mapFreeAgents(listing)
	if err := store.Save(week, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// collectEvents normalizes the activity feed, each team's transaction pages,
// and the completed trades into one event stream. Moves appearing in both
// feeds are deduplicated by the normalizer.
func (r *Runner) collectEvents(ctx context.Context, teams []platform.TeamRef, seasonStartMS int64) ([]event.Event, error) {
	norm := event.NewNormalizer(r.sink)

	items, err := r.client.Activity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity feed: %w", err)
	}
	for _, ref := range teams {
		teamItems, err := r.client.TeamTransactions(ctx, ref.ID.String(), seasonStartMS)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch transactions for team %s: %w", ref.ID.String(), err)
		}
		items = append(items, teamItems...)
	}
	events := norm.Moves(items)

	trades, err := r.client.Trades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}
	events = append(events, norm.Trades(trades)...)
	return events, nil
}

func (r *Runner) assemble(view *league.View, scores *scoring.Index, summary *aggregate.Summary, book *ledger.Ledger, attributed []attribute.Attributed) *report.Data {
	lg := r.cfg.League
	week := lg.WeekForReport

	selector := awards.NewSelector(view, scores, week, r.sink)
	pickups := selector.Pickups(week, summary.Pickups(week))
	bestDrop, worstDrop := selector.Drops(week, summary.Drops(week))
	bestTrade, worstTrade := selector.Trades(week, attributed)

	data := &report.Data{
		Season:      lg.Season,
		Week:        week,
		LeagueID:    lg.LeagueID,
		GeneratedAt: time.Now(),
		Pickups:     pickups,
		BestDrop:    bestDrop,
		WorstDrop:   worstDrop,
		StartSit:    selector.StartSit(week),
		BestTrade:   bestTrade,
		WorstTrade:  worstTrade,
	}

	for w := lg.StartWeek; w <= week; w++ {
		c := summary.WeekCounts(w)
		data.Summaries = append(data.Summaries, report.WeekSummary{
			Week: w, Adds: c.Adds, Claims: c.Claims, Drops: c.Drops, Trades: c.Trades,
		})
	}

	if leader, ok := book.LeaderAsOf(week); ok {
		tl := &report.TradeLeader{
			TradeID:       leader.TradeID,
			ExecutionWeek: leader.ExecutionWeek,
			TeamID:        leader.TeamID,
			Net:           leader.Net,
			PerTeamNet:    leader.PerTeamNet,
		}
		if team := view.Team(week, leader.TeamID); team != nil {
			tl.TeamName = team.Name
		} else {
			tl.TeamName = leader.TeamID
		}
		if entry := book.Entry(leader.TradeID); entry != nil {
			tl.ContributingWeeks = entry.ContributingWeeks()
		}
		data.TradeLeader = tl
	}

	data.Medians = report.WeeklyMedians(view, lg.StartWeek, week)
	data.Standings = report.Standings(view, data.Medians, lg.StartWeek, week)

	if lg.BestOfRest {
		season := bor.Season(view, lg.StartWeek, week)
		data.BestOfRest = &season
	}
	if r.counters != nil {
		data.Counters = r.counters.Snapshot()
	}
	return data
}

// archiveRun persists the run's weekly summaries and ledger snapshots.
func (r *Runner) archiveRun(ctx context.Context, summary *aggregate.Summary, book *ledger.Ledger) error {
	lg := r.cfg.League

	var rows []persistence.WeeklySummary
	for w := lg.StartWeek; w <= lg.WeekForReport; w++ {
		for teamID, c := range summary.TeamCounts(w) {
			rows = append(rows, persistence.WeeklySummary{
				Season: lg.Season, Week: w, TeamID: teamID,
				Adds: c.Adds, Claims: c.Claims, Drops: c.Drops, Trades: c.Trades,
			})
		}
	}
	if err := r.archive.Summaries.UpsertBatch(ctx, rows); err != nil {
		return fmt.Errorf("failed to archive summaries: %w", err)
	}

	var snaps []persistence.LedgerSnapshot
	for _, entry := range book.Entries() {
		snaps = append(snaps, persistence.LedgerSnapshot{
			Season:        lg.Season,
			ReportWeek:    lg.WeekForReport,
			TradeID:       entry.TradeID,
			ExecutionWeek: entry.ExecutionWeek,
			PerTeamNet:    entry.PerTeamNet,
		})
	}
	if err := r.archive.Ledger.InsertSnapshots(ctx, snaps); err != nil {
		return fmt.Errorf("failed to archive ledger: %w", err)
	}
	r.log.Info().Int("summaries", len(rows)).Int("snapshots", len(snaps)).Msg("run archived")
	return nil
}

// leagueTeams flattens the standings divisions into one team list.
func leagueTeams(st *platform.Standings) []platform.TeamRef {
	var teams []platform.TeamRef
	for _, div := range st.Divisions {
		teams = append(teams, div.Teams...)
	}
	return teams
}
