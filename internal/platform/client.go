package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/leaguewire/gridreport/internal/cache"
)

const userAgent = "gridreport/1.0 (+https://github.com/leaguewire/gridreport)"

// ClientOptions tunes the API client.
type ClientOptions struct {
	BaseURL string
	RPS     float64
	Burst   int
	Timeout time.Duration
	Retries int
	TTL     time.Duration
	Cache   cache.Cache
}

// Client is a rate-limited, circuit-broken JSON client for the platform API.
// All results are fully materialized before the attribution pipeline runs.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	retries  int
	ttl      time.Duration
	cache    cache.Cache
	leagueID string
	season   int
}

// NewClient builds a client for one league/season.
func NewClient(opts ClientOptions, leagueID string, season int) *Client {
	if opts.RPS <= 0 {
		opts.RPS = 4
	}
	if opts.Burst <= 0 {
		opts.Burst = int(opts.RPS)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemory()
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "platform-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		baseURL:  opts.BaseURL,
		http:     &http.Client{Timeout: opts.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		breaker:  breaker,
		retries:  opts.Retries,
		ttl:      opts.TTL,
		cache:    opts.Cache,
		leagueID: leagueID,
		season:   season,
	}
}

// get fetches a URL with retries, honoring the limiter and breaker. Responses
// are served from and written to the byte cache.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if body, ok := c.cache.Get(u); ok {
		return body, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.doGet(ctx, u)
		})
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		body := result.([]byte)
		c.cache.Set(u, body, c.ttl)
		return body, nil
	}
	return nil, fmt.Errorf("GET %s failed after %d attempts: %w", u, c.retries+1, lastErr)
}

func (c *Client) doGet(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	body, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

func (c *Client) endpoint(name string, params url.Values) string {
	params.Set("leagueId", c.leagueID)
	if c.season > 0 {
		params.Set("season", fmt.Sprintf("%d", c.season))
	}
	return fmt.Sprintf("%s/api/%s?%s", c.baseURL, name, params.Encode())
}

// Scoreboard fetches one week's scoreboard (matchups plus the schedule
// period's start epoch, which anchors the week window table).
func (c *Client) Scoreboard(ctx context.Context, week int) (*Scoreboard, error) {
	params := url.Values{}
	params.Set("scoringPeriod", fmt.Sprintf("%d", week))
	var sb Scoreboard
	if err := c.getJSON(ctx, c.endpoint("FetchLeagueScoreboard", params), &sb); err != nil {
		return nil, err
	}
	return &sb, nil
}

// Standings fetches league metadata and the team list.
func (c *Client) Standings(ctx context.Context) (*Standings, error) {
	var st Standings
	if err := c.getJSON(ctx, c.endpoint("FetchLeagueStandings", url.Values{}), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Activity fetches the full league activity feed, following pagination to the
// end.
func (c *Client) Activity(ctx context.Context) ([]ActivityItem, error) {
	var items []ActivityItem
	offset := int64(0)
	for {
		params := url.Values{}
		if offset > 0 {
			params.Set("resultOffset", fmt.Sprintf("%d", offset))
		}
		var page ActivityPage
		if err := c.getJSON(ctx, c.endpoint("FetchLeagueActivity", params), &page); err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		next := page.ResultOffsetNext.Int64()
		if next == 0 || next == offset {
			break
		}
		offset = next
	}
	return items, nil
}

// Trades fetches all completed trades, following pagination to the end.
func (c *Client) Trades(ctx context.Context) ([]Trade, error) {
	var trades []Trade
	offset := int64(0)
	for {
		params := url.Values{}
		params.Set("filter", "TRADES_COMPLETED")
		if offset > 0 {
			params.Set("resultOffset", fmt.Sprintf("%d", offset))
		}
		var page TradesPage
		if err := c.getJSON(ctx, c.endpoint("FetchTrades", params), &page); err != nil {
			return nil, err
		}
		trades = append(trades, page.Trades...)
		next := page.ResultOffsetNext.Int64()
		if next == 0 || next == offset {
			break
		}
		offset = next
	}
	return trades, nil
}

// TeamTransactions pages backward through a team's transaction history until
// a page's oldest item predates seasonStartMS, guaranteeing early-season
// coverage. The API returns newest-first pages.
func (c *Client) TeamTransactions(ctx context.Context, teamID string, seasonStartMS int64) ([]ActivityItem, error) {
	var items []ActivityItem
	offset := int64(0)
	for {
		params := url.Values{}
		params.Set("teamId", teamID)
		if offset > 0 {
			params.Set("resultOffset", fmt.Sprintf("%d", offset))
		}
		var page TransactionsPage
		if err := c.getJSON(ctx, c.endpoint("FetchLeagueTransactions", params), &page); err != nil {
			return nil, err
		}
		if len(page.Items) == 0 {
			break
		}
		items = append(items, page.Items...)

		oldest := int64(0)
		for _, it := range page.Items {
			ts := it.TimeEpochMilli.Int64()
			if oldest == 0 || (ts > 0 && ts < oldest) {
				oldest = ts
			}
		}
		next := page.ResultOffsetNext.Int64()
		if next == 0 || next == offset {
			break
		}
		if seasonStartMS > 0 && oldest > 0 && oldest < seasonStartMS {
			break
		}
		offset = next
	}
	return items, nil
}

// Roster fetches a team's lineup for one week.
func (c *Client) Roster(ctx context.Context, teamID string, week int) (*Roster, error) {
	params := url.Values{}
	params.Set("teamId", teamID)
	params.Set("scoringPeriod", fmt.Sprintf("%d", week))
	var r Roster
	if err := c.getJSON(ctx, c.endpoint("FetchRoster", params), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// FreeAgents fetches the free-agent pool for one week, following pagination.
func (c *Client) FreeAgents(ctx context.Context, week int) ([]LeaguePlayer, error) {
	var players []LeaguePlayer
	offset := int64(0)
	for {
		params := url.Values{}
		params.Set("filter.freeAgentOnly", "true")
		params.Set("sort", "SORT_SCORING_PERIOD")
		params.Set("sortPeriod", fmt.Sprintf("%d", week))
		if offset > 0 {
			params.Set("resultOffset", fmt.Sprintf("%d", offset))
		}
		var page PlayerListingPage
		if err := c.getJSON(ctx, c.endpoint("FetchPlayerListing", params), &page); err != nil {
			return nil, err
		}
		players = append(players, page.Players...)
		next := page.ResultOffsetNext.Int64()
		if next == 0 || next == offset {
			break
		}
		offset = next
	}
	return players, nil
}
