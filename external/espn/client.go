// Package espn pulls NFL games and posted lines from the public ESPN
// scoreboard API and adapts them into raw odds observations.
package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/platform/logging"
	"github.com/lineshift/lineshift/internal/platform/resilience"
	"github.com/lineshift/lineshift/internal/usecase"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	providerName   = "ESPN"
	scoreboardPath = "/football/nfl/scoreboard"
)

var errTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (c *Client) Name() string { return "espn-nfl-scoreboard" }

func (c *Client) Sport() string { return game.SportNFL }

func (c *Client) Kind() usecase.SourceKind { return usecase.SourceKindOdds }

type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	Date         string `json:"date"`
	Competitions []struct {
		Competitors []struct {
			HomeAway string `json:"homeAway"`
			Team     struct {
				DisplayName string `json:"displayName"`
			} `json:"team"`
		} `json:"competitors"`
		Odds []struct {
			Details      string   `json:"details"`
			OverUnder    *float64 `json:"overUnder"`
			HomeTeamOdds struct {
				MoneyLine *int `json:"moneyLine"`
			} `json:"homeTeamOdds"`
			AwayTeamOdds struct {
				MoneyLine *int `json:"moneyLine"`
			} `json:"awayTeamOdds"`
		} `json:"odds"`
	} `json:"competitions"`
}

// FetchObservations loads the current scoreboard and flattens each event
// into one observation. Events without a posted line still come back so
// schedule metadata stays fresh.
func (c *Client) FetchObservations(ctx context.Context) ([]usecase.RawObservation, error) {
	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, scoreboardPath, &envelope); err != nil {
		return nil, fmt.Errorf("fetch nfl scoreboard: %w", err)
	}

	observations := make([]usecase.RawObservation, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		obs, ok := mapEvent(event)
		if !ok {
			c.logger.WarnContext(ctx, "skipping scoreboard event without both teams", "date", event.Date)
			continue
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

func mapEvent(event scoreboardEvent) (usecase.RawObservation, bool) {
	if len(event.Competitions) == 0 {
		return usecase.RawObservation{}, false
	}
	competition := event.Competitions[0]

	obs := usecase.RawObservation{Provider: providerName}
	for _, competitor := range competition.Competitors {
		switch competitor.HomeAway {
		case "home":
			obs.HomeTeam = competitor.Team.DisplayName
		case "away":
			obs.AwayTeam = competitor.Team.DisplayName
		}
	}
	if obs.HomeTeam == "" || obs.AwayTeam == "" {
		return usecase.RawObservation{}, false
	}

	if kickoff, err := time.Parse("2006-01-02T15:04Z", event.Date); err == nil {
		obs.StartTime = kickoff.Format("3:04 PM")
		obs.GameDate = kickoff.Format("2006-01-02")
	}

	if len(competition.Odds) > 0 {
		line := competition.Odds[0]
		if details := strings.TrimSpace(line.Details); details != "" {
			obs.Spread = &details
		}
		if line.OverUnder != nil {
			total := strconv.FormatFloat(*line.OverUnder, 'f', -1, 64)
			obs.Total = &total
		}
		if line.HomeTeamOdds.MoneyLine != nil {
			home := strconv.Itoa(*line.HomeTeamOdds.MoneyLine)
			obs.MoneylineHome = &home
		}
		if line.AwayTeamOdds.MoneyLine != nil {
			away := strconv.Itoa(*line.AwayTeamOdds.MoneyLine)
			obs.MoneylineAway = &away
		}
	}
	return obs, true
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request")
			return fmt.Errorf("%w: espn scoreboard is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode scoreboard payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 250 * time.Millisecond):
			}
		}

		raw, err := c.fetchOnce(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errTransient) {
			return nil, err
		}
		c.logger.WarnContext(ctx, "espn request failed, retrying", "attempt", attempt+1, "error", err)
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build scoreboard request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "execute scoreboard request"), errTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read scoreboard response"), errTransient)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return nil, crerr.Mark(crerr.Newf("scoreboard responded with status %d", resp.StatusCode), errTransient)
	case resp.StatusCode != http.StatusOK:
		return nil, crerr.Newf("scoreboard responded with status %d", resp.StatusCode)
	}
	return body, nil
}
