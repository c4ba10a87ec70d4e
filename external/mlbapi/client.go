// Package mlbapi pulls the daily MLB schedule, including probable pitchers,
// from the MLB Stats API and adapts it into schedule observations.
package mlbapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
	defaultBaseURL = "https://statsapi.mlb.com/api/v1"
	providerName   = "MLB-API"
)

var errTransient = crerr.New("mlb stats api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Now supplies the schedule date; tests pin it.
	Now func() time.Time
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	now            func() time.Time
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

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		now:            now,
	}
}

func (c *Client) Name() string { return "mlb-stats-schedule" }

func (c *Client) Sport() string { return game.SportMLB }

func (c *Client) Kind() usecase.SourceKind { return usecase.SourceKindSchedule }

type scheduleEnvelope struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GameDate string `json:"gameDate"`
			Teams    struct {
				Home scheduleTeam `json:"home"`
				Away scheduleTeam `json:"away"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

type scheduleTeam struct {
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	ProbablePitcher *struct {
		FullName string `json:"fullName"`
	} `json:"probablePitcher"`
}

// FetchObservations loads today's schedule. The observations carry game
// metadata only; no odds fields are set.
func (c *Client) FetchObservations(ctx context.Context) ([]usecase.RawObservation, error) {
	date := c.now().UTC().Format("2006-01-02")
	query := url.Values{}
	query.Set("sportId", "1")
	query.Set("date", date)
	query.Set("hydrate", "probablePitcher")

	var envelope scheduleEnvelope
	if err := c.doJSON(ctx, "/schedule?"+query.Encode(), &envelope); err != nil {
		return nil, fmt.Errorf("fetch mlb schedule date=%s: %w", date, err)
	}

	observations := make([]usecase.RawObservation, 0, 16)
	for _, day := range envelope.Dates {
		for _, item := range day.Games {
			obs := usecase.RawObservation{
				HomeTeam: item.Teams.Home.Team.Name,
				AwayTeam: item.Teams.Away.Team.Name,
				GameDate: day.Date,
				Provider: providerName,
			}
			if obs.HomeTeam == "" || obs.AwayTeam == "" {
				c.logger.WarnContext(ctx, "skipping schedule game without both teams", "date", day.Date)
				continue
			}
			if firstPitch, err := time.Parse(time.RFC3339, item.GameDate); err == nil {
				obs.StartTime = firstPitch.UTC().Format("3:04 PM")
			}
			if pitcher := item.Teams.Home.ProbablePitcher; pitcher != nil && pitcher.FullName != "" {
				name := pitcher.FullName
				obs.HomePitcher = &name
			}
			if pitcher := item.Teams.Away.ProbablePitcher; pitcher != nil && pitcher.FullName != "" {
				name := pitcher.FullName
				obs.AwayPitcher = &name
			}
			observations = append(observations, obs)
		}
	}
	return observations, nil
}

func (c *Client) doJSON(ctx context.Context, pathAndQuery string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "mlb stats circuit breaker rejected request")
			return fmt.Errorf("%w: mlb stats api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, c.baseURL+pathAndQuery)
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
		return crerr.Wrap(err, "decode schedule payload")
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
		c.logger.WarnContext(ctx, "mlb stats request failed, retrying", "attempt", attempt+1, "error", err)
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build schedule request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "execute schedule request"), errTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read schedule response"), errTransient)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return nil, crerr.Mark(crerr.Newf("schedule responded with status %d", resp.StatusCode), errTransient)
	case resp.StatusCode != http.StatusOK:
		return nil, crerr.Newf("schedule responded with status %d", resp.StatusCode)
	}
	return body, nil
}
