package mlbapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lineshift/lineshift/internal/platform/logging"
	"github.com/lineshift/lineshift/internal/platform/resilience"
	"github.com/lineshift/lineshift/internal/usecase"
)

const scheduleFixture = `{
	"dates": [{
		"date": "2025-06-14",
		"games": [{
			"gameDate": "2025-06-14T23:05:00Z",
			"teams": {
				"home": {
					"team": {"name": "New York Yankees"},
					"probablePitcher": {"fullName": "Gerrit Cole"}
				},
				"away": {
					"team": {"name": "Boston Red Sox"}
				}
			}
		}]
	}]
}`

func TestFetchObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("sportId") != "1" || query.Get("date") != "2025-06-14" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if query.Get("hydrate") != "probablePitcher" {
			t.Errorf("missing probablePitcher hydrate")
		}
		_, _ = w.Write([]byte(scheduleFixture))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Logger:  logging.NewNop(),
		Now:     func() time.Time { return time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC) },
	})

	if client.Kind() != usecase.SourceKindSchedule {
		t.Fatalf("kind = %q, want schedule", client.Kind())
	}

	observations, err := client.FetchObservations(t.Context())
	if err != nil {
		t.Fatalf("FetchObservations: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("observations = %d, want 1", len(observations))
	}

	obs := observations[0]
	if obs.HomeTeam != "New York Yankees" || obs.AwayTeam != "Boston Red Sox" {
		t.Fatalf("teams = %q vs %q", obs.AwayTeam, obs.HomeTeam)
	}
	if obs.Provider != "MLB-API" {
		t.Fatalf("provider = %q", obs.Provider)
	}
	if obs.GameDate != "2025-06-14" {
		t.Fatalf("game date = %q", obs.GameDate)
	}
	if obs.StartTime != "11:05 PM" {
		t.Fatalf("start time = %q", obs.StartTime)
	}
	if obs.HomePitcher == nil || *obs.HomePitcher != "Gerrit Cole" {
		t.Fatalf("home pitcher = %v", obs.HomePitcher)
	}
	if obs.AwayPitcher != nil {
		t.Fatalf("away pitcher = %v, want nil when not announced", obs.AwayPitcher)
	}
	if obs.Spread != nil || obs.Total != nil || obs.MoneylineHome != nil {
		t.Fatalf("schedule observation carried odds: %+v", obs)
	}
}

func TestFetchObservations_CircuitOpenFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	})

	if _, err := client.FetchObservations(t.Context()); err == nil {
		t.Fatal("expected error from failing upstream")
	}
	// The breaker tripped on the first failure, so the next call is
	// rejected before reaching the server.
	if _, err := client.FetchObservations(t.Context()); err == nil {
		t.Fatal("expected circuit breaker rejection")
	}
}
