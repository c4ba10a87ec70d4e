package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/infrastructure/repository/memory"
	"github.com/lineshift/lineshift/internal/platform/cache"
	"github.com/lineshift/lineshift/internal/platform/logging"
)

type stubSource struct {
	name         string
	sport        string
	kind         SourceKind
	observations []RawObservation
	err          error
}

func (s stubSource) Name() string     { return s.name }
func (s stubSource) Sport() string    { return s.sport }
func (s stubSource) Kind() SourceKind { return s.kind }

func (s stubSource) FetchObservations(context.Context) ([]RawObservation, error) {
	return s.observations, s.err
}

func TestRefreshAll(t *testing.T) {
	store := memory.NewStore()
	ingestion := NewIngestionService(store, memory.NewGameRepository(store), cache.NewStore(time.Minute), logging.NewNop())

	workers, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("ants pool: %v", err)
	}
	defer workers.Release()

	sources := []Source{
		stubSource{name: "draftkings", sport: game.SportNFL, kind: SourceKindOdds, observations: []RawObservation{observation("DraftKings-Web")}},
		stubSource{name: "espn", sport: game.SportNFL, kind: SourceKindOdds, err: errors.New("upstream 503")},
		stubSource{name: "mlb-schedule", sport: game.SportMLB, kind: SourceKindSchedule, observations: []RawObservation{{
			HomeTeam:  "New York Yankees",
			AwayTeam:  "Boston Red Sox",
			StartTime: "7:05 PM",
			Provider:  "MLB-API",
		}}},
	}
	svc := NewRefreshService(ingestion, sources, workers, logging.NewNop())

	results, err := svc.RefreshAll(t.Context())
	if err != nil {
		t.Fatalf("RefreshAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want one per source", len(results))
	}

	byName := make(map[string]SourceResult, len(results))
	for _, result := range results {
		byName[result.Source] = result
	}
	if r := byName["draftkings"]; r.Error != "" || r.Report == nil || r.Report.Inserted != 1 {
		t.Fatalf("draftkings result = %+v", r)
	}
	if r := byName["espn"]; r.Error == "" || r.Report != nil {
		t.Fatalf("espn result = %+v, want fetch error surfaced", r)
	}
	if r := byName["mlb-schedule"]; r.Error != "" || r.Report == nil || r.Report.Inserted != 1 {
		t.Fatalf("schedule result = %+v", r)
	}

	// The failing source never blocks its peers from landing.
	if _, ok, _ := memory.NewGameRepository(store).GetByID(t.Context(), "Bills@Chiefs 8:20PM"); !ok {
		t.Fatal("odds batch from healthy source was not stored")
	}
	if _, ok, _ := memory.NewGameRepository(store).GetByID(t.Context(), "Sox@Yankees 7:05PM"); !ok {
		t.Fatal("schedule sync from healthy source was not stored")
	}
}

func TestRefreshAllEmptyFetchIsNotAFailure(t *testing.T) {
	store := memory.NewStore()
	ingestion := NewIngestionService(store, memory.NewGameRepository(store), cache.NewStore(time.Minute), logging.NewNop())

	workers, err := ants.NewPool(1)
	if err != nil {
		t.Fatalf("ants pool: %v", err)
	}
	defer workers.Release()

	// An off-day schedule returns zero games; the source stays healthy.
	sources := []Source{
		stubSource{name: "mlb-schedule", sport: game.SportMLB, kind: SourceKindSchedule, observations: nil},
	}
	svc := NewRefreshService(ingestion, sources, workers, logging.NewNop())

	results, err := svc.RefreshAll(t.Context())
	if err != nil {
		t.Fatalf("RefreshAll: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if r := results[0]; r.Error != "" || r.Fetched != 0 || r.Report != nil {
		t.Fatalf("empty fetch result = %+v, want clean no-op", r)
	}
}

func TestRefreshAllNoSources(t *testing.T) {
	workers, err := ants.NewPool(1)
	if err != nil {
		t.Fatalf("ants pool: %v", err)
	}
	defer workers.Release()

	svc := NewRefreshService(nil, nil, workers, logging.NewNop())
	if _, err := svc.RefreshAll(t.Context()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
