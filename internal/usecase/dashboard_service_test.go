package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/domain/odds"
	"github.com/lineshift/lineshift/internal/infrastructure/repository/memory"
	"github.com/lineshift/lineshift/internal/platform/cache"
	"github.com/lineshift/lineshift/internal/platform/logging"
)

func TestLatestLines(t *testing.T) {
	store := memory.NewStore()
	svc := NewDashboardService(memory.NewGameRepository(store), memory.NewOddsRepository(store), cache.NewStore(time.Minute))
	ctx := t.Context()

	games := []game.Game{
		{ID: "Bills@Chiefs 8:20PM", Sport: game.SportNFL, HomeTeam: "Kansas City Chiefs", AwayTeam: "Buffalo Bills"},
		{ID: "Jets@Dolphins 1:00PM", Sport: game.SportNFL, HomeTeam: "Miami Dolphins", AwayTeam: "New York Jets"},
	}
	if err := store.UpsertGames(ctx, games); err != nil {
		t.Fatalf("seed games: %v", err)
	}
	seedSnapshot(t, store, odds.Snapshot{GameID: "Bills@Chiefs 8:20PM", Provider: "ESPN", SpreadDetails: strPtr("-3"), UpdatedAt: at(0)})
	seedSnapshot(t, store, odds.Snapshot{GameID: "Bills@Chiefs 8:20PM", Provider: "ESPN", SpreadDetails: strPtr("-2.5"), UpdatedAt: at(5)})

	lines, err := svc.LatestLines(ctx, game.SportNFL)
	if err != nil {
		t.Fatalf("LatestLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d entries, want 2", len(lines))
	}
	chiefs := lines[0]
	if chiefs.Latest == nil || *chiefs.Latest.SpreadDetails != "-2.5" {
		t.Fatalf("chiefs latest = %+v, want newest spread", chiefs.Latest)
	}
	if lines[1].Latest != nil {
		t.Fatalf("unpriced game latest = %+v, want nil", lines[1].Latest)
	}
}

func TestLatestLinesServesFromCache(t *testing.T) {
	store := memory.NewStore()
	cacheStore := cache.NewStore(time.Minute)
	svc := NewDashboardService(memory.NewGameRepository(store), memory.NewOddsRepository(store), cacheStore)
	ctx := t.Context()

	if err := store.UpsertGames(ctx, []game.Game{{ID: "Bills@Chiefs 8:20PM", Sport: game.SportNFL}}); err != nil {
		t.Fatalf("seed games: %v", err)
	}
	if _, err := svc.LatestLines(ctx, game.SportNFL); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	// A second game arrives without a cache invalidation; the cached board
	// keeps serving until ingestion deletes the key.
	if err := store.UpsertGames(ctx, []game.Game{{ID: "Jets@Dolphins 1:00PM", Sport: game.SportNFL}}); err != nil {
		t.Fatalf("seed second game: %v", err)
	}
	lines, err := svc.LatestLines(ctx, game.SportNFL)
	if err != nil {
		t.Fatalf("LatestLines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("lines = %d entries, want the cached single entry", len(lines))
	}

	cacheStore.DeletePrefix(ctx, "lines:"+game.SportNFL)
	lines, err = svc.LatestLines(ctx, game.SportNFL)
	if err != nil {
		t.Fatalf("LatestLines after invalidation: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d entries after invalidation, want 2", len(lines))
	}
}

func TestHistoryCacheInvalidatedByIngestion(t *testing.T) {
	store := memory.NewStore()
	cacheStore := cache.NewStore(time.Minute)
	svc := NewDashboardService(memory.NewGameRepository(store), memory.NewOddsRepository(store), cacheStore)
	ingestion := NewIngestionService(store, memory.NewGameRepository(store), cacheStore, logging.NewNop())
	ctx := t.Context()

	first := observation("DraftKings-Web")
	if _, err := ingestion.IngestBatch(ctx, game.SportNFL, []RawObservation{first}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	_, snapshots, err := svc.History(ctx, "Bills@Chiefs 8:20PM")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("history = %d rows, want 1", len(snapshots))
	}

	// The next batch for this game must evict the cached log.
	second := observation("DraftKings-Web")
	second.Spread = strPtr("-2.5")
	if _, err := ingestion.IngestBatch(ctx, game.SportNFL, []RawObservation{second}); err != nil {
		t.Fatalf("second batch: %v", err)
	}
	_, snapshots, err = svc.History(ctx, "Bills@Chiefs 8:20PM")
	if err != nil {
		t.Fatalf("History after second batch: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("history = %d rows after second batch, want 2", len(snapshots))
	}
}

func TestHistory(t *testing.T) {
	store := memory.NewStore()
	svc := NewDashboardService(memory.NewGameRepository(store), memory.NewOddsRepository(store), cache.NewStore(time.Minute))
	ctx := t.Context()

	seedGame(t, store, "Bills@Chiefs 8:20PM")
	seedSnapshot(t, store, odds.Snapshot{GameID: "Bills@Chiefs 8:20PM", Provider: "ESPN", SpreadDetails: strPtr("-3"), UpdatedAt: at(0)})
	seedSnapshot(t, store, odds.Snapshot{GameID: "Bills@Chiefs 8:20PM", Provider: "ESPN", SpreadDetails: strPtr("-2.5"), UpdatedAt: at(5)})

	g, snapshots, err := svc.History(ctx, "Bills@Chiefs 8:20PM")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if g.HomeTeam != "Kansas City Chiefs" {
		t.Fatalf("game = %+v", g)
	}
	if len(snapshots) != 2 || !snapshots[0].UpdatedAt.Before(snapshots[1].UpdatedAt) {
		t.Fatalf("history = %+v, want oldest first", snapshots)
	}

	_, _, err = svc.History(ctx, "Jets@Dolphins 1:00PM")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
