package usecase

import (
	"context"
	"fmt"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/domain/odds"
	"github.com/lineshift/lineshift/internal/platform/cache"
)

// GameLines pairs a game with its most recent odds snapshot. Latest is nil
// for games the schedule sync knows about but no book has priced yet.
type GameLines struct {
	Game   game.Game
	Latest *odds.Snapshot
}

type DashboardService struct {
	gameRepo game.Repository
	oddsRepo odds.Repository
	cache    *cache.Store
}

func NewDashboardService(gameRepo game.Repository, oddsRepo odds.Repository, cacheStore *cache.Store) *DashboardService {
	return &DashboardService{
		gameRepo: gameRepo,
		oddsRepo: oddsRepo,
		cache:    cacheStore,
	}
}

// LatestLines returns every game in a sport with its newest snapshot, the
// read model behind the odds board. Results are cached until the next
// ingestion batch invalidates them.
func (s *DashboardService) LatestLines(ctx context.Context, sport string) ([]GameLines, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.LatestLines")
	defer span.End()

	sport = game.NormalizeSport(sport)
	if !game.IsKnownSport(sport) {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	cacheKey := "lines:" + sport
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if lines, ok := cached.([]GameLines); ok {
			return lines, nil
		}
	}

	games, err := s.gameRepo.ListBySport(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("%w: list games: %v", ErrStorage, err)
	}

	lines := make([]GameLines, 0, len(games))
	for _, g := range games {
		snapshots, err := s.oddsRepo.ListRecent(ctx, g.ID, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: load latest snapshot for %s: %v", ErrStorage, g.ID, err)
		}
		entry := GameLines{Game: g}
		if len(snapshots) > 0 {
			entry.Latest = &snapshots[0]
		}
		lines = append(lines, entry)
	}

	s.cache.Set(ctx, cacheKey, lines)
	return lines, nil
}

type gameHistory struct {
	game      game.Game
	snapshots []odds.Snapshot
}

// History returns the full append-only snapshot log for one game, oldest
// first. The log is the audit trail; nothing in it is ever rewritten.
// Ingestion invalidates the cached log for exactly the games it touched.
func (s *DashboardService) History(ctx context.Context, gameID string) (game.Game, []odds.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.History")
	defer span.End()

	cacheKey := "history:" + gameID
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if h, ok := cached.(gameHistory); ok {
			return h.game, h.snapshots, nil
		}
	}

	g, ok, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("%w: lookup game %s: %v", ErrStorage, gameID, err)
	}
	if !ok {
		return game.Game{}, nil, fmt.Errorf("%w: game %q", ErrNotFound, gameID)
	}

	snapshots, err := s.oddsRepo.ListByGame(ctx, gameID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("%w: load history for %s: %v", ErrStorage, gameID, err)
	}

	s.cache.Set(ctx, cacheKey, gameHistory{game: g, snapshots: snapshots})
	return g, snapshots, nil
}
