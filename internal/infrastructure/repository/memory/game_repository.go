package memory

import (
	"context"
	"sort"

	"github.com/lineshift/lineshift/internal/domain/game"
)

type GameRepository struct {
	store *Store
}

func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{store: store}
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	g, ok := r.store.games[gameID]
	return g, ok, nil
}

func (r *GameRepository) ListBySport(_ context.Context, sport string) ([]game.Game, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	games := make([]game.Game, 0)
	for _, g := range r.store.games {
		if g.Sport == sport {
			games = append(games, g)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}
