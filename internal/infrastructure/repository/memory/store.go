// Package memory implements the repositories over in-process maps. It backs
// the usecase tests and local development without a database.
package memory

import (
	"context"
	"sync"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/domain/odds"
)

// Store holds the games and odds tables behind one mutex so a batch write
// lands in both or neither, mirroring the transactional postgres writer.
type Store struct {
	mu        sync.RWMutex
	games     map[string]game.Game
	snapshots []odds.Snapshot
	nextID    int64
}

func NewStore() *Store {
	return &Store{
		games:  make(map[string]game.Game),
		nextID: 1,
	}
}

// WriteBatch upserts the games and appends the snapshots as one unit.
func (s *Store) WriteBatch(_ context.Context, games []game.Game, snapshots []odds.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range games {
		s.games[g.ID] = s.mergeGame(g)
	}
	for _, snap := range snapshots {
		snap.ID = s.nextID
		s.nextID++
		s.snapshots = append(s.snapshots, snap)
	}
	return nil
}

// UpsertGames replaces game metadata without touching the odds log.
func (s *Store) UpsertGames(_ context.Context, games []game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range games {
		s.games[g.ID] = s.mergeGame(g)
	}
	return nil
}

// mergeGame applies an upsert the way the postgres writer's COALESCE does:
// a nil pitcher on the incoming row keeps whatever an earlier schedule sync
// recorded. Callers must hold the write lock.
func (s *Store) mergeGame(g game.Game) game.Game {
	existing, ok := s.games[g.ID]
	if !ok {
		return g
	}
	if g.HomePitcher == nil {
		g.HomePitcher = existing.HomePitcher
	}
	if g.AwayPitcher == nil {
		g.AwayPitcher = existing.AwayPitcher
	}
	return g
}
