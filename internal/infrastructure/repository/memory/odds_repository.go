package memory

import (
	"context"
	"sort"

	"github.com/lineshift/lineshift/internal/domain/odds"
)

type OddsRepository struct {
	store *Store
}

func NewOddsRepository(store *Store) *OddsRepository {
	return &OddsRepository{store: store}
}

func (r *OddsRepository) ListRecent(_ context.Context, gameID string, limit int) ([]odds.Snapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	snapshots := r.collect(gameID)
	// Newest first; the insert id breaks ties for snapshots stamped in the
	// same batch second.
	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].UpdatedAt.Equal(snapshots[j].UpdatedAt) {
			return snapshots[i].UpdatedAt.After(snapshots[j].UpdatedAt)
		}
		return snapshots[i].ID > snapshots[j].ID
	})
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}
	return snapshots, nil
}

func (r *OddsRepository) ListByGame(_ context.Context, gameID string) ([]odds.Snapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	snapshots := r.collect(gameID)
	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].UpdatedAt.Equal(snapshots[j].UpdatedAt) {
			return snapshots[i].UpdatedAt.Before(snapshots[j].UpdatedAt)
		}
		return snapshots[i].ID < snapshots[j].ID
	})
	return snapshots, nil
}

func (r *OddsRepository) ListGameIDsWithHistory(_ context.Context, sport string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[string]int)
	for _, snap := range r.store.snapshots {
		g, ok := r.store.games[snap.GameID]
		if !ok || g.Sport != sport {
			continue
		}
		counts[snap.GameID]++
	}

	gameIDs := make([]string, 0, len(counts))
	for gameID, n := range counts {
		if n >= 2 {
			gameIDs = append(gameIDs, gameID)
		}
	}
	sort.Strings(gameIDs)
	return gameIDs, nil
}

func (r *OddsRepository) collect(gameID string) []odds.Snapshot {
	snapshots := make([]odds.Snapshot, 0)
	for _, snap := range r.store.snapshots {
		if snap.GameID == gameID {
			snapshots = append(snapshots, snap)
		}
	}
	return snapshots
}
