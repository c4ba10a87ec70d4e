package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lineshift/lineshift/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	stats []playerstats.SeasonStat
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{}
}

func (r *PlayerStatsRepository) ReplaceAll(_ context.Context, stats []playerstats.SeasonStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats = make([]playerstats.SeasonStat, len(stats))
	copy(r.stats, stats)
	return nil
}

func (r *PlayerStatsRepository) List(_ context.Context, teamFilter string) ([]playerstats.SeasonStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.SeasonStat, 0, len(r.stats))
	for _, stat := range r.stats {
		if teamFilter != "" && !strings.EqualFold(stat.Team, teamFilter) {
			continue
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return out, nil
}
