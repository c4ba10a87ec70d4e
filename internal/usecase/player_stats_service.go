package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/lineshift/lineshift/internal/domain/playerstats"
)

type PlayerStatsService struct {
	repo playerstats.Repository
}

func NewPlayerStatsService(repo playerstats.Repository) *PlayerStatsService {
	return &PlayerStatsService{repo: repo}
}

// Replace swaps the whole season-stats table for the given batch. Stats are
// a full-table feed from the source, so partial merges would leave traded
// players duplicated under their old team.
func (s *PlayerStatsService) Replace(ctx context.Context, stats []playerstats.SeasonStat) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.Replace")
	defer span.End()

	cleaned := make([]playerstats.SeasonStat, 0, len(stats))
	for i, stat := range stats {
		stat.PlayerName = strings.TrimSpace(stat.PlayerName)
		stat.Team = strings.TrimSpace(stat.Team)
		if stat.PlayerName == "" || stat.Team == "" {
			return fmt.Errorf("%w: stat %d missing player name or team", ErrValidation, i)
		}
		cleaned = append(cleaned, stat)
	}

	if err := s.repo.ReplaceAll(ctx, cleaned); err != nil {
		return fmt.Errorf("%w: replace player stats: %v", ErrStorage, err)
	}
	return nil
}

// List returns season stats, optionally filtered to one team.
func (s *PlayerStatsService) List(ctx context.Context, teamFilter string) ([]playerstats.SeasonStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.List")
	defer span.End()

	stats, err := s.repo.List(ctx, strings.TrimSpace(teamFilter))
	if err != nil {
		return nil, fmt.Errorf("%w: list player stats: %v", ErrStorage, err)
	}
	return stats, nil
}
