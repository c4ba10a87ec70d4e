package playerstats

import "context"

type Repository interface {
	ReplaceAll(ctx context.Context, stats []SeasonStat) error
	List(ctx context.Context, teamFilter string) ([]SeasonStat, error)
}
