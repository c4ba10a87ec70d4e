package game

import "context"

// Repository exposes game read operations. Writes go through the ingestion
// batch writer so a whole scrape commits atomically.
type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListBySport(ctx context.Context, sport string) ([]Game, error)
}
