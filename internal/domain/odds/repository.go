package odds

import "context"

// Repository exposes snapshot read operations. The detector relies on
// ListRecent being one consistent read: the latest-two pair must come from a
// single query, never from a count followed by a separate load.
type Repository interface {
	// ListRecent returns up to limit snapshots for a game, newest first.
	// Ties on updated_at (same ingestion batch) break on insertion order,
	// newest insert first.
	ListRecent(ctx context.Context, gameID string, limit int) ([]Snapshot, error)
	// ListByGame returns the full append-only history, oldest first.
	ListByGame(ctx context.Context, gameID string) ([]Snapshot, error)
	// ListGameIDsWithHistory returns the game ids in a sport that have at
	// least two snapshots, i.e. enough history to diff.
	ListGameIDsWithHistory(ctx context.Context, sport string) ([]string, error)
}
