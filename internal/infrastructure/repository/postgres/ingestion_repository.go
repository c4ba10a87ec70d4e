package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/domain/odds"
	qb "github.com/lineshift/lineshift/internal/platform/querybuilder"
)

// Games are mutable metadata; odds rows are append-only. A NULL pitcher in
// the incoming row never clobbers one a schedule sync already recorded.
const gameUpsertSuffix = `ON CONFLICT (game_id) DO UPDATE SET
	sport = EXCLUDED.sport,
	start_time = EXCLUDED.start_time,
	game_date = EXCLUDED.game_date,
	home_team = EXCLUDED.home_team,
	away_team = EXCLUDED.away_team,
	home_pitcher = COALESCE(EXCLUDED.home_pitcher, games.home_pitcher),
	away_pitcher = COALESCE(EXCLUDED.away_pitcher, games.away_pitcher),
	updated_at = NOW()`

// IngestionRepository is the write side of ingestion. A batch lands in both
// tables inside one transaction or not at all.
type IngestionRepository struct {
	db *sqlx.DB
}

func NewIngestionRepository(db *sqlx.DB) *IngestionRepository {
	return &IngestionRepository{db: db}
}

func (r *IngestionRepository) WriteBatch(ctx context.Context, games []game.Game, snapshots []odds.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingestion tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := upsertGamesTx(ctx, tx, games); err != nil {
		return err
	}
	for _, snapshot := range snapshots {
		query, args, err := qb.InsertModel("odds", snapshotToInsertModel(snapshot), "")
		if err != nil {
			return fmt.Errorf("build insert odds query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert odds snapshot for %s: %w", snapshot.GameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingestion tx: %w", err)
	}
	return nil
}

func (r *IngestionRepository) UpsertGames(ctx context.Context, games []game.Game) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := upsertGamesTx(ctx, tx, games); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule tx: %w", err)
	}
	return nil
}

func upsertGamesTx(ctx context.Context, tx *sqlx.Tx, games []game.Game) error {
	for _, g := range games {
		query, args, err := qb.InsertModel("games", gameToInsertModel(g), gameUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert game query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert game %s: %w", g.ID, err)
		}
	}
	return nil
}
