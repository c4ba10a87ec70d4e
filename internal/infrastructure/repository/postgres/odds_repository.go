package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lineshift/lineshift/internal/domain/odds"
	qb "github.com/lineshift/lineshift/internal/platform/querybuilder"
)

type OddsRepository struct {
	db *sqlx.DB
}

func NewOddsRepository(db *sqlx.DB) *OddsRepository {
	return &OddsRepository{db: db}
}

// ListRecent loads the newest snapshots in one query. updated_at is stamped
// once per batch, so the serial id breaks ties between rows from the same
// batch second.
func (r *OddsRepository) ListRecent(ctx context.Context, gameID string, limit int) ([]odds.Snapshot, error) {
	query, args, err := qb.Select("*").From("odds").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("updated_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select recent odds query: %w", err)
	}

	var rows []oddsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select recent odds: %w", err)
	}

	out := make([]odds.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *OddsRepository) ListByGame(ctx context.Context, gameID string) ([]odds.Snapshot, error) {
	query, args, err := qb.Select("*").From("odds").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("updated_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select odds history query: %w", err)
	}

	var rows []oddsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select odds history: %w", err)
	}

	out := make([]odds.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *OddsRepository) ListGameIDsWithHistory(ctx context.Context, sport string) ([]string, error) {
	query, args, err := qb.Select("o.game_id").From("odds o").
		Join("games g ON g.game_id = o.game_id").
		Where(qb.Eq("g.sport", sport)).
		GroupBy("o.game_id").
		Having("COUNT(*) >= 2").
		OrderBy("o.game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games with history query: %w", err)
	}

	var gameIDs []string
	if err := r.db.SelectContext(ctx, &gameIDs, query, args...); err != nil {
		return nil, fmt.Errorf("select games with history: %w", err)
	}
	return gameIDs, nil
}
