package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelect_WhereOrderLimit(t *testing.T) {
	query, args, err := Select("game_id", "provider").
		From("odds").
		Where(Eq("game_id", "Bills@Chiefs 8:20PM")).
		OrderBy("updated_at DESC", "id DESC").
		Limit(2).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT game_id, provider FROM odds WHERE game_id = $1 ORDER BY updated_at DESC, id DESC LIMIT 2", query)
	require.Equal(t, []any{"Bills@Chiefs 8:20PM"}, args)
}

func TestSelect_GroupByHaving(t *testing.T) {
	query, args, err := Select("game_id").
		From("odds").
		Where(Eq("provider", "ESPN")).
		GroupBy("game_id").
		Having("COUNT(*) >= 2").
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT game_id FROM odds WHERE provider = $1 GROUP BY game_id HAVING COUNT(*) >= 2", query)
	require.Len(t, args, 1)
}

func TestSelect_JoinAndExpr(t *testing.T) {
	query, args, err := Select("o.game_id").
		From("odds o").
		Join("games g ON g.game_id = o.game_id").
		Where(Eq("g.sport", "nfl"), Expr("o.updated_at >= ?", "2026-01-01T00:00:00Z")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT o.game_id FROM odds o JOIN games g ON g.game_id = o.game_id WHERE g.sport = $1 AND o.updated_at >= $2", query)
	require.Equal(t, []any{"nfl", "2026-01-01T00:00:00Z"}, args)
}

func TestSelect_RequiresTable(t *testing.T) {
	_, _, err := Select("x").ToSQL()
	require.Error(t, err)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		GameID   string `db:"game_id"`
		Provider string `db:"provider"`
		Ignored  string `db:"-"`
	}
	query, args, err := InsertModel("odds", row{GameID: "a", Provider: "b", Ignored: "c"}, "ON CONFLICT DO NOTHING")
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO odds (game_id, provider) VALUES ($1, $2) ON CONFLICT DO NOTHING", query)
	require.Equal(t, []any{"a", "b"}, args)
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	_, _, err := InsertModel("odds", 42, "")
	require.Error(t, err)
}
