package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lineshift/lineshift/internal/domain/playerstats"
	qb "github.com/lineshift/lineshift/internal/platform/querybuilder"
)

type playerStatTableModel struct {
	PlayerName       string    `db:"player_name"`
	Team             string    `db:"team"`
	GamesPlayed      int       `db:"games_played"`
	PlateAppearances int       `db:"plate_appearances"`
	HomeRuns         int       `db:"home_runs"`
	Runs             int       `db:"runs"`
	RBI              int       `db:"rbi"`
	StolenBases      int       `db:"stolen_bases"`
	WalkRate         float64   `db:"walk_rate"`
	StrikeoutRate    float64   `db:"strikeout_rate"`
	ISO              float64   `db:"iso"`
	BABIP            float64   `db:"babip"`
	BattingAvg       float64   `db:"batting_avg"`
	OBP              float64   `db:"obp"`
	SLG              float64   `db:"slg"`
	WOBA             float64   `db:"woba"`
	XWOBA            float64   `db:"xwoba"`
	WRCPlus          int       `db:"wrc_plus"`
	WAR              float64   `db:"war"`
	LastUpdated      time.Time `db:"last_updated"`
}

func (m playerStatTableModel) toDomain() playerstats.SeasonStat {
	return playerstats.SeasonStat{
		PlayerName:       m.PlayerName,
		Team:             m.Team,
		GamesPlayed:      m.GamesPlayed,
		PlateAppearances: m.PlateAppearances,
		HomeRuns:         m.HomeRuns,
		Runs:             m.Runs,
		RBI:              m.RBI,
		StolenBases:      m.StolenBases,
		WalkRate:         m.WalkRate,
		StrikeoutRate:    m.StrikeoutRate,
		ISO:              m.ISO,
		BABIP:            m.BABIP,
		BattingAvg:       m.BattingAvg,
		OBP:              m.OBP,
		SLG:              m.SLG,
		WOBA:             m.WOBA,
		XWOBA:            m.XWOBA,
		WRCPlus:          m.WRCPlus,
		WAR:              m.WAR,
		LastUpdated:      m.LastUpdated,
	}
}

func statToTableModel(s playerstats.SeasonStat) playerStatTableModel {
	return playerStatTableModel{
		PlayerName:       s.PlayerName,
		Team:             s.Team,
		GamesPlayed:      s.GamesPlayed,
		PlateAppearances: s.PlateAppearances,
		HomeRuns:         s.HomeRuns,
		Runs:             s.Runs,
		RBI:              s.RBI,
		StolenBases:      s.StolenBases,
		WalkRate:         s.WalkRate,
		StrikeoutRate:    s.StrikeoutRate,
		ISO:              s.ISO,
		BABIP:            s.BABIP,
		BattingAvg:       s.BattingAvg,
		OBP:              s.OBP,
		SLG:              s.SLG,
		WOBA:             s.WOBA,
		XWOBA:            s.XWOBA,
		WRCPlus:          s.WRCPlus,
		WAR:              s.WAR,
		LastUpdated:      s.LastUpdated,
	}
}

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

// ReplaceAll swaps the whole table inside one transaction so readers never
// see a half-loaded feed.
func (r *PlayerStatsRepository) ReplaceAll(ctx context.Context, stats []playerstats.SeasonStat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin player stats tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM player_stats"); err != nil {
		return fmt.Errorf("clear player stats: %w", err)
	}
	for _, stat := range stats {
		query, args, err := qb.InsertModel("player_stats", statToTableModel(stat), "")
		if err != nil {
			return fmt.Errorf("build insert player stat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert player stat %s: %w", stat.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player stats tx: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) List(ctx context.Context, teamFilter string) ([]playerstats.SeasonStat, error) {
	builder := qb.Select("*").From("player_stats").OrderBy("team", "player_name")
	if teamFilter != "" {
		// Team filters come straight from query strings; match them
		// regardless of casing.
		builder = builder.Where(qb.Expr("LOWER(team) = LOWER(?)", teamFilter))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []playerStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player stats: %w", err)
	}

	out := make([]playerstats.SeasonStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
