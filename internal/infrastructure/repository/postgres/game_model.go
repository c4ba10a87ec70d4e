package postgres

import (
	"time"

	"github.com/lineshift/lineshift/internal/domain/game"
)

type gameTableModel struct {
	GameID      string     `db:"game_id"`
	Sport       string     `db:"sport"`
	StartTime   string     `db:"start_time"`
	GameDate    string     `db:"game_date"`
	HomeTeam    string     `db:"home_team"`
	AwayTeam    string     `db:"away_team"`
	HomePitcher *string    `db:"home_pitcher"`
	AwayPitcher *string    `db:"away_pitcher"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:          m.GameID,
		Sport:       m.Sport,
		StartTime:   m.StartTime,
		GameDate:    m.GameDate,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomePitcher: m.HomePitcher,
		AwayPitcher: m.AwayPitcher,
	}
}

// gameInsertModel carries only the columns ingestion writes; the database
// owns created_at and updated_at.
type gameInsertModel struct {
	GameID      string  `db:"game_id"`
	Sport       string  `db:"sport"`
	StartTime   string  `db:"start_time"`
	GameDate    string  `db:"game_date"`
	HomeTeam    string  `db:"home_team"`
	AwayTeam    string  `db:"away_team"`
	HomePitcher *string `db:"home_pitcher"`
	AwayPitcher *string `db:"away_pitcher"`
}

func gameToInsertModel(g game.Game) gameInsertModel {
	return gameInsertModel{
		GameID:      g.ID,
		Sport:       g.Sport,
		StartTime:   g.StartTime,
		GameDate:    g.GameDate,
		HomeTeam:    g.HomeTeam,
		AwayTeam:    g.AwayTeam,
		HomePitcher: g.HomePitcher,
		AwayPitcher: g.AwayPitcher,
	}
}
