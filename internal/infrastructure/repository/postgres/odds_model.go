package postgres

import (
	"time"

	"github.com/lineshift/lineshift/internal/domain/odds"
)

type oddsTableModel struct {
	ID            int64     `db:"id"`
	GameID        string    `db:"game_id"`
	Provider      string    `db:"provider"`
	SpreadDetails *string   `db:"spread_details"`
	OverUnder     *float64  `db:"over_under"`
	MoneylineHome *int      `db:"moneyline_home"`
	MoneylineAway *int      `db:"moneyline_away"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m oddsTableModel) toDomain() odds.Snapshot {
	return odds.Snapshot{
		ID:            m.ID,
		GameID:        m.GameID,
		Provider:      m.Provider,
		SpreadDetails: m.SpreadDetails,
		OverUnder:     m.OverUnder,
		MoneylineHome: m.MoneylineHome,
		MoneylineAway: m.MoneylineAway,
		UpdatedAt:     m.UpdatedAt,
	}
}

// oddsInsertModel excludes the serial id.
type oddsInsertModel struct {
	GameID        string    `db:"game_id"`
	Provider      string    `db:"provider"`
	SpreadDetails *string   `db:"spread_details"`
	OverUnder     *float64  `db:"over_under"`
	MoneylineHome *int      `db:"moneyline_home"`
	MoneylineAway *int      `db:"moneyline_away"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func snapshotToInsertModel(s odds.Snapshot) oddsInsertModel {
	return oddsInsertModel{
		GameID:        s.GameID,
		Provider:      s.Provider,
		SpreadDetails: s.SpreadDetails,
		OverUnder:     s.OverUnder,
		MoneylineHome: s.MoneylineHome,
		MoneylineAway: s.MoneylineAway,
		UpdatedAt:     s.UpdatedAt,
	}
}
