package httpapi

import (
	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/domain/odds"
	"github.com/lineshift/lineshift/internal/domain/playerstats"
	"github.com/lineshift/lineshift/internal/usecase"
)

type gameDTO struct {
	GameID      string  `json:"game_id"`
	Sport       string  `json:"sport"`
	StartTime   string  `json:"start_time"`
	GameDate    string  `json:"game_date"`
	HomeTeam    string  `json:"home_team"`
	AwayTeam    string  `json:"away_team"`
	HomePitcher *string `json:"home_pitcher,omitempty"`
	AwayPitcher *string `json:"away_pitcher,omitempty"`
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
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

type snapshotDTO struct {
	Provider      string   `json:"provider"`
	Spread        *string  `json:"spread,omitempty"`
	Total         *float64 `json:"total,omitempty"`
	MoneylineHome *int     `json:"moneyline_home,omitempty"`
	MoneylineAway *int     `json:"moneyline_away,omitempty"`
	UpdatedAt     string   `json:"updated_at"`
}

func snapshotToDTO(s odds.Snapshot) snapshotDTO {
	return snapshotDTO{
		Provider:      s.Provider,
		Spread:        s.SpreadDetails,
		Total:         s.OverUnder,
		MoneylineHome: s.MoneylineHome,
		MoneylineAway: s.MoneylineAway,
		UpdatedAt:     odds.FormatTime(s.UpdatedAt),
	}
}

type gameLinesDTO struct {
	Game   gameDTO      `json:"game"`
	Latest *snapshotDTO `json:"latest,omitempty"`
}

func gameLinesToDTO(lines usecase.GameLines) gameLinesDTO {
	dto := gameLinesDTO{Game: gameToDTO(lines.Game)}
	if lines.Latest != nil {
		latest := snapshotToDTO(*lines.Latest)
		dto.Latest = &latest
	}
	return dto
}

type gameHistoryDTO struct {
	Game      gameDTO       `json:"game"`
	Snapshots []snapshotDTO `json:"snapshots"`
}

type playerStatDTO struct {
	PlayerName       string  `json:"player_name"`
	Team             string  `json:"team"`
	GamesPlayed      int     `json:"games_played"`
	PlateAppearances int     `json:"plate_appearances"`
	HomeRuns         int     `json:"home_runs"`
	Runs             int     `json:"runs"`
	RBI              int     `json:"rbi"`
	StolenBases      int     `json:"stolen_bases"`
	WalkRate         float64 `json:"walk_rate"`
	StrikeoutRate    float64 `json:"strikeout_rate"`
	ISO              float64 `json:"iso"`
	BABIP            float64 `json:"babip"`
	BattingAvg       float64 `json:"batting_avg"`
	OBP              float64 `json:"obp"`
	SLG              float64 `json:"slg"`
	WOBA             float64 `json:"woba"`
	XWOBA            float64 `json:"xwoba"`
	WRCPlus          int     `json:"wrc_plus"`
	WAR              float64 `json:"war"`
}

func playerStatToDTO(s playerstats.SeasonStat) playerStatDTO {
	return playerStatDTO{
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
	}
}
