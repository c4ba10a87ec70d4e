package playerstats

import "time"

// SeasonStat is one batter's season line as scraped from a stats aggregator.
// Keyed by (player_name, team); each scrape replaces the dataset wholesale.
type SeasonStat struct {
	PlayerName       string
	Team             string
	GamesPlayed      int
	PlateAppearances int
	HomeRuns         int
	Runs             int
	RBI              int
	StolenBases      int
	WalkRate         float64
	StrikeoutRate    float64
	ISO              float64
	BABIP            float64
	BattingAvg       float64
	OBP              float64
	SLG              float64
	WOBA             float64
	XWOBA            float64
	WRCPlus          int
	WAR              float64
	LastUpdated      time.Time
}
