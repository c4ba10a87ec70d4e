package odds

import "time"

// Market field names as they appear in movement reports and API payloads.
const (
	FieldSpread        = "spread"
	FieldTotal         = "total"
	FieldMoneylineHome = "moneyline_home"
	FieldMoneylineAway = "moneyline_away"
)

// Snapshot is one immutable observation of betting lines for a game at a
// point in time. Snapshots are only ever appended; history for a game is the
// ordered set of its snapshots.
type Snapshot struct {
	ID            int64
	GameID        string
	Provider      string
	SpreadDetails *string
	OverUnder     *float64
	MoneylineHome *int
	MoneylineAway *int
	UpdatedAt     time.Time
}

// StampTime canonicalizes an ingestion timestamp: UTC, whole seconds. The
// second precision keeps latest-two ordering stable and diffs readable.
func StampTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// FormatTime renders a snapshot timestamp in the wire format other
// components depend on for ordering: RFC3339 UTC, whole seconds.
func FormatTime(t time.Time) string {
	return StampTime(t).Format(time.RFC3339)
}
