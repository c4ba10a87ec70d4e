package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	SportNFL = "nfl"
	SportMLB = "mlb"

	// TimeTBD is the placeholder token used when a source gives no start time.
	TimeTBD = "TBD"
)

// ErrIdentity marks an observation whose game identity cannot be resolved.
var ErrIdentity = errors.New("unresolvable game identity")

// Game represents one scheduled contest. ID is derived, never source-provided.
type Game struct {
	ID          string
	Sport       string
	StartTime   string
	GameDate    string
	HomeTeam    string
	AwayTeam    string
	HomePitcher *string
	AwayPitcher *string
}

// Nickname extracts the source-independent identity token from a full team
// name: the last whitespace-separated word ("Kansas City Chiefs" -> "Chiefs").
func Nickname(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// NormalizeStartTime canonicalizes a scraped start-time token: uppercase with
// all whitespace removed, so "8:20 pm" and "8:20PM" compare equal. An empty
// token becomes TimeTBD.
func NormalizeStartTime(token string) string {
	fields := strings.Fields(strings.ToUpper(token))
	if len(fields) == 0 {
		return TimeTBD
	}
	return strings.Join(fields, "")
}

// ResolveID derives the stable game identifier from the nicknamed matchup and
// the normalized start-time token. It is a pure function: the same inputs
// always yield the same ID regardless of which source produced them.
func ResolveID(homeTeam, awayTeam, startTime string) (string, error) {
	homeNick := Nickname(homeTeam)
	awayNick := Nickname(awayTeam)
	if homeNick == "" {
		return "", fmt.Errorf("%w: home team name is empty", ErrIdentity)
	}
	if awayNick == "" {
		return "", fmt.Errorf("%w: away team name is empty", ErrIdentity)
	}
	return fmt.Sprintf("%s@%s %s", awayNick, homeNick, NormalizeStartTime(startTime)), nil
}

func NormalizeSport(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func IsKnownSport(sport string) bool {
	switch NormalizeSport(sport) {
	case SportNFL, SportMLB:
		return true
	default:
		return false
	}
}
