package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/domain/odds"
)

type MovementStatus string

const (
	StatusMovement            MovementStatus = "movement"
	StatusNoMovement          MovementStatus = "no_movement"
	StatusInsufficientHistory MovementStatus = "insufficient_history"
)

type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// MovementReport describes how a game's lines moved between its two most
// recent snapshots. InsufficientHistory and NoMovement are defined outcomes,
// not errors.
type MovementReport struct {
	GameID     string         `json:"game_id"`
	HomeTeam   string         `json:"home_team"`
	AwayTeam   string         `json:"away_team"`
	Status     MovementStatus `json:"status"`
	LatestAt   string         `json:"latest_at,omitempty"`
	PreviousAt string         `json:"previous_at,omitempty"`
	Changes    []FieldChange  `json:"changes,omitempty"`
}

type MovementService struct {
	gameRepo game.Repository
	oddsRepo odds.Repository
	// Fan-out width for sport-wide scans.
	maxScanners int
}

func NewMovementService(gameRepo game.Repository, oddsRepo odds.Repository, maxScanners int) *MovementService {
	if maxScanners < 1 {
		maxScanners = 8
	}
	return &MovementService{
		gameRepo:    gameRepo,
		oddsRepo:    oddsRepo,
		maxScanners: maxScanners,
	}
}

// Detect compares the two most recent snapshots of one game. The pair is
// loaded in a single consistent read so an insert landing mid-call cannot
// split the result across two points in time.
func (s *MovementService) Detect(ctx context.Context, gameID string) (MovementReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MovementService.Detect")
	defer span.End()

	g, ok, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return MovementReport{}, fmt.Errorf("%w: lookup game %s: %v", ErrStorage, gameID, err)
	}
	if !ok {
		return MovementReport{}, fmt.Errorf("%w: game %q", ErrNotFound, gameID)
	}

	report := MovementReport{
		GameID:   g.ID,
		HomeTeam: g.HomeTeam,
		AwayTeam: g.AwayTeam,
	}

	snapshots, err := s.oddsRepo.ListRecent(ctx, gameID, 2)
	if err != nil {
		return MovementReport{}, fmt.Errorf("%w: load snapshots for %s: %v", ErrStorage, gameID, err)
	}
	if len(snapshots) < 2 {
		report.Status = StatusInsufficientHistory
		return report, nil
	}

	latest, previous := snapshots[0], snapshots[1]
	report.LatestAt = odds.FormatTime(latest.UpdatedAt)
	report.PreviousAt = odds.FormatTime(previous.UpdatedAt)
	report.Changes = diffSnapshots(latest, previous)

	if len(report.Changes) == 0 {
		report.Status = StatusNoMovement
	} else {
		report.Status = StatusMovement
	}
	return report, nil
}

// DetectAll scans every game in a sport that has enough history and returns
// the reports where something actually moved, ordered by game id.
func (s *MovementService) DetectAll(ctx context.Context, sport string) ([]MovementReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MovementService.DetectAll")
	defer span.End()

	sport = game.NormalizeSport(sport)
	if !game.IsKnownSport(sport) {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	gameIDs, err := s.oddsRepo.ListGameIDsWithHistory(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("%w: list games with history: %v", ErrStorage, err)
	}

	p := pool.NewWithResults[MovementReport]().
		WithContext(ctx).
		WithMaxGoroutines(s.maxScanners).
		WithCancelOnError()
	for _, gameID := range gameIDs {
		p.Go(func(ctx context.Context) (MovementReport, error) {
			return s.Detect(ctx, gameID)
		})
	}
	reports, err := p.Wait()
	if err != nil {
		return nil, err
	}

	moved := make([]MovementReport, 0, len(reports))
	for _, report := range reports {
		if report.Status == StatusMovement {
			moved = append(moved, report)
		}
	}
	sort.Slice(moved, func(i, j int) bool { return moved[i].GameID < moved[j].GameID })
	return moved, nil
}

// diffSnapshots applies the two-sided non-null rule: a field missing in
// either snapshot reflects a market that was not posted, not a price move.
func diffSnapshots(latest, previous odds.Snapshot) []FieldChange {
	changes := make([]FieldChange, 0, 4)

	if latest.SpreadDetails != nil && previous.SpreadDetails != nil && *latest.SpreadDetails != *previous.SpreadDetails {
		changes = append(changes, FieldChange{
			Field: odds.FieldSpread,
			Old:   *previous.SpreadDetails,
			New:   *latest.SpreadDetails,
		})
	}
	if latest.OverUnder != nil && previous.OverUnder != nil && *latest.OverUnder != *previous.OverUnder {
		changes = append(changes, FieldChange{
			Field: odds.FieldTotal,
			Old:   formatTotal(*previous.OverUnder),
			New:   formatTotal(*latest.OverUnder),
		})
	}
	if latest.MoneylineHome != nil && previous.MoneylineHome != nil && *latest.MoneylineHome != *previous.MoneylineHome {
		changes = append(changes, FieldChange{
			Field: odds.FieldMoneylineHome,
			Old:   strconv.Itoa(*previous.MoneylineHome),
			New:   strconv.Itoa(*latest.MoneylineHome),
		})
	}
	if latest.MoneylineAway != nil && previous.MoneylineAway != nil && *latest.MoneylineAway != *previous.MoneylineAway {
		changes = append(changes, FieldChange{
			Field: odds.FieldMoneylineAway,
			Old:   strconv.Itoa(*previous.MoneylineAway),
			New:   strconv.Itoa(*latest.MoneylineAway),
		})
	}

	return changes
}

func formatTotal(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
