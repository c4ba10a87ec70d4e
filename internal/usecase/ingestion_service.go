package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/domain/odds"
	"github.com/lineshift/lineshift/internal/platform/cache"
	"github.com/lineshift/lineshift/internal/platform/logging"
)

// RawObservation is one scraped game as handed over by a source collaborator.
// Market fields arrive as raw text and are parsed at this boundary; nil means
// the source did not post that market.
type RawObservation struct {
	HomeTeam      string
	AwayTeam      string
	StartTime     string
	GameDate      string
	Provider      string
	Spread        *string
	Total         *string
	MoneylineHome *string
	MoneylineAway *string
	HomePitcher   *string
	AwayPitcher   *string
}

type ItemStatus string

const (
	ItemInserted ItemStatus = "inserted"
	ItemUpdated  ItemStatus = "updated"
	ItemFailed   ItemStatus = "failed"
)

// ItemOutcome records what happened to one observation. Failed items carry a
// reason so the caller can decide what to retry; they never abort the batch.
type ItemOutcome struct {
	GameID   string     `json:"game_id,omitempty"`
	HomeTeam string     `json:"home_team"`
	AwayTeam string     `json:"away_team"`
	Status   ItemStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
}

type IngestionReport struct {
	Sport     string        `json:"sport"`
	StampedAt string        `json:"stamped_at"`
	Inserted  int           `json:"inserted"`
	Updated   int           `json:"updated"`
	Failed    int           `json:"failed"`
	Items     []ItemOutcome `json:"items"`
}

// ingestionWriter commits a batch's durable effects. WriteBatch must be
// all-or-nothing: a storage failure leaves no partial batch behind.
type ingestionWriter interface {
	WriteBatch(ctx context.Context, games []game.Game, snapshots []odds.Snapshot) error
	UpsertGames(ctx context.Context, games []game.Game) error
}

type IngestionService struct {
	writer   ingestionWriter
	gameRepo game.Repository
	cache    *cache.Store
	logger   *logging.Logger
	now      func() time.Time

	// One ingestion batch in flight per process; concurrent scrapers queue
	// here rather than interleaving their updated_at ordering.
	mu sync.Mutex
}

func NewIngestionService(writer ingestionWriter, gameRepo game.Repository, cacheStore *cache.Store, logger *logging.Logger) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		writer:   writer,
		gameRepo: gameRepo,
		cache:    cacheStore,
		logger:   logger,
		now:      time.Now,
	}
}

// IngestBatch resolves, validates and persists one scrape. Per-item identity
// and parse failures are collected into the report; only a storage failure
// aborts the batch.
func (s *IngestionService) IngestBatch(ctx context.Context, sport string, observations []RawObservation) (IngestionReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestBatch")
	defer span.End()

	sport = game.NormalizeSport(sport)
	if !game.IsKnownSport(sport) {
		return IngestionReport{}, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	if len(observations) == 0 {
		return IngestionReport{}, fmt.Errorf("%w: observations are required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := odds.StampTime(s.now())
	report := IngestionReport{
		Sport:     sport,
		StampedAt: odds.FormatTime(stamp),
		Items:     make([]ItemOutcome, 0, len(observations)),
	}

	games := make([]game.Game, 0, len(observations))
	snapshots := make([]odds.Snapshot, 0, len(observations))

	for _, obs := range observations {
		outcome := ItemOutcome{
			HomeTeam: strings.TrimSpace(obs.HomeTeam),
			AwayTeam: strings.TrimSpace(obs.AwayTeam),
		}

		g, err := buildGame(sport, obs)
		if err != nil {
			outcome.Status = ItemFailed
			outcome.Reason = err.Error()
			report.Failed++
			report.Items = append(report.Items, outcome)
			continue
		}
		outcome.GameID = g.ID

		snapshot, err := buildSnapshot(g.ID, obs, stamp)
		if err != nil {
			outcome.Status = ItemFailed
			outcome.Reason = err.Error()
			report.Failed++
			report.Items = append(report.Items, outcome)
			continue
		}

		_, exists, err := s.gameRepo.GetByID(ctx, g.ID)
		if err != nil {
			return IngestionReport{}, fmt.Errorf("%w: lookup game %s: %v", ErrStorage, g.ID, err)
		}
		if exists {
			outcome.Status = ItemUpdated
			report.Updated++
		} else {
			outcome.Status = ItemInserted
			report.Inserted++
		}

		games = append(games, g)
		snapshots = append(snapshots, snapshot)
		report.Items = append(report.Items, outcome)
	}

	if len(games) > 0 {
		if err := s.writer.WriteBatch(ctx, games, snapshots); err != nil {
			return IngestionReport{}, fmt.Errorf("%w: write batch: %v", ErrStorage, err)
		}
		s.invalidateReadModels(ctx, sport, games)
	}

	s.logger.InfoContext(ctx, "odds batch ingested",
		"sport", sport,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"failed", report.Failed,
	)
	return report, nil
}

// SyncSchedule upserts game metadata (display date/time, probable pitchers)
// without appending odds. League schedule APIs publish this ahead of the
// books posting lines.
func (s *IngestionService) SyncSchedule(ctx context.Context, sport string, observations []RawObservation) (IngestionReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncSchedule")
	defer span.End()

	sport = game.NormalizeSport(sport)
	if !game.IsKnownSport(sport) {
		return IngestionReport{}, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	if len(observations) == 0 {
		return IngestionReport{}, fmt.Errorf("%w: observations are required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report := IngestionReport{
		Sport:     sport,
		StampedAt: odds.FormatTime(s.now()),
		Items:     make([]ItemOutcome, 0, len(observations)),
	}
	games := make([]game.Game, 0, len(observations))

	for _, obs := range observations {
		outcome := ItemOutcome{
			HomeTeam: strings.TrimSpace(obs.HomeTeam),
			AwayTeam: strings.TrimSpace(obs.AwayTeam),
		}

		g, err := buildGame(sport, obs)
		if err != nil {
			outcome.Status = ItemFailed
			outcome.Reason = err.Error()
			report.Failed++
			report.Items = append(report.Items, outcome)
			continue
		}
		outcome.GameID = g.ID

		_, exists, err := s.gameRepo.GetByID(ctx, g.ID)
		if err != nil {
			return IngestionReport{}, fmt.Errorf("%w: lookup game %s: %v", ErrStorage, g.ID, err)
		}
		if exists {
			outcome.Status = ItemUpdated
			report.Updated++
		} else {
			outcome.Status = ItemInserted
			report.Inserted++
		}

		games = append(games, g)
		report.Items = append(report.Items, outcome)
	}

	if len(games) > 0 {
		if err := s.writer.UpsertGames(ctx, games); err != nil {
			return IngestionReport{}, fmt.Errorf("%w: upsert games: %v", ErrStorage, err)
		}
		s.invalidateReadModels(ctx, sport, games)
	}

	s.logger.InfoContext(ctx, "schedule synced",
		"sport", sport,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"failed", report.Failed,
	)
	return report, nil
}

// invalidateReadModels drops the sport's cached odds board and the cached
// history log of every game the batch touched.
func (s *IngestionService) invalidateReadModels(ctx context.Context, sport string, games []game.Game) {
	s.cache.DeletePrefix(ctx, "lines:"+sport)
	for _, g := range games {
		s.cache.Delete(ctx, "history:"+g.ID)
	}
}

func buildGame(sport string, obs RawObservation) (game.Game, error) {
	id, err := game.ResolveID(obs.HomeTeam, obs.AwayTeam, obs.StartTime)
	if err != nil {
		return game.Game{}, err
	}

	startTime := strings.TrimSpace(obs.StartTime)
	if startTime == "" {
		startTime = game.TimeTBD
	}
	gameDate := strings.TrimSpace(obs.GameDate)
	if gameDate == "" {
		gameDate = game.TimeTBD
	}

	return game.Game{
		ID:          id,
		Sport:       sport,
		StartTime:   startTime,
		GameDate:    gameDate,
		HomeTeam:    strings.TrimSpace(obs.HomeTeam),
		AwayTeam:    strings.TrimSpace(obs.AwayTeam),
		HomePitcher: trimmedOrNil(obs.HomePitcher),
		AwayPitcher: trimmedOrNil(obs.AwayPitcher),
	}, nil
}

func buildSnapshot(gameID string, obs RawObservation, stamp time.Time) (odds.Snapshot, error) {
	provider := strings.TrimSpace(obs.Provider)
	if provider == "" {
		return odds.Snapshot{}, fmt.Errorf("%w: provider is required", ErrValidation)
	}

	snapshot := odds.Snapshot{
		GameID:    gameID,
		Provider:  provider,
		UpdatedAt: stamp,
	}

	if raw := trimmedOrNil(obs.Spread); raw != nil {
		normalized := odds.NormalizeSpread(*raw)
		snapshot.SpreadDetails = &normalized
	}
	if raw := trimmedOrNil(obs.Total); raw != nil {
		total, err := odds.ParseTotal(*raw)
		if err != nil {
			return odds.Snapshot{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		snapshot.OverUnder = &total
	}
	if raw := trimmedOrNil(obs.MoneylineHome); raw != nil {
		ml, err := odds.ParseMoneyline(*raw)
		if err != nil {
			return odds.Snapshot{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		snapshot.MoneylineHome = &ml
	}
	if raw := trimmedOrNil(obs.MoneylineAway); raw != nil {
		ml, err := odds.ParseMoneyline(*raw)
		if err != nil {
			return odds.Snapshot{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		snapshot.MoneylineAway = &ml
	}

	return snapshot, nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
