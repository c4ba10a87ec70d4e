package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/lineshift/lineshift/internal/platform/logging"
)

type SourceKind string

const (
	SourceKindOdds     SourceKind = "odds"
	SourceKindSchedule SourceKind = "schedule"
)

// Source is an upstream feed the refresh job can poll. Odds sources feed
// IngestBatch; schedule sources only touch game metadata via SyncSchedule.
type Source interface {
	Name() string
	Sport() string
	Kind() SourceKind
	FetchObservations(ctx context.Context) ([]RawObservation, error)
}

type SourceResult struct {
	Source   string           `json:"source"`
	Sport    string           `json:"sport"`
	Kind     SourceKind       `json:"kind"`
	Fetched  int              `json:"fetched"`
	Report   *IngestionReport `json:"report,omitempty"`
	Error    string           `json:"error,omitempty"`
	Duration time.Duration    `json:"duration_ms"`
}

type RefreshService struct {
	ingestion *IngestionService
	sources   []Source
	pool      *ants.Pool
	logger    *logging.Logger
}

func NewRefreshService(ingestion *IngestionService, sources []Source, pool *ants.Pool, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RefreshService{
		ingestion: ingestion,
		sources:   sources,
		pool:      pool,
		logger:    logger,
	}
}

// RefreshAll polls every configured source on the shared worker pool and
// runs each result set through ingestion. One slow or broken source never
// blocks the others; its failure is reported in its own SourceResult.
func (s *RefreshService) RefreshAll(ctx context.Context) ([]SourceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshAll")
	defer span.End()

	if len(s.sources) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", ErrInvalidInput)
	}

	results := make([]SourceResult, len(s.sources))
	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		run := func() {
			defer wg.Done()
			results[i] = s.refreshOne(ctx, src)
		}
		if err := s.pool.Submit(run); err != nil {
			// Pool is closed or overloaded; run inline so the job still
			// covers every source.
			run()
		}
	}
	wg.Wait()

	return results, nil
}

func (s *RefreshService) refreshOne(ctx context.Context, src Source) SourceResult {
	started := time.Now()
	result := SourceResult{
		Source: src.Name(),
		Sport:  src.Sport(),
		Kind:   src.Kind(),
	}

	observations, err := src.FetchObservations(ctx)
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(started)
		s.logger.WarnContext(ctx, "source fetch failed", "source", src.Name(), "error", err)
		return result
	}
	result.Fetched = len(observations)

	// An off-day schedule or an unpriced slate is a healthy empty fetch,
	// not an ingestion error.
	if len(observations) == 0 {
		result.Duration = time.Since(started)
		return result
	}

	var report IngestionReport
	switch src.Kind() {
	case SourceKindSchedule:
		report, err = s.ingestion.SyncSchedule(ctx, src.Sport(), observations)
	default:
		report, err = s.ingestion.IngestBatch(ctx, src.Sport(), observations)
	}
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Report = &report
	}
	result.Duration = time.Since(started)
	return result
}
