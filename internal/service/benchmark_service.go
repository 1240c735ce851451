package service

import (
	"context"
	"errors"
	"log"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"
	"pulsecheck/internal/scoring"
)

var ErrResponseNotFound = errors.New("response not found")

// BenchmarkService computes population statistics and percentile ranks over
// the response store. Statistics are recomputed from the store on each call;
// the Redis snapshot cache only short-circuits repeat reads and is
// invalidated whenever the population changes.
type BenchmarkService struct {
	responseRepo repository.ResponseRepo
	catalogSvc   *CatalogService
	statsCache   cache.StatsCache
	cfg          *scoring.Config
	broadcaster  Broadcaster
}

// NewBenchmarkService creates a new benchmark service
func NewBenchmarkService(
	responseRepo repository.ResponseRepo,
	catalogSvc *CatalogService,
	statsCache cache.StatsCache,
	cfg *scoring.Config,
) *BenchmarkService {
	return &BenchmarkService{
		responseRepo: responseRepo,
		catalogSvc:   catalogSvc,
		statsCache:   statsCache,
		cfg:          cfg,
	}
}

// SetBroadcaster injects the live dashboard broadcaster
func (s *BenchmarkService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// PopulationStats returns the population snapshot for a survey version,
// served from cache when a fresh snapshot exists.
func (s *BenchmarkService) PopulationStats(ctx context.Context, surveyVersion string) (*model.PopulationStatistics, error) {
	if s.statsCache != nil {
		cached, err := s.statsCache.Get(ctx, surveyVersion)
		if err != nil {
			// Cache trouble must not take down benchmarking; fall through
			// to a fresh computation.
			log.Printf("stats cache read failed for %s: %v", surveyVersion, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	statistics, err := s.computeStats(ctx, surveyVersion)
	if err != nil {
		return nil, err
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, surveyVersion, statistics); err != nil {
			log.Printf("stats cache write failed for %s: %v", surveyVersion, err)
		}
	}
	return statistics, nil
}

func (s *BenchmarkService) computeStats(ctx context.Context, surveyVersion string) (*model.PopulationStatistics, error) {
	catalog, err := s.catalogSvc.GetVersion(ctx, surveyVersion)
	if err != nil {
		return nil, err
	}
	records, err := s.responseRepo.ListByVersion(ctx, surveyVersion)
	if err != nil {
		return nil, err
	}
	return scoring.Aggregate(surveyVersion, catalog, records, s.cfg), nil
}

// PercentileForScore ranks a total score against the population of one
// version. The second return value is false when the sample is too small.
func (s *BenchmarkService) PercentileForScore(ctx context.Context, surveyVersion string, score int) (int, bool, error) {
	records, err := s.responseRepo.ListByVersion(ctx, surveyVersion)
	if err != nil {
		return 0, false, err
	}
	rank, ok := scoring.Percentile(score, surveyVersion, records, s.cfg)
	return rank, ok, nil
}

// MarkExcluded flips the statistics-exclusion flag on a record and refreshes
// the cached snapshot, since the effective population just changed.
func (s *BenchmarkService) MarkExcluded(ctx context.Context, responseID string, excluded bool) error {
	record, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrResponseNotFound
	}

	if err := s.responseRepo.SetExcludeFromStats(ctx, responseID, excluded); err != nil {
		return err
	}
	s.RefreshAndBroadcast(ctx, record.SurveyVersion)
	return nil
}

// RefreshAndBroadcast drops the cached snapshot for a version, recomputes it,
// and pushes the fresh figures to any connected dashboards. Failures are
// logged rather than returned: live updates are best-effort.
func (s *BenchmarkService) RefreshAndBroadcast(ctx context.Context, surveyVersion string) {
	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, surveyVersion); err != nil {
			log.Printf("stats cache invalidation failed for %s: %v", surveyVersion, err)
		}
	}

	statistics, err := s.PopulationStats(ctx, surveyVersion)
	if err != nil {
		log.Printf("stats refresh failed for %s: %v", surveyVersion, err)
		return
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToDashboards(surveyVersion, "stats_update", statistics)
	}
}
