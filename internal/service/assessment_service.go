package service

import (
	"context"
	"time"

	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"
	"pulsecheck/internal/scoring"
)

// AssessmentService turns submitted answer sets into stored responses and
// composed assessments. Scoring itself is pure; this service owns the one
// write (persisting the response record) and re-derives everything else on
// read.
type AssessmentService struct {
	responseRepo repository.ResponseRepo
	catalogSvc   *CatalogService
	benchmarkSvc *BenchmarkService
	cfg          *scoring.Config
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	responseRepo repository.ResponseRepo,
	catalogSvc *CatalogService,
	benchmarkSvc *BenchmarkService,
	cfg *scoring.Config,
) *AssessmentService {
	return &AssessmentService{
		responseRepo: responseRepo,
		catalogSvc:   catalogSvc,
		benchmarkSvc: benchmarkSvc,
		cfg:          cfg,
	}
}

// Submit validates and scores one respondent's answers, persists the
// response record, and returns the full assessment including population
// comparison when enough data exists. Validation failures surface as
// *scoring.ValidationError for the transport layer to map to a client error.
func (s *AssessmentService) Submit(ctx context.Context, surveyVersion string, answers model.AnswerSet) (*model.Assessment, error) {
	catalog, err := s.catalogSvc.GetVersion(ctx, surveyVersion)
	if err != nil {
		return nil, err
	}

	score, err := scoring.CalculateScore(answers, &catalog.Survey, catalog)
	if err != nil {
		return nil, err
	}
	gaps, err := scoring.FindGaps(answers, &catalog.Survey, catalog)
	if err != nil {
		return nil, err
	}

	record := &model.ResponseRecord{
		SurveyVersion:    surveyVersion,
		TotalScore:       score.Total,
		MaxPossibleScore: score.MaxPossible,
		Answers:          answers,
		CompletedAt:      time.Now(),
	}
	if err := s.responseRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	// The population just grew; refresh the snapshot and notify dashboards.
	s.benchmarkSvc.RefreshAndBroadcast(ctx, surveyVersion)

	return s.compose(ctx, record, catalog, score, gaps)
}

// Get recomputes the assessment for a stored response. Nothing derived is
// persisted, so catalog-order gaps, tiers, and benchmarks always reflect the
// current engine policy.
func (s *AssessmentService) Get(ctx context.Context, responseID string) (*model.Assessment, error) {
	record, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrResponseNotFound
	}

	catalog, err := s.catalogSvc.GetVersion(ctx, record.SurveyVersion)
	if err != nil {
		return nil, err
	}

	score, err := scoring.CalculateScore(record.Answers, &catalog.Survey, catalog)
	if err != nil {
		return nil, err
	}
	gaps, err := scoring.FindGaps(record.Answers, &catalog.Survey, catalog)
	if err != nil {
		return nil, err
	}

	return s.compose(ctx, record, catalog, score, gaps)
}

func (s *AssessmentService) compose(ctx context.Context, record *model.ResponseRecord, catalog *model.Catalog, score *model.ScoreResult, gaps []model.Gap) (*model.Assessment, error) {
	level := scoring.Classify(score.Percentage, s.cfg)

	assessment := &model.Assessment{
		ResponseID:    record.ID,
		SurveyVersion: record.SurveyVersion,
		Score:         score,
		Level:         level,
		LevelInfo:     scoring.LevelMeta(level, s.cfg),
		Gaps:          gaps,
	}

	// Population comparison is best-effort: an unavailable or failing
	// benchmark never blocks the respondent's own result.
	statistics, err := s.benchmarkSvc.PopulationStats(ctx, record.SurveyVersion)
	if err == nil {
		assessment.Population = statistics
		if statistics.Available {
			if rank, ok, err := s.benchmarkSvc.PercentileForScore(ctx, record.SurveyVersion, score.Total); err == nil && ok {
				assessment.Percentile = &rank
			}
		}
	}

	return assessment, nil
}
