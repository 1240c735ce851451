package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pulsecheck/internal/model"
	"pulsecheck/internal/scoring"
)

// In-memory stand-ins for the Mongo repositories and the Redis snapshot
// cache, with call counters so tests can assert read-through behavior.

type fakeResponseRepo struct {
	mu        sync.Mutex
	records   []*model.ResponseRecord
	nextID    int
	listCalls int
}

func (f *fakeResponseRepo) Create(_ context.Context, record *model.ResponseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	record.ID = fmt.Sprintf("resp-%03d", f.nextID)
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeResponseRepo) GetByID(_ context.Context, id string) (*model.ResponseRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeResponseRepo) ListByVersion(_ context.Context, surveyVersion string) ([]*model.ResponseRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []*model.ResponseRecord
	for _, r := range f.records {
		if r.SurveyVersion == surveyVersion {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) SetExcludeFromStats(_ context.Context, id string, excluded bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			r.ExcludeFromStats = excluded
			return nil
		}
	}
	return nil
}

type fakeCatalogRepo struct {
	mu       sync.Mutex
	catalogs []*model.Catalog
}

func (f *fakeCatalogRepo) Create(_ context.Context, catalog *model.Catalog) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogs = append(f.catalogs, catalog)
	return fmt.Sprintf("cat-%03d", len(f.catalogs)), nil
}

func (f *fakeCatalogRepo) GetByVersion(_ context.Context, version string) (*model.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.catalogs {
		if c.Survey.Version == version {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) GetLatest(_ context.Context) (*model.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.catalogs) == 0 {
		return nil, nil
	}
	return f.catalogs[len(f.catalogs)-1], nil
}

type fakeStatsCache struct {
	mu            sync.Mutex
	entries       map[string]*model.PopulationStatistics
	gets          int
	sets          int
	invalidations int
	failReads     bool
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: make(map[string]*model.PopulationStatistics)}
}

func (f *fakeStatsCache) Get(_ context.Context, surveyVersion string) (*model.PopulationStatistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.failReads {
		return nil, errors.New("cache unavailable")
	}
	return f.entries[surveyVersion], nil
}

func (f *fakeStatsCache) Set(_ context.Context, surveyVersion string, statistics *model.PopulationStatistics) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.entries[surveyVersion] = statistics
	return nil
}

func (f *fakeStatsCache) Invalidate(_ context.Context, surveyVersion string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations++
	delete(f.entries, surveyVersion)
	return nil
}

type broadcastCall struct {
	surveyVersion string
	msgType       string
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (f *fakeBroadcaster) BroadcastToDashboards(surveyVersion string, msgType string, _ interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, broadcastCall{surveyVersion: surveyVersion, msgType: msgType})
}

func (f *fakeBroadcaster) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// seedCatalog builds a valid five-question catalog across two categories.
func seedCatalog() *model.Catalog {
	return &model.Catalog{
		Survey: model.SurveyVersion{
			Version:     "v1",
			QuestionIDs: []string{"q1", "q2", "q3", "q4", "q5"},
			MaxScore:    5,
		},
		Questions: []model.Question{
			{ID: "q1", CategoryID: "practices", Text: "Question one", VersionAdded: "v1"},
			{ID: "q2", CategoryID: "practices", Text: "Question two", VersionAdded: "v1"},
			{ID: "q3", CategoryID: "practices", Text: "Question three", VersionAdded: "v1"},
			{ID: "q4", CategoryID: "hygiene", Text: "Question four", VersionAdded: "v1"},
			{ID: "q5", CategoryID: "hygiene", Text: "Question five", VersionAdded: "v1"},
		},
		Categories: []model.Category{
			{ID: "practices", Name: "Practices", MaxScore: 3},
			{ID: "hygiene", Name: "Hygiene", MaxScore: 2},
		},
	}
}

func fullAnswers(catalog *model.Catalog, yes int) model.AnswerSet {
	answers := make(model.AnswerSet, len(catalog.Survey.QuestionIDs))
	for i, id := range catalog.Survey.QuestionIDs {
		answers[id] = i < yes
	}
	return answers
}

type testEnv struct {
	responseRepo *fakeResponseRepo
	catalogRepo  *fakeCatalogRepo
	statsCache   *fakeStatsCache
	broadcaster  *fakeBroadcaster
	catalogSvc   *CatalogService
	benchmarkSvc *BenchmarkService
	assessSvc    *AssessmentService
	catalog      *model.Catalog
	cfg          *scoring.Config
}

func newTestEnv() *testEnv {
	env := &testEnv{
		responseRepo: &fakeResponseRepo{},
		catalogRepo:  &fakeCatalogRepo{},
		statsCache:   newFakeStatsCache(),
		broadcaster:  &fakeBroadcaster{},
		catalog:      seedCatalog(),
		cfg:          scoring.DefaultConfig(),
	}
	env.catalogRepo.catalogs = append(env.catalogRepo.catalogs, env.catalog)
	env.catalogSvc = NewCatalogService(env.catalogRepo)
	env.benchmarkSvc = NewBenchmarkService(env.responseRepo, env.catalogSvc, env.statsCache, env.cfg)
	env.benchmarkSvc.SetBroadcaster(env.broadcaster)
	env.assessSvc = NewAssessmentService(env.responseRepo, env.catalogSvc, env.benchmarkSvc, env.cfg)
	return env
}

func record(env *testEnv, total int) *model.ResponseRecord {
	return &model.ResponseRecord{
		SurveyVersion:    env.catalog.Survey.Version,
		TotalScore:       total,
		MaxPossibleScore: env.catalog.Survey.MaxScore,
		Answers:          fullAnswers(env.catalog, total),
		CompletedAt:      time.Now(),
	}
}

// seedResponses stores n completed responses with varying totals.
func (env *testEnv) seedResponses(n int) {
	for i := 0; i < n; i++ {
		total := i % (env.catalog.Survey.MaxScore + 1)
		env.responseRepo.Create(context.Background(), &model.ResponseRecord{
			SurveyVersion:    env.catalog.Survey.Version,
			TotalScore:       total,
			MaxPossibleScore: env.catalog.Survey.MaxScore,
			Answers:          fullAnswers(env.catalog, total),
			CompletedAt:      time.Now().Add(-time.Duration(n-i) * time.Minute),
		})
	}
}
