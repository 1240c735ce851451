package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"
	"pulsecheck/internal/scoring"
)

// Seeds the v1 questionnaire catalog plus a batch of synthetic responses
// flagged excludeFromStats so dashboards have something to render without
// polluting real population statistics.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "pulsecheck"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	catalog := buildCatalogV1()
	if err := scoring.ValidateCatalog(&catalog.Survey, catalog); err != nil {
		log.Fatalf("Seed catalog is invalid: %v", err)
	}

	catalogRepo := repository.NewCatalogRepo(db)
	existing, err := catalogRepo.GetByVersion(ctx, catalog.Survey.Version)
	if err != nil {
		log.Fatalf("Failed to check existing catalog: %v", err)
	}
	if existing == nil {
		if _, err := catalogRepo.Create(ctx, catalog); err != nil {
			log.Fatalf("Failed to insert catalog: %v", err)
		}
		fmt.Printf("Created catalog version %s (%d questions, %d categories)\n",
			catalog.Survey.Version, len(catalog.Questions), len(catalog.Categories))
	} else {
		fmt.Printf("Catalog version %s already present, skipping\n", catalog.Survey.Version)
	}

	responseRepo := repository.NewResponseRepo(db)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 15; i++ {
		answers := make(model.AnswerSet, len(catalog.Survey.QuestionIDs))
		total := 0
		for _, id := range catalog.Survey.QuestionIDs {
			yes := rng.Intn(100) < 55+rng.Intn(30)
			answers[id] = yes
			if yes {
				total++
			}
		}
		record := &model.ResponseRecord{
			SurveyVersion:    catalog.Survey.Version,
			TotalScore:       total,
			MaxPossibleScore: catalog.Survey.MaxScore,
			Answers:          answers,
			CompletedAt:      time.Now().Add(-time.Duration(i) * time.Hour),
			ExcludeFromStats: true, // synthetic data never feeds real statistics
		}
		if err := responseRepo.Create(ctx, record); err != nil {
			log.Fatalf("Failed to insert synthetic response: %v", err)
		}
	}
	fmt.Println("Inserted 15 synthetic responses (excluded from statistics)")
}

func buildCatalogV1() *model.Catalog {
	type item struct {
		id, category, text string
	}
	items := []item{
		{"dl_001", "delivery", "Do you deploy to production at least once a week?"},
		{"dl_002", "delivery", "Can you roll back a bad release in under 15 minutes?"},
		{"dl_003", "delivery", "Is your build fully automated from commit to artifact?"},
		{"dl_004", "delivery", "Do feature changes ship behind toggles or gradual rollouts?"},
		{"dl_005", "delivery", "Is every production change peer reviewed before merge?"},
		{"dl_006", "delivery", "Can any engineer trigger a deployment without manual steps?"},
		{"ts_001", "testing", "Do you run automated tests on every commit?"},
		{"ts_002", "testing", "Do tests gate merges to your main branch?"},
		{"ts_003", "testing", "Can your full test suite run in under 30 minutes?"},
		{"ts_004", "testing", "Do you write regression tests for every production bug?"},
		{"ts_005", "testing", "Do you test against realistic production-like data?"},
		{"ts_006", "testing", "Are flaky tests fixed or quarantined within a week?"},
		{"ob_001", "observability", "Do you collect structured logs from all services?"},
		{"ob_002", "observability", "Are alerts actionable, with a documented response for each?"},
		{"ob_003", "observability", "Can you trace a request across service boundaries?"},
		{"ob_004", "observability", "Do dashboards cover your key user-facing flows?"},
		{"ob_005", "observability", "Do you review error budgets or SLOs at least monthly?"},
		{"sc_001", "security", "Are dependencies scanned for known vulnerabilities in CI?"},
		{"sc_002", "security", "Are secrets kept out of source control and rotated?"},
		{"sc_003", "security", "Do all engineers use SSO and multi-factor authentication?"},
		{"sc_004", "security", "Is production access audited and least-privilege?"},
		{"sc_005", "security", "Do you run a security review for significant changes?"},
		{"cl_001", "collaboration", "Does every service have a clearly assigned owner?"},
		{"cl_002", "collaboration", "Are incidents followed by blameless postmortems?"},
		{"cl_003", "collaboration", "Is your on-call rotation staffed by more than two people?"},
		{"cl_004", "collaboration", "Are architecture decisions written down and shared?"},
		{"cl_005", "collaboration", "Can a new engineer ship to production in their first week?"},
	}

	categories := []model.Category{
		{ID: "delivery", Name: "Delivery", MaxScore: 6},
		{ID: "testing", Name: "Testing", MaxScore: 6},
		{ID: "observability", Name: "Observability", MaxScore: 5},
		{ID: "security", Name: "Security", MaxScore: 5},
		{ID: "collaboration", Name: "Collaboration", MaxScore: 5},
	}

	questions := make([]model.Question, len(items))
	ids := make([]string, len(items))
	for i, it := range items {
		questions[i] = model.Question{
			ID:           it.id,
			CategoryID:   it.category,
			Text:         it.text,
			VersionAdded: "v1",
		}
		ids[i] = it.id
	}

	return &model.Catalog{
		Survey: model.SurveyVersion{
			Version:     "v1",
			QuestionIDs: ids,
			MaxScore:    len(ids),
		},
		Questions:  questions,
		Categories: categories,
	}
}
