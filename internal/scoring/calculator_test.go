package scoring

import (
	"errors"
	"fmt"
	"testing"

	"pulsecheck/internal/model"
)

// testCatalog builds a small two-category catalog: practices (3 questions)
// and hygiene (2 questions).
func testCatalog() *model.Catalog {
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

// catalog27 builds a 27-question catalog split over three categories of nine
func catalog27() *model.Catalog {
	var questions []model.Question
	var ids []string
	cats := []string{"build", "run", "secure"}
	for i := 0; i < 27; i++ {
		id := fmt.Sprintf("q%02d", i+1)
		questions = append(questions, model.Question{
			ID:           id,
			CategoryID:   cats[i/9],
			Text:         fmt.Sprintf("Question %d", i+1),
			VersionAdded: "v2",
		})
		ids = append(ids, id)
	}
	return &model.Catalog{
		Survey:    model.SurveyVersion{Version: "v2", QuestionIDs: ids, MaxScore: 27},
		Questions: questions,
		Categories: []model.Category{
			{ID: "build", Name: "Build", MaxScore: 9},
			{ID: "run", Name: "Run", MaxScore: 9},
			{ID: "secure", Name: "Secure", MaxScore: 9},
		},
	}
}

func answersAll(catalog *model.Catalog, value bool) model.AnswerSet {
	answers := make(model.AnswerSet, len(catalog.Survey.QuestionIDs))
	for _, id := range catalog.Survey.QuestionIDs {
		answers[id] = value
	}
	return answers
}

func TestCalculateScore(t *testing.T) {
	catalog := testCatalog()

	testCases := []struct {
		name           string
		answers        model.AnswerSet
		expectedTotal  int
		expectedPct    int
		expectedByCat  map[string]int
	}{
		{
			name:          "all yes",
			answers:       answersAll(catalog, true),
			expectedTotal: 5,
			expectedPct:   100,
			expectedByCat: map[string]int{"practices": 3, "hygiene": 2},
		},
		{
			name:          "all no",
			answers:       answersAll(catalog, false),
			expectedTotal: 0,
			expectedPct:   0,
			expectedByCat: map[string]int{"practices": 0, "hygiene": 0},
		},
		{
			name:          "mixed",
			answers:       model.AnswerSet{"q1": true, "q2": false, "q3": true, "q4": false, "q5": true},
			expectedTotal: 3,
			expectedPct:   60,
			expectedByCat: map[string]int{"practices": 2, "hygiene": 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := CalculateScore(tc.answers, &catalog.Survey, catalog)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result.Total != tc.expectedTotal {
				t.Errorf("Expected total %d, got %d", tc.expectedTotal, result.Total)
			}
			if result.MaxPossible != 5 {
				t.Errorf("Expected maxPossible 5, got %d", result.MaxPossible)
			}
			if result.Percentage != tc.expectedPct {
				t.Errorf("Expected percentage %d, got %d", tc.expectedPct, result.Percentage)
			}

			catTotal, catMax := 0, 0
			for _, cs := range result.Categories {
				if cs.Score != tc.expectedByCat[cs.CategoryID] {
					t.Errorf("Category %s: expected score %d, got %d", cs.CategoryID, tc.expectedByCat[cs.CategoryID], cs.Score)
				}
				catTotal += cs.Score
				catMax += cs.MaxScore
			}
			if catTotal != result.Total {
				t.Errorf("Category scores sum to %d, total is %d", catTotal, result.Total)
			}
			if catMax != result.MaxPossible {
				t.Errorf("Category maxima sum to %d, maxPossible is %d", catMax, result.MaxPossible)
			}
		})
	}
}

func TestFullQuestionnaire(t *testing.T) {
	catalog := catalog27()
	cfg := DefaultConfig()

	t.Run("all yes", func(t *testing.T) {
		answers := answersAll(catalog, true)
		result, err := CalculateScore(answers, &catalog.Survey, catalog)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Total != 27 || result.Percentage != 100 {
			t.Errorf("Expected 27/100%%, got %d/%d%%", result.Total, result.Percentage)
		}
		gaps, err := FindGaps(answers, &catalog.Survey, catalog)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(gaps) != 0 {
			t.Errorf("Expected no gaps, got %d", len(gaps))
		}
		if level := Classify(result.Percentage, cfg); level != model.LevelStrong {
			t.Errorf("Expected strong tier, got %s", level)
		}
	})

	t.Run("all no", func(t *testing.T) {
		answers := answersAll(catalog, false)
		result, err := CalculateScore(answers, &catalog.Survey, catalog)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Total != 0 || result.Percentage != 0 {
			t.Errorf("Expected 0/0%%, got %d/%d%%", result.Total, result.Percentage)
		}
		gaps, err := FindGaps(answers, &catalog.Survey, catalog)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(gaps) != 27 {
			t.Errorf("Expected 27 gaps, got %d", len(gaps))
		}
		if level := Classify(result.Percentage, cfg); level != model.LevelNeedsImprovement {
			t.Errorf("Expected needs_improvement tier, got %s", level)
		}
	})
}

func TestCalculateScoreRoundsHalfUp(t *testing.T) {
	catalog := catalog27()

	answers := answersAll(catalog, false)
	// 13/27 = 48.148..., 14/27 = 51.851...
	for i, id := range catalog.Survey.QuestionIDs {
		answers[id] = i < 13
	}

	result, err := CalculateScore(answers, &catalog.Survey, catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Percentage != 48 {
		t.Errorf("Expected 13/27 to round to 48, got %d", result.Percentage)
	}

	// 5/9 in one category = 55.55... rounds up to 56
	for i, id := range catalog.Survey.QuestionIDs {
		answers[id] = i < 5
	}
	result, err = CalculateScore(answers, &catalog.Survey, catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Categories[0].Percentage != 56 {
		t.Errorf("Expected 5/9 to round to 56, got %d", result.Categories[0].Percentage)
	}
}

func TestCalculateScoreValidation(t *testing.T) {
	catalog := testCatalog()

	testCases := []struct {
		name            string
		answers         model.AnswerSet
		expectedMissing []string
		expectedExtra   []string
	}{
		{
			name:            "missing answers",
			answers:         model.AnswerSet{"q1": true, "q2": true},
			expectedMissing: []string{"q3", "q4", "q5"},
		},
		{
			name:          "extraneous answers",
			answers:       model.AnswerSet{"q1": true, "q2": true, "q3": false, "q4": true, "q5": false, "zz9": true},
			expectedExtra: []string{"zz9"},
		},
		{
			name:            "empty set",
			answers:         model.AnswerSet{},
			expectedMissing: []string{"q1", "q2", "q3", "q4", "q5"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateScore(tc.answers, &catalog.Survey, catalog)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if len(valErr.MissingIDs) != len(tc.expectedMissing) {
				t.Fatalf("Expected %d missing ids, got %v", len(tc.expectedMissing), valErr.MissingIDs)
			}
			for i, id := range tc.expectedMissing {
				if valErr.MissingIDs[i] != id {
					t.Errorf("Expected missing id %s at %d, got %s", id, i, valErr.MissingIDs[i])
				}
			}
			if len(valErr.ExtraIDs) != len(tc.expectedExtra) {
				t.Fatalf("Expected %d extra ids, got %v", len(tc.expectedExtra), valErr.ExtraIDs)
			}
			for i, id := range tc.expectedExtra {
				if valErr.ExtraIDs[i] != id {
					t.Errorf("Expected extra id %s at %d, got %s", id, i, valErr.ExtraIDs[i])
				}
			}
		})
	}
}

func TestCalculateScoreCatalogDefects(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *model.Catalog)
	}{
		{
			name:   "category maxScore zero",
			mutate: func(c *model.Catalog) { c.Categories[1].MaxScore = 0 },
		},
		{
			name:   "category sums mismatch version maxScore",
			mutate: func(c *model.Catalog) { c.Categories[0].MaxScore = 4 },
		},
		{
			name:   "question references unknown category",
			mutate: func(c *model.Catalog) { c.Questions[0].CategoryID = "nope" },
		},
		{
			name:   "version maxScore zero",
			mutate: func(c *model.Catalog) { c.Survey.MaxScore = 0 },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			catalog := testCatalog()
			tc.mutate(catalog)

			_, err := CalculateScore(answersAll(catalog, true), &catalog.Survey, catalog)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigurationError, got %v", err)
			}
		})
	}
}

func TestCalculateScoreIsDeterministic(t *testing.T) {
	catalog := testCatalog()
	answers := model.AnswerSet{"q1": true, "q2": false, "q3": true, "q4": true, "q5": false}

	first, err := CalculateScore(answers, &catalog.Survey, catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := CalculateScore(answers, &catalog.Survey, catalog)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if again.Total != first.Total || again.Percentage != first.Percentage {
			t.Fatalf("Result changed between identical calls: %+v vs %+v", first, again)
		}
	}
}
