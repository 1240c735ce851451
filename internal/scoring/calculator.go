package scoring

import (
	"math"

	"pulsecheck/internal/model"
)

// roundHalfUp rounds to the nearest integer with ties going up, the single
// rounding rule used across the engine.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func percentage(score, max int) int {
	return roundHalfUp(float64(score) / float64(max) * 100)
}

// CalculateScore converts one respondent's answers into a total and
// per-category breakdown. The answer set must contain exactly the question
// ids of the version; violations return a *ValidationError rather than being
// silently defaulted. Catalog defects return a *ConfigurationError.
//
// The function is pure: same inputs always produce the same result, so the
// presentation and export paths can both recompute it safely.
func CalculateScore(answers model.AnswerSet, version *model.SurveyVersion, catalog *model.Catalog) (*model.ScoreResult, error) {
	if err := ValidateCatalog(version, catalog); err != nil {
		return nil, err
	}
	if verr := ValidateAnswerSet(answers, version); verr != nil {
		return nil, verr
	}

	total := 0
	catScores := make(map[string]int, len(catalog.Categories))
	for _, id := range version.QuestionIDs {
		if !answers[id] {
			continue
		}
		total++
		q, _ := catalog.QuestionByID(id)
		catScores[q.CategoryID]++
	}

	categories := make([]model.CategoryScore, 0, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		score := catScores[cat.ID]
		categories = append(categories, model.CategoryScore{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Score:        score,
			MaxScore:     cat.MaxScore,
			Percentage:   percentage(score, cat.MaxScore),
		})
	}

	return &model.ScoreResult{
		Total:       total,
		MaxPossible: version.MaxScore,
		Percentage:  percentage(total, version.MaxScore),
		Categories:  categories,
	}, nil
}
