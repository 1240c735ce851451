package scoring

import "pulsecheck/internal/model"

// FindGaps lists the questions answered "no", with their category context,
// in catalog order (not answer insertion order) so reports are reproducible.
// A question is a gap iff its answer is exactly false; the completeness of
// the answer set is validated the same way CalculateScore validates it.
func FindGaps(answers model.AnswerSet, version *model.SurveyVersion, catalog *model.Catalog) ([]model.Gap, error) {
	if err := ValidateCatalog(version, catalog); err != nil {
		return nil, err
	}
	if verr := ValidateAnswerSet(answers, version); verr != nil {
		return nil, verr
	}

	active := make(map[string]bool, len(version.QuestionIDs))
	for _, id := range version.QuestionIDs {
		active[id] = true
	}

	gaps := []model.Gap{}
	for _, q := range catalog.Questions {
		if !active[q.ID] || answers[q.ID] {
			continue
		}
		cat, _ := catalog.CategoryByID(q.CategoryID)
		gaps = append(gaps, model.Gap{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
		})
	}
	return gaps, nil
}
