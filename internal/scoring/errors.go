package scoring

import (
	"fmt"
	"sort"
	"strings"

	"pulsecheck/internal/model"
)

// ValidationError reports an AnswerSet that does not match the declared
// survey version. Unanswered questions are never defaulted; fabricating
// scores is worse than failing the request.
type ValidationError struct {
	MissingIDs []string
	ExtraIDs   []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.MissingIDs) > 0 {
		parts = append(parts, fmt.Sprintf("missing answers: %s", strings.Join(e.MissingIDs, ", ")))
	}
	if len(e.ExtraIDs) > 0 {
		parts = append(parts, fmt.Sprintf("unknown question ids: %s", strings.Join(e.ExtraIDs, ", ")))
	}
	if len(parts) == 0 {
		return "invalid answer set"
	}
	return "invalid answer set: " + strings.Join(parts, "; ")
}

// ConfigurationError reports a corrupt or mismatched catalog deployment.
// It is fatal for the request and never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "catalog configuration error: " + e.Reason
}

// ValidateAnswerSet checks that answers contain exactly the question ids of
// the version, no more and no less. Returns nil when valid.
func ValidateAnswerSet(answers model.AnswerSet, version *model.SurveyVersion) *ValidationError {
	expected := make(map[string]bool, len(version.QuestionIDs))
	for _, id := range version.QuestionIDs {
		expected[id] = true
	}

	var missing, extra []string
	for _, id := range version.QuestionIDs {
		if _, ok := answers[id]; !ok {
			missing = append(missing, id)
		}
	}
	for id := range answers {
		if !expected[id] {
			extra = append(extra, id)
		}
	}

	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	// Map iteration order is random; sort for reproducible messages.
	sort.Strings(missing)
	sort.Strings(extra)
	return &ValidationError{MissingIDs: missing, ExtraIDs: extra}
}

// ValidateCatalog enforces the catalog invariants: every question belongs to
// a known category, each category's MaxScore equals its active question
// count, and category maxima sum to the version MaxScore. A violation means
// the deployment is corrupt, not that the request is bad.
func ValidateCatalog(version *model.SurveyVersion, catalog *model.Catalog) error {
	if version.MaxScore <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("version %s has maxScore %d", version.Version, version.MaxScore)}
	}
	if len(version.QuestionIDs) != version.MaxScore {
		return &ConfigurationError{Reason: fmt.Sprintf("version %s declares %d questions but maxScore %d",
			version.Version, len(version.QuestionIDs), version.MaxScore)}
	}

	counts := make(map[string]int, len(catalog.Categories))
	for _, id := range version.QuestionIDs {
		q, ok := catalog.QuestionByID(id)
		if !ok {
			return &ConfigurationError{Reason: fmt.Sprintf("question %s not in catalog", id)}
		}
		if _, ok := catalog.CategoryByID(q.CategoryID); !ok {
			return &ConfigurationError{Reason: fmt.Sprintf("question %s references unknown category %s", id, q.CategoryID)}
		}
		counts[q.CategoryID]++
	}

	sum := 0
	for _, cat := range catalog.Categories {
		if cat.MaxScore <= 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("category %s has maxScore %d", cat.ID, cat.MaxScore)}
		}
		if counts[cat.ID] != cat.MaxScore {
			return &ConfigurationError{Reason: fmt.Sprintf("category %s has %d active questions but maxScore %d",
				cat.ID, counts[cat.ID], cat.MaxScore)}
		}
		sum += cat.MaxScore
	}
	if sum != version.MaxScore {
		return &ConfigurationError{Reason: fmt.Sprintf("category maxima sum to %d, version maxScore is %d", sum, version.MaxScore)}
	}
	return nil
}
