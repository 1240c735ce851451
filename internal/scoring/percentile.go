package scoring

import "pulsecheck/internal/model"

// Percentile ranks a score against the population of one survey version
// using the mid-rank method, which credits half weight to ties:
//
//	round(((below + 0.5*at) / total) * 100)
//
// The same inclusion filter and minimum-sample gate as Aggregate apply; the
// second return value is false when the population is too small to rank
// against, including the empty distribution.
func Percentile(score int, surveyVersion string, records []*model.ResponseRecord, cfg *Config) (int, bool) {
	included := filterIncluded(surveyVersion, records)
	if len(included) < cfg.MinResponses || len(included) == 0 {
		return 0, false
	}

	below, at := 0, 0
	for _, r := range included {
		switch {
		case r.TotalScore < score:
			below++
		case r.TotalScore == score:
			at++
		}
	}

	rank := (float64(below) + 0.5*float64(at)) / float64(len(included)) * 100
	return roundHalfUp(rank), true
}
