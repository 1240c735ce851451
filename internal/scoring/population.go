package scoring

import (
	"github.com/montanaflynn/stats"

	"pulsecheck/internal/model"
)

// filterIncluded applies the mandatory inclusion filter shared by the
// aggregator and the percentile ranker: records flagged as test data, records
// for other versions, and malformed records with a zero maximum never reach
// any computation.
func filterIncluded(surveyVersion string, records []*model.ResponseRecord) []*model.ResponseRecord {
	included := make([]*model.ResponseRecord, 0, len(records))
	for _, r := range records {
		if r == nil || r.ExcludeFromStats || r.SurveyVersion != surveyVersion || r.MaxPossibleScore <= 0 {
			continue
		}
		included = append(included, r)
	}
	return included
}

// Aggregate computes descriptive statistics over all valid responses to one
// survey version. The snapshot is recomputed from the supplied records on
// every call; cost is linear in sample size and total answer count.
//
// Below cfg.MinResponses the result carries only Available=false and the
// sample size: a handful of responses would be misleading to compare against
// and small enough to de-anonymize.
func Aggregate(surveyVersion string, catalog *model.Catalog, records []*model.ResponseRecord, cfg *Config) *model.PopulationStatistics {
	included := filterIncluded(surveyVersion, records)

	result := &model.PopulationStatistics{SampleSize: len(included)}
	if len(included) < cfg.MinResponses {
		return result
	}

	percentages := make([]float64, len(included))
	totals := make([]float64, len(included))
	for i, r := range included {
		// Raw per-record percentage; rounding happens once at the
		// aggregate, never per record.
		percentages[i] = float64(r.TotalScore) / float64(r.MaxPossibleScore) * 100
		totals[i] = float64(r.TotalScore)
	}

	avg, _ := stats.Mean(percentages)
	median, _ := stats.Median(totals)

	result.Available = true
	result.AvgPercentage = roundHalfUp(avg)
	result.MedianScore = median
	result.CategoryAverages = categoryAverages(catalog, included, cfg)
	return result
}

// categoryAverages computes the per-category population average. The pooled
// semantic treats every answered item in the category as one sample; the
// respondent semantic averages each respondent's category percentage. The two
// diverge when completion rates differ between respondents, so the choice is
// configuration, not chance.
func categoryAverages(catalog *model.Catalog, included []*model.ResponseRecord, cfg *Config) map[string]int {
	averages := make(map[string]int, len(catalog.Categories))

	for _, cat := range catalog.Categories {
		questions := catalog.QuestionsForCategory(cat.ID)

		switch cfg.CategoryAveraging {
		case CategoryAveragingRespondent:
			var perRespondent []float64
			for _, r := range included {
				answered, yes := 0, 0
				for _, q := range questions {
					v, ok := r.Answers[q.ID]
					if !ok {
						continue
					}
					answered++
					if v {
						yes++
					}
				}
				if answered > 0 {
					perRespondent = append(perRespondent, float64(yes)/float64(answered)*100)
				}
			}
			if len(perRespondent) > 0 {
				avg, _ := stats.Mean(perRespondent)
				averages[cat.ID] = roundHalfUp(avg)
			}

		default: // pooled item-level
			answered, yes := 0, 0
			for _, r := range included {
				for _, q := range questions {
					v, ok := r.Answers[q.ID]
					if !ok {
						continue
					}
					answered++
					if v {
						yes++
					}
				}
			}
			if answered > 0 {
				averages[cat.ID] = roundHalfUp(float64(yes) / float64(answered) * 100)
			}
		}
	}
	return averages
}
