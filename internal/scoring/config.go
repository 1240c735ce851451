package scoring

import "pulsecheck/internal/model"

// CategoryAveraging selects how population category averages are pooled.
type CategoryAveraging string

const (
	// CategoryAveragingPooled averages over all individual answers within a
	// category across all included records. Categories with uneven
	// completion rates weight each answered item equally.
	CategoryAveragingPooled CategoryAveraging = "pooled"

	// CategoryAveragingRespondent averages each respondent's category
	// percentage, weighting every respondent equally.
	CategoryAveragingRespondent CategoryAveraging = "respondent"
)

// Config holds the tunable policy of the engine: tier thresholds and their
// presentation metadata, the minimum-sample gate, and the category averaging
// semantic. All values can be overridden from the environment via
// config.LoadScoring.
type Config struct {
	// MinResponses is the minimum-sample gate: population statistics and
	// percentiles are withheld below this sample size. A hard business
	// rule, not an optimization.
	MinResponses int

	// StrongMin and ModerateMin are inclusive lower bounds, evaluated
	// high to low. Anything below ModerateMin is needs_improvement.
	StrongMin   int
	ModerateMin int

	CategoryAveraging CategoryAveraging

	// Levels maps each tier to its user-facing label and color.
	Levels map[model.Level]model.LevelInfo
}

// DefaultConfig returns the engine defaults
func DefaultConfig() *Config {
	return &Config{
		MinResponses:      10,
		StrongMin:         80,
		ModerateMin:       50,
		CategoryAveraging: CategoryAveragingPooled,
		Levels: map[model.Level]model.LevelInfo{
			model.LevelStrong:           {Label: "Strong", Color: "#22c55e"},
			model.LevelModerate:         {Label: "Moderate", Color: "#eab308"},
			model.LevelNeedsImprovement: {Label: "Needs improvement", Color: "#ef4444"},
		},
	}
}
