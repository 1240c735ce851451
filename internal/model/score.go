package model

// CategoryScore is the per-category breakdown of a score
type CategoryScore struct {
	CategoryID   string `json:"categoryId" bson:"categoryId"`
	CategoryName string `json:"categoryName" bson:"categoryName"`
	Score        int    `json:"score" bson:"score"`
	MaxScore     int    `json:"maxScore" bson:"maxScore"`
	Percentage   int    `json:"percentage" bson:"percentage"`
}

// ScoreResult is a respondent's computed score. It is derived on demand from
// the stored answers and never persisted as a source of truth.
type ScoreResult struct {
	Total       int             `json:"total" bson:"total"`
	MaxPossible int             `json:"maxPossible" bson:"maxPossible"`
	Percentage  int             `json:"percentage" bson:"percentage"`
	Categories  []CategoryScore `json:"categories" bson:"categories"`
}

// Gap is a question the respondent answered "no", with its category context
type Gap struct {
	QuestionID   string `json:"questionId" bson:"questionId"`
	QuestionText string `json:"questionText" bson:"questionText"`
	CategoryID   string `json:"categoryId" bson:"categoryId"`
	CategoryName string `json:"categoryName" bson:"categoryName"`
}

// Level is the qualitative performance tier derived from a percentage
type Level string

const (
	LevelStrong           Level = "strong"
	LevelModerate         Level = "moderate"
	LevelNeedsImprovement Level = "needs_improvement"
)

// LevelInfo is presentation metadata for a performance level
type LevelInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// PopulationStatistics is a snapshot of the response population for one
// survey version, computed fresh from the Response Store at query time.
// When SampleSize is below the minimum-sample gate, Available is false and
// no figures are exposed.
type PopulationStatistics struct {
	Available        bool           `json:"available"`
	SampleSize       int            `json:"sampleSize"`
	AvgPercentage    int            `json:"avgPercentage,omitempty"`
	MedianScore      float64        `json:"medianScore,omitempty"`
	CategoryAverages map[string]int `json:"categoryAverages,omitempty"`
}

// Assessment is the composed per-respondent result returned to callers:
// score, gaps, tier, and (when enough population data exists) the
// respondent's standing against everyone else on the same version.
type Assessment struct {
	ResponseID    string                `json:"responseId"`
	SurveyVersion string                `json:"surveyVersion"`
	Score         *ScoreResult          `json:"score"`
	Level         Level                 `json:"level"`
	LevelInfo     LevelInfo             `json:"levelInfo"`
	Gaps          []Gap                 `json:"gaps"`
	Population    *PopulationStatistics `json:"population,omitempty"`
	Percentile    *int                  `json:"percentile,omitempty"`
}
