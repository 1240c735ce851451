package model

import "time"

// ResponseRecord is one completed questionnaire submission. Records are
// immutable after creation except for the ExcludeFromStats flag, which admins
// flip on synthetic or test submissions so they never influence population
// statistics.
type ResponseRecord struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	SurveyVersion    string    `json:"surveyVersion" bson:"surveyVersion"`
	TotalScore       int       `json:"totalScore" bson:"totalScore"`
	MaxPossibleScore int       `json:"maxPossibleScore" bson:"maxPossibleScore"`
	Answers          AnswerSet `json:"answers" bson:"answers"`
	CompletedAt      time.Time `json:"completedAt" bson:"completedAt"`
	ExcludeFromStats bool      `json:"excludeFromStats" bson:"excludeFromStats"`
}
