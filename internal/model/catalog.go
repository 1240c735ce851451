package model

// Question is one yes/no item in the questionnaire. Question ids are stable
// and opaque; they are never renumbered or reused across versions, only
// deprecated or replaced.
type Question struct {
	ID                string `json:"id" bson:"id"`
	CategoryID        string `json:"categoryId" bson:"categoryId"`
	Text              string `json:"text" bson:"text"`
	VersionAdded      string `json:"versionAdded" bson:"versionAdded"`
	VersionDeprecated string `json:"versionDeprecated,omitempty" bson:"versionDeprecated,omitempty"`
	ReplacedBy        string `json:"replacedBy,omitempty" bson:"replacedBy,omitempty"`
}

// Category groups questions. MaxScore equals the number of active questions
// in the category for the catalog's version.
type Category struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	MaxScore int    `json:"maxScore" bson:"maxScore"`
}

// SurveyVersion is a closed, immutable set of active question ids. An
// AnswerSet is only valid against exactly one version.
type SurveyVersion struct {
	Version     string   `json:"version" bson:"version"`
	QuestionIDs []string `json:"questionIds" bson:"questionIds"`
	MaxScore    int      `json:"maxScore" bson:"maxScore"`
}

// AnswerSet maps question id -> yes/no. It must contain exactly the question
// ids of one survey version before scoring is attempted.
type AnswerSet map[string]bool

// Catalog is the immutable question/category definition for one survey
// version. Questions are stored in catalog order, which is the canonical
// ordering for reports and gap lists.
type Catalog struct {
	ID         string        `json:"id" bson:"_id,omitempty"`
	Survey     SurveyVersion `json:"survey" bson:"survey"`
	Questions  []Question    `json:"questions" bson:"questions"`
	Categories []Category    `json:"categories" bson:"categories"`
}

// QuestionByID looks up a question in the catalog
func (c *Catalog) QuestionByID(id string) (*Question, bool) {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i], true
		}
	}
	return nil, false
}

// CategoryByID looks up a category in the catalog
func (c *Catalog) CategoryByID(id string) (*Category, bool) {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// QuestionsForCategory returns the catalog-ordered questions of one category
func (c *Catalog) QuestionsForCategory(categoryID string) []Question {
	var out []Question
	for _, q := range c.Questions {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out
}
