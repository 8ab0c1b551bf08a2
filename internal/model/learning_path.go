package model

import (
	"encoding/json"
	"time"
)

// LearningPath stores the most recently generated path for a child.
// Unlike baseline assessments the payload is overwritten on every
// generation, so the path tracks the child's latest performance snapshot.
type LearningPath struct {
	BaseModel
	ChildUID    string    `gorm:"size:36;uniqueIndex;not null" json:"childUid"`
	Payload     string    `gorm:"type:longtext;not null" json:"-"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// LearningPathStep is one step of the suggested path.
type LearningPathStep struct {
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"` // easy | medium | hard | enrichment
	Activities  []string `json:"activities"`
}

// GameExample describes an interactive game testing a skill area.
type GameExample struct {
	Subject      string   `json:"subject"`
	GradeLevel   string   `json:"gradeLevel"`
	Title        string   `json:"title"`
	Instructions string   `json:"instructions"`
	Interaction  string   `json:"interaction"`
	SkillsTested []string `json:"skillsTested"`
}

type LearningCourseModule struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Activities  []string `json:"activities"`
	Resources   []string `json:"resources"`
}

type LearningCourse struct {
	CourseTitle       string                 `json:"courseTitle"`
	CourseDescription string                 `json:"courseDescription"`
	Modules           []LearningCourseModule `json:"modules"`
}

// LearningPathResponse is the structured payload the model must return.
// swagger:model LearningPathResponse
type LearningPathResponse struct {
	Strengths                    []string           `json:"strengths"`
	Weaknesses                   []string           `json:"weaknesses"`
	SuggestedLearningPath        []LearningPathStep `json:"suggestedLearningPath"`
	ExampleGames                 []GameExample      `json:"exampleGames"`
	ResultsToLearningPathMapping string             `json:"resultsToLearningPathMapping"`
	LearningCourse               LearningCourse     `json:"learningCourse"`
}

// ValidDifficulties are the difficulty levels a path step may carry.
var ValidDifficulties = map[string]bool{
	"easy":       true,
	"medium":     true,
	"hard":       true,
	"enrichment": true,
}

// requiredPathKeys must all be present in the model's JSON output.
var requiredPathKeys = []string{
	"strengths",
	"weaknesses",
	"suggestedLearningPath",
	"exampleGames",
	"resultsToLearningPathMapping",
	"learningCourse",
}

// ParseLearningPathResponse decodes and structurally validates a raw
// learning-path payload. It checks required keys, enum values and that
// the path itself is non-empty; content quality is the model's problem.
func ParseLearningPathResponse(raw []byte) (*LearningPathResponse, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, err
	}
	for _, k := range requiredPathKeys {
		if _, ok := keys[k]; !ok {
			return nil, &MissingFieldError{Field: k}
		}
	}

	var resp LearningPathResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	if len(resp.SuggestedLearningPath) == 0 {
		return nil, &MissingFieldError{Field: "suggestedLearningPath", Reason: "empty"}
	}
	for _, step := range resp.SuggestedLearningPath {
		if step.Description == "" {
			return nil, &MissingFieldError{Field: "suggestedLearningPath.description", Reason: "empty"}
		}
		if !ValidDifficulties[step.Difficulty] {
			return nil, &MissingFieldError{Field: "suggestedLearningPath.difficulty", Reason: "invalid value " + step.Difficulty}
		}
	}
	if resp.ResultsToLearningPathMapping == "" {
		return nil, &MissingFieldError{Field: "resultsToLearningPathMapping", Reason: "empty"}
	}
	if resp.LearningCourse.CourseTitle == "" {
		return nil, &MissingFieldError{Field: "learningCourse.courseTitle", Reason: "empty"}
	}

	return &resp, nil
}

// MissingFieldError reports a structurally invalid generation payload.
type MissingFieldError struct {
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	if e.Reason != "" {
		return "field " + e.Field + ": " + e.Reason
	}
	return "missing required field " + e.Field
}
