package model

import (
	"encoding/json"
	"fmt"
)

type AssessmentKind string

const (
	AssessmentBaseline AssessmentKind = "baseline"
	AssessmentVisual   AssessmentKind = "visual"
)

// Assessment is the stored question set for one child and kind. Once a
// row exists the questions are never regenerated; the stored bytes are
// returned verbatim on every subsequent request so a child sees the same
// questions across sessions.
type Assessment struct {
	BaseModel
	ChildUID  string         `gorm:"size:36;not null;uniqueIndex:idx_child_kind" json:"childUid"`
	Kind      AssessmentKind `gorm:"size:20;not null;uniqueIndex:idx_child_kind" json:"kind"`
	Questions string         `gorm:"type:longtext;not null" json:"-"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentQuestion is one multiple-choice question.
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// VisualOption is one image candidate in an image-matching question.
type VisualOption struct {
	Shape     string `json:"shape"`
	IsCorrect bool   `json:"isCorrect"`
}

// VisualQuestion is one image-matching question.
// swagger:model VisualQuestion
type VisualQuestion struct {
	QuestionText  string         `json:"questionText"`
	QuestionShape string         `json:"questionShape"`
	Subject       string         `json:"subject"`
	Options       []VisualOption `json:"options"`
}

// ParseAssessmentQuestions decodes and validates a multiple-choice
// question set. Every question needs prompt text, options and a correct
// answer that matches exactly one option.
func ParseAssessmentQuestions(raw []byte) ([]AssessmentQuestion, error) {
	var questions []AssessmentQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &MissingFieldError{Field: "questions", Reason: "empty array"}
	}
	for i, q := range questions {
		if q.Question == "" {
			return nil, &MissingFieldError{Field: "question", Reason: indexReason(i, "empty")}
		}
		if len(q.Options) == 0 {
			return nil, &MissingFieldError{Field: "options", Reason: indexReason(i, "empty")}
		}
		if q.CorrectAnswer == "" {
			return nil, &MissingFieldError{Field: "correctAnswer", Reason: indexReason(i, "empty")}
		}
		matches := 0
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				matches++
			}
		}
		if matches != 1 {
			return nil, &MissingFieldError{Field: "correctAnswer", Reason: indexReason(i, "must match exactly one option")}
		}
	}
	return questions, nil
}

// ParseVisualQuestions decodes and validates an image-matching question
// set. Every question needs text, a question image and exactly one
// option flagged correct.
func ParseVisualQuestions(raw []byte) ([]VisualQuestion, error) {
	var questions []VisualQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &MissingFieldError{Field: "questions", Reason: "empty array"}
	}
	for i, q := range questions {
		if q.QuestionText == "" {
			return nil, &MissingFieldError{Field: "questionText", Reason: indexReason(i, "empty")}
		}
		if q.QuestionShape == "" {
			return nil, &MissingFieldError{Field: "questionShape", Reason: indexReason(i, "empty")}
		}
		if len(q.Options) == 0 {
			return nil, &MissingFieldError{Field: "options", Reason: indexReason(i, "empty")}
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, &MissingFieldError{Field: "options", Reason: indexReason(i, "exactly one option must be correct")}
		}
	}
	return questions, nil
}

func indexReason(i int, msg string) string {
	return fmt.Sprintf("question %d %s", i, msg)
}
