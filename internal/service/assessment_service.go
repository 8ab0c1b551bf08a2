package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"brightsprout_backend/internal/llm"
	"brightsprout_backend/internal/model"
	"brightsprout_backend/internal/util"
	"brightsprout_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssessmentStore is the persistence collaborator for question sets.
type AssessmentStore interface {
	FindByChildUID(childUID string, kind model.AssessmentKind) (*model.Assessment, error)
	Create(assessment *model.Assessment) error
}

// AssessmentService generates baseline and visual question sets. A set
// is generated at most once per child and kind: a child must see the
// same questions on every screen refresh, so once a row exists the
// stored bytes are returned verbatim even when age, grade or subjects
// change between calls.
type AssessmentService struct {
	Store    AssessmentStore
	Provider llm.Provider
	Timeout  time.Duration
}

func NewAssessmentService(store AssessmentStore, provider llm.Provider, timeout time.Duration) *AssessmentService {
	return &AssessmentService{
		Store:    store,
		Provider: provider,
		Timeout:  timeout,
	}
}

type GenerateAssessmentRequest struct {
	Age      int      `json:"age" binding:"required"`
	Grade    string   `json:"grade" binding:"required"`
	Subjects []string `json:"subjects" binding:"required"`
	ChildUID string   `json:"childUid" binding:"required"`
}

// GenerateAssessment returns the child's multiple-choice question set,
// generating it on first call.
func (s *AssessmentService) GenerateAssessment(ctx context.Context, caller *util.Claims, req GenerateAssessmentRequest) (json.RawMessage, error) {
	return s.generate(ctx, caller, req, model.AssessmentBaseline)
}

// GenerateVisualAssessment is the image-matching variant, with the same
// at-most-once guarantee.
func (s *AssessmentService) GenerateVisualAssessment(ctx context.Context, caller *util.Claims, req GenerateAssessmentRequest) (json.RawMessage, error) {
	return s.generate(ctx, caller, req, model.AssessmentVisual)
}

func (s *AssessmentService) generate(ctx context.Context, caller *util.Claims, req GenerateAssessmentRequest, kind model.AssessmentKind) (json.RawMessage, error) {
	if req.Age <= 0 || req.Grade == "" || len(req.Subjects) == 0 || req.ChildUID == "" {
		return nil, fmt.Errorf("%w: age, grade, subjects and childUid are required", util.ErrInvalidArgument)
	}
	if caller == nil {
		return nil, util.ErrUnauthenticated
	}

	// Cache check comes before any model work. A hit is authoritative.
	existing, err := s.Store.FindByChildUID(req.ChildUID, kind)
	if err == nil {
		logger.Log.Info("returning existing assessment",
			zap.String("childUid", req.ChildUID),
			zap.String("kind", string(kind)))
		return json.RawMessage(existing.Questions), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var prompt string
	if kind == model.AssessmentVisual {
		prompt = buildVisualAssessmentPrompt(req.Age, req.Grade, req.Subjects)
	} else {
		prompt = buildAssessmentPrompt(req.Age, req.Grade, req.Subjects)
	}

	raw, err := invokeModel(ctx, s.Provider, s.Timeout, prompt)
	if err != nil {
		return nil, err
	}

	jsonString := llm.ExtractJSON(raw)
	if kind == model.AssessmentVisual {
		_, err = model.ParseVisualQuestions([]byte(jsonString))
	} else {
		_, err = model.ParseAssessmentQuestions([]byte(jsonString))
	}
	if err != nil {
		logger.Log.Warn("model returned invalid question set",
			zap.String("childUid", req.ChildUID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedGenerationResult, err)
	}

	// Write before returning so a concurrent duplicate request arriving
	// after this point observes the cached copy.
	assessment := &model.Assessment{
		ChildUID:  req.ChildUID,
		Kind:      kind,
		Questions: jsonString,
	}
	if err := s.Store.Create(assessment); err != nil {
		return nil, err
	}

	logger.Log.Info("assessment generated",
		zap.String("childUid", req.ChildUID),
		zap.String("kind", string(kind)))

	return json.RawMessage(jsonString), nil
}

// GetAssessment returns the stored question set without generating.
func (s *AssessmentService) GetAssessment(childUID string, kind model.AssessmentKind) (json.RawMessage, error) {
	assessment, err := s.Store.FindByChildUID(childUID, kind)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoAssessment
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(assessment.Questions), nil
}

func buildAssessmentPrompt(age int, grade string, subjects []string) string {
	return fmt.Sprintf(`Generate 5 multiple-choice questions for a child who is %d years old and in grade %s. The questions should cover the following subjects: %s, suitable for their developmental stage. Each question should have 4 options, and one correct answer. Provide the output as a JSON array of objects, where each object has 'question', 'options' (an array of strings), and 'correctAnswer' (a string matching one of the options). Example: [{ "question": "What is 2+2?", "options": ["3", "4", "5", "6"], "correctAnswer": "4" }]`,
		age, grade, strings.Join(subjects, ", "))
}

func buildVisualAssessmentPrompt(age int, grade string, subjects []string) string {
	return fmt.Sprintf(`Generate 3 visual assessment questions for a child aged %d in grade %s. The questions should be based on the following subjects: %s. Each question should involve matching an image to one of three options. Provide the output as a JSON array of objects, where each object has 'questionText', 'questionShape', 'subject', and 'options' (an array of objects with 'shape' and 'isCorrect' properties). The 'questionShape' and 'options.shape' should be valid placeholder image URLs from 'https://placehold.co/100x100?text=...' with a descriptive text for the image. For example, if the image is of a cat, the URL should be 'https://placehold.co/100x100?text=Cat'. Example: [{"questionText":"Match the image!","questionShape":"https://placehold.co/100x100?text=QuestionImage","subject":"animals","options":[{"shape":"https://placehold.co/100x100?text=Option1","isCorrect":true},{"shape":"https://placehold.co/100x100?text=Option2","isCorrect":false},{"shape":"https://placehold.co/100x100?text=Option3","isCorrect":false}]}]`,
		age, grade, strings.Join(subjects, ", "))
}
