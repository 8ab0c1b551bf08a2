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

// LearningPathStore is the persistence collaborator for generated paths.
type LearningPathStore interface {
	Save(childUID string, payload string) error
	FindByChildUID(childUID string) (*model.LearningPath, error)
}

// LearningPathService turns a child's quiz performance into a
// personalized learning path via the generative model. Each call
// regenerates and overwrites the stored path; the path is meant to
// follow the child's latest performance snapshot, so there is no
// read-before-write cache here.
type LearningPathService struct {
	Store    LearningPathStore
	Provider llm.Provider
	Timeout  time.Duration
}

func NewLearningPathService(store LearningPathStore, provider llm.Provider, timeout time.Duration) *LearningPathService {
	return &LearningPathService{
		Store:    store,
		Provider: provider,
		Timeout:  timeout,
	}
}

type GenerateLearningPathRequest struct {
	Age                int                  `json:"age" binding:"required"`
	Grade              string               `json:"grade" binding:"required"`
	PerformanceHistory []model.AnswerRecord `json:"performanceHistory"`
	ChildUID           string               `json:"childUid" binding:"required"`
}

func (s *LearningPathService) GenerateLearningPath(ctx context.Context, caller *util.Claims, req GenerateLearningPathRequest) (*model.LearningPathResponse, error) {
	if req.Age <= 0 || req.Grade == "" || req.ChildUID == "" {
		return nil, fmt.Errorf("%w: age, grade and childUid are required", util.ErrInvalidArgument)
	}
	if caller == nil {
		return nil, util.ErrUnauthenticated
	}

	performance := AggregatePerformance(req.PerformanceHistory)
	classification := ClassifyPerformance(performance)

	prompt := buildLearningPathPrompt(req.Age, req.Grade, classification)

	raw, err := invokeModel(ctx, s.Provider, s.Timeout, prompt)
	if err != nil {
		return nil, err
	}

	jsonString := llm.ExtractJSON(raw)
	resp, err := model.ParseLearningPathResponse([]byte(jsonString))
	if err != nil {
		logger.Log.Warn("model returned invalid learning path",
			zap.String("childUid", req.ChildUID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedGenerationResult, err)
	}

	if err := s.Store.Save(req.ChildUID, jsonString); err != nil {
		return nil, err
	}

	logger.Log.Info("learning path generated",
		zap.String("childUid", req.ChildUID),
		zap.Int("steps", len(resp.SuggestedLearningPath)))

	return resp, nil
}

type StoredLearningPath struct {
	Path        json.RawMessage `json:"path"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

func (s *LearningPathService) GetLearningPath(childUID string) (*StoredLearningPath, error) {
	path, err := s.Store.FindByChildUID(childUID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoLearningPath
	}
	if err != nil {
		return nil, err
	}
	return &StoredLearningPath{
		Path:        json.RawMessage(path.Payload),
		GeneratedAt: path.GeneratedAt,
	}, nil
}

func buildLearningPathPrompt(age int, grade string, classification model.Classification) string {
	strengths := "None identified"
	if len(classification.Strengths) > 0 {
		strengths = strings.Join(classification.Strengths, ", ")
	}
	weaknesses := "None identified"
	if len(classification.Weaknesses) > 0 {
		weaknesses = strings.Join(classification.Weaknesses, ", ")
	}

	return fmt.Sprintf(`
You are an adaptive baseline assessment and learning-path designer aligned with Cambridge standards. Your task is to create age-, grade-, and subject-appropriate baseline assessments in the form of interactive games.

The learner is %d years old and in grade %s.
Based on their recent performance in a quiz:
Strengths: %s
Weaknesses: %s

Requirements:

The games should be engaging, age-appropriate, and aligned to Cambridge curriculum standards.

Each game must test different skill areas (recall, understanding, application, problem-solving, communication).

After analyzing their performance (provided above):

Identify strengths and weaknesses.

Suggest a personalized learning path that targets areas for improvement. Focus on subjects in weaknesses, and provide enrichment for strengths.

Even if the learner answers everything correctly, still recommend a next-step learning path with higher difficulty and enrichment activities.

The learning path should include progressive steps that gradually increase complexity.

Output should be a JSON object with the following structure:
{
  "strengths": string[];
  "weaknesses": string[];
  "suggestedLearningPath": [
    {
      "description": string;
      "difficulty": "easy" | "medium" | "hard" | "enrichment";
      "activities": string[];
    }
  ];
  "exampleGames": [
    {
      "subject": string;
      "gradeLevel": string;
      "title": string;
      "instructions": string;
      "interaction": string;
      "skillsTested": string[];
    }
  ];
  "resultsToLearningPathMapping": string;
  "learningCourse": {
    "courseTitle": string;
    "courseDescription": string;
    "modules": [
      {
        "title": string;
        "description": string;
        "activities": string[];
        "resources": string[];
      }
    ];
  };
}
Do not include any other text or explanation in your response, just the JSON object.
`, age, grade, strengths, weaknesses)
}
