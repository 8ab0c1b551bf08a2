package service

import (
	"context"
	"testing"
	"time"

	"brightsprout_backend/internal/llm"
	"brightsprout_backend/internal/model"
	"brightsprout_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePathStore struct {
	saved  map[string]string
	writes int
}

func newFakePathStore() *fakePathStore {
	return &fakePathStore{saved: make(map[string]string)}
}

func (f *fakePathStore) Save(childUID string, payload string) error {
	f.saved[childUID] = payload
	f.writes++
	return nil
}

func (f *fakePathStore) FindByChildUID(childUID string) (*model.LearningPath, error) {
	payload, ok := f.saved[childUID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.LearningPath{ChildUID: childUID, Payload: payload, GeneratedAt: time.Now()}, nil
}

const validPathJSON = `{
  "strengths": ["math"],
  "weaknesses": ["reading"],
  "suggestedLearningPath": [
    {"description": "Practice sight words", "difficulty": "easy", "activities": ["flashcards"]}
  ],
  "exampleGames": [
    {"subject": "reading", "gradeLevel": "1", "title": "Word Hunt", "instructions": "Find the word", "interaction": "tap", "skillsTested": ["recall"]}
  ],
  "resultsToLearningPathMapping": "Weak reading results map to easy reading steps.",
  "learningCourse": {
    "courseTitle": "Reading Foundations",
    "courseDescription": "A gentle start",
    "modules": [
      {"title": "Letters", "description": "Letter sounds", "activities": ["songs"], "resources": ["https://example.com"]}
    ]
  }
}`

func pathRequest() GenerateLearningPathRequest {
	return GenerateLearningPathRequest{
		Age:   7,
		Grade: "2",
		PerformanceHistory: []model.AnswerRecord{
			{Subject: "math", IsCorrect: true},
			{Subject: "reading", IsCorrect: false},
		},
		ChildUID: "child-1",
	}
}

func parentCaller() *util.Claims {
	return &util.Claims{UserID: 1, Role: model.RoleParent}
}

func TestGenerateLearningPath_InvalidArgument(t *testing.T) {
	svc := NewLearningPathService(newFakePathStore(), llm.NewMockProvider(), time.Second)

	for _, req := range []GenerateLearningPathRequest{
		{Age: 0, Grade: "2", ChildUID: "c"},
		{Age: 7, Grade: "", ChildUID: "c"},
		{Age: 7, Grade: "2", ChildUID: ""},
	} {
		_, err := svc.GenerateLearningPath(context.Background(), parentCaller(), req)
		assert.ErrorIs(t, err, util.ErrInvalidArgument)
	}
}

func TestGenerateLearningPath_Unauthenticated(t *testing.T) {
	svc := NewLearningPathService(newFakePathStore(), llm.NewMockProvider(), time.Second)

	_, err := svc.GenerateLearningPath(context.Background(), nil, pathRequest())
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
}

func TestGenerateLearningPath_Misconfigured(t *testing.T) {
	store := newFakePathStore()
	svc := NewLearningPathService(store, nil, time.Second)

	_, err := svc.GenerateLearningPath(context.Background(), parentCaller(), pathRequest())

	assert.ErrorIs(t, err, util.ErrMisconfigured)
	assert.Zero(t, store.writes)
}

func TestGenerateLearningPath_ProviderFailure(t *testing.T) {
	store := newFakePathStore()
	provider := llm.NewMockProvider(llm.MockResponse{Err: context.DeadlineExceeded})
	svc := NewLearningPathService(store, provider, time.Second)

	_, err := svc.GenerateLearningPath(context.Background(), parentCaller(), pathRequest())

	assert.ErrorIs(t, err, util.ErrGenerationUnavailable)
	assert.Zero(t, store.writes)
}

func TestGenerateLearningPath_MalformedJSON(t *testing.T) {
	store := newFakePathStore()
	provider := llm.NewMockProvider(llm.MockResponse{Text: "this is not json at all"})
	svc := NewLearningPathService(store, provider, time.Second)

	_, err := svc.GenerateLearningPath(context.Background(), parentCaller(), pathRequest())

	assert.ErrorIs(t, err, util.ErrMalformedGenerationResult)
	assert.Zero(t, store.writes)
}

func TestGenerateLearningPath_MissingRequiredField(t *testing.T) {
	store := newFakePathStore()
	// Valid JSON but no learningCourse key.
	provider := llm.NewMockProvider(llm.MockResponse{Text: `{
		"strengths": [], "weaknesses": [],
		"suggestedLearningPath": [{"description": "x", "difficulty": "easy", "activities": []}],
		"exampleGames": [],
		"resultsToLearningPathMapping": "m"
	}`})
	svc := NewLearningPathService(store, provider, time.Second)

	_, err := svc.GenerateLearningPath(context.Background(), parentCaller(), pathRequest())

	assert.ErrorIs(t, err, util.ErrMalformedGenerationResult)
	assert.Zero(t, store.writes)
}

func TestGenerateLearningPath_FencedResponse(t *testing.T) {
	store := newFakePathStore()
	provider := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + validPathJSON + "\n```"})
	svc := NewLearningPathService(store, provider, time.Second)

	resp, err := svc.GenerateLearningPath(context.Background(), parentCaller(), pathRequest())

	require.NoError(t, err)
	assert.Equal(t, []string{"math"}, resp.Strengths)
	assert.Len(t, resp.SuggestedLearningPath, 1)
	assert.Equal(t, 1, store.writes)
	assert.JSONEq(t, validPathJSON, store.saved["child-1"])
}

func TestGenerateLearningPath_OverwritesOnEachCall(t *testing.T) {
	second := `{
	  "strengths": [], "weaknesses": [],
	  "suggestedLearningPath": [{"description": "Harder problems", "difficulty": "hard", "activities": ["worksheet"]}],
	  "exampleGames": [],
	  "resultsToLearningPathMapping": "All strong, move up.",
	  "learningCourse": {"courseTitle": "Next Steps", "courseDescription": "Advance", "modules": []}
	}`
	store := newFakePathStore()
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: validPathJSON},
		llm.MockResponse{Text: second},
	)
	svc := NewLearningPathService(store, provider, time.Second)

	_, err := svc.GenerateLearningPath(context.Background(), parentCaller(), pathRequest())
	require.NoError(t, err)
	_, err = svc.GenerateLearningPath(context.Background(), parentCaller(), pathRequest())
	require.NoError(t, err)

	// No cache: two calls, two generations, two writes, last one wins.
	assert.Equal(t, 2, provider.CallCount())
	assert.Equal(t, 2, store.writes)
	assert.JSONEq(t, second, store.saved["child-1"])

	stored, err := svc.GetLearningPath("child-1")
	require.NoError(t, err)
	assert.JSONEq(t, second, string(stored.Path))
}

func TestGenerateLearningPath_EmptyHistoryPrompt(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Text: validPathJSON})
	svc := NewLearningPathService(newFakePathStore(), provider, time.Second)

	req := pathRequest()
	req.PerformanceHistory = nil

	_, err := svc.GenerateLearningPath(context.Background(), parentCaller(), req)
	require.NoError(t, err)

	require.Len(t, provider.Prompts, 1)
	prompt := provider.Prompts[0]
	assert.Contains(t, prompt, "Strengths: None identified")
	assert.Contains(t, prompt, "Weaknesses: None identified")
	assert.Contains(t, prompt, "Even if the learner answers everything correctly, still recommend a next-step learning path")
}

func TestGenerateLearningPath_PromptCarriesClassification(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Text: validPathJSON})
	svc := NewLearningPathService(newFakePathStore(), provider, time.Second)

	req := pathRequest()
	req.PerformanceHistory = append(records("math", 9, 1), records("reading", 1, 9)...)

	_, err := svc.GenerateLearningPath(context.Background(), parentCaller(), req)
	require.NoError(t, err)

	require.Len(t, provider.Prompts, 1)
	assert.Contains(t, provider.Prompts[0], "Strengths: math")
	assert.Contains(t, provider.Prompts[0], "Weaknesses: reading")
	assert.Contains(t, provider.Prompts[0], "7 years old and in grade 2")
}

func TestGetLearningPath_NotFound(t *testing.T) {
	svc := NewLearningPathService(newFakePathStore(), llm.NewMockProvider(), time.Second)

	_, err := svc.GetLearningPath("nobody")
	assert.ErrorIs(t, err, util.ErrNoLearningPath)
}
