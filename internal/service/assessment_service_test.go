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

type fakeAssessmentStore struct {
	saved  map[string]*model.Assessment
	writes int
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{saved: make(map[string]*model.Assessment)}
}

func storeKey(childUID string, kind model.AssessmentKind) string {
	return childUID + "/" + string(kind)
}

func (f *fakeAssessmentStore) FindByChildUID(childUID string, kind model.AssessmentKind) (*model.Assessment, error) {
	a, ok := f.saved[storeKey(childUID, kind)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAssessmentStore) Create(a *model.Assessment) error {
	f.saved[storeKey(a.ChildUID, a.Kind)] = a
	f.writes++
	return nil
}

const validQuestionsJSON = `[
  {"question": "What is 2+2?", "options": ["3", "4", "5", "6"], "correctAnswer": "4"},
  {"question": "Which animal says moo?", "options": ["Cat", "Dog", "Cow", "Duck"], "correctAnswer": "Cow"}
]`

const validVisualJSON = `[
  {
    "questionText": "Match the image!",
    "questionShape": "https://placehold.co/100x100?text=Cat",
    "subject": "animals",
    "options": [
      {"shape": "https://placehold.co/100x100?text=Cat", "isCorrect": true},
      {"shape": "https://placehold.co/100x100?text=Dog", "isCorrect": false},
      {"shape": "https://placehold.co/100x100?text=Fish", "isCorrect": false}
    ]
  }
]`

func assessmentRequest() GenerateAssessmentRequest {
	return GenerateAssessmentRequest{
		Age:      6,
		Grade:    "1",
		Subjects: []string{"math", "reading"},
		ChildUID: "child-1",
	}
}

func TestGenerateAssessment_InvalidArgument(t *testing.T) {
	svc := NewAssessmentService(newFakeAssessmentStore(), llm.NewMockProvider(), time.Second)

	for _, req := range []GenerateAssessmentRequest{
		{Age: 0, Grade: "1", Subjects: []string{"math"}, ChildUID: "c"},
		{Age: 6, Grade: "", Subjects: []string{"math"}, ChildUID: "c"},
		{Age: 6, Grade: "1", Subjects: nil, ChildUID: "c"},
		{Age: 6, Grade: "1", Subjects: []string{"math"}, ChildUID: ""},
	} {
		_, err := svc.GenerateAssessment(context.Background(), parentCaller(), req)
		assert.ErrorIs(t, err, util.ErrInvalidArgument)
	}
}

func TestGenerateAssessment_Unauthenticated(t *testing.T) {
	svc := NewAssessmentService(newFakeAssessmentStore(), llm.NewMockProvider(), time.Second)

	_, err := svc.GenerateAssessment(context.Background(), nil, assessmentRequest())
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
}

func TestGenerateAssessment_Misconfigured(t *testing.T) {
	store := newFakeAssessmentStore()
	svc := NewAssessmentService(store, nil, time.Second)

	_, err := svc.GenerateAssessment(context.Background(), parentCaller(), assessmentRequest())

	assert.ErrorIs(t, err, util.ErrMisconfigured)
	assert.Zero(t, store.writes)
}

func TestGenerateAssessment_GeneratesAndPersists(t *testing.T) {
	store := newFakeAssessmentStore()
	provider := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + validQuestionsJSON + "\n```"})
	svc := NewAssessmentService(store, provider, time.Second)

	questions, err := svc.GenerateAssessment(context.Background(), parentCaller(), assessmentRequest())

	require.NoError(t, err)
	assert.JSONEq(t, validQuestionsJSON, string(questions))
	assert.Equal(t, 1, store.writes)

	require.Len(t, provider.Prompts, 1)
	assert.Contains(t, provider.Prompts[0], "5 multiple-choice questions")
	assert.Contains(t, provider.Prompts[0], "math, reading")
}

func TestGenerateAssessment_Idempotent(t *testing.T) {
	store := newFakeAssessmentStore()
	provider := llm.NewMockProvider(llm.MockResponse{Text: validQuestionsJSON})
	svc := NewAssessmentService(store, provider, time.Second)

	first, err := svc.GenerateAssessment(context.Background(), parentCaller(), assessmentRequest())
	require.NoError(t, err)

	// Different age, grade and subjects: the cached set still wins.
	changed := GenerateAssessmentRequest{
		Age:      9,
		Grade:    "4",
		Subjects: []string{"science"},
		ChildUID: "child-1",
	}
	second, err := svc.GenerateAssessment(context.Background(), parentCaller(), changed)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 1, provider.CallCount())
	assert.Equal(t, 1, store.writes)
}

func TestGenerateAssessment_MalformedNeverPersists(t *testing.T) {
	malformed := []string{
		"not json",
		`[]`,
		`[{"question": "", "options": ["a"], "correctAnswer": "a"}]`,
		`[{"question": "q", "options": [], "correctAnswer": "a"}]`,
		`[{"question": "q", "options": ["a", "b"], "correctAnswer": ""}]`,
		// correctAnswer must match exactly one option.
		`[{"question": "q", "options": ["a", "b"], "correctAnswer": "c"}]`,
		`[{"question": "q", "options": ["a", "a"], "correctAnswer": "a"}]`,
	}

	for _, text := range malformed {
		store := newFakeAssessmentStore()
		provider := llm.NewMockProvider(llm.MockResponse{Text: text})
		svc := NewAssessmentService(store, provider, time.Second)

		_, err := svc.GenerateAssessment(context.Background(), parentCaller(), assessmentRequest())

		assert.ErrorIs(t, err, util.ErrMalformedGenerationResult, "payload %q", text)
		assert.Zero(t, store.writes, "payload %q", text)
	}
}

func TestGenerateVisualAssessment_GeneratesAndPersists(t *testing.T) {
	store := newFakeAssessmentStore()
	provider := llm.NewMockProvider(llm.MockResponse{Text: validVisualJSON})
	svc := NewAssessmentService(store, provider, time.Second)

	questions, err := svc.GenerateVisualAssessment(context.Background(), parentCaller(), assessmentRequest())

	require.NoError(t, err)
	assert.JSONEq(t, validVisualJSON, string(questions))

	require.Len(t, provider.Prompts, 1)
	assert.Contains(t, provider.Prompts[0], "3 visual assessment questions")
	assert.Contains(t, provider.Prompts[0], "placehold.co")
}

func TestGenerateVisualAssessment_ExactlyOneCorrectOption(t *testing.T) {
	twoCorrect := `[
	  {
	    "questionText": "Match!",
	    "questionShape": "https://placehold.co/100x100?text=Q",
	    "subject": "shapes",
	    "options": [
	      {"shape": "https://placehold.co/100x100?text=A", "isCorrect": true},
	      {"shape": "https://placehold.co/100x100?text=B", "isCorrect": true}
	    ]
	  }
	]`
	store := newFakeAssessmentStore()
	provider := llm.NewMockProvider(llm.MockResponse{Text: twoCorrect})
	svc := NewAssessmentService(store, provider, time.Second)

	_, err := svc.GenerateVisualAssessment(context.Background(), parentCaller(), assessmentRequest())

	assert.ErrorIs(t, err, util.ErrMalformedGenerationResult)
	assert.Zero(t, store.writes)
}

func TestGenerateVisualAssessment_SeparateCacheFromBaseline(t *testing.T) {
	store := newFakeAssessmentStore()
	provider := llm.NewMockProvider(
		llm.MockResponse{Text: validQuestionsJSON},
		llm.MockResponse{Text: validVisualJSON},
	)
	svc := NewAssessmentService(store, provider, time.Second)

	_, err := svc.GenerateAssessment(context.Background(), parentCaller(), assessmentRequest())
	require.NoError(t, err)
	_, err = svc.GenerateVisualAssessment(context.Background(), parentCaller(), assessmentRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, provider.CallCount())
	assert.Equal(t, 2, store.writes)
}

func TestGetAssessment_NotFound(t *testing.T) {
	svc := NewAssessmentService(newFakeAssessmentStore(), llm.NewMockProvider(), time.Second)

	_, err := svc.GetAssessment("nobody", model.AssessmentBaseline)
	assert.ErrorIs(t, err, util.ErrNoAssessment)
}
