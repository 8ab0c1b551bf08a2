package service

import (
	"testing"
	"time"

	"brightsprout_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func record(subject string, correct bool) model.AnswerRecord {
	return model.AnswerRecord{Subject: subject, IsCorrect: correct, Timestamp: time.Now()}
}

func records(subject string, correct, wrong int) []model.AnswerRecord {
	var out []model.AnswerRecord
	for i := 0; i < correct; i++ {
		out = append(out, record(subject, true))
	}
	for i := 0; i < wrong; i++ {
		out = append(out, record(subject, false))
	}
	return out
}

func TestAggregatePerformance_EmptyHistory(t *testing.T) {
	performance := AggregatePerformance(nil)
	assert.Empty(t, performance)
}

func TestAggregatePerformance_CountsPerSubject(t *testing.T) {
	history := []model.AnswerRecord{
		record("math", true),
		record("math", true),
		record("math", false),
		record("reading", false),
	}

	performance := AggregatePerformance(history)

	assert.Len(t, performance, 2)
	assert.Equal(t, model.SubjectPerformance{Correct: 2, Total: 3}, performance["math"])
	assert.Equal(t, model.SubjectPerformance{Correct: 0, Total: 1}, performance["reading"])
}

func TestAggregatePerformance_CorrectNeverExceedsTotal(t *testing.T) {
	history := append(records("math", 5, 2), records("science", 0, 4)...)

	for subject, p := range AggregatePerformance(history) {
		assert.LessOrEqual(t, p.Correct, p.Total, "subject %q", subject)
		assert.GreaterOrEqual(t, p.Correct, 0, "subject %q", subject)
	}
}

func TestAggregatePerformance_EmptySubjectIsValidKey(t *testing.T) {
	performance := AggregatePerformance([]model.AnswerRecord{record("", true)})
	assert.Equal(t, model.SubjectPerformance{Correct: 1, Total: 1}, performance[""])
}

func TestClassifyPerformance_ExactThresholds(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		total    int
		strength bool
		weakness bool
	}{
		{"exactly 70 percent is a strength", 7, 10, true, false},
		{"exactly 50 percent is neutral", 5, 10, false, false},
		{"just under 50 percent is a weakness", 49999, 100000, false, true},
		{"perfect score is a strength", 10, 10, true, false},
		{"zero score is a weakness", 0, 10, false, true},
		{"two thirds is neutral", 2, 3, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classification := ClassifyPerformance(map[string]model.SubjectPerformance{
				"subject": {Correct: tt.correct, Total: tt.total},
			})
			assert.Equal(t, tt.strength, len(classification.Strengths) == 1)
			assert.Equal(t, tt.weakness, len(classification.Weaknesses) == 1)
		})
	}
}

func TestClassifyPerformance_MathScenario(t *testing.T) {
	// 2 of 3 correct = 66.7%: neutral.
	performance := AggregatePerformance(records("math", 2, 1))
	classification := ClassifyPerformance(performance)

	assert.Empty(t, classification.Strengths)
	assert.Empty(t, classification.Weaknesses)
}

func TestClassifyPerformance_ReadingScenario(t *testing.T) {
	// 7 of 10 correct = 70%: strength.
	performance := AggregatePerformance(records("reading", 7, 3))
	classification := ClassifyPerformance(performance)

	assert.Equal(t, []string{"reading"}, classification.Strengths)
	assert.Empty(t, classification.Weaknesses)
}

func TestClassifyPerformance_SkipsZeroTotals(t *testing.T) {
	classification := ClassifyPerformance(map[string]model.SubjectPerformance{
		"ghost": {Correct: 0, Total: 0},
	})

	assert.Empty(t, classification.Strengths)
	assert.Empty(t, classification.Weaknesses)
}

func TestClassifyPerformance_DisjointSets(t *testing.T) {
	performance := map[string]model.SubjectPerformance{
		"math":    {Correct: 9, Total: 10},
		"reading": {Correct: 1, Total: 10},
		"science": {Correct: 6, Total: 10},
	}

	classification := ClassifyPerformance(performance)

	assert.Equal(t, []string{"math"}, classification.Strengths)
	assert.Equal(t, []string{"reading"}, classification.Weaknesses)
	for _, s := range classification.Strengths {
		assert.NotContains(t, classification.Weaknesses, s)
	}
}
