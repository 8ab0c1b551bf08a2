package service

import "brightsprout_backend/internal/model"

// Classification thresholds. A subject at exactly 70% counts as a
// strength; one at exactly 50% is neutral.
const (
	strengthThreshold = 70.0
	weaknessThreshold = 50.0
)

// AggregatePerformance reduces an answer log into per-subject counts.
// A single pass; an empty subject string is a valid (if degenerate) key.
func AggregatePerformance(history []model.AnswerRecord) map[string]model.SubjectPerformance {
	performance := make(map[string]model.SubjectPerformance, len(history))
	for _, record := range history {
		p := performance[record.Subject]
		p.Total++
		if record.IsCorrect {
			p.Correct++
		}
		performance[record.Subject] = p
	}
	return performance
}

// ClassifyPerformance buckets subjects into strengths and weaknesses by
// accuracy. Subjects between the thresholds stay out of both lists.
// Entries with Total == 0 cannot come out of AggregatePerformance, but
// are skipped rather than divided by.
func ClassifyPerformance(performance map[string]model.SubjectPerformance) model.Classification {
	classification := model.Classification{
		Strengths:  []string{},
		Weaknesses: []string{},
	}
	for subject, p := range performance {
		if p.Total == 0 {
			continue
		}
		percentage := float64(p.Correct) / float64(p.Total) * 100
		if percentage >= strengthThreshold {
			classification.Strengths = append(classification.Strengths, subject)
		} else if percentage < weaknessThreshold {
			classification.Weaknesses = append(classification.Weaknesses, subject)
		}
	}
	return classification
}
