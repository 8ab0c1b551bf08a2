package model

import "time"

// AnswerRecord is one per-question outcome collected during an assessment
// session. Records are sent wholesale by the client when it requests a
// learning path; they are consumed once and not stored server-side.
// swagger:model AnswerRecord
type AnswerRecord struct {
	Subject   string    `json:"subject"`
	IsCorrect bool      `json:"isCorrect"`
	Timestamp time.Time `json:"timestamp"`
}

// SubjectPerformance holds per-subject answer counts derived from a
// sequence of AnswerRecords. Invariant: 0 <= Correct <= Total.
type SubjectPerformance struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Classification buckets subjects by accuracy. A subject at 70% or above
// is a strength, below 50% a weakness; anything between is neutral and
// appears in neither list.
type Classification struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}
