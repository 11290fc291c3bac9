package model

import "time"

// PendingSubmission is a questionnaire outcome waiting for the spreadsheet export job.
type PendingSubmission struct {
	ID             string    `json:"id"`
	Name           string    `json:"nome"`
	PhoneID        string    `json:"telefone_id"`
	IdentifiedArea string    `json:"curso_identificado"`
	Email          string    `json:"email,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// SubmitResultsRequest is the body of POST /submit_results.
type SubmitResultsRequest struct {
	Name            string `json:"nome" binding:"required"`
	Phone           string `json:"telefone" binding:"required"`
	Email           string `json:"email" binding:"omitempty,email"`
	RecommendedArea string `json:"recommendedArea" binding:"required"`
}

// Question maps a questionnaire item to the area it scores.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Area string `json:"area"`
}

// Answer is one scored response. Either QuestionID or Area identifies the target area.
type Answer struct {
	QuestionID string  `json:"questionId"`
	Area       string  `json:"area,omitempty"`
	Value      float64 `json:"value"`
}

// ScoreResult holds per-area totals and the winning area.
type ScoreResult struct {
	Scores          map[string]float64 `json:"scores"`
	RecommendedArea *string            `json:"recommendedArea"`
}
