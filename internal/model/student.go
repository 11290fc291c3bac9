package model

import "time"

// Student is a roster entry keyed by canonical phone.
type Student struct {
	Phone        string  `json:"telefone"`
	Name         string  `json:"nome"`
	CourseResult *string `json:"curso_realizado,omitempty"` // Empty or absent means the questionnaire is still pending
}

// HasResult reports whether the student already has a questionnaire outcome.
func (s *Student) HasResult() bool {
	return s.CourseResult != nil && *s.CourseResult != ""
}

// RegisteredStudent is an entry of the ephemeral registry used by /api/login.
type RegisteredStudent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"-"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Name  string `json:"nome" binding:"required"`
	Phone string `json:"telefone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// RegistryLoginRequest is the body of POST /api/login.
type RegistryLoginRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}
