package repository

import (
	"strings"
	"sync"
	"time"

	"student_intake/internal/model"
)

// Registry is the process-local phone -> student map behind /api/login.
// It is lost on restart.
type Registry struct {
	mu       sync.Mutex
	students map[string]model.RegisteredStudent
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{students: make(map[string]model.RegisteredStudent)}
}

// GetOrCreate returns the entry for phone, inserting {id: phone, name, phone}
// when none exists. created is true for the insert.
func (r *Registry) GetOrCreate(phone, name string) (student model.RegisteredStudent, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.students[phone]; ok {
		return existing, false
	}
	student = model.RegisteredStudent{
		ID:        phone,
		Name:      strings.TrimSpace(name),
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	r.students[phone] = student
	return student, true
}

// Len returns the number of registered students
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.students)
}
