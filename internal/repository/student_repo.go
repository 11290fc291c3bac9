package repository

import (
	"context"
	"fmt"

	"student_intake/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// RosterSource supplies the full student roster in one read
type RosterSource interface {
	LoadRoster(ctx context.Context) ([]model.Student, error)
}

// PgxQuerier is the subset of *pgxpool.Pool used by repositories
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RosterWriter stores roster rows keyed by canonical phone
type RosterWriter interface {
	Upsert(ctx context.Context, student *model.Student) error
}

// StudentRepository defines operations for roster data
type StudentRepository interface {
	RosterSource
	RosterWriter
}

type studentRepository struct {
	db PgxQuerier
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db PgxQuerier) StudentRepository {
	return &studentRepository{db: db}
}

// LoadRoster reads every row of the students table
func (r *studentRepository) LoadRoster(ctx context.Context) ([]model.Student, error) {
	sql := `SELECT telefone, nome, COALESCE(curso_realizado, '') FROM students ORDER BY telefone`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		var result string
		if err := rows.Scan(&s.Phone, &s.Name, &result); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		if result != "" {
			s.CourseResult = &result
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}
	return students, nil
}

// Upsert inserts or replaces a roster row
func (r *studentRepository) Upsert(ctx context.Context, student *model.Student) error {
	sql := `INSERT INTO students (telefone, nome, curso_realizado)
            VALUES ($1, $2, $3)
            ON CONFLICT (telefone) DO UPDATE SET nome = EXCLUDED.nome, curso_realizado = EXCLUDED.curso_realizado`
	if _, err := r.db.Exec(ctx, sql, student.Phone, student.Name, student.CourseResult); err != nil {
		return fmt.Errorf("failed to upsert student: %w", err)
	}
	return nil
}
