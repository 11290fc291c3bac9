package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"student_intake/internal/model"
)

// Column headers of the spreadsheet export
const (
	ColumnPhone        = "TELEFONE"
	ColumnName         = "NOME"
	ColumnCourseResult = "CURSO_REALIZADO"
)

var ErrRosterColumns = errors.New("roster is missing required columns")

// PhoneNormalizer maps a spreadsheet phone cell to its canonical key
type PhoneNormalizer func(raw string) (string, error)

// CSVRoster reads the roster from a CSV export of the student spreadsheet
type CSVRoster struct {
	path      string
	normalize PhoneNormalizer
}

// NewCSVRoster creates a roster source for path. Phones that the normalizer
// rejects are kept verbatim (trimmed).
func NewCSVRoster(path string, normalize PhoneNormalizer) *CSVRoster {
	return &CSVRoster{path: path, normalize: normalize}
}

// LoadRoster reads the whole file
func (r *CSVRoster) LoadRoster(ctx context.Context) ([]model.Student, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", r.path, err)
	}
	defer f.Close()
	return r.parse(ctx, f)
}

func (r *CSVRoster) parse(ctx context.Context, in io.Reader) ([]model.Student, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	phoneCol, okPhone := idx[ColumnPhone]
	nameCol, okName := idx[ColumnName]
	if !okPhone || !okName {
		return nil, fmt.Errorf("%w: need %s and %s", ErrRosterColumns, ColumnPhone, ColumnName)
	}
	resultCol, okResult := idx[ColumnCourseResult]

	var students []model.Student
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster row: %w", err)
		}

		phone := strings.TrimSpace(cell(rec, phoneCol))
		if phone == "" {
			continue
		}
		if r.normalize != nil {
			if canonical, err := r.normalize(phone); err == nil {
				phone = canonical
			}
		}

		s := model.Student{Phone: phone, Name: strings.TrimSpace(cell(rec, nameCol))}
		if okResult {
			if result := strings.TrimSpace(cell(rec, resultCol)); result != "" {
				s.CourseResult = &result
			}
		}
		students = append(students, s)
	}
	return students, nil
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
