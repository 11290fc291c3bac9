package service

import (
	"context"
	"errors"
	"testing"

	"student_intake/internal/model"
	"student_intake/internal/repository"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImportRoster_UpsertsEveryRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	exatas := strPtr("Exatas")
	src := &stubRoster{students: []model.Student{
		{Phone: "+5511987654321", Name: "Ana", CourseResult: exatas},
		{Phone: "+5521998765432", Name: ""},
		{Phone: "+5521998765433", Name: "Bruno"},
	}}

	mock.ExpectExec("INSERT INTO students").
		WithArgs("+5511987654321", "Ana", exatas).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO students").
		WithArgs("+5521998765433", "Bruno", (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	n, err := ImportRoster(context.Background(), src, repository.NewStudentRepository(mock), zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRoster_StopsOnWriteError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src := &stubRoster{students: []model.Student{
		{Phone: "+5511987654321", Name: "Ana"},
		{Phone: "+5521998765433", Name: "Bruno"},
	}}
	mock.ExpectExec("INSERT INTO students").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO students").WillReturnError(errors.New("connection reset"))

	n, err := ImportRoster(context.Background(), src, repository.NewStudentRepository(mock), zap.NewNop())

	assert.Error(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRoster_SourceError(t *testing.T) {
	n, err := ImportRoster(context.Background(), &stubRoster{err: errors.New("file missing")}, nil, zap.NewNop())

	assert.Error(t, err)
	assert.Zero(t, n)
}
