package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripNormalizer(raw string) (string, error) {
	return "+55" + strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw), nil
}

func TestCSVRoster_LoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	content := "NOME,TELEFONE,CURSO_REALIZADO\n" +
		"Ana,(11) 98765-4321,Exatas\n" +
		"Bruno,21 99876-5432,\n" +
		",,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	roster := NewCSVRoster(path, stripNormalizer)
	students, err := roster.LoadRoster(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "+5511987654321", students[0].Phone)
	assert.Equal(t, "Ana", students[0].Name)
	require.NotNil(t, students[0].CourseResult)
	assert.Equal(t, "Exatas", *students[0].CourseResult)
	assert.Equal(t, "+5521998765432", students[1].Phone)
	assert.Nil(t, students[1].CourseResult)
}

func TestCSVRoster_HeaderCaseAndBOM(t *testing.T) {
	in := "\ufefftelefone,nome\n+5511987654321,Ana\n"

	students, err := NewCSVRoster("", nil).parse(context.Background(), strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "+5511987654321", students[0].Phone)
	assert.Nil(t, students[0].CourseResult)
}

func TestCSVRoster_MissingColumns(t *testing.T) {
	_, err := NewCSVRoster("", nil).parse(context.Background(), strings.NewReader("NOME,EMAIL\nAna,a@x.com\n"))
	assert.ErrorIs(t, err, ErrRosterColumns)
}

func TestCSVRoster_EmptyFile(t *testing.T) {
	students, err := NewCSVRoster("", nil).parse(context.Background(), strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, students)
}

func TestCSVRoster_MissingFile(t *testing.T) {
	_, err := NewCSVRoster(filepath.Join(t.TempDir(), "nope.csv"), nil).LoadRoster(context.Background())
	assert.Error(t, err)
}
