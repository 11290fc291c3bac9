package service

import (
	"testing"

	"student_intake/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorer_ByQuestionID(t *testing.T) {
	scorer := NewScorer([]model.Question{
		{ID: "q1", Area: "Exatas"},
		{ID: "q2", Area: "Humanas"},
		{ID: "q3", Area: "Exatas"},
	})

	res := scorer.Score([]model.Answer{
		{QuestionID: "q1", Value: 2},
		{QuestionID: "q2", Value: 4},
		{QuestionID: "q3", Value: 3},
	})

	assert.Equal(t, map[string]float64{"Exatas": 5, "Humanas": 4}, res.Scores)
	require.NotNil(t, res.RecommendedArea)
	assert.Equal(t, "Exatas", *res.RecommendedArea)
}

func TestScorer_AreaFallbacks(t *testing.T) {
	scorer := NewScorer(nil)

	res := scorer.Score([]model.Answer{
		{Area: "Artes", Value: 1},
		{QuestionID: "Saúde", Value: 3},
		{Value: 10}, // no area at all
	})

	assert.Equal(t, map[string]float64{"Artes": 1, "Saúde": 3}, res.Scores)
	require.NotNil(t, res.RecommendedArea)
	assert.Equal(t, "Saúde", *res.RecommendedArea)
}

func TestScorer_TieKeepsFirstArea(t *testing.T) {
	scorer := NewScorer([]model.Question{
		{ID: "1", Area: "Humanas"},
		{ID: "2", Area: "Exatas"},
	})

	res := scorer.Score([]model.Answer{
		{QuestionID: "2", Value: 3},
		{QuestionID: "1", Value: 3},
	})

	require.NotNil(t, res.RecommendedArea)
	assert.Equal(t, "Humanas", *res.RecommendedArea)
}

func TestScorer_NoAnswers(t *testing.T) {
	res := NewScorer(nil).Score(nil)
	assert.Empty(t, res.Scores)
	assert.Nil(t, res.RecommendedArea)

	// Bank areas are seeded even without answers
	res = NewScorer(DefaultQuestions).Score(nil)
	assert.Equal(t, float64(0), res.Scores["Exatas"])
	require.NotNil(t, res.RecommendedArea)
	assert.Equal(t, "Exatas", *res.RecommendedArea)
}
