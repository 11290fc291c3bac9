package service

import (
	"student_intake/internal/model"
)

// DefaultQuestions is the vocational questionnaire shown by the frontend
var DefaultQuestions = []model.Question{
	{ID: "1", Area: "Exatas", Text: "Gosto de trabalhar com números e cálculos matemáticos complexos"},
	{ID: "2", Area: "Artes", Text: "Prefiro atividades que envolvem criatividade e expressão artística"},
	{ID: "3", Area: "Gestão", Text: "Me sinto confortável liderando grupos e tomando decisões importantes"},
	{ID: "4", Area: "Tecnologia", Text: "Tenho interesse em compreender como as coisas funcionam tecnicamente"},
	{ID: "5", Area: "Humanas", Text: "Gosto de ajudar outras pessoas a resolver seus problemas"},
	{ID: "6", Area: "Saúde", Text: "Me interesso por questões relacionadas à saúde e bem-estar"},
	{ID: "7", Area: "Biológicas", Text: "Prefiro trabalhos que me permitam estar em contato com a natureza"},
	{ID: "8", Area: "Comunicação", Text: "Tenho facilidade para me comunicar e persuadir outras pessoas"},
	{ID: "9", Area: "Exatas", Text: "Me sinto motivado por desafios que envolvem análise e pesquisa"},
	{ID: "10", Area: "Tecnologia", Text: "Gosto de atividades que exigem precisão e atenção aos detalhes"},
}

// Scorer sums questionnaire answers per area
type Scorer struct {
	questions []model.Question
	byID      map[string]model.Question
}

// NewScorer creates a Scorer over a question bank
func NewScorer(questions []model.Question) *Scorer {
	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		if _, ok := byID[q.ID]; !ok {
			byID[q.ID] = q
		}
	}
	return &Scorer{questions: questions, byID: byID}
}

// Questions returns the question bank
func (s *Scorer) Questions() []model.Question {
	return s.questions
}

// Score seeds every bank area with zero, adds each answer to its area and
// picks the first area holding the highest total. Answers resolve their area
// from the bank by questionId, then from their own area field, then fall back
// to the questionId itself; answers resolving to no area are skipped.
func (s *Scorer) Score(answers []model.Answer) model.ScoreResult {
	scores := map[string]float64{}
	var order []string
	touch := func(area string) {
		if _, ok := scores[area]; !ok {
			scores[area] = 0
			order = append(order, area)
		}
	}

	for _, q := range s.questions {
		if q.Area != "" {
			touch(q.Area)
		}
	}

	for _, ans := range answers {
		area := ans.Area
		if q, ok := s.byID[ans.QuestionID]; ok && ans.QuestionID != "" {
			area = q.Area
		} else if area == "" {
			area = ans.QuestionID
		}
		if area == "" {
			continue
		}
		touch(area)
		scores[area] += ans.Value
	}

	result := model.ScoreResult{Scores: scores}
	if len(order) == 0 {
		return result
	}

	top := order[0]
	for _, area := range order[1:] {
		if scores[area] > scores[top] {
			top = area
		}
	}
	result.RecommendedArea = &top
	return result
}
