package handler

import (
	"net/http"

	"student_intake/internal/model"
	"student_intake/internal/service"

	"github.com/gin-gonic/gin"
)

// QuestionnaireHandler serves the question bank and scores answers
type QuestionnaireHandler struct {
	scorer *service.Scorer
}

// NewQuestionnaireHandler creates a new QuestionnaireHandler
func NewQuestionnaireHandler(scorer *service.Scorer) *QuestionnaireHandler {
	return &QuestionnaireHandler{scorer: scorer}
}

func (h *QuestionnaireHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.scorer.Questions()})
}

func (h *QuestionnaireHandler) Score(c *gin.Context) {
	var answers []model.Answer
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Perguntas ou respostas não fornecidas"})
		return
	}
	c.JSON(http.StatusOK, h.scorer.Score(answers))
}

// RegisterQuestionnaireRoutes registers questionnaire routes
func (h *QuestionnaireHandler) RegisterQuestionnaireRoutes(r gin.IRoutes) {
	r.GET("/perguntas", h.Questions)
	r.POST("/respostas", h.Score)
}
