package handler

import (
	"errors"
	"net/http"

	"student_intake/internal/middleware"
	"student_intake/internal/model"
	"student_intake/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionHandler handles questionnaire results and their export
type SubmissionHandler struct {
	service service.SubmissionService
	logger  *zap.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(s service.SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{service: s, logger: logger}
}

func (h *SubmissionHandler) SubmitResults(c *gin.Context) {
	token, ok := middleware.AuthToken(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado."})
		return
	}

	var req model.SubmitResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), token, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdentityMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Inconsistência de usuário. O telefone do token não corresponde ao telefone dos dados."})
		case errors.Is(err, service.ErrUnauthorized):
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token malformado ou inválido."})
		default:
			h.logger.Error("submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store result"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"message":       "Resultado do questionário armazenado com sucesso, aguardando coleta da Automação.",
		"data_received": sub,
	})
}

func (h *SubmissionHandler) CollectForSheet(c *gin.Context) {
	batch, err := h.service.Drain(c.Request.Context())
	if err != nil {
		h.logger.Error("drain failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect pending results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  len(batch),
		"data":   batch,
	})
}

// RegisterSubmissionRoutes registers submission and export routes
func (h *SubmissionHandler) RegisterSubmissionRoutes(r gin.IRoutes, authMW, exportMW gin.HandlerFunc) {
	r.POST("/submit_results", authMW, h.SubmitResults)
	r.GET("/coletar_dados_para_planilha", exportMW, h.CollectForSheet)
}
