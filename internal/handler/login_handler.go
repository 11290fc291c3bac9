package handler

import (
	"errors"
	"net/http"

	"student_intake/internal/model"
	"student_intake/internal/service"
	"student_intake/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginHandler handles both login flows
type LoginHandler struct {
	service  service.LoginService
	registry *service.RegistryService
	logger   *zap.Logger
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(s service.LoginService, registry *service.RegistryService, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{service: s, registry: registry, logger: logger}
}

func (h *LoginHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "Backend rodando",
		"endpoint_login": "/login",
		"observacao":     "Use POST /login com 'nome' e 'telefone'; POST /api/login com 'name' e 'phone' para o cadastro simples",
	})
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		switch {
		case utils.IsPhoneError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Número de telefone inválido: " + err.Error()})
		case errors.Is(err, service.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNameMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas. Nome de usuário incorreto."})
		case errors.Is(err, service.ErrDirectoryUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Base de dados de alunos não disponível no momento. Tente novamente mais tarde."})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      res.Outcome.Message(),
		"access_token": res.AccessToken,
		"token_type":   "bearer",
		"curso":        res.CourseResult,
	})
}

func (h *LoginHandler) RegistryLogin(c *gin.Context) {
	var req model.RegistryLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	student, created, err := h.registry.Login(req.Name, req.Phone)
	if err != nil {
		switch {
		case utils.IsPhoneError(err), errors.Is(err, service.ErrNameTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNameMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Número já cadastrado, mas o nome não corresponde."})
		default:
			h.logger.Error("registry login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}

	message := "Login realizado com sucesso."
	if created {
		message = "Novo aluno cadastrado com sucesso!"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "aluno": student})
}

// RegisterLoginRoutes registers login routes; mw runs before the login handlers only
func (h *LoginHandler) RegisterLoginRoutes(r gin.IRoutes, mw ...gin.HandlerFunc) {
	chain := func(last gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mw...), last)
	}
	r.GET("/", h.Root)
	r.POST("/login", chain(h.Login)...)
	r.POST("/api/login", chain(h.RegistryLogin)...)
}
