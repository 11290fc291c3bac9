package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"student_intake/internal/metrics"
	"student_intake/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameMismatch = errors.New("invalid credentials: name does not match the registered phone")
)

// LoginOutcome names the terminal success states of the login flow
type LoginOutcome string

const (
	OutcomeNewRegistration        LoginOutcome = "new_registration"
	OutcomeProceedToQuestionnaire LoginOutcome = "proceed_to_questionnaire"
	OutcomeResultFound            LoginOutcome = "result_found"
)

// Message returns the user-facing message for the outcome
func (o LoginOutcome) Message() string {
	switch o {
	case OutcomeResultFound:
		return "Login realizado e resultado encontrado!"
	default:
		return "Cadastro inicial realizado. Prossiga para o questionário."
	}
}

// LoginResult is returned on every successful login
type LoginResult struct {
	Outcome      LoginOutcome
	Phone        string // canonical
	Name         string
	AccessToken  string
	CourseResult *string
}

// LoginService authenticates students against the roster
type LoginService interface {
	Login(ctx context.Context, name, rawPhone string) (*LoginResult, error)
}

type loginService struct {
	validator *utils.PhoneValidator
	jwtUtil   *utils.JWTUtil
	directory Directory
	logger    *zap.Logger
}

// NewLoginService creates a new LoginService
func NewLoginService(validator *utils.PhoneValidator, jwtUtil *utils.JWTUtil, directory Directory, logger *zap.Logger) LoginService {
	return &loginService{
		validator: validator,
		jwtUtil:   jwtUtil,
		directory: directory,
		logger:    logger,
	}
}

// Login validates the phone, mints a token and classifies the student
func (s *loginService) Login(ctx context.Context, name, rawPhone string) (*LoginResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	phone, err := s.validator.Validate(rawPhone)
	if err != nil {
		s.record("invalid_phone")
		return nil, err
	}

	// Every valid phone gets a token, whatever the roster says
	token, err := s.jwtUtil.Issue(phone, name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	student, err := s.directory.Lookup(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrDirectoryUnavailable) {
			s.record("unavailable")
			s.logger.Warn("login rejected, directory unavailable", zap.String("phone", phone))
		}
		return nil, err
	}

	result := &LoginResult{Phone: phone, Name: name, AccessToken: token}

	if student == nil {
		result.Outcome = OutcomeNewRegistration
		s.record(string(result.Outcome))
		return result, nil
	}

	if !sameName(student.Name, name) {
		s.record("name_mismatch")
		s.logger.Info("login name mismatch", zap.String("phone", phone))
		return nil, ErrNameMismatch
	}

	if student.HasResult() {
		course := strings.TrimSpace(*student.CourseResult)
		result.Outcome = OutcomeResultFound
		result.CourseResult = &course
	} else {
		result.Outcome = OutcomeProceedToQuestionnaire
	}
	s.record(string(result.Outcome))
	return result, nil
}

func (s *loginService) record(outcome string) {
	metrics.LoginOutcomes.WithLabelValues("roster", outcome).Inc()
}

// sameName compares names after trimming and case folding
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
