package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"student_intake/internal/metrics"
	"student_intake/internal/model"
	"student_intake/internal/repository"
	"student_intake/internal/utils"

	"go.uber.org/zap"
)

const minRegistryNameLength = 3

var ErrNameTooShort = errors.New("name must have at least 3 characters")

// RegistryService is the token-less login flow backed by the ephemeral registry
type RegistryService struct {
	validator *utils.PhoneValidator
	registry  *repository.Registry
	logger    *zap.Logger
}

// NewRegistryService creates a RegistryService
func NewRegistryService(validator *utils.PhoneValidator, registry *repository.Registry, logger *zap.Logger) *RegistryService {
	return &RegistryService{validator: validator, registry: registry, logger: logger}
}

// Login registers a first-seen phone or checks the name of a known one.
// created reports whether this call inserted the student.
func (s *RegistryService) Login(name, rawPhone string) (student model.RegisteredStudent, created bool, err error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minRegistryNameLength {
		return model.RegisteredStudent{}, false, ErrNameTooShort
	}

	phone, err := s.validator.Validate(rawPhone)
	if err != nil {
		metrics.LoginOutcomes.WithLabelValues("registry", "invalid_phone").Inc()
		return model.RegisteredStudent{}, false, err
	}

	student, created = s.registry.GetOrCreate(phone, name)
	if created {
		metrics.LoginOutcomes.WithLabelValues("registry", "registered").Inc()
		s.logger.Info("student registered", zap.String("phone", phone))
		return student, true, nil
	}

	if !sameName(student.Name, name) {
		metrics.LoginOutcomes.WithLabelValues("registry", "name_mismatch").Inc()
		return model.RegisteredStudent{}, false, ErrNameMismatch
	}

	metrics.LoginOutcomes.WithLabelValues("registry", "logged_in").Inc()
	return student, false, nil
}
