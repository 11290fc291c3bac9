package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"student_intake/internal/metrics"
	"student_intake/internal/model"
	"student_intake/internal/repository"
	"student_intake/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized     = errors.New("invalid or expired token")
	ErrIdentityMismatch = errors.New("token phone does not match the submitted phone")
)

// SubmissionService accepts questionnaire results and hands them to the export job
type SubmissionService interface {
	Submit(ctx context.Context, token utils.TokenResult, req model.SubmitResultsRequest) (*model.PendingSubmission, error)
	Drain(ctx context.Context) ([]model.PendingSubmission, error)
}

type submissionService struct {
	store     repository.PendingStore
	validator *utils.PhoneValidator
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(store repository.PendingStore, validator *utils.PhoneValidator, logger *zap.Logger) SubmissionService {
	return &submissionService{store: store, validator: validator, logger: logger, now: time.Now}
}

// Submit checks that the token owns the submitted phone and queues the result
func (s *submissionService) Submit(ctx context.Context, token utils.TokenResult, req model.SubmitResultsRequest) (*model.PendingSubmission, error) {
	if !token.Valid() {
		return nil, ErrUnauthorized
	}
	if token.Subject == "" {
		return nil, fmt.Errorf("%w: subject missing", ErrUnauthorized)
	}
	if !s.ownsPhone(token.Subject, req.Phone) {
		s.logger.Warn("submission identity mismatch", zap.String("subject", token.Subject))
		return nil, ErrIdentityMismatch
	}

	sub := model.PendingSubmission{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		PhoneID:        token.Subject,
		IdentifiedArea: strings.TrimSpace(req.RecommendedArea),
		Email:          strings.TrimSpace(req.Email),
		Timestamp:      s.now().UTC(),
	}
	if err := s.store.Append(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to queue submission: %w", err)
	}

	metrics.SubmissionsAccepted.Inc()
	return &sub, nil
}

// Drain returns and clears every pending submission
func (s *submissionService) Drain(ctx context.Context) ([]model.PendingSubmission, error) {
	batch, err := s.store.Drain(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SubmissionsDrained.Add(float64(len(batch)))
	s.logger.Info("pending submissions collected and cleared", zap.Int("count", len(batch)))
	return batch, nil
}

// ownsPhone matches the token subject against the body phone, either verbatim
// or after normalization to the canonical form.
func (s *submissionService) ownsPhone(subject, bodyPhone string) bool {
	bodyPhone = strings.TrimSpace(bodyPhone)
	if bodyPhone == subject {
		return true
	}
	if s.validator == nil {
		return false
	}
	canonical, err := s.validator.Validate(bodyPhone)
	return err == nil && canonical == subject
}
