// Package ai orchestrates the escalation to the external reasoning service
// and owns validation of its replies.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeoNoir40/nissan-check-bot/pkg/models"
)

// Service wraps an injected AIProvider with a time budget and strict reply
// validation. One Service is constructed at startup and shared by all
// requests; it holds no per-request state.
type Service struct {
	provider models.AIProvider
	timeout  time.Duration
}

// NewService creates a new escalation Service.
func NewService(provider models.AIProvider, timeout time.Duration) *Service {
	return &Service{provider: provider, timeout: timeout}
}

// Name returns the underlying provider identifier.
func (s *Service) Name() string {
	return s.provider.Name()
}

// Escalate sends the analysis context to the reasoning service and validates
// its structured reply. Failures map onto the package sentinels: expiry of
// the time budget becomes ErrInferenceTimeout, transport failures become
// ErrProviderUnavailable, and any structural mismatch in the reply becomes
// ErrInvalidResponse. No side effects beyond the outbound call.
func (s *Service) Escalate(ctx context.Context, req models.AnalysisContext) (models.AIResult, error) {
	inferCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Analyze(inferCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return models.AIResult{}, fmt.Errorf("%w after %s: %v", ErrInferenceTimeout, s.timeout, err)
		}
		return models.AIResult{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	result, err := ParseResult(raw)
	if err != nil {
		return models.AIResult{}, err
	}
	return result, nil
}
