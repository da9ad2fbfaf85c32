package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/NeoNoir40/nissan-check-bot/internal/ai"
	"github.com/NeoNoir40/nissan-check-bot/internal/ai/mock"
	"github.com/NeoNoir40/nissan-check-bot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_ReplyIsValid(t *testing.T) {
	p := mock.NewProvider()
	raw, err := p.Analyze(context.Background(), models.AnalysisContext{})
	require.NoError(t, err)

	result, err := ai.ParseResult(raw)
	require.NoError(t, err)
	assert.Equal(t, models.RiskAlto, result.Riesgo)
}

func TestNewFailingProvider(t *testing.T) {
	want := errors.New("boom")
	p := mock.NewFailingProvider(want)

	_, err := p.Analyze(context.Background(), models.AnalysisContext{})
	assert.ErrorIs(t, err, want)
	assert.Equal(t, "mock-failing", p.Name())
}
