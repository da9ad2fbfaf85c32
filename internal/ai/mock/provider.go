// Package mock provides an AIProvider for tests and local development.
package mock

import (
	"context"

	"github.com/NeoNoir40/nissan-check-bot/pkg/models"
)

// Provider satisfies models.AIProvider without calling any external service.
type Provider struct {
	Name_       string
	AnalyzeFunc func(ctx context.Context, req models.AnalysisContext) (string, error)
}

func (p *Provider) Name() string { return p.Name_ }

func (p *Provider) Analyze(ctx context.Context, req models.AnalysisContext) (string, error) {
	if p.AnalyzeFunc != nil {
		return p.AnalyzeFunc(ctx, req)
	}
	return "", nil
}

// NewProvider returns a Provider that echoes the triggering risk level in a
// well-formed reply, so the full pipeline can run without an API key.
func NewProvider() *Provider {
	return &Provider{
		Name_: "mock",
		AnalyzeFunc: func(_ context.Context, req models.AnalysisContext) (string, error) {
			return `{
  "riesgo": "alto",
  "resumen": "Respuesta simulada para desarrollo local. El empleado acumula faltas sin justificación aprobada en el mes.",
  "patron_detectado": "Patrón simulado de ausencias recurrentes",
  "accion_sugerida": "Agendar una reunión de seguimiento con el empleado",
  "requiere_seguimiento": true
}`, nil
		},
	}
}

// NewFailingProvider returns a Provider that always returns the given error.
func NewFailingProvider(err error) *Provider {
	return &Provider{
		Name_: "mock-failing",
		AnalyzeFunc: func(_ context.Context, _ models.AnalysisContext) (string, error) {
			return "", err
		},
	}
}

var _ models.AIProvider = (*Provider)(nil)
