package models

import "context"

// AIProvider is the interface every reasoning-service integration must
// implement. Never call a specific provider directly — always inject this
// interface. Analyze returns the raw model reply; structural validation is
// owned by the escalation service, not the transport.
type AIProvider interface {
	Analyze(ctx context.Context, req AnalysisContext) (string, error)
	// Name returns the provider identifier (e.g., "openai").
	Name() string
}

// AnalysisContext is the serialized input handed to the reasoning service
// when a decision escalates.
type AnalysisContext struct {
	Empleado Employee      `json:"empleado"`
	Fecha    string        `json:"fecha"`
	Metrics  MetricsVector `json:"metrics"`
	Motivo   string        `json:"motivo"`
}
