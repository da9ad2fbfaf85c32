package store

import (
	"context"
	"errors"

	"github.com/NeoNoir40/nissan-check-bot/pkg/models"
)

var ErrNotFound = errors.New("resource not found")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	// GetEmployee returns the identity record for one employee, with nil
	// Puesto/Area/Agencia when the relation is missing. ErrNotFound when no
	// such employee exists.
	GetEmployee(ctx context.Context, empleadoID int64) (*models.Employee, error)

	// GetMonthlyMetrics aggregates attendance and justification counters for
	// the current calendar month. Always returns a full vector; counters
	// with no matching rows are zero.
	GetMonthlyMetrics(ctx context.Context, empleadoID int64) (models.MetricsVector, error)

	// CreateAnalysis persists one escalation record and fills in the
	// server-assigned timestamps.
	CreateAnalysis(ctx context.Context, a *models.Analysis) error
}
