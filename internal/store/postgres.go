package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeoNoir40/nissan-check-bot/pkg/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Employees ---

func (s *PostgresStore) GetEmployee(ctx context.Context, empleadoID int64) (*models.Employee, error) {
	var (
		e             models.Employee
		areaID        *int64
		areaNombre    *string
		agenciaID     *int64
		agenciaNombre *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT e.id, e.nombre, e.apellido, u.puesto,
		        a.id, a.nombre, ag.id, ag.nombre
		 FROM empleados e
		 LEFT JOIN areas a ON e.area_id = a.id
		 LEFT JOIN agencias ag ON e.agencia_id = ag.id
		 LEFT JOIN users u ON u.empleado_id = e.id
		 WHERE e.id = $1`, empleadoID,
	).Scan(&e.ID, &e.Nombre, &e.Apellido, &e.Puesto,
		&areaID, &areaNombre, &agenciaID, &agenciaNombre)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	if areaID != nil && areaNombre != nil {
		e.Area = &models.OrgUnit{ID: *areaID, Nombre: *areaNombre}
	}
	if agenciaID != nil && agenciaNombre != nil {
		e.Agencia = &models.OrgUnit{ID: *agenciaID, Nombre: *agenciaNombre}
	}
	return &e, nil
}

// --- Monthly metrics ---

// GetMonthlyMetrics counts unexcused absence days and justification states
// for the current calendar month. A day counts as a falta when it has no
// attendance row and no approved justification.
func (s *PostgresStore) GetMonthlyMetrics(ctx context.Context, empleadoID int64) (models.MetricsVector, error) {
	var m models.MetricsVector

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM (
		   SELECT d::date AS fecha
		   FROM generate_series(
		     DATE_TRUNC('month', CURRENT_DATE),
		     CURRENT_DATE,
		     '1 day'
		   ) d
		 ) f
		 LEFT JOIN empleados_asistencias ea
		   ON ea.empleado_id = $1 AND ea.fecha = f.fecha
		 LEFT JOIN empleados_asistencias_justificacions j
		   ON j.empleado_id = $1
		   AND j.fecha = f.fecha
		   AND j.estado = 'aprobada'
		 WHERE ea.id IS NULL AND j.id IS NULL`, empleadoID,
	).Scan(&m.Faltas30d)
	if err != nil {
		return models.MetricsVector{}, fmt.Errorf("count absences: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE estado = 'pendiente'),
		   COUNT(*) FILTER (WHERE estado = 'aprobada'),
		   COUNT(*) FILTER (WHERE estado = 'rechazada'),
		   COUNT(*) FILTER (WHERE tipo = 'enfermedad'),
		   COUNT(*) FILTER (WHERE tipo = 'permiso_personal')
		 FROM empleados_asistencias_justificacions
		 WHERE empleado_id = $1
		   AND fecha >= DATE_TRUNC('month', CURRENT_DATE)`, empleadoID,
	).Scan(&m.JustificacionesPendientes, &m.JustificacionesAprobadas,
		&m.JustificacionesRechazadas, &m.JustificacionesPorEnfermedad,
		&m.JustificacionesPorPermiso)
	if err != nil {
		return models.MetricsVector{}, fmt.Errorf("count justifications: %w", err)
	}

	return m, nil
}

// --- Analyses ---

// CreateAnalysis writes one escalation row. Timestamps are assigned by the
// database; the caller's struct is updated with them on success.
func (s *PostgresStore) CreateAnalysis(ctx context.Context, a *models.Analysis) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO analisis_asistencias (
		   id, empleado_id, empleado_nombre, puesto, area, agencia,
		   riesgo, resumen, patron_detectado, accion_sugerida,
		   requiere_seguimiento, analizado_en, created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW(), NOW())
		 RETURNING analizado_en, created_at, updated_at`,
		a.ID, a.EmpleadoID, a.EmpleadoNombre, a.Puesto, a.Area, a.Agencia,
		a.Riesgo, a.Resumen, a.PatronDetectado, a.AccionSugerida,
		a.RequiereSeguimiento,
	).Scan(&a.AnalizadoEn, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create analysis: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
