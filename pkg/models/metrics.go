// Package models contains shared data models used across the attendance
// analytics codebase.
package models

// MetricsVector summarizes one employee's attendance and justification
// counters for the current calendar month. It is built once per evaluation
// and read-only afterwards. All counters are coerced to zero when the
// aggregation finds nothing; none may be null on the wire.
type MetricsVector struct {
	Faltas30d                    int `json:"faltas_30d"`
	JustificacionesPendientes    int `json:"justificaciones_pendientes"`
	JustificacionesAprobadas     int `json:"justificaciones_aprobadas"`
	JustificacionesRechazadas    int `json:"justificaciones_rechazadas"`
	JustificacionesPorEnfermedad int `json:"justificaciones_por_enfermedad"`
	JustificacionesPorPermiso    int `json:"justificaciones_por_permiso"`
}
