package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the real-time payload emitted after an analysis row is
// written. Ephemeral: it exists only for the duration of the broadcast and
// borrows every field it carries.
type Notification struct {
	AnalisisID          uuid.UUID     `json:"analisis_id"`
	Empleado            Employee      `json:"empleado"`
	Riesgo              RiskLevel     `json:"riesgo"`
	Resumen             string        `json:"resumen"`
	PatronDetectado     string        `json:"patron_detectado"`
	AccionSugerida      string        `json:"accion_sugerida"`
	RequiereSeguimiento bool          `json:"requiere_seguimiento"`
	Metrics             MetricsVector `json:"metrics"`
	Fecha               time.Time     `json:"fecha"`
}
