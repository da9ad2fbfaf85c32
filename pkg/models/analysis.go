package models

import (
	"time"

	"github.com/google/uuid"
)

// AIResult is the validated structured reply of the reasoning service.
// Produced only on escalation; immutable once persisted.
type AIResult struct {
	Riesgo              RiskLevel `json:"riesgo"`
	Resumen             string    `json:"resumen"`
	PatronDetectado     string    `json:"patron_detectado"`
	AccionSugerida      string    `json:"accion_sugerida"`
	RequiereSeguimiento bool      `json:"requiere_seguimiento"`
}

// Analysis is one durable escalation record. Employee fields are a snapshot
// taken at write time, so later employee edits never alter historical rows.
type Analysis struct {
	ID                  uuid.UUID `db:"id"                   json:"id"`
	EmpleadoID          int64     `db:"empleado_id"          json:"empleado_id"`
	EmpleadoNombre      string    `db:"empleado_nombre"      json:"empleado_nombre"`
	Puesto              *string   `db:"puesto"               json:"puesto,omitempty"`
	Area                *string   `db:"area"                 json:"area,omitempty"`
	Agencia             *string   `db:"agencia"              json:"agencia,omitempty"`
	Riesgo              RiskLevel `db:"riesgo"               json:"riesgo"`
	Resumen             string    `db:"resumen"              json:"resumen"`
	PatronDetectado     string    `db:"patron_detectado"     json:"patron_detectado"`
	AccionSugerida      string    `db:"accion_sugerida"      json:"accion_sugerida"`
	RequiereSeguimiento bool      `db:"requiere_seguimiento" json:"requiere_seguimiento"`
	AnalizadoEn         time.Time `db:"analizado_en"         json:"analizado_en"`
	CreatedAt           time.Time `db:"created_at"           json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"           json:"updated_at"`
}
