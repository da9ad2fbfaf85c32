package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NeoNoir40/nissan-check-bot/pkg/models"
)

// rawResult mirrors the reply contract of the reasoning service. Pointer
// fields distinguish "absent" from zero values so missing keys fail
// validation instead of defaulting.
type rawResult struct {
	Riesgo              *string `json:"riesgo"`
	Resumen             *string `json:"resumen"`
	PatronDetectado     *string `json:"patron_detectado"`
	AccionSugerida      *string `json:"accion_sugerida"`
	RequiereSeguimiento *bool   `json:"requiere_seguimiento"`
}

// ParseResult validates and normalizes a raw reasoning-service reply into a
// typed result. The reply may arrive wrapped in a markdown code fence. Any
// structural mismatch — malformed JSON, missing key, unknown key, or an
// out-of-enum riesgo — yields ErrInvalidResponse; there is no best-effort
// coercion.
func ParseResult(raw string) (models.AIResult, error) {
	cleaned := stripFences(raw)

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.DisallowUnknownFields()

	var r rawResult
	if err := dec.Decode(&r); err != nil {
		return models.AIResult{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	switch {
	case r.Riesgo == nil:
		return models.AIResult{}, fmt.Errorf("%w: missing key riesgo", ErrInvalidResponse)
	case r.Resumen == nil:
		return models.AIResult{}, fmt.Errorf("%w: missing key resumen", ErrInvalidResponse)
	case r.PatronDetectado == nil:
		return models.AIResult{}, fmt.Errorf("%w: missing key patron_detectado", ErrInvalidResponse)
	case r.AccionSugerida == nil:
		return models.AIResult{}, fmt.Errorf("%w: missing key accion_sugerida", ErrInvalidResponse)
	case r.RequiereSeguimiento == nil:
		return models.AIResult{}, fmt.Errorf("%w: missing key requiere_seguimiento", ErrInvalidResponse)
	}

	if !models.ValidRiskLevel(*r.Riesgo) {
		return models.AIResult{}, fmt.Errorf("%w: riesgo %q is not a known level", ErrInvalidResponse, *r.Riesgo)
	}

	return models.AIResult{
		Riesgo:              models.RiskLevel(*r.Riesgo),
		Resumen:             *r.Resumen,
		PatronDetectado:     *r.PatronDetectado,
		AccionSugerida:      *r.AccionSugerida,
		RequiereSeguimiento: *r.RequiereSeguimiento,
	}, nil
}

// stripFences removes a surrounding markdown code fence (```json ... ```)
// that models occasionally add around the JSON body.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
