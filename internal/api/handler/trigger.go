// Package handler wires the escalation pipeline behind the HTTP trigger.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/NeoNoir40/nissan-check-bot/internal/ai"
	"github.com/NeoNoir40/nissan-check-bot/internal/api/response"
	"github.com/NeoNoir40/nissan-check-bot/internal/cache"
	"github.com/NeoNoir40/nissan-check-bot/internal/risk"
	"github.com/NeoNoir40/nissan-check-bot/internal/store"
	"github.com/NeoNoir40/nissan-check-bot/internal/ws"
	"github.com/NeoNoir40/nissan-check-bot/pkg/models"
)

// eventAttendanceRecorded is the only inbound event the pipeline acts on.
const eventAttendanceRecorded = "ATTENDANCE_RECORDED"

// Escalator is the slice of the escalation service the handler depends on.
type Escalator interface {
	Escalate(ctx context.Context, req models.AnalysisContext) (models.AIResult, error)
}

type triggerRequest struct {
	Event   string         `json:"event"`
	Payload triggerPayload `json:"payload"`
}

type triggerPayload struct {
	EmpleadoID int64  `json:"empleado_id"`
	AreaID     int64  `json:"area_id"`
	Fecha      string `json:"fecha"`
}

type ignoredResponse struct {
	Ignored bool `json:"ignored"`
}

type basicResponse struct {
	AnalyzedBy string               `json:"analyzed_by"`
	Metrics    models.MetricsVector `json:"metrics"`
	Decision   models.Decision      `json:"decision"`
}

type aiResponse struct {
	AnalyzedBy string               `json:"analyzed_by"`
	AnalisisID uuid.UUID            `json:"analisis_id"`
	Empleado   models.Employee      `json:"empleado"`
	Metrics    models.MetricsVector `json:"metrics"`
	Decision   models.Decision      `json:"decision"`
	AIResult   models.AIResult      `json:"aiResult"`
}

// NewTriggerHandler returns the handler for POST /analytics/ws-trigger.
//
// Per triggering event the pipeline moves Received → Classified and either
// stops there (not escalated) or continues Escalating → Escalated →
// Recorded → Broadcast. The pipeline runs on a context detached from the
// request, so a dropped client does not abort persistence or broadcast.
// Two near-simultaneous events for one employee may both escalate and both
// persist; there is deliberately no cross-request dedup.
func NewTriggerHandler(st store.Store, ca cache.Cache, esc Escalator, hub ws.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req triggerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Event != eventAttendanceRecorded {
			response.Raw(w, ignoredResponse{Ignored: true})
			return
		}

		if req.Payload.EmpleadoID <= 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "empleado_id is required", nil)
			return
		}

		ctx := context.WithoutCancel(r.Context())

		empleado, err := lookupEmployee(ctx, st, ca, req.Payload.EmpleadoID)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "LOOKUP_MISS", "Employee not found",
				map[string]any{"empleado_id": req.Payload.EmpleadoID})
			return
		}
		if err != nil {
			slog.Error("employee lookup failed", "error", err, "empleado_id", req.Payload.EmpleadoID)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}

		metrics, err := st.GetMonthlyMetrics(ctx, req.Payload.EmpleadoID)
		if err != nil {
			slog.Error("metrics aggregation failed", "error", err, "empleado_id", req.Payload.EmpleadoID)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}

		decision := risk.Evaluate(metrics)

		if !decision.TriggerAI {
			response.Raw(w, basicResponse{
				AnalyzedBy: "basic-model",
				Metrics:    metrics,
				Decision:   decision,
			})
			return
		}

		aiResult, err := esc.Escalate(ctx, models.AnalysisContext{
			Empleado: *empleado,
			Fecha:    req.Payload.Fecha,
			Metrics:  metrics,
			Motivo:   decision.Reason,
		})
		if err != nil {
			writeEscalationError(w, err)
			return
		}

		analysis := buildAnalysis(empleado, aiResult)
		if err := st.CreateAnalysis(ctx, analysis); err != nil {
			// The AI result is discarded: a Notification without a persisted
			// id would be indistinguishable from a phantom escalation.
			slog.Error("analysis persistence failed", "error", err, "empleado_id", empleado.ID)
			response.Error(w, http.StatusInternalServerError, "PERSISTENCE_ERROR",
				"Analysis could not be stored", nil)
			return
		}

		hub.Broadcast(ws.EventNuevoAnalisis, models.Notification{
			AnalisisID:          analysis.ID,
			Empleado:            *empleado,
			Riesgo:              aiResult.Riesgo,
			Resumen:             aiResult.Resumen,
			PatronDetectado:     aiResult.PatronDetectado,
			AccionSugerida:      aiResult.AccionSugerida,
			RequiereSeguimiento: aiResult.RequiereSeguimiento,
			Metrics:             metrics,
			Fecha:               time.Now().UTC(),
		})

		response.Raw(w, aiResponse{
			AnalyzedBy: "ai-model",
			AnalisisID: analysis.ID,
			Empleado:   *empleado,
			Metrics:    metrics,
			Decision:   decision,
			AIResult:   aiResult,
		})
	}
}

// lookupEmployee serves the identity record from cache when fresh, hitting
// the store otherwise. Cache faults degrade to a store read.
func lookupEmployee(ctx context.Context, st store.Store, ca cache.Cache, empleadoID int64) (*models.Employee, error) {
	key := cache.EmployeeKey(empleadoID)

	if val, found, err := ca.Get(ctx, key); err == nil && found {
		var e models.Employee
		if err := json.Unmarshal(val, &e); err == nil {
			return &e, nil
		}
	}

	e, err := st.GetEmployee(ctx, empleadoID)
	if err != nil {
		return nil, err
	}

	if val, err := json.Marshal(e); err == nil {
		_ = ca.Set(ctx, key, val, cache.EmployeeTTL)
	}
	return e, nil
}

func buildAnalysis(empleado *models.Employee, result models.AIResult) *models.Analysis {
	a := &models.Analysis{
		ID:                  uuid.New(),
		EmpleadoID:          empleado.ID,
		EmpleadoNombre:      empleado.FullName(),
		Puesto:              empleado.Puesto,
		Riesgo:              result.Riesgo,
		Resumen:             result.Resumen,
		PatronDetectado:     result.PatronDetectado,
		AccionSugerida:      result.AccionSugerida,
		RequiereSeguimiento: result.RequiereSeguimiento,
	}
	if empleado.Area != nil {
		a.Area = &empleado.Area.Nombre
	}
	if empleado.Agencia != nil {
		a.Agencia = &empleado.Agencia.Nombre
	}
	return a
}

func writeEscalationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ai.ErrInvalidResponse):
		response.Error(w, http.StatusBadGateway, "AI_INVALID_RESPONSE",
			"The AI reply failed validation and cannot be trusted", nil)
	case errors.Is(err, ai.ErrInferenceTimeout):
		response.Error(w, http.StatusGatewayTimeout, "AI_INFERENCE_TIMEOUT",
			"AI analysis took too long and was cancelled", nil)
	case errors.Is(err, ai.ErrProviderUnavailable):
		response.Error(w, http.StatusBadGateway, "AI_PROVIDER_UNAVAILABLE",
			"The AI provider is not available", nil)
	default:
		slog.Error("escalation failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
