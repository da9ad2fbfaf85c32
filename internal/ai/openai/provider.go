// Package openai implements the reasoning-service provider against the
// OpenAI chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/NeoNoir40/nissan-check-bot/internal/config"
	"github.com/NeoNoir40/nissan-check-bot/pkg/models"
)

// systemPrompt is fixed and never derived from request input. It instructs
// the model to reason as an HR absenteeism analyst over the last 30 days
// only, treating approved justifications as the only ones that absolve an
// absence, and to answer with the exact five-key JSON contract.
const systemPrompt = `Eres un analista senior de Recursos Humanos especializado en ausentismo laboral.

CONTEXTO DEL SISTEMA:
- Sistema de control de asistencia con check-in diario
- Las faltas se registran cuando NO hay asistencia Y NO hay justificación aprobada
- Las justificaciones pueden ser: enfermedad, permiso_personal, cita_medica, etc.
- Estados de justificación: pendiente, aprobada, rechazada
- Solo las justificaciones aprobadas anulan una falta

TU MISIÓN:
Analizar el patrón de ausentismo del empleado en el ÚLTIMO MES (30 días) y determinar:
1. Nivel de riesgo (bajo, medio, alto, crítico)
2. Patrones preocupantes o normales en su comportamiento
3. Acción específica recomendada para RRHH

DATOS QUE RECIBIRÁS (TODOS DEL ÚLTIMO MES):
- Información del empleado (nombre, puesto, área)
- Faltas del mes (sin justificación aprobada)
- Justificaciones pendientes, aprobadas y rechazadas
- Clasificación de justificaciones (enfermedad vs permiso personal)
- Motivo por el cual se activó este análisis

RESPONDE EN JSON CON ESTA ESTRUCTURA EXACTA:
{
  "riesgo": "bajo|medio|alto|critico",
  "resumen": "Análisis conciso del patrón de ausentismo del mes (2-3 oraciones)",
  "patron_detectado": "Descripción del patrón identificado en el mes",
  "accion_sugerida": "Acción específica y práctica para el equipo de RRHH",
  "requiere_seguimiento": true|false
}`

// Provider implements models.AIProvider using the OpenAI API. The HTTP
// client carries no timeout of its own; the caller bounds each request
// through its context.
type Provider struct {
	cfg        config.OpenAIConfig
	httpClient *http.Client
}

func NewProvider(cfg config.OpenAIConfig) *Provider {
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

func (p *Provider) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze serializes the analysis context as the user message and returns
// the raw model reply. Validation of the reply belongs to the caller.
func (p *Provider) Analyze(ctx context.Context, req models.AnalysisContext) (string, error) {
	userMsg, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis context: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model:          p.cfg.Model,
		Temperature:    0.2,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(userMsg)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := p.cfg.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read openai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error %d: %s", resp.StatusCode, string(respBody))
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("parse openai response: %w", err)
	}

	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}

	return cr.Choices[0].Message.Content, nil
}

var _ models.AIProvider = (*Provider)(nil)
