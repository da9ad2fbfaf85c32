// Package risk implements the deterministic first-pass triage of an
// employee's monthly attendance metrics. It filters low-risk cases locally
// so the costly reasoning-service call is reserved for genuine anomalies.
package risk

import "github.com/NeoNoir40/nissan-check-bot/pkg/models"

// Reason strings are fixed per rule. They deliberately do not echo exact
// counts, so threshold values never leak into user-facing text.
const (
	reasonCritico = "8+ faltas injustificadas en el último mes"
	reasonAlto    = "Patrón elevado de ausentismo en el mes"
	reasonMedio   = "Ausentismo que requiere atención"
	reasonBajo    = "Comportamiento de asistencia dentro de parámetros normales"
)

// rule is one entry in the ordered policy table. Conditions overlap between
// rules; precedence comes solely from evaluation order, first match wins.
// Do not refactor into independent boolean flags.
type rule struct {
	match  func(m models.MetricsVector) bool
	level  models.RiskLevel
	reason string
}

var rules = []rule{
	{
		match:  func(m models.MetricsVector) bool { return m.Faltas30d >= 8 },
		level:  models.RiskCritico,
		reason: reasonCritico,
	},
	{
		match: func(m models.MetricsVector) bool {
			return m.Faltas30d >= 5 || (m.Faltas30d >= 3 && m.JustificacionesRechazadas >= 2)
		},
		level:  models.RiskAlto,
		reason: reasonAlto,
	},
	{
		match: func(m models.MetricsVector) bool {
			return m.Faltas30d >= 3 || (m.Faltas30d >= 2 && m.JustificacionesPendientes >= 2)
		},
		level:  models.RiskMedio,
		reason: reasonMedio,
	},
}

// Evaluate maps a metrics vector to a risk decision. Pure and total: every
// input yields exactly one Decision, and escalation triggers for any level
// above bajo.
func Evaluate(m models.MetricsVector) models.Decision {
	for _, r := range rules {
		if r.match(m) {
			return models.Decision{Level: r.level, TriggerAI: true, Reason: r.reason}
		}
	}
	return models.Decision{Level: models.RiskBajo, TriggerAI: false, Reason: reasonBajo}
}
