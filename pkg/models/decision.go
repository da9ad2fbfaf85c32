package models

// RiskLevel is the ordered absenteeism severity category
// (bajo < medio < alto < critico).
type RiskLevel string

const (
	RiskBajo    RiskLevel = "bajo"
	RiskMedio   RiskLevel = "medio"
	RiskAlto    RiskLevel = "alto"
	RiskCritico RiskLevel = "critico"
)

// ValidRiskLevel reports whether s is one of the four known levels.
func ValidRiskLevel(s string) bool {
	switch RiskLevel(s) {
	case RiskBajo, RiskMedio, RiskAlto, RiskCritico:
		return true
	}
	return false
}

// Decision is the output of the rule classifier. TriggerAI is true exactly
// when Level is above bajo; Level and Reason are fully determined by the
// metrics vector.
type Decision struct {
	Level     RiskLevel `json:"level"`
	TriggerAI bool      `json:"triggerAI"`
	Reason    string    `json:"reason"`
}
