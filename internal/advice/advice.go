// Package advice derives Level-3 guidance from the latest Level-2 result.
package advice

import (
	"fmt"
	"strings"

	"github.com/cogniwise/cogniwise/internal/store"
)

// UrgentThreshold is the Level-2 percentage above which a specialist
// should be consulted immediately.
const UrgentThreshold = 75.0

// Template is condition framing keyed by age group.
type Template struct {
	Title   string
	Message string
}

var templates = map[string]Template{
	"child": {
		Title:   "Autism Spectrum Disorder (ASD) Indicators",
		Message: "High probability of social communication and restricted repetitive variations.",
	},
	"adult": {
		Title:   "ADHD & Executive Function Indicators",
		Message: "Significant variations in attention, focus, and impulse control detected.",
	},
	"elderly": {
		Title:   "Dementia & Cognitive Decline Indicators",
		Message: "Detected decline in memory, orientation, or problem-solving capabilities.",
	},
}

var genericTemplate = Template{
	Title:   "Cognitive Health Alert",
	Message: "Anomalies detected in cognitive assessment.",
}

// TemplateFor returns the framing for ageGroup, or the generic alert.
func TemplateFor(ageGroup string) Template {
	if t, ok := templates[strings.ToLower(ageGroup)]; ok {
		return t
	}
	return genericTemplate
}

// Urgency is the escalation tier shown with the advice.
type Urgency struct {
	Action string
	Color  string
}

var (
	UrgencyImmediate = Urgency{Action: "Consult a specialist immediately.", Color: "red"}
	UrgencySoon      = Urgency{Action: "Schedule a check-up within 7 days.", Color: "orange"}
)

// UrgencyFor maps a risk percentage to its tier.
func UrgencyFor(riskPercent float64) Urgency {
	if riskPercent > UrgentThreshold {
		return UrgencyImmediate
	}
	return UrgencySoon
}

// Advice is the rendered Level-3 guidance.
type Advice struct {
	ConditionTitle  string  `json:"condition_title"`
	ConditionMsg    string  `json:"condition_msg"`
	ImmediateAction string  `json:"immediate_action"`
	Explanation     string  `json:"explanation"`
	ColorCode       string  `json:"color_code"`
	AdminNotes      *string `json:"admin_notes"`
}

// Summary is the read-only Level-3 view of a subject.
type Summary struct {
	RiskScore float64 `json:"risk_score"`
	AgeGroup  string  `json:"age_group"`
	Advice    Advice  `json:"advice"`
	ResultID  int64   `json:"resultId"`
}

// Derive renders guidance for the latest Level-2 result. latestL1 is
// optional and only contributes its reviewer annotation.
func Derive(latestL2 *store.Level2Record, latestL1 *store.AssessmentRecord) Summary {
	risk := latestL2.FinalRiskPercent
	tmpl := TemplateFor(latestL2.AgeGroup)
	urg := UrgencyFor(risk)

	var notes *string
	if latestL1 != nil && latestL1.AdminNotes != "" {
		n := latestL1.AdminNotes
		notes = &n
	}

	return Summary{
		RiskScore: risk,
		AgeGroup:  latestL2.AgeGroup,
		ResultID:  latestL2.ID,
		Advice: Advice{
			ConditionTitle:  tmpl.Title,
			ConditionMsg:    tmpl.Message,
			ImmediateAction: urg.Action,
			Explanation:     fmt.Sprintf("Your assessment indicates a %.1f%% risk level, which is significant.", risk),
			ColorCode:       urg.Color,
			AdminNotes:      notes,
		},
	}
}
