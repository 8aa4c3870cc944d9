package screening

import (
	"errors"
	"strings"
)

// Condition is the screening target selected for a Level-1 questionnaire.
type Condition string

const (
	ConditionADHD     Condition = "adhd"
	ConditionASD      Condition = "asd"
	ConditionDementia Condition = "dementia"
)

// ErrInvalidCondition is returned for a missing or unsupported condition.
var ErrInvalidCondition = errors.New("invalid or missing condition")

// Conditions lists the supported conditions in display order.
func Conditions() []Condition {
	return []Condition{ConditionADHD, ConditionASD, ConditionDementia}
}

// ParseCondition normalizes s and checks it against the supported set.
func ParseCondition(s string) (Condition, error) {
	c := Condition(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ConditionADHD, ConditionASD, ConditionDementia:
		return c, nil
	}
	return "", ErrInvalidCondition
}

// RiskLevel is the ordinal band a risk score falls into.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMild     RiskLevel = "mild"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Label returns the display string for the level.
func (l RiskLevel) Label() string {
	switch l {
	case RiskHigh:
		return "High Risk"
	case RiskModerate:
		return "Moderate Risk"
	case RiskMild:
		return "Mild Risk"
	default:
		return "Low Risk"
	}
}

// Result is the Level-1 scoring outcome.
type Result struct {
	RiskScore      float64   `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	RiskLabel      string    `json:"risk_label"`
	RequiresLevel2 bool      `json:"requires_level2"`
}
