// Package screening scores Level-1 questionnaires.
package screening

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Band thresholds are inclusive lower bounds on the 0-100 risk score.
const (
	HighThreshold     = 75.0
	ModerateThreshold = 55.0
	MildThreshold     = 35.0

	// Level2Threshold gates the game-based assessment.
	Level2Threshold = ModerateThreshold

	likertMax = 5.0
)

// Classify maps questionnaire features to a risk score, band and gating flag.
// Answers are 1-5 Likert values where higher means higher risk.
func Classify(condition string, features map[string]any) (Result, error) {
	if _, err := ParseCondition(condition); err != nil {
		return Result{}, err
	}

	values := NumericFeatures(features)
	score := 0.0
	if len(values) > 0 {
		var sum float64
		for _, v := range values {
			sum += v
		}
		avg := sum / float64(len(values))
		score = round1(clamp(avg/likertMax*100, 0, 100))
	}

	// Bands and gating read the rounded score, so a stored record always
	// satisfies level == LevelFor(RiskScore) and RequiresLevel2 == RiskScore >= 55.
	level := LevelFor(score)
	return Result{
		RiskScore:      score,
		RiskLevel:      level,
		RiskLabel:      level.Label(),
		RequiresLevel2: score >= Level2Threshold,
	}, nil
}

// LevelFor returns the band for a 0-100 score.
func LevelFor(score float64) RiskLevel {
	switch {
	case score >= HighThreshold:
		return RiskHigh
	case score >= ModerateThreshold:
		return RiskModerate
	case score >= MildThreshold:
		return RiskMild
	default:
		return RiskLow
	}
}

// NumericFeatures returns the values that take part in scoring. The "age"
// key, booleans and strings that are not plain decimals are skipped.
func NumericFeatures(features map[string]any) []float64 {
	out := make([]float64, 0, len(features))
	for k, v := range features {
		if k == "age" {
			continue
		}
		if f, ok := numeric(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		if !isDecimal(n) {
			return 0, false
		}
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// isDecimal accepts unsigned digit strings with at most one dot.
func isDecimal(s string) bool {
	digits := strings.Replace(s, ".", "", 1)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
