package telemetry

import (
	"errors"
	"fmt"
	"math"
)

// DomainWeight is one slot of an age group's three-domain aggregate.
type DomainWeight struct {
	Domain string
	Weight float64
}

var realWeights = map[AgeGroup][]DomainWeight{
	Child:   {{"social_attention", 0.4}, {"emotion_recognition", 0.3}, {"sensory_motor", 0.3}},
	Adult:   {{"attention_focus", 0.35}, {"working_memory", 0.35}, {"inhibition_control", 0.3}},
	Elderly: {{"memory_recall", 0.4}, {"visuospatial", 0.3}, {"hazard_awareness", 0.3}},
}

var syntheticWeights = map[AgeGroup][]DomainWeight{
	Child:   {{"social_attention", 0.4}, {"emotion_understanding", 0.3}, {"sensory_processing", 0.3}},
	Adult:   {{"attention_regulation", 0.35}, {"inhibitory_control", 0.35}, {"executive_function", 0.3}},
	Elderly: {{"memory_recall", 0.4}, {"visuospatial", 0.3}, {"processing_speed", 0.3}},
}

// Weights returns the ordered domain weights for group and source.
func Weights(group AgeGroup, source Source) ([]DomainWeight, error) {
	table := realWeights
	if source == SourceSynthetic {
		table = syntheticWeights
	}
	w, ok := table[group]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAgeGroup, group)
	}
	return append([]DomainWeight(nil), w...), nil
}

// DomainScore is a single domain risk in [0,1], rounded to 2 decimals.
type DomainScore struct {
	Domain string  `json:"domain"`
	Risk   float64 `json:"risk"`
	Weight float64 `json:"weight"`
}

// Result is the Level-2 score for one submission.
type Result struct {
	AgeGroup         AgeGroup      `json:"age_group"`
	Source           Source        `json:"source"`
	Domains          []DomainScore `json:"domains"`
	FinalRiskScore   float64       `json:"final_risk_score"`
	FinalRiskPercent float64       `json:"final_risk_percent"`
}

// DomainScores returns the domain risks keyed by domain name.
func (r Result) DomainScores() map[string]float64 {
	out := make(map[string]float64, len(r.Domains))
	for _, d := range r.Domains {
		out[d.Domain] = d.Risk
	}
	return out
}

// Score converts m into per-domain risks and a weighted aggregate for
// group. Domain risks are rounded before weighting.
func Score(group AgeGroup, m Metrics) (Result, error) {
	if m == nil {
		return Result{}, errors.New("telemetry: nil metrics")
	}
	weights, err := Weights(group, m.Source())
	if err != nil {
		return Result{}, err
	}
	if tg, ok := telemetryGroup(m); ok && tg != group {
		return Result{}, fmt.Errorf("%w: got %s telemetry for %s", ErrTelemetryMismatch, tg, group)
	}

	risks := domainRisks(m)
	res := Result{AgeGroup: group, Source: m.Source(), Domains: make([]DomainScore, len(weights))}
	var sum float64
	for i, w := range weights {
		r := round2(clamp01(risks[i]))
		res.Domains[i] = DomainScore{Domain: w.Domain, Risk: r, Weight: w.Weight}
		sum += r * w.Weight
	}
	final := clamp01(sum)
	res.FinalRiskScore = round2(final)
	res.FinalRiskPercent = round1(final * 100)
	return res, nil
}

func domainRisks(m Metrics) [3]float64 {
	switch v := m.(type) {
	case GameScores:
		return [3]float64{1 - v.Game1, 1 - v.Game2, 1 - v.Game3}
	case ChildTelemetry:
		return [3]float64{
			1 - math.Min(1, v.FixationFacePct/0.6),
			1 - v.EmotionAccuracy,
			math.Min(1, float64(v.SensoryOverloadStops)/10),
		}
	case AdultTelemetry:
		return [3]float64{
			(v.RTVariability - 50) / 150,
			v.AntiSaccadeErrorRate,
			(math.Min(1, v.ExecutiveTaskSwitchingCost/1000) + v.DistractionFixationPct) / 2,
		}
	case ElderlyTelemetry:
		return [3]float64{
			1 - v.MemoryRecallAccuracy,
			math.Min(1, v.ClockHandPlacementError/45),
			(math.Min(1, v.SceneDangerDetectionTime/5) + math.Min(1, float64(v.IrrelevantFixations)/10)) / 2,
		}
	}
	return [3]float64{}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
