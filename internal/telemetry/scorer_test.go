package telemetry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeights_SumToOne(t *testing.T) {
	for _, src := range []Source{SourceReal, SourceSynthetic} {
		for _, g := range AgeGroups() {
			w, err := Weights(g, src)
			require.NoError(t, err)
			require.Len(t, w, 3, "%s/%s", src, g)

			var sum float64
			for _, d := range w {
				sum += d.Weight
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "%s/%s", src, g)
		}
	}
}

func TestScore_PerfectGames(t *testing.T) {
	for _, g := range AgeGroups() {
		res, err := Score(g, GameScores{Game1: 1, Game2: 1, Game3: 1})
		require.NoError(t, err)
		for _, d := range res.Domains {
			assert.Equal(t, 0.0, d.Risk, "%s %s", g, d.Domain)
		}
		assert.Equal(t, 0.0, res.FinalRiskScore)
		assert.Equal(t, 0.0, res.FinalRiskPercent)
		assert.Equal(t, SourceReal, res.Source)
	}
}

func TestScore_FailedGames(t *testing.T) {
	for _, g := range AgeGroups() {
		res, err := Score(g, GameScores{})
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.FinalRiskScore)
		assert.Equal(t, 100.0, res.FinalRiskPercent)
	}
}

func TestScore_ChildRealScenario(t *testing.T) {
	res, err := Score(Child, GameScores{Game1: 0.9, Game2: 0.8, Game3: 0.85})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"social_attention":    0.1,
		"emotion_recognition": 0.2,
		"sensory_motor":       0.15,
	}, res.DomainScores())
	// 0.145 sits on a rounding boundary; float error decides the last digit.
	assert.InDelta(t, 0.145, res.FinalRiskScore, 0.0051)
	assert.InDelta(t, 14.5, res.FinalRiskPercent, 0.051)
}

func TestScore_DomainOrderFollowsWeights(t *testing.T) {
	res, err := Score(Adult, GameScores{Game1: 0.5, Game2: 0.25, Game3: 0})
	require.NoError(t, err)

	names := make([]string, 0, 3)
	for _, d := range res.Domains {
		names = append(names, d.Domain)
	}
	assert.Equal(t, []string{"attention_focus", "working_memory", "inhibition_control"}, names)
	// 0.5*.35 + 0.75*.35 + 1*.3
	assert.InDelta(t, 73.75, res.FinalRiskPercent, 0.051)
}

func TestScore_OutOfRangeGamesAreClamped(t *testing.T) {
	res, err := Score(Elderly, GameScores{Game1: 1.7, Game2: -3, Game3: 0.5})
	require.NoError(t, err)

	scores := res.DomainScores()
	assert.Equal(t, 0.0, scores["memory_recall"])
	assert.Equal(t, 1.0, scores["visuospatial"])
	assert.Equal(t, 0.5, scores["hazard_awareness"])
	assert.InDelta(t, 45.0, res.FinalRiskPercent, 0.051)
}

func TestScore_SyntheticChild(t *testing.T) {
	m := ChildTelemetry{FixationFacePct: 0.3, EmotionAccuracy: 0.4, SensoryOverloadStops: 12}
	res, err := Score(Child, m)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"social_attention":      0.5,
		"emotion_understanding": 0.6,
		"sensory_processing":    1.0,
	}, res.DomainScores())
	// 0.5*.4 + 0.6*.3 + 1*.3
	assert.InDelta(t, 0.68, res.FinalRiskScore, 1e-9)
	assert.InDelta(t, 68.0, res.FinalRiskPercent, 1e-9)
	assert.Equal(t, SourceSynthetic, res.Source)
}

func TestScore_SyntheticAdult(t *testing.T) {
	m := AdultTelemetry{RTVariability: 20, AntiSaccadeErrorRate: 0.1, ExecutiveTaskSwitchingCost: 3000, DistractionFixationPct: 0.2}
	res, err := Score(Adult, m)
	require.NoError(t, err)

	scores := res.DomainScores()
	assert.Equal(t, 0.0, scores["attention_regulation"], "below 50ms variability clamps to zero")
	assert.Equal(t, 0.1, scores["inhibitory_control"])
	assert.Equal(t, 0.6, scores["executive_function"])
}

func TestScore_SyntheticElderly(t *testing.T) {
	m := ElderlyTelemetry{MemoryRecallAccuracy: 0.8, ClockHandPlacementError: 90, SceneDangerDetectionTime: 2.5, IrrelevantFixations: 2}
	res, err := Score(Elderly, m)
	require.NoError(t, err)

	scores := res.DomainScores()
	assert.Equal(t, 0.2, scores["memory_recall"])
	assert.Equal(t, 1.0, scores["visuospatial"])
	assert.Equal(t, 0.35, scores["processing_speed"])
}

func TestScore_RoundsBeforeWeighting(t *testing.T) {
	// 1 - 0.333/0.6 = 0.445 unrounded; weighting uses 0.45 (or 0.44 from
	// float error), never the unrounded value.
	m := ChildTelemetry{FixationFacePct: 0.333, EmotionAccuracy: 1}
	res, err := Score(Child, m)
	require.NoError(t, err)

	social := res.DomainScores()["social_attention"]
	assert.InDelta(t, social*0.4, res.FinalRiskScore, 0.005)
	assert.Equal(t, social, math.Round(social*100)/100)
}

func TestScore_Errors(t *testing.T) {
	_, err := Score(AgeGroup("teen"), GameScores{})
	assert.True(t, errors.Is(err, ErrInvalidAgeGroup))

	_, err = Score(Adult, ChildTelemetry{})
	assert.True(t, errors.Is(err, ErrTelemetryMismatch))

	_, err = Score(Child, nil)
	assert.Error(t, err)
}

func TestParseAgeGroup(t *testing.T) {
	g, err := ParseAgeGroup(" Elderly ")
	require.NoError(t, err)
	assert.Equal(t, Elderly, g)

	_, err = ParseAgeGroup("teen")
	assert.ErrorIs(t, err, ErrInvalidAgeGroup)
}

func TestTelemetryFromFields_Defaults(t *testing.T) {
	m, err := TelemetryFromFields(Child, map[string]float64{"sensory_overload_stops": 4})
	require.NoError(t, err)
	c := m.(ChildTelemetry)
	assert.Equal(t, 0.5, c.FixationFacePct)
	assert.Equal(t, 0.5, c.EmotionAccuracy)
	assert.Equal(t, 4, c.SensoryOverloadStops)

	m, err = TelemetryFromFields(Elderly, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.(ElderlyTelemetry).MemoryRecallAccuracy)

	_, err = TelemetryFromFields("teen", nil)
	assert.ErrorIs(t, err, ErrInvalidAgeGroup)
}

func TestRaw_CarriesSource(t *testing.T) {
	raw := Raw(GameScores{Game1: 0.5})
	assert.Equal(t, "real", raw["source"])
	assert.Equal(t, 0.5, raw["game1"])

	raw = Raw(AdultTelemetry{OmissionErrors: 3})
	assert.Equal(t, "synthetic", raw["source"])
	assert.Equal(t, 3.0, raw["omission_errors"])
}
