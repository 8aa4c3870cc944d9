package telemetry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bounds struct{ lo, hi float64 }

var documentedRanges = map[AgeGroup]map[Profile]map[string]bounds{
	Child: {
		ProfileHighRisk: {
			"fixation_face_pct": {0.1, 0.3}, "gaze_stability": {0.2, 0.5}, "emotion_accuracy": {0.3, 0.6},
			"sensory_overload_stops": {5, 12}, "maze_completion_time": {60, 120},
		},
		ProfileLowRisk: {
			"fixation_face_pct": {0.6, 0.9}, "gaze_stability": {0.7, 1.0}, "emotion_accuracy": {0.8, 1.0},
			"sensory_overload_stops": {0, 3}, "maze_completion_time": {30, 50},
		},
	},
	Adult: {
		ProfileHighRisk: {
			"rt_variability": {150, 300}, "omission_errors": {3, 8}, "commission_errors": {3, 8},
			"anti_saccade_error_rate": {0.4, 0.7}, "executive_task_switching_cost": {1000, 2000},
			"distraction_fixation_pct": {0.4, 0.7},
		},
		ProfileLowRisk: {
			"rt_variability": {20, 80}, "omission_errors": {0, 2}, "commission_errors": {0, 2},
			"anti_saccade_error_rate": {0, 0.2}, "executive_task_switching_cost": {200, 500},
			"distraction_fixation_pct": {0, 0.2},
		},
	},
	Elderly: {
		ProfileHighRisk: {
			"memory_recall_accuracy": {0.1, 0.4}, "clock_hand_placement_error": {30, 90},
			"scene_danger_detection_time": {5, 10}, "irrelevant_fixations": {5, 15},
		},
		ProfileLowRisk: {
			"memory_recall_accuracy": {0.7, 1.0}, "clock_hand_placement_error": {0, 10},
			"scene_danger_detection_time": {0.5, 2}, "irrelevant_fixations": {0, 3},
		},
	},
}

var countFields = map[string]bool{
	"sensory_overload_stops": true, "omission_errors": true,
	"commission_errors": true, "irrelevant_fixations": true,
}

func TestGenerate_RangePartitioning(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))

	for _, g := range AgeGroups() {
		seen := map[Profile]int{}
		for i := 0; i < 1000; i++ {
			m, profile, err := gen.Generate(g)
			require.NoError(t, err)
			require.Equal(t, SourceSynthetic, m.Source())
			seen[profile]++

			want := documentedRanges[g][profile]
			fields := m.Fields()
			require.Len(t, fields, len(want))
			for name, v := range fields {
				b, ok := want[name]
				require.True(t, ok, "unexpected field %s", name)
				if v < b.lo || v > b.hi {
					t.Fatalf("%s/%s %s = %v outside [%v, %v]", g, profile, name, v, b.lo, b.hi)
				}
				if countFields[name] {
					assert.Equal(t, math.Trunc(v), v, "%s must be integral", name)
				} else {
					assert.InDelta(t, math.Round(v*100)/100, v, 1e-9, "%s must have 2 decimals", name)
				}
			}
		}
		assert.NotZero(t, seen[ProfileHighRisk], "%s never drew a high-risk profile", g)
		assert.NotZero(t, seen[ProfileLowRisk], "%s never drew a low-risk profile", g)
	}
}

func TestGenerate_HighRiskRate(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(42, 42)))
	high := 0
	const n = 5000
	for i := 0; i < n; i++ {
		_, p, err := gen.Generate(Adult)
		require.NoError(t, err)
		if p == ProfileHighRisk {
			high++
		}
	}
	assert.InDelta(t, HighRiskRate, float64(high)/n, 0.03)
}

func TestGenerateProfile_ScoresFollowPosture(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(3, 5)))
	for _, g := range AgeGroups() {
		for i := 0; i < 200; i++ {
			hi, err := gen.GenerateProfile(g, ProfileHighRisk)
			require.NoError(t, err)
			lo, err := gen.GenerateProfile(g, ProfileLowRisk)
			require.NoError(t, err)

			hiRes, err := Score(g, hi)
			require.NoError(t, err)
			loRes, err := Score(g, lo)
			require.NoError(t, err)
			assert.Greater(t, hiRes.FinalRiskPercent, loRes.FinalRiskPercent, "%s draw %d", g, i)
		}
	}
}

func TestGenerate_InvalidAgeGroup(t *testing.T) {
	gen := NewGenerator(nil)
	_, _, err := gen.Generate("teen")
	assert.ErrorIs(t, err, ErrInvalidAgeGroup)
}

func TestIsCountField(t *testing.T) {
	for _, name := range []string{"sensory_overload_stops", "omission_errors", "commission_errors", "irrelevant_fixations"} {
		assert.True(t, IsCountField(name), name)
	}
	for _, name := range []string{"gaze_stability", "rt_variability", "clock_hand_placement_error", "game1", ""} {
		assert.False(t, IsCountField(name), name)
	}
}
