package telemetry

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// HighRiskRate is the probability that Generate draws a high-risk profile.
const HighRiskRate = 0.3

// Profile is the risk posture a synthetic draw was sampled from.
type Profile string

const (
	ProfileHighRisk Profile = "high_risk"
	ProfileLowRisk  Profile = "low_risk"
)

// metricRange describes one synthetic field. Bounds are inclusive.
type metricRange struct {
	name  string
	high  [2]float64
	low   [2]float64
	count bool
}

var metricRanges = map[AgeGroup][]metricRange{
	Child: {
		{name: "fixation_face_pct", high: [2]float64{0.1, 0.3}, low: [2]float64{0.6, 0.9}},
		{name: "gaze_stability", high: [2]float64{0.2, 0.5}, low: [2]float64{0.7, 1.0}},
		{name: "emotion_accuracy", high: [2]float64{0.3, 0.6}, low: [2]float64{0.8, 1.0}},
		{name: "sensory_overload_stops", high: [2]float64{5, 12}, low: [2]float64{0, 3}, count: true},
		{name: "maze_completion_time", high: [2]float64{60, 120}, low: [2]float64{30, 50}},
	},
	Adult: {
		{name: "rt_variability", high: [2]float64{150, 300}, low: [2]float64{20, 80}},
		{name: "omission_errors", high: [2]float64{3, 8}, low: [2]float64{0, 2}, count: true},
		{name: "commission_errors", high: [2]float64{3, 8}, low: [2]float64{0, 2}, count: true},
		{name: "anti_saccade_error_rate", high: [2]float64{0.4, 0.7}, low: [2]float64{0.0, 0.2}},
		{name: "executive_task_switching_cost", high: [2]float64{1000, 2000}, low: [2]float64{200, 500}},
		{name: "distraction_fixation_pct", high: [2]float64{0.4, 0.7}, low: [2]float64{0.0, 0.2}},
	},
	Elderly: {
		{name: "memory_recall_accuracy", high: [2]float64{0.1, 0.4}, low: [2]float64{0.7, 1.0}},
		{name: "clock_hand_placement_error", high: [2]float64{30, 90}, low: [2]float64{0, 10}},
		{name: "scene_danger_detection_time", high: [2]float64{5.0, 10.0}, low: [2]float64{0.5, 2.0}},
		{name: "irrelevant_fixations", high: [2]float64{5, 15}, low: [2]float64{0, 3}, count: true},
	},
}

// IsCountField reports whether name is an integer event count in any
// battery.
func IsCountField(name string) bool {
	for _, ranges := range metricRanges {
		for _, r := range ranges {
			if r.name == name {
				return r.count
			}
		}
	}
	return false
}

// Generator produces placeholder telemetry when a client submits Level 2
// without real game scores. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from rng. A nil rng is seeded
// from the clock.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &Generator{rng: rng}
}

// Generate flips the risk coin and draws telemetry for group.
func (g *Generator) Generate(group AgeGroup) (Metrics, Profile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	profile := ProfileLowRisk
	if g.rng.Float64() < HighRiskRate {
		profile = ProfileHighRisk
	}
	m, err := g.draw(group, profile)
	return m, profile, err
}

// GenerateProfile draws telemetry for group from a fixed profile.
func (g *Generator) GenerateProfile(group AgeGroup, profile Profile) (Metrics, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.draw(group, profile)
}

func (g *Generator) draw(group AgeGroup, profile Profile) (Metrics, error) {
	ranges, ok := metricRanges[group]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAgeGroup, group)
	}
	fields := make(map[string]float64, len(ranges))
	for _, r := range ranges {
		bounds := r.low
		if profile == ProfileHighRisk {
			bounds = r.high
		}
		if r.count {
			lo, hi := int(bounds[0]), int(bounds[1])
			fields[r.name] = float64(lo + g.rng.IntN(hi-lo+1))
			continue
		}
		fields[r.name] = round2(bounds[0] + g.rng.Float64()*(bounds[1]-bounds[0]))
	}
	return TelemetryFromFields(group, fields)
}
