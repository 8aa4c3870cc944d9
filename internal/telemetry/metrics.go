// Package telemetry holds Level-2 game metrics: the real-or-synthetic
// tagged union, the synthetic generator and the multi-domain scorer.
package telemetry

import (
	"errors"
	"fmt"
	"strings"
)

// AgeGroup selects the Level-2 game battery.
type AgeGroup string

const (
	Child   AgeGroup = "child"
	Adult   AgeGroup = "adult"
	Elderly AgeGroup = "elderly"
)

var (
	// ErrInvalidAgeGroup is returned for age groups without a game battery.
	ErrInvalidAgeGroup = errors.New("unsupported age group")

	// ErrTelemetryMismatch is returned when raw telemetry belongs to a
	// different age group than the submission.
	ErrTelemetryMismatch = errors.New("telemetry does not match age group")
)

// AgeGroups lists the supported groups.
func AgeGroups() []AgeGroup {
	return []AgeGroup{Child, Adult, Elderly}
}

// ParseAgeGroup normalizes s and checks it against the supported groups.
func ParseAgeGroup(s string) (AgeGroup, error) {
	g := AgeGroup(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case Child, Adult, Elderly:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAgeGroup, s)
}

// Source discriminates caller-supplied game scores from raw telemetry.
type Source string

const (
	SourceReal      Source = "real"
	SourceSynthetic Source = "synthetic"
)

// Metrics is the Level-2 input. Implementations are GameScores and the
// per-group telemetry structs.
type Metrics interface {
	Source() Source
	// Fields returns the named raw values, as persisted.
	Fields() map[string]float64
}

// GameScores are normalized performances in [0,1] where 1.0 is best.
type GameScores struct {
	Game1 float64 `json:"game1"`
	Game2 float64 `json:"game2"`
	Game3 float64 `json:"game3"`
}

func (GameScores) Source() Source { return SourceReal }

func (g GameScores) Fields() map[string]float64 {
	return map[string]float64{"game1": g.Game1, "game2": g.Game2, "game3": g.Game3}
}

// ChildTelemetry comes from the gaze, emotion and sensory-maze games.
type ChildTelemetry struct {
	FixationFacePct      float64
	GazeStability        float64
	EmotionAccuracy      float64
	SensoryOverloadStops int
	MazeCompletionTime   float64
}

func (ChildTelemetry) Source() Source { return SourceSynthetic }

func (c ChildTelemetry) Fields() map[string]float64 {
	return map[string]float64{
		"fixation_face_pct":      c.FixationFacePct,
		"gaze_stability":         c.GazeStability,
		"emotion_accuracy":       c.EmotionAccuracy,
		"sensory_overload_stops": float64(c.SensoryOverloadStops),
		"maze_completion_time":   c.MazeCompletionTime,
	}
}

// AdultTelemetry comes from the CPT, anti-saccade and virtual-office games.
type AdultTelemetry struct {
	RTVariability              float64
	OmissionErrors             int
	CommissionErrors           int
	AntiSaccadeErrorRate       float64
	ExecutiveTaskSwitchingCost float64
	DistractionFixationPct     float64
}

func (AdultTelemetry) Source() Source { return SourceSynthetic }

func (a AdultTelemetry) Fields() map[string]float64 {
	return map[string]float64{
		"rt_variability":                a.RTVariability,
		"omission_errors":               float64(a.OmissionErrors),
		"commission_errors":             float64(a.CommissionErrors),
		"anti_saccade_error_rate":       a.AntiSaccadeErrorRate,
		"executive_task_switching_cost": a.ExecutiveTaskSwitchingCost,
		"distraction_fixation_pct":      a.DistractionFixationPct,
	}
}

// ElderlyTelemetry comes from the memory-tray, clock and scene games.
type ElderlyTelemetry struct {
	MemoryRecallAccuracy     float64
	ClockHandPlacementError  float64
	SceneDangerDetectionTime float64
	IrrelevantFixations      int
}

func (ElderlyTelemetry) Source() Source { return SourceSynthetic }

func (e ElderlyTelemetry) Fields() map[string]float64 {
	return map[string]float64{
		"memory_recall_accuracy":      e.MemoryRecallAccuracy,
		"clock_hand_placement_error":  e.ClockHandPlacementError,
		"scene_danger_detection_time": e.SceneDangerDetectionTime,
		"irrelevant_fixations":        float64(e.IrrelevantFixations),
	}
}

// TelemetryFromFields builds the telemetry struct for group from named raw
// values. Absent accuracy-style fields default to 0.5, everything else to 0.
func TelemetryFromFields(group AgeGroup, f map[string]float64) (Metrics, error) {
	get := func(key string, def float64) float64 {
		if v, ok := f[key]; ok {
			return v
		}
		return def
	}
	switch group {
	case Child:
		return ChildTelemetry{
			FixationFacePct:      get("fixation_face_pct", 0.5),
			GazeStability:        get("gaze_stability", 0.5),
			EmotionAccuracy:      get("emotion_accuracy", 0.5),
			SensoryOverloadStops: int(get("sensory_overload_stops", 0)),
			MazeCompletionTime:   get("maze_completion_time", 0),
		}, nil
	case Adult:
		return AdultTelemetry{
			RTVariability:              get("rt_variability", 0),
			OmissionErrors:             int(get("omission_errors", 0)),
			CommissionErrors:           int(get("commission_errors", 0)),
			AntiSaccadeErrorRate:       get("anti_saccade_error_rate", 0),
			ExecutiveTaskSwitchingCost: get("executive_task_switching_cost", 0),
			DistractionFixationPct:     get("distraction_fixation_pct", 0),
		}, nil
	case Elderly:
		return ElderlyTelemetry{
			MemoryRecallAccuracy:     get("memory_recall_accuracy", 0.5),
			ClockHandPlacementError:  get("clock_hand_placement_error", 0),
			SceneDangerDetectionTime: get("scene_danger_detection_time", 0),
			IrrelevantFixations:      int(get("irrelevant_fixations", 0)),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidAgeGroup, group)
}

// Raw returns the persisted form of m: its fields plus the source tag.
func Raw(m Metrics) map[string]any {
	out := make(map[string]any, 8)
	for k, v := range m.Fields() {
		out[k] = v
	}
	out["source"] = string(m.Source())
	return out
}

func telemetryGroup(m Metrics) (AgeGroup, bool) {
	switch m.(type) {
	case ChildTelemetry:
		return Child, true
	case AdultTelemetry:
		return Adult, true
	case ElderlyTelemetry:
		return Elderly, true
	}
	return "", false
}
