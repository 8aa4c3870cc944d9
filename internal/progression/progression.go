// Package progression gates the three assessment tiers. Every transition is
// a monotonic union: flags go from false to true and condition sets only grow.
package progression

import (
	"slices"

	"github.com/cogniwise/cogniwise/internal/store"
)

// Level3Threshold is the Level-2 risk percentage that unlocks Level 3.
const Level3Threshold = 55.0

// HighRiskLevel2 is the Level-3 trigger recorded for a high Level-2 result.
const HighRiskLevel2 = "high_risk_level2"

// Flag names a progression flag.
type Flag string

const (
	FlagLevel1Completed Flag = "level1_completed"
	FlagLevel2Unlocked  Flag = "level2_unlocked"
	FlagLevel2Completed Flag = "level2_completed"
	FlagLevel3Unlocked  Flag = "level3_unlocked"
)

// Transition records one change applied to a progress record.
type Transition struct {
	Flag      Flag
	Condition string // set when a condition was added to the flag's trigger set
	Trigger   string // "level1_submitted", "level2_submitted"
}

const (
	triggerLevel1 = "level1_submitted"
	triggerLevel2 = "level2_submitted"
)

// CompleteLevel1 applies a scored Level-1 submission to rec.
func CompleteLevel1(rec *store.ProgressRecord, condition string, requiresLevel2 bool) []Transition {
	var out []Transition
	if setFlag(&rec.Level1Completed) {
		out = append(out, Transition{Flag: FlagLevel1Completed, Trigger: triggerLevel1})
	}
	if !requiresLevel2 {
		return out
	}
	if setFlag(&rec.Level2Unlocked) {
		out = append(out, Transition{Flag: FlagLevel2Unlocked, Trigger: triggerLevel1})
	}
	if addCondition(&rec.Level2Conditions, condition) {
		out = append(out, Transition{Flag: FlagLevel2Unlocked, Condition: condition, Trigger: triggerLevel1})
	}
	return out
}

// CompleteLevel2 applies a scored Level-2 submission to rec.
func CompleteLevel2(rec *store.ProgressRecord, finalRiskPercent float64) []Transition {
	var out []Transition
	if setFlag(&rec.Level2Completed) {
		out = append(out, Transition{Flag: FlagLevel2Completed, Trigger: triggerLevel2})
	}
	if finalRiskPercent < Level3Threshold {
		return out
	}
	if setFlag(&rec.Level3Unlocked) {
		out = append(out, Transition{Flag: FlagLevel3Unlocked, Trigger: triggerLevel2})
	}
	if addCondition(&rec.Level3Conditions, HighRiskLevel2) {
		out = append(out, Transition{Flag: FlagLevel3Unlocked, Condition: HighRiskLevel2, Trigger: triggerLevel2})
	}
	return out
}

// Level3Unlocked reports whether a Level-2 percentage crosses the threshold.
func Level3Unlocked(finalRiskPercent float64) bool {
	return finalRiskPercent >= Level3Threshold
}

// Merge returns the union of a and b as a new record. Merging with a
// default record copies the other side.
func Merge(a, b *store.ProgressRecord) *store.ProgressRecord {
	out := store.DefaultProgress(a.UserID)
	out.Level1Completed = a.Level1Completed || b.Level1Completed
	out.Level2Unlocked = a.Level2Unlocked || b.Level2Unlocked
	out.Level2Completed = a.Level2Completed || b.Level2Completed
	out.Level3Unlocked = a.Level3Unlocked || b.Level3Unlocked
	for _, c := range slices.Concat(a.Level2Conditions, b.Level2Conditions) {
		addCondition(&out.Level2Conditions, c)
	}
	for _, c := range slices.Concat(a.Level3Conditions, b.Level3Conditions) {
		addCondition(&out.Level3Conditions, c)
	}
	out.UpdatedAt = a.UpdatedAt
	if b.UpdatedAt.After(out.UpdatedAt) {
		out.UpdatedAt = b.UpdatedAt
	}
	return out
}

func setFlag(f *bool) bool {
	if *f {
		return false
	}
	*f = true
	return true
}

func addCondition(set *[]string, c string) bool {
	if c == "" || slices.Contains(*set, c) {
		return false
	}
	*set = append(*set, c)
	return true
}
