package knowledge

import (
	"fmt"
	"strings"
)

// validateEntries performs structural checks on the seed data.
// Returns a combined error describing all problems found, or nil if valid.
func validateEntries(entries []Entry, general []string) error {
	var errs []string

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Condition == "" || e.Condition != strings.ToLower(e.Condition) {
			errs = append(errs, fmt.Sprintf("condition key %q must be non-empty lowercase", e.Condition))
		}
		if seen[e.Condition] {
			errs = append(errs, fmt.Sprintf("duplicate condition: %q", e.Condition))
		}
		seen[e.Condition] = true

		if e.Description == "" {
			errs = append(errs, fmt.Sprintf("condition %q has no description", e.Condition))
		}
		errs = append(errs, checkSections(e.Condition, "symptoms", e.Symptoms)...)
		errs = append(errs, checkSections(e.Condition, "advice", e.Advice)...)
	}

	if len(general) == 0 {
		errs = append(errs, "general advice is empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d problem(s):\n  %s", len(errs), strings.Join(errs, "\n  "))
	}
	return nil
}

func checkSections(condition, kind string, sections []Section) []string {
	var errs []string
	if len(sections) == 0 {
		errs = append(errs, fmt.Sprintf("condition %q has no %s", condition, kind))
	}
	groups := make(map[string]bool, len(sections))
	for _, s := range sections {
		if groups[s.AgeGroup] {
			errs = append(errs, fmt.Sprintf("condition %q repeats %s for %q", condition, kind, s.AgeGroup))
		}
		groups[s.AgeGroup] = true
		if len(s.Items) == 0 {
			errs = append(errs, fmt.Sprintf("condition %q has empty %s for %q", condition, kind, s.AgeGroup))
		}
	}
	return errs
}
