// Package knowledge is the static reference text the chat assistant is
// grounded in. The table is built once at init and never mutated.
package knowledge

import (
	"fmt"
	"strings"
)

// Section is an age-group-specific list of items.
type Section struct {
	AgeGroup string
	Items    []string
}

// Entry describes one condition.
type Entry struct {
	Condition   string
	Description string
	Symptoms    []Section
	Advice      []Section
}

type base struct {
	entries        []Entry
	byCondition    map[string]*Entry
	generalAdvice  []string
	generalSummary string
}

// kb is the package-level table, set by init() in seed.go.
var kb *base

func buildBase(entries []Entry, general []string, summary string) *base {
	if err := validateEntries(entries, general); err != nil {
		panic(fmt.Sprintf("knowledge: invalid seed data: %v", err))
	}
	b := &base{
		entries:        entries,
		byCondition:    make(map[string]*Entry, len(entries)),
		generalAdvice:  general,
		generalSummary: summary,
	}
	for i := range b.entries {
		b.byCondition[b.entries[i].Condition] = &b.entries[i]
	}
	return b
}

// Lookup returns a copy of the entry for condition. Callers may modify it
// freely.
func Lookup(condition string) (Entry, bool) {
	e, ok := kb.byCondition[strings.ToLower(strings.TrimSpace(condition))]
	if !ok {
		return Entry{}, false
	}
	out := *e
	out.Symptoms = cloneSections(e.Symptoms)
	out.Advice = cloneSections(e.Advice)
	return out, true
}

func cloneSections(in []Section) []Section {
	if in == nil {
		return nil
	}
	out := make([]Section, len(in))
	for i, s := range in {
		out[i] = Section{AgeGroup: s.AgeGroup, Items: append([]string(nil), s.Items...)}
	}
	return out
}

// Conditions lists the covered conditions in seed order.
func Conditions() []string {
	out := make([]string, len(kb.entries))
	for i, e := range kb.entries {
		out[i] = e.Condition
	}
	return out
}

// Disclaimer is the screening-not-diagnosis notice.
func Disclaimer() string {
	return kb.generalSummary
}

// Context renders the prompt context for an optional condition and age
// group. Unknown conditions contribute nothing; the general advice block
// always closes the text.
func Context(condition, ageGroup string) string {
	var lines []string

	if e, ok := Lookup(condition); ok {
		lines = append(lines, "Condition: "+strings.ToUpper(e.Condition), e.Description)
		if ageGroup != "" {
			lines = appendSection(lines, "Common Symptoms", find(e.Symptoms, ageGroup))
			lines = appendSection(lines, "Advice", find(e.Advice, ageGroup))
		} else {
			for _, s := range e.Symptoms {
				lines = appendSection(lines, "Common Symptoms", &s)
			}
		}
	}

	lines = append(lines, "General Advice:")
	for _, a := range kb.generalAdvice {
		lines = append(lines, "- "+a)
	}
	return strings.Join(lines, "\n")
}

func find(sections []Section, ageGroup string) *Section {
	for i := range sections {
		if sections[i].AgeGroup == ageGroup {
			return &sections[i]
		}
	}
	return nil
}

func appendSection(lines []string, heading string, s *Section) []string {
	if s == nil || len(s.Items) == 0 {
		return lines
	}
	lines = append(lines, fmt.Sprintf("%s (%s):", heading, s.AgeGroup))
	for _, item := range s.Items {
		lines = append(lines, "- "+item)
	}
	return lines
}
