package llm

import (
	"math"
	"testing"

	"github.com/cogniwise/cogniwise/internal/store"
)

func TestEstimateCost(t *testing.T) {
	rows := []store.LLMUsage{
		{Model: "gemini-2.0-flash", InputTokens: 1_000_000, OutputTokens: 500_000},
		{Model: "gpt-4o-mini", InputTokens: 2_000_000},
		{Model: "mystery-model", InputTokens: 10},
	}
	total, unknown := EstimateCost(rows)

	// 0.1 + 0.2 + 0.3
	if math.Abs(total-0.6) > 1e-9 {
		t.Fatalf("total = %v, want 0.6", total)
	}
	if len(unknown) != 1 || unknown[0] != "mystery-model" {
		t.Fatalf("unknown = %v", unknown)
	}
}

func TestLookupCost_Unknown(t *testing.T) {
	if LookupCost("nope") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
