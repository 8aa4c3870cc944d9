package screening

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_ADHDScenario(t *testing.T) {
	res, err := Classify("adhd", map[string]any{"q1": 5.0, "q2": 5.0, "q3": 4.0})
	require.NoError(t, err)

	assert.Equal(t, 93.3, res.RiskScore)
	assert.Equal(t, RiskHigh, res.RiskLevel)
	assert.Equal(t, "High Risk", res.RiskLabel)
	assert.True(t, res.RequiresLevel2)
}

func TestClassify_InvalidCondition(t *testing.T) {
	for _, c := range []string{"", "ptsd", "teen"} {
		_, err := Classify(c, map[string]any{"q1": 3.0})
		if !errors.Is(err, ErrInvalidCondition) {
			t.Errorf("Classify(%q) error = %v, want ErrInvalidCondition", c, err)
		}
	}
}

func TestClassify_ConditionIsCaseInsensitive(t *testing.T) {
	res, err := Classify(" ASD ", map[string]any{"q1": 1.0})
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.RiskScore)
}

func TestClassify_NoNumericValues(t *testing.T) {
	res, err := Classify("dementia", map[string]any{
		"age":   72.0,
		"notes": "forgets names",
		"flag":  true,
		"neg":   "-3",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.RiskScore)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.False(t, res.RequiresLevel2)
}

func TestClassify_NumericStringsAndNumbers(t *testing.T) {
	res, err := Classify("asd", map[string]any{
		"q1":  "4",
		"q2":  "3.5",
		"q3":  json.Number("4.5"),
		"q4":  "3.5.1",
		"age": 9,
	})
	require.NoError(t, err)
	// mean(4, 3.5, 4.5) = 4 -> 80
	assert.Equal(t, 80.0, res.RiskScore)
}

func TestClassify_ClampsOutOfRange(t *testing.T) {
	res, err := Classify("adhd", map[string]any{"q1": 50.0})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.RiskScore)
}

func TestLevelFor_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{34.9, RiskLow},
		{35, RiskMild},
		{54.9, RiskMild},
		{55, RiskModerate},
		{74.9, RiskModerate},
		{75, RiskHigh},
		{100, RiskHigh},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestClassify_BoundaryAverages(t *testing.T) {
	tests := []struct {
		avg       float64
		wantScore float64
		wantLevel RiskLevel
		wantL2    bool
	}{
		{1.75, 35, RiskMild, false},
		{2.75, 55, RiskModerate, true},
		{3.75, 75, RiskHigh, true},
	}
	for _, tt := range tests {
		res, err := Classify("adhd", map[string]any{"q1": tt.avg})
		require.NoError(t, err)
		assert.Equal(t, tt.wantScore, res.RiskScore, "avg %v", tt.avg)
		assert.Equal(t, tt.wantLevel, res.RiskLevel, "avg %v", tt.avg)
		assert.Equal(t, tt.wantL2, res.RequiresLevel2, "avg %v", tt.avg)
	}
}

func TestClassify_BandsFollowRoundedScore(t *testing.T) {
	tests := []struct {
		avg       float64
		wantScore float64
		wantLevel RiskLevel
		wantL2    bool
	}{
		{1.749, 35, RiskMild, false},    // 34.98
		{2.747, 54.9, RiskMild, false},  // 54.94
		{2.748, 55, RiskModerate, true}, // 54.96
		{3.7498, 75, RiskHigh, true},    // 74.996
	}
	for _, tt := range tests {
		res, err := Classify("adhd", map[string]any{"q1": tt.avg})
		require.NoError(t, err)
		assert.Equal(t, tt.wantScore, res.RiskScore, "avg %v", tt.avg)
		assert.Equal(t, tt.wantLevel, res.RiskLevel, "avg %v", tt.avg)
		assert.Equal(t, tt.wantL2, res.RequiresLevel2, "avg %v", tt.avg)
		assert.Equal(t, LevelFor(res.RiskScore), res.RiskLevel, "avg %v", tt.avg)
		assert.Equal(t, res.RiskScore >= Level2Threshold, res.RequiresLevel2, "avg %v", tt.avg)
	}
}

func TestClassify_PropertiesOverRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		features := map[string]any{}
		for q := 0; q < 1+rng.IntN(12); q++ {
			features[string(rune('a'+q))] = float64(1 + rng.IntN(5))
		}
		for _, c := range Conditions() {
			res, err := Classify(string(c), features)
			require.NoError(t, err)
			require.GreaterOrEqual(t, res.RiskScore, 0.0)
			require.LessOrEqual(t, res.RiskScore, 100.0)
			require.Equal(t, LevelFor(res.RiskScore), res.RiskLevel)
			require.Equal(t, res.RiskLevel.Label(), res.RiskLabel)
			require.Equal(t, res.RiskScore >= 55, res.RequiresLevel2)
		}
	}
}

func TestAgeGroupFor(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{4, AgeGroupChild},
		{12, AgeGroupChild},
		{13, AgeGroupTeen},
		{17, AgeGroupTeen},
		{18, AgeGroupAdult},
		{64, AgeGroupAdult},
		{65, AgeGroupElderly},
	}
	for _, tt := range tests {
		if got := AgeGroupFor(tt.age); got != tt.want {
			t.Errorf("AgeGroupFor(%d) = %q, want %q", tt.age, got, tt.want)
		}
	}
}
