package advice

import (
	"testing"

	"github.com/cogniwise/cogniwise/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_TemplatesByAgeGroup(t *testing.T) {
	tests := []struct {
		ageGroup string
		title    string
	}{
		{"child", "Autism Spectrum Disorder (ASD) Indicators"},
		{"adult", "ADHD & Executive Function Indicators"},
		{"Elderly", "Dementia & Cognitive Decline Indicators"},
		{"teen", "Cognitive Health Alert"},
	}
	for _, tt := range tests {
		s := Derive(&store.Level2Record{ID: 7, AgeGroup: tt.ageGroup, FinalRiskPercent: 60}, nil)
		assert.Equal(t, tt.title, s.Advice.ConditionTitle, tt.ageGroup)
		assert.Equal(t, int64(7), s.ResultID)
	}
}

func TestDerive_Urgency(t *testing.T) {
	s := Derive(&store.Level2Record{AgeGroup: "adult", FinalRiskPercent: 75}, nil)
	assert.Equal(t, "orange", s.Advice.ColorCode, "75 is not above the threshold")
	assert.Equal(t, "Schedule a check-up within 7 days.", s.Advice.ImmediateAction)

	s = Derive(&store.Level2Record{AgeGroup: "adult", FinalRiskPercent: 75.1}, nil)
	assert.Equal(t, "red", s.Advice.ColorCode)
	assert.Equal(t, "Consult a specialist immediately.", s.Advice.ImmediateAction)
}

func TestDerive_ExplanationAndNotes(t *testing.T) {
	l2 := &store.Level2Record{AgeGroup: "child", FinalRiskPercent: 82.25}

	s := Derive(l2, &store.AssessmentRecord{})
	assert.Nil(t, s.Advice.AdminNotes)
	assert.Equal(t, 82.25, s.RiskScore)
	assert.Equal(t, "child", s.AgeGroup)

	s = Derive(l2, &store.AssessmentRecord{AdminNotes: "Refer to clinic B"})
	require.NotNil(t, s.Advice.AdminNotes)
	assert.Equal(t, "Refer to clinic B", *s.Advice.AdminNotes)

	s = Derive(&store.Level2Record{AgeGroup: "child", FinalRiskPercent: 60}, nil)
	assert.Equal(t, "Your assessment indicates a 60.0% risk level, which is significant.", s.Advice.Explanation)
}

func TestDirectory(t *testing.T) {
	d := Doctors()
	require.Len(t, d, 3)
	d[0].Name = "changed"
	assert.Equal(t, "Dr. Sarah Smith", Doctors()[0].Name)

	h := Hospitals()
	require.Len(t, h, 2)
	assert.Equal(t, "+1-800-NEURO", h[1].EmergencyContact)
}
