package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cogniwise/cogniwise/internal/store"
)

type fakeSource struct {
	l1 map[int64]*store.AssessmentRecord
	l2 map[int64]*store.Level2Record
}

func (f fakeSource) Assessment(_ context.Context, id int64) (*store.AssessmentRecord, error) {
	if r, ok := f.l1[id]; ok {
		return r, nil
	}
	return nil, store.ErrNotFound
}

func (f fakeSource) Level2Result(_ context.Context, id int64) (*store.Level2Record, error) {
	if r, ok := f.l2[id]; ok {
		return r, nil
	}
	return nil, store.ErrNotFound
}

var at = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func testSource() fakeSource {
	age := 34
	return fakeSource{
		l1: map[int64]*store.AssessmentRecord{
			1: {ID: 1, UserID: "u1", Age: &age, Condition: "adhd", RiskScore: 93.3, RiskLevel: "high", RiskLabel: "High Risk", RequiresLevel2: true, CreatedAt: at},
		},
		l2: map[int64]*store.Level2Record{
			7: {
				ID: 7, UserID: "u1", AgeGroup: "adult", Source: "real",
				DomainScores:   map[string]float64{"attention_focus": 0.8, "working_memory": 0.6, "inhibition_control": 0.7},
				FinalRiskScore: 0.7, FinalRiskPercent: 70.0, CreatedAt: at,
			},
		},
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Level3")
	require.NoError(t, err)
	assert.Equal(t, KindLevel3, k)

	_, err = ParseKind("level4")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestBuildTitles(t *testing.T) {
	ctx := context.Background()
	src := testSource()

	r, err := Build(ctx, src, KindLevel1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Assessment Report - ADHD", r.Title)
	assert.Contains(t, r.Rows, Row{Label: "Risk Score", Value: "93.3"})
	assert.Contains(t, r.Rows, Row{Label: "Age", Value: "34"})
	assert.Empty(t, r.Domains)

	r, err = Build(ctx, src, KindLevel2, 7)
	require.NoError(t, err)
	assert.Equal(t, "Level 2 Assessment Report - Adult", r.Title)
	assert.Len(t, r.Domains, 3)

	r, err = Build(ctx, src, KindLevel3, 7)
	require.NoError(t, err)
	assert.Equal(t, "EMERGENCY INTERVENTION REPORT - IMMEDIATE ACTION REQUIRED", r.Title)
	assert.Equal(t, Row{Label: "Emergency Notice", Value: EmergencyNotice}, r.Rows[0])

	_, err = Build(ctx, src, KindLevel2, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = Build(ctx, src, Kind("bogus"), 1)
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestXLSXRoundTrip(t *testing.T) {
	r, err := Build(context.Background(), testSource(), KindLevel3, 7)
	require.NoError(t, err)

	data, err := r.XLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Report"}, f.GetSheetList())
	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, r.Title, title)

	notice, err := f.GetCellValue("Report", "B3")
	require.NoError(t, err)
	assert.Equal(t, EmergencyNotice, notice)

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	var found bool
	for _, row := range rows {
		if len(row) == 2 && row[0] == "Attention Focus" {
			assert.Equal(t, "80.0%", row[1])
			found = true
		}
	}
	assert.True(t, found, "domain scores missing")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "report_level2_7.xlsx", Filename(KindLevel2, 7))
}
