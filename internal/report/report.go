// Package report exports stored assessment results as XLSX workbooks.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cogniwise/cogniwise/internal/store"
)

// Kind selects which record a report is built from.
type Kind string

const (
	KindLevel1 Kind = "level1"
	KindLevel2 Kind = "level2"
	// KindLevel3 renders a Level-2 record as an emergency report.
	KindLevel3 Kind = "level3"
)

// ContentType is the MIME type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EmergencyNotice heads every Level-3 report.
const EmergencyNotice = "High Risk Detected - Immediate Intervention Advised"

var ErrInvalidKind = errors.New("invalid report type")

// ParseKind checks s against the supported kinds.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLevel1, KindLevel2, KindLevel3:
		return k, nil
	}
	return "", ErrInvalidKind
}

// Source loads the records reports are built from.
type Source interface {
	Assessment(ctx context.Context, id int64) (*store.AssessmentRecord, error)
	Level2Result(ctx context.Context, id int64) (*store.Level2Record, error)
}

// Row is one label/value line of the summary table.
type Row struct {
	Label string
	Value string
}

// Report is a rendered-ready report: a title, a summary table and, for
// Level-2 based reports, the per-domain scores.
type Report struct {
	Title   string
	Rows    []Row
	Domains map[string]float64
}

// Build loads record id and lays out the report for kind.
func Build(ctx context.Context, src Source, kind Kind, id int64) (*Report, error) {
	switch kind {
	case KindLevel1:
		rec, err := src.Assessment(ctx, id)
		if err != nil {
			return nil, err
		}
		return FromAssessment(rec), nil
	case KindLevel2, KindLevel3:
		rec, err := src.Level2Result(ctx, id)
		if err != nil {
			return nil, err
		}
		if kind == KindLevel3 {
			return Emergency(rec), nil
		}
		return FromLevel2(rec), nil
	}
	return nil, ErrInvalidKind
}

// Filename is the attachment name for a report.
func Filename(kind Kind, id int64) string {
	return fmt.Sprintf("report_%s_%d.xlsx", kind, id)
}

// FromAssessment lays out a Level-1 questionnaire result.
func FromAssessment(rec *store.AssessmentRecord) *Report {
	r := &Report{Title: "Assessment Report - " + strings.ToUpper(rec.Condition)}
	r.add("Id", strconv.FormatInt(rec.ID, 10))
	r.add("User Id", rec.UserID)
	r.add("User Name", rec.UserName)
	r.add("User Email", rec.UserEmail)
	if rec.Age != nil {
		r.add("Age", strconv.Itoa(*rec.Age))
	}
	r.add("Age Group", rec.AgeGroup)
	r.add("Gender", rec.Gender)
	r.add("Address", rec.Address)
	r.add("Condition Type", rec.Condition)
	r.add("Risk Score", formatFloat(rec.RiskScore))
	r.add("Risk Level", rec.RiskLevel)
	r.add("Risk Label", rec.RiskLabel)
	r.add("Requires Level2", strconv.FormatBool(rec.RequiresLevel2))
	r.add("Admin Notes", rec.AdminNotes)
	r.add("Assessed At", rec.CreatedAt.UTC().Format(time.RFC3339))
	return r
}

// FromLevel2 lays out a Level-2 game result.
func FromLevel2(rec *store.Level2Record) *Report {
	r := &Report{
		Title:   "Level 2 Assessment Report - " + titleCase(rec.AgeGroup),
		Domains: rec.DomainScores,
	}
	r.level2Rows(rec)
	return r
}

// Emergency lays out a high-risk Level-2 result as an intervention report.
func Emergency(rec *store.Level2Record) *Report {
	r := &Report{
		Title:   "EMERGENCY INTERVENTION REPORT - IMMEDIATE ACTION REQUIRED",
		Domains: rec.DomainScores,
	}
	r.add("Emergency Notice", EmergencyNotice)
	r.level2Rows(rec)
	return r
}

func (r *Report) level2Rows(rec *store.Level2Record) {
	r.add("Id", strconv.FormatInt(rec.ID, 10))
	r.add("User Id", rec.UserID)
	r.add("Age Group", rec.AgeGroup)
	r.add("Source", rec.Source)
	r.add("Final Risk Score", formatFloat(rec.FinalRiskScore))
	r.add("Final Risk Percent", formatFloat(rec.FinalRiskPercent))
	r.add("Assessed At", rec.CreatedAt.UTC().Format(time.RFC3339))
}

// add skips empty values, like the summary tables of the web reports.
func (r *Report) add(label, value string) {
	if value == "" {
		return
	}
	r.Rows = append(r.Rows, Row{Label: label, Value: value})
}

// XLSX renders the report as a single-sheet workbook.
func (r *Report) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", r.Title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "B", 45); err != nil {
		return nil, err
	}

	row := 3
	for _, line := range r.Rows {
		if err := setRow(f, sheet, row, labelStyle, line.Label, line.Value); err != nil {
			return nil, err
		}
		row++
	}

	if len(r.Domains) > 0 {
		row++
		if err := f.SetCellValue(sheet, cell(1, row), "Detailed Domain Scores"); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell(1, row), cell(1, row), titleStyle); err != nil {
			return nil, err
		}
		row++
		names := make([]string, 0, len(r.Domains))
		for name := range r.Domains {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pct := fmt.Sprintf("%.1f%%", r.Domains[name]*100)
			if err := setRow(f, sheet, row, labelStyle, titleCase(name), pct); err != nil {
				return nil, err
			}
			row++
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row, labelStyle int, label, value string) error {
	a, b := cell(1, row), cell(2, row)
	if err := f.SetCellValue(sheet, a, label); err != nil {
		return fmt.Errorf("set cell %s: %w", a, err)
	}
	if err := f.SetCellStyle(sheet, a, a, labelStyle); err != nil {
		return fmt.Errorf("style cell %s: %w", a, err)
	}
	if err := f.SetCellValue(sheet, b, value); err != nil {
		return fmt.Errorf("set cell %s: %w", b, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// titleCase turns "social_attention" into "Social Attention".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
