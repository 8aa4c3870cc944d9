// Package assessment runs the three-tier screening flow: it scores
// submissions, persists results and advances the subject's progression in
// one atomic unit.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/cogniwise/cogniwise/internal/advice"
	"github.com/cogniwise/cogniwise/internal/apperr"
	"github.com/cogniwise/cogniwise/internal/progression"
	"github.com/cogniwise/cogniwise/internal/screening"
	"github.com/cogniwise/cogniwise/internal/store"
	"github.com/cogniwise/cogniwise/internal/telemetry"
)

var tracer = otel.Tracer("github.com/cogniwise/cogniwise/internal/assessment")

// Service is the scoring-core boundary used by the HTTP and CLI layers.
type Service struct {
	store *store.Store
	gen   *telemetry.Generator
	log   *zap.Logger
	now   func() time.Time
}

// NewService wires the service. A nil generator draws from a clock-seeded
// source.
func NewService(st *store.Store, gen *telemetry.Generator, log *zap.Logger) *Service {
	if gen == nil {
		gen = telemetry.NewGenerator(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, gen: gen, log: log, now: time.Now}
}

// SubmitLevel1 classifies a questionnaire, stores the result and, for an
// identified subject, records Level-1 completion.
func (s *Service) SubmitLevel1(ctx context.Context, sub Level1Submission) (screening.Result, error) {
	ctx, span := tracer.Start(ctx, "assessment.SubmitLevel1")
	defer span.End()

	cond, err := screening.ParseCondition(sub.Condition)
	if err != nil {
		return screening.Result{}, apperr.Invalid("condition", err)
	}
	result, err := screening.Classify(string(cond), sub.Features)
	if err != nil {
		return screening.Result{}, apperr.Invalid("features", err)
	}

	userID := strings.TrimSpace(sub.UserID)
	age := sub.Age.IntP()
	ageGroup := strings.TrimSpace(sub.AgeGroup)
	if ageGroup == "" && age != nil {
		ageGroup = screening.AgeGroupFor(*age)
	}
	now := s.now().UTC()
	rec := &store.AssessmentRecord{
		UserID:         userID,
		UserName:       strings.TrimSpace(sub.UserName),
		UserEmail:      strings.TrimSpace(sub.UserEmail),
		Age:            age,
		AgeGroup:       ageGroup,
		Gender:         strings.TrimSpace(sub.Gender),
		Address:        strings.TrimSpace(sub.Address),
		Condition:      string(cond),
		Responses:      sub.Responses,
		Features:       sub.Features,
		RiskScore:      result.RiskScore,
		RiskLevel:      string(result.RiskLevel),
		RiskLabel:      result.RiskLabel,
		RequiresLevel2: result.RequiresLevel2,
		CreatedAt:      now,
	}
	span.SetAttributes(
		attribute.String("assessment.condition", string(cond)),
		attribute.Float64("assessment.risk_score", result.RiskScore),
	)

	err = s.store.Atomically(ctx, userID, func(ctx context.Context, tx *store.Tx) error {
		if err := tx.Assessments().Create(ctx, rec); err != nil {
			return err
		}
		if userID == "" {
			return nil
		}
		return s.advance(ctx, tx, userID, now, func(p *store.ProgressRecord) []progression.Transition {
			return progression.CompleteLevel1(p, string(cond), result.RequiresLevel2)
		})
	})
	if err != nil {
		return screening.Result{}, apperr.Persistence("save level1 assessment", err)
	}

	s.log.Info("level1 assessment saved",
		zap.Int64("id", rec.ID),
		zap.String("condition", string(cond)),
		zap.Float64("risk_score", result.RiskScore),
		zap.Bool("requires_level2", result.RequiresLevel2))
	return result, nil
}

// SubmitLevel2 scores a game battery. Real game scores take precedence over
// raw telemetry; with neither, a synthetic draw is scored.
func (s *Service) SubmitLevel2(ctx context.Context, sub Level2Submission) (*Level2Outcome, error) {
	ctx, span := tracer.Start(ctx, "assessment.SubmitLevel2")
	defer span.End()

	userID := strings.TrimSpace(sub.UserID)
	if userID == "" {
		return nil, apperr.Missing("user_id")
	}
	if strings.TrimSpace(sub.AgeGroup) == "" {
		return nil, apperr.Missing("age_group")
	}
	group, err := telemetry.ParseAgeGroup(sub.AgeGroup)
	if err != nil {
		return nil, apperr.Invalid("age_group", err)
	}

	metrics, err := s.metricsFor(group, sub)
	if err != nil {
		return nil, err
	}
	scored, err := telemetry.Score(group, metrics)
	if err != nil {
		if errors.Is(err, telemetry.ErrTelemetryMismatch) {
			return nil, apperr.Invalid("telemetry", err)
		}
		return nil, apperr.Invalid("age_group", err)
	}

	now := s.now().UTC()
	rec := &store.Level2Record{
		UserID:           userID,
		AgeGroup:         string(group),
		Source:           string(scored.Source),
		RawMetrics:       telemetry.Raw(metrics),
		DomainScores:     scored.DomainScores(),
		FinalRiskScore:   scored.FinalRiskScore,
		FinalRiskPercent: scored.FinalRiskPercent,
		CreatedAt:        now,
	}
	span.SetAttributes(
		attribute.String("assessment.age_group", string(group)),
		attribute.String("assessment.source", rec.Source),
		attribute.Float64("assessment.risk_percent", rec.FinalRiskPercent),
	)

	err = s.store.Atomically(ctx, userID, func(ctx context.Context, tx *store.Tx) error {
		if err := tx.Level2().Create(ctx, rec); err != nil {
			return err
		}
		return s.advance(ctx, tx, userID, now, func(p *store.ProgressRecord) []progression.Transition {
			return progression.CompleteLevel2(p, rec.FinalRiskPercent)
		})
	})
	if err != nil {
		return nil, apperr.Persistence("save level2 result", err)
	}

	s.log.Info("level2 result saved",
		zap.Int64("id", rec.ID),
		zap.String("age_group", rec.AgeGroup),
		zap.String("source", rec.Source),
		zap.Float64("risk_percent", rec.FinalRiskPercent))
	return &Level2Outcome{
		Record:         rec,
		Domains:        scored.Domains,
		Level3Unlocked: progression.Level3Unlocked(rec.FinalRiskPercent),
	}, nil
}

func (s *Service) metricsFor(group telemetry.AgeGroup, sub Level2Submission) (telemetry.Metrics, error) {
	switch {
	case present(sub.GameScores):
		doc, err := validatePayload("game_scores", gameScoresSchema, sub.GameScores)
		if err != nil {
			return nil, apperr.Invalid("game_scores", err)
		}
		f := numberFields(doc)
		return telemetry.GameScores{Game1: f["game1"], Game2: f["game2"], Game3: f["game3"]}, nil

	case present(sub.Telemetry):
		var loose map[string]float64
		if err := json.Unmarshal(sub.Telemetry, &loose); err == nil {
			if other, ok := foreignTelemetry(group, loose); ok {
				return nil, apperr.Invalid("telemetry",
					fmt.Errorf("%w: fields belong to %s, submitted as %s", telemetry.ErrTelemetryMismatch, other, group))
			}
		}
		def, err := telemetrySchema(group)
		if err != nil {
			return nil, apperr.Invalid("age_group", err)
		}
		doc, err := validatePayload("telemetry_"+string(group), def, sub.Telemetry)
		if err != nil {
			return nil, apperr.Invalid("telemetry", err)
		}
		m, err := telemetry.TelemetryFromFields(group, numberFields(doc))
		if err != nil {
			return nil, apperr.Invalid("age_group", err)
		}
		return m, nil
	}

	m, profile, err := s.gen.Generate(group)
	if err != nil {
		return nil, apperr.Invalid("age_group", err)
	}
	s.log.Debug("scoring synthetic telemetry", zap.String("age_group", string(group)), zap.String("profile", string(profile)))
	return m, nil
}

// advance applies a progression step to userID's record and logs every
// transition it caused. It runs inside the caller's transaction.
func (s *Service) advance(ctx context.Context, tx *store.Tx, userID string, now time.Time, step func(*store.ProgressRecord) []progression.Transition) error {
	stored, err := tx.Progress().Get(ctx, userID)
	if err != nil {
		return err
	}
	rec := progression.Merge(stored, store.DefaultProgress(userID))
	transitions := step(rec)
	if len(transitions) == 0 {
		return nil
	}
	// Flags and condition sets never shrink, whatever the step did.
	rec = progression.Merge(stored, rec)
	rec.UpdatedAt = now
	if err := tx.Progress().Save(ctx, rec); err != nil {
		return err
	}
	events := tx.EventRepo()
	for _, t := range transitions {
		if err := events.AppendProgressEvent(ctx, store.ProgressEventData{
			UserID:    userID,
			Trigger:   t.Trigger,
			Flag:      string(t.Flag),
			Condition: t.Condition,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Level3Summary derives advice from the subject's latest Level-2 result.
func (s *Service) Level3Summary(ctx context.Context, userID string) (*advice.Summary, error) {
	l2, err := s.store.Level2().Latest(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("load level2 result", err)
	}
	if l2 == nil {
		return nil, &apperr.NotFoundError{Resource: "Level-2 data", ID: userID}
	}
	l1, err := s.store.Assessments().Latest(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("load level1 assessment", err)
	}
	summary := advice.Derive(l2, l1)
	return &summary, nil
}

// Progress returns userID's progression, or the default when none is stored.
func (s *Service) Progress(ctx context.Context, userID string) (*store.ProgressRecord, error) {
	rec, err := s.store.Progress().Get(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("load progress", err)
	}
	return rec, nil
}

// ProgressHistory returns userID's progression transitions in order.
func (s *Service) ProgressHistory(ctx context.Context, userID string) ([]store.ProgressEvent, error) {
	events, err := s.store.EventRepo().ProgressEvents(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("load progress events", err)
	}
	return events, nil
}

// Level1Results lists userID's questionnaire results, newest first.
func (s *Service) Level1Results(ctx context.Context, userID string) ([]store.AssessmentRecord, error) {
	recs, err := s.store.Assessments().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("list level1 assessments", err)
	}
	if recs == nil {
		recs = []store.AssessmentRecord{}
	}
	return recs, nil
}

// Level2Results lists userID's game results, newest first.
func (s *Service) Level2Results(ctx context.Context, userID string) ([]store.Level2Record, error) {
	recs, err := s.store.Level2().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("list level2 results", err)
	}
	if recs == nil {
		recs = []store.Level2Record{}
	}
	return recs, nil
}

// UserAssessments is the reviewer view of Level1Results.
func (s *Service) UserAssessments(ctx context.Context, userID string) ([]store.AssessmentRecord, error) {
	return s.Level1Results(ctx, userID)
}

// Assessment returns one Level-1 record.
func (s *Service) Assessment(ctx context.Context, id int64) (*store.AssessmentRecord, error) {
	rec, err := s.store.Assessments().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &apperr.NotFoundError{Resource: "assessment", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, apperr.Persistence("load assessment", err)
	}
	return rec, nil
}

// Level2Result returns one Level-2 record.
func (s *Service) Level2Result(ctx context.Context, id int64) (*store.Level2Record, error) {
	rec, err := s.store.Level2().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &apperr.NotFoundError{Resource: "level2 result", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, apperr.Persistence("load level2 result", err)
	}
	return rec, nil
}

// AdminUsers lists every identified subject with the demographics of their
// latest assessment and their progression.
func (s *Service) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	summaries, err := s.store.Assessments().Users(ctx)
	if err != nil {
		return nil, apperr.Persistence("list users", err)
	}

	out := make([]AdminUser, 0, len(summaries))
	for _, u := range summaries {
		latest, err := s.store.Assessments().Get(ctx, u.LatestAssessmentID)
		if err != nil {
			return nil, apperr.Persistence("load latest assessment", err)
		}
		progress, err := s.store.Progress().Get(ctx, u.UserID)
		if err != nil {
			return nil, apperr.Persistence("load progress", err)
		}
		ageGroup := latest.AgeGroup
		if ageGroup == "" && latest.Age != nil {
			ageGroup = screening.AgeGroupFor(*latest.Age)
		}
		out = append(out, AdminUser{
			UserID:        u.UserID,
			Name:          latest.UserName,
			Email:         latest.UserEmail,
			Age:           latest.Age,
			Gender:        latest.Gender,
			Address:       latest.Address,
			AgeGroup:      ageGroup,
			Assessments:   u.AssessmentCount,
			LastAssessed:  latest.CreatedAt,
			LevelProgress: progress,
		})
	}
	return out, nil
}

// SaveSuggestion stores the reviewer's note on assessment id. Blank notes
// clear it.
func (s *Service) SaveSuggestion(ctx context.Context, id int64, notes string) (*store.AssessmentRecord, error) {
	notes = strings.TrimSpace(notes)
	err := s.store.Assessments().SetAdminNotes(ctx, id, notes)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &apperr.NotFoundError{Resource: "assessment", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, apperr.Persistence("save suggestion", err)
	}
	s.log.Info("suggestion saved", zap.Int64("assessment_id", id), zap.Bool("cleared", notes == ""))
	return s.Assessment(ctx, id)
}
