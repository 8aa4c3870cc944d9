package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var assessmentColumns = []string{
	"id", "user_id", "user_name", "user_email", "age", "age_group", "gender", "address", "condition",
	"responses", "features", "risk_score", "risk_level", "risk_label",
	"requires_level2", "admin_notes", "created_at",
}

type assessmentRepo struct {
	c conn
}

func (r *assessmentRepo) Create(ctx context.Context, rec *AssessmentRecord) error {
	responses, err := encodeJSON(orEmpty(rec.Responses))
	if err != nil {
		return err
	}
	features, err := encodeJSON(orEmpty(rec.Features))
	if err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var age any
	if rec.Age != nil {
		age = *rec.Age
	}

	id, err := r.c.insert(ctx, r.c.sql().Insert(AssessmentResultsTable.Name).
		Columns(assessmentColumns[1:]...).
		Values(
			nullable(rec.UserID), nullable(rec.UserName), nullable(rec.UserEmail), age, nullable(rec.AgeGroup), nullable(rec.Gender), nullable(rec.Address),
			rec.Condition, responses, features, rec.RiskScore, rec.RiskLevel, rec.RiskLabel,
			rec.RequiresLevel2, nullable(rec.AdminNotes), rec.CreatedAt,
		))
	if err != nil {
		return fmt.Errorf("save assessment result: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *assessmentRepo) Get(ctx context.Context, id int64) (*AssessmentRecord, error) {
	recs, err := r.list(ctx, entsql.EQ("id", id), 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *assessmentRepo) Latest(ctx context.Context, userID string) (*AssessmentRecord, error) {
	recs, err := r.list(ctx, entsql.EQ("user_id", userID), 1)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[0], nil
}

func (r *assessmentRepo) ListByUser(ctx context.Context, userID string) ([]AssessmentRecord, error) {
	return r.list(ctx, entsql.EQ("user_id", userID), 0)
}

func (r *assessmentRepo) SetAdminNotes(ctx context.Context, id int64, notes string) error {
	res, err := r.c.exec(ctx, r.c.sql().Update(AssessmentResultsTable.Name).
		Set("admin_notes", nullable(notes)).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("update admin notes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update admin notes: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assessmentRepo) Users(ctx context.Context) ([]UserSummary, error) {
	sel := r.c.sql().Select("user_id", entsql.As(entsql.Count("*"), "assessments"), entsql.As(entsql.Max("id"), "latest_id")).
		From(r.c.sql().Table(AssessmentResultsTable.Name)).
		Where(entsql.NotNull("user_id")).
		GroupBy("user_id").
		OrderBy(entsql.Desc("latest_id"))
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []UserSummary
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.UserID, &u.AssessmentCount, &u.LatestAssessmentID); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// list returns matching records, newest first. limit 0 means unlimited.
func (r *assessmentRepo) list(ctx context.Context, where *entsql.Predicate, limit int) ([]AssessmentRecord, error) {
	sel := r.c.sql().Select(assessmentColumns...).
		From(r.c.sql().Table(AssessmentResultsTable.Name)).
		Where(where).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query assessment results: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		var (
			rec                           AssessmentRecord
			userID, name, email, ageGroup sql.NullString
			gender, address, notes        sql.NullString
			age                           sql.NullInt64
			responses, features           []byte
		)
		if err := rows.Scan(&rec.ID, &userID, &name, &email, &age, &ageGroup, &gender, &address, &rec.Condition,
			&responses, &features, &rec.RiskScore, &rec.RiskLevel, &rec.RiskLabel,
			&rec.RequiresLevel2, &notes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment result: %w", err)
		}
		rec.UserID, rec.UserName, rec.UserEmail = userID.String, name.String, email.String
		rec.AgeGroup, rec.Gender = ageGroup.String, gender.String
		rec.Address, rec.AdminNotes = address.String, notes.String
		if age.Valid {
			a := int(age.Int64)
			rec.Age = &a
		}
		if err := decodeJSON(responses, &rec.Responses); err != nil {
			return nil, err
		}
		if err := decodeJSON(features, &rec.Features); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
