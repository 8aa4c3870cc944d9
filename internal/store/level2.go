package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var level2Columns = []string{
	"id", "user_id", "age_group", "source", "raw_metrics", "domain_scores",
	"final_risk_score", "final_risk_percent", "created_at",
}

type level2Repo struct {
	c conn
}

func (r *level2Repo) Create(ctx context.Context, rec *Level2Record) error {
	raw, err := encodeJSON(orEmpty(rec.RawMetrics))
	if err != nil {
		return err
	}
	scores := rec.DomainScores
	if scores == nil {
		scores = map[string]float64{}
	}
	domains, err := encodeJSON(scores)
	if err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	id, err := r.c.insert(ctx, r.c.sql().Insert(Level2ResultsTable.Name).
		Columns(level2Columns[1:]...).
		Values(rec.UserID, rec.AgeGroup, rec.Source, raw, domains,
			rec.FinalRiskScore, rec.FinalRiskPercent, rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("save level2 result: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *level2Repo) Get(ctx context.Context, id int64) (*Level2Record, error) {
	recs, err := r.list(ctx, entsql.EQ("id", id), 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *level2Repo) Latest(ctx context.Context, userID string) (*Level2Record, error) {
	recs, err := r.list(ctx, entsql.EQ("user_id", userID), 1)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[0], nil
}

func (r *level2Repo) ListByUser(ctx context.Context, userID string) ([]Level2Record, error) {
	return r.list(ctx, entsql.EQ("user_id", userID), 0)
}

func (r *level2Repo) list(ctx context.Context, where *entsql.Predicate, limit int) ([]Level2Record, error) {
	sel := r.c.sql().Select(level2Columns...).
		From(r.c.sql().Table(Level2ResultsTable.Name)).
		Where(where).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query level2 results: %w", err)
	}
	defer rows.Close()

	var out []Level2Record
	for rows.Next() {
		var (
			rec          Level2Record
			raw, domains []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.AgeGroup, &rec.Source, &raw, &domains,
			&rec.FinalRiskScore, &rec.FinalRiskPercent, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan level2 result: %w", err)
		}
		if err := decodeJSON(raw, &rec.RawMetrics); err != nil {
			return nil, err
		}
		if err := decodeJSON(domains, &rec.DomainScores); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
