package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type progressRepo struct {
	c conn
}

// DefaultProgress is the state of a subject with no stored record.
func DefaultProgress(userID string) *ProgressRecord {
	return &ProgressRecord{
		UserID:           userID,
		Level2Conditions: []string{},
		Level3Conditions: []string{},
	}
}

func (r *progressRepo) Get(ctx context.Context, userID string) (*ProgressRecord, error) {
	if r.c.inTx {
		// A missing row cannot be locked, so seed it first. Concurrent
		// seeds of the same subject block on the key until the first
		// transaction ends.
		if err := r.seed(ctx, userID); err != nil {
			return nil, err
		}
	}
	sel := r.c.sql().Select(
		"user_id", "level1_completed", "level2_unlocked", "level2_completed", "level3_unlocked",
		"level2_conditions", "level3_conditions", "updated_at",
	).
		From(r.c.sql().Table(UserLevelProgressTable.Name)).
		Where(entsql.EQ("user_id", userID))
	rows, err := r.c.query(ctx, r.c.forUpdate(sel))
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query progress: %w", err)
		}
		return DefaultProgress(userID), nil
	}

	rec := DefaultProgress(userID)
	var l2, l3 []byte
	if err := rows.Scan(&rec.UserID, &rec.Level1Completed, &rec.Level2Unlocked, &rec.Level2Completed,
		&rec.Level3Unlocked, &l2, &l3, &rec.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan progress: %w", err)
	}
	if err := decodeJSON(l2, &rec.Level2Conditions); err != nil {
		return nil, err
	}
	if err := decodeJSON(l3, &rec.Level3Conditions); err != nil {
		return nil, err
	}
	if rec.Level2Conditions == nil {
		rec.Level2Conditions = []string{}
	}
	if rec.Level3Conditions == nil {
		rec.Level3Conditions = []string{}
	}
	return rec, nil
}

func (r *progressRepo) Save(ctx context.Context, rec *ProgressRecord) error {
	l2, err := encodeJSON(nonNil(rec.Level2Conditions))
	if err != nil {
		return err
	}
	l3, err := encodeJSON(nonNil(rec.Level3Conditions))
	if err != nil {
		return err
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	_, err = r.c.exec(ctx, r.c.sql().Insert(UserLevelProgressTable.Name).
		Columns("user_id", "level1_completed", "level2_unlocked", "level2_completed", "level3_unlocked",
			"level2_conditions", "level3_conditions", "updated_at").
		Values(rec.UserID, rec.Level1Completed, rec.Level2Unlocked, rec.Level2Completed, rec.Level3Unlocked,
			l2, l3, rec.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		))
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// seed inserts the default record for userID unless one exists.
func (r *progressRepo) seed(ctx context.Context, userID string) error {
	_, err := r.c.exec(ctx, r.c.sql().Insert(UserLevelProgressTable.Name).
		Columns("user_id", "level1_completed", "level2_unlocked", "level2_completed", "level3_unlocked",
			"level2_conditions", "level3_conditions", "updated_at").
		Values(userID, false, false, false, false, "[]", "[]", time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.DoNothing(),
		))
	if err != nil {
		return fmt.Errorf("seed progress: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
