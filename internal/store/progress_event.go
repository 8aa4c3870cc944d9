package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendProgressEvent(ctx context.Context, data ProgressEventData) error {
	seqNum, err := r.c.seq.Next(ctx, r.c.ex)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.c.insert(ctx, r.c.sql().Insert(ProgressEventsTable.Name).
		Columns("sequence", "timestamp", "user_id", "trigger", "flag", "condition").
		Values(seqNum, time.Now().UTC(), data.UserID, data.Trigger, data.Flag, nullable(data.Condition)))
	if err != nil {
		return fmt.Errorf("save progress event: %w", err)
	}
	return nil
}

func (r *eventRepo) ProgressEvents(ctx context.Context, userID string) ([]ProgressEvent, error) {
	sel := r.c.sql().Select("id", "sequence", "timestamp", "user_id", "trigger", "flag", "condition").
		From(r.c.sql().Table(ProgressEventsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("sequence"))
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var out []ProgressEvent
	for rows.Next() {
		var (
			e    ProgressEvent
			cond sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.UserID, &e.Trigger, &e.Flag, &cond); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		e.Condition = cond.String
		out = append(out, e)
	}
	return out, rows.Err()
}
