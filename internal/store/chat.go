package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type chatRepo struct {
	c conn
}

func (r *chatRepo) Append(ctx context.Context, msg *ChatMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	id, err := r.c.insert(ctx, r.c.sql().Insert(ChatMessagesTable.Name).
		Columns("user_id", "role", "content", "created_at").
		Values(msg.UserID, msg.Role, msg.Content, msg.CreatedAt))
	if err != nil {
		return fmt.Errorf("save chat message: %w", err)
	}
	msg.ID = id
	return nil
}

func (r *chatRepo) History(ctx context.Context, userID string, limit int) ([]ChatMessage, error) {
	sel := r.c.sql().Select("id", "user_id", "role", "content", "created_at").
		From(r.c.sql().Table(ChatMessagesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	rows, err := r.c.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query chat history: %w", err)
	}
	defer rows.Close()

	var out []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(out)
	return out, nil
}
