package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// conn binds repositories to either the driver or an open transaction.
type conn struct {
	ex      dialect.ExecQuerier
	dialect string
	seq     *sequenceCounter
	inTx    bool
}

func (c conn) sql() *entsql.DialectBuilder {
	return entsql.Dialect(c.dialect)
}

func (c conn) exec(ctx context.Context, q entsql.Querier) (sql.Result, error) {
	query, args := q.Query()
	var res sql.Result
	if err := c.ex.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c conn) query(ctx context.Context, q entsql.Querier) (*entsql.Rows, error) {
	query, args := q.Query()
	rows := &entsql.Rows{}
	if err := c.ex.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// insert runs ib and returns the generated id.
func (c conn) insert(ctx context.Context, ib *entsql.InsertBuilder) (int64, error) {
	rows, err := c.query(ctx, ib.Returning("id"))
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	return entsql.ScanInt64(rows)
}

// forUpdate locks selected rows when running inside a Postgres transaction.
// SQLite serializes writers on its own.
func (c conn) forUpdate(s *entsql.Selector) *entsql.Selector {
	if c.inTx && c.dialect == dialect.Postgres {
		return s.ForUpdate()
	}
	return s
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b), nil
}

func decodeJSON(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// nullable stores empty strings as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
