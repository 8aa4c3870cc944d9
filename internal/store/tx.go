package store

import (
	"context"
	"errors"
	"fmt"
)

// Tx exposes the repositories bound to one open transaction.
type Tx struct {
	c conn
}

func (t *Tx) Assessments() AssessmentRepo { return &assessmentRepo{t.c} }
func (t *Tx) Level2() Level2Repo           { return &level2Repo{t.c} }
func (t *Tx) Progress() ProgressRepo       { return &progressRepo{t.c} }
func (t *Tx) EventRepo() EventRepo         { return &eventRepo{t.c} }

// Atomically runs fn in a single transaction while holding the lock for key.
// Every write fn makes commits together or not at all. An empty key skips
// the lock, for anonymous submissions that touch no per-subject row.
func (s *Store) Atomically(ctx context.Context, key string, fn func(ctx context.Context, tx *Tx) error) (err error) {
	if key != "" {
		unlock, err := s.locker.Lock(ctx, key)
		if err != nil {
			return fmt.Errorf("lock %q: %w", key, err)
		}
		defer unlock()
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &Tx{c: conn{ex: tx, dialect: s.drv.Dialect(), seq: s.seq, inTx: true}}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
