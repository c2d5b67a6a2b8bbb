package pgtracking

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS tracking_records (
  code TEXT PRIMARY KEY,
  service_id TEXT NOT NULL DEFAULT '',
  service_name TEXT NOT NULL,
  applicant JSONB NOT NULL,
  submit_date TEXT NOT NULL,
  status TEXT NOT NULL,
  status_history JSONB NOT NULL DEFAULT '[]',
  estimated_completion TEXT NOT NULL DEFAULT '',
  agency TEXT NOT NULL DEFAULT '',
  fee TEXT NOT NULL DEFAULT '',
  documents JSONB NOT NULL DEFAULT '[]',
  delivery_method TEXT NOT NULL DEFAULT '',
  payment_method TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_tracking_records_service_id ON tracking_records(service_id)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
