package pgtracking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// InsertRecord вставляет запись; существующий код не перезаписывается,
// вместо этого возвращается apperr.ErrDuplicateCode.
func (s *Storage) InsertRecord(ctx context.Context, rec *models.TrackingRecord) error {
	applicant, err := json.Marshal(rec.Applicant)
	if err != nil {
		return errors.Wrap(err, "marshal applicant")
	}
	history := rec.StatusHistory
	if history == nil {
		history = []models.StatusEntry{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return errors.Wrap(err, "marshal status history")
	}
	docs := rec.Documents
	if docs == nil {
		docs = []string{}
	}
	docsJSON, err := json.Marshal(docs)
	if err != nil {
		return errors.Wrap(err, "marshal documents")
	}
	createdAt := time.Now().UTC()
	if rec.CreatedAt != nil {
		createdAt = rec.CreatedAt.UTC()
	}

	tag, err := s.db.Exec(ctx, `
INSERT INTO tracking_records (
  code, service_id, service_name, applicant, submit_date, status, status_history,
  estimated_completion, agency, fee, documents, delivery_method, payment_method, created_at
)
VALUES ($1,$2,$3,$4::jsonb,$5,$6,$7::jsonb,$8,$9,$10,$11::jsonb,$12,$13,$14)
ON CONFLICT (code) DO NOTHING
`, rec.Code, rec.ServiceID, rec.ServiceName, string(applicant), rec.SubmitDate, rec.Status, string(historyJSON),
		rec.EstimatedCompletion, rec.Agency, rec.Fee, string(docsJSON), rec.DeliveryMethod, rec.PaymentMethod, createdAt)
	if err != nil {
		return errors.Wrap(err, "insert tracking record")
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrDuplicateCode
	}
	return nil
}

// GetRecord returns nil when the code is unknown.
func (s *Storage) GetRecord(ctx context.Context, code string) (*models.TrackingRecord, error) {
	var (
		r                            models.TrackingRecord
		applicant, history, docsJSON []byte
		createdAt                    time.Time
	)
	err := s.db.QueryRow(ctx, `
SELECT
  code, service_id, service_name, applicant, submit_date, status, status_history,
  estimated_completion, agency, fee, documents, delivery_method, payment_method, created_at
FROM tracking_records
WHERE code = $1
`, code).Scan(
		&r.Code, &r.ServiceID, &r.ServiceName, &applicant, &r.SubmitDate, &r.Status, &history,
		&r.EstimatedCompletion, &r.Agency, &r.Fee, &docsJSON, &r.DeliveryMethod, &r.PaymentMethod, &createdAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select tracking record")
	}

	if err := json.Unmarshal(applicant, &r.Applicant); err != nil {
		return nil, errors.Wrap(err, "unmarshal applicant")
	}
	if err := json.Unmarshal(history, &r.StatusHistory); err != nil {
		return nil, errors.Wrap(err, "unmarshal status history")
	}
	if err := json.Unmarshal(docsJSON, &r.Documents); err != nil {
		return nil, errors.Wrap(err, "unmarshal documents")
	}
	createdAt = createdAt.UTC()
	r.CreatedAt = &createdAt
	return &r, nil
}

func (s *Storage) HasRecord(ctx context.Context, code string) (bool, error) {
	var ok bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tracking_records WHERE code = $1)`, code).Scan(&ok); err != nil {
		return false, errors.Wrap(err, "exists tracking record")
	}
	return ok, nil
}

func (s *Storage) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tracking_records`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count tracking records")
	}
	return n, nil
}
