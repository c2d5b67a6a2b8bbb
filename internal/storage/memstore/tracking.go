package memstore

import (
	"context"

	"github.com/BearBump/DVCPortal/internal/models"
)

// TrackingStore is the default, process-lifetime tracking repository.
type TrackingStore struct {
	records *Collection[models.TrackingRecord]
}

func NewTrackingStore() *TrackingStore {
	return &TrackingStore{
		records: NewCollection(func(r models.TrackingRecord) string { return r.Code }),
	}
}

// InsertRecord fails with apperr.ErrDuplicateCode when the code exists.
func (s *TrackingStore) InsertRecord(_ context.Context, rec *models.TrackingRecord) error {
	return s.records.Insert(*rec)
}

// GetRecord returns nil when the code is unknown.
func (s *TrackingStore) GetRecord(_ context.Context, code string) (*models.TrackingRecord, error) {
	r, ok := s.records.Get(code)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *TrackingStore) HasRecord(_ context.Context, code string) (bool, error) {
	return s.records.Has(code), nil
}

func (s *TrackingStore) CountRecords(_ context.Context) (int, error) {
	return s.records.Len(), nil
}
