package tracking

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/cache"
	"github.com/BearBump/DVCPortal/internal/codegen"
	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/pkg/errors"
)

const (
	MsgTrackingNotFound    = "Không tìm thấy hồ sơ với mã số này"
	MsgApplicationNotFound = "Không tìm thấy hồ sơ với mã này"

	// сколько раз перегенерировать код, если вставка упёрлась в дубль
	createAttempts = 3
)

// Repository stores user-created tracking records. InsertRecord must not
// overwrite: an existing code yields apperr.ErrDuplicateCode.
type Repository interface {
	InsertRecord(ctx context.Context, rec *models.TrackingRecord) error
	GetRecord(ctx context.Context, code string) (*models.TrackingRecord, error)
	HasRecord(ctx context.Context, code string) (bool, error)
}

type Service struct {
	repo  Repository
	gen   *codegen.Generator
	cache cache.BytesCache
	ttl   time.Duration
	seeds map[string]models.TrackingRecord
}

func New(repo Repository, gen *codegen.Generator, c cache.BytesCache, ttl time.Duration) *Service {
	seeds := make(map[string]models.TrackingRecord)
	for _, r := range seedRecords() {
		seeds[r.Code] = r
	}
	return &Service{repo: repo, gen: gen, cache: c, ttl: ttl, seeds: seeds}
}

// Normalize is the single place tracking codes are canonicalized.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Get looks up a record by tracking code.
func (s *Service) Get(ctx context.Context, code string) (*models.TrackingRecord, error) {
	return s.find(ctx, code, MsgTrackingNotFound)
}

// GetApplication is Get with the wording of the applications endpoint.
func (s *Service) GetApplication(ctx context.Context, code string) (*models.TrackingRecord, error) {
	return s.find(ctx, code, MsgApplicationNotFound)
}

// Create assigns a fresh HS code to rec and stores it. Seed codes and codes
// already in the repository are never reused.
func (s *Service) Create(ctx context.Context, rec models.TrackingRecord) (*models.TrackingRecord, error) {
	taken := func(code string) bool {
		if _, ok := s.seeds[code]; ok {
			return true
		}
		ok, err := s.repo.HasRecord(ctx, code)
		// при ошибке считаем свободным: дубль всё равно поймает InsertRecord
		return err == nil && ok
	}

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		code, err := s.gen.Next(codegen.Application, taken)
		if err != nil {
			return nil, err
		}
		rec.Code = code
		err = s.repo.InsertRecord(ctx, &rec)
		if err == nil {
			return &rec, nil
		}
		if apperr.KindOf(err) != apperr.KindDuplicate {
			return nil, errors.Wrap(err, "insert tracking record")
		}
		lastErr = err
		slog.Warn("tracking code collision, retrying", "code", code, "attempt", i+1)
	}
	return nil, lastErr
}

func (s *Service) find(ctx context.Context, code, notFoundMsg string) (*models.TrackingRecord, error) {
	code = Normalize(code)
	if code == "" {
		return nil, apperr.NotFound(notFoundMsg)
	}
	if r, ok := s.seeds[code]; ok {
		return &r, nil
	}

	if s.cacheEnabled() {
		if b, ok, err := s.cache.Get(ctx, cacheKey(code)); err == nil && ok {
			var r models.TrackingRecord
			if json.Unmarshal(b, &r) == nil {
				return &r, nil
			}
		}
	}

	r, err := s.repo.GetRecord(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "get tracking record")
	}
	if r == nil {
		return nil, apperr.NotFound(notFoundMsg)
	}

	// записи неизменяемы, инвалидация не нужна
	if s.cacheEnabled() {
		if b, err := json.Marshal(r); err == nil {
			_ = s.cache.Set(ctx, cacheKey(code), b, s.ttl)
		}
	}
	return r, nil
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

func cacheKey(code string) string {
	return "tracking:" + code
}
