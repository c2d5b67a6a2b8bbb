package submissions

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/broker/messages"
	"github.com/BearBump/DVCPortal/internal/codegen"
	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/BearBump/DVCPortal/internal/query"
	"github.com/BearBump/DVCPortal/internal/storage/memstore"
	"github.com/BearBump/DVCPortal/internal/validate"
	"github.com/google/uuid"
)

const (
	MsgContactNotFound       = "Không tìm thấy yêu cầu với mã này"
	MsgAppointmentNotFound   = "Không tìm thấy lịch hẹn với mã này"
	MsgSupportTicketNotFound = "Không tìm thấy phiếu hỗ trợ với mã này"

	noteReceived   = "Hồ sơ đã được tiếp nhận"
	processingDays = 7
)

// Catalog resolves the service a submission refers to.
type Catalog interface {
	Lookup(id string) (models.Service, bool)
}

// Registry is the tracking registry applications are written to.
type Registry interface {
	Create(ctx context.Context, rec models.TrackingRecord) (*models.TrackingRecord, error)
}

// Publisher announces accepted submissions. A nil Publisher is allowed.
type Publisher interface {
	PublishSubmission(ctx context.Context, msg messages.SubmissionCreated) error
}

type Service struct {
	catalog  Catalog
	registry Registry
	gen      *codegen.Generator
	pub      Publisher
	now      func() time.Time

	contacts     *memstore.Collection[models.Contact]
	reviews      *memstore.Collection[models.Review]
	appointments *memstore.Collection[models.Appointment]
	tickets      *memstore.Collection[models.SupportTicket]
}

func New(catalog Catalog, registry Registry, gen *codegen.Generator, pub Publisher) *Service {
	return &Service{
		catalog:      catalog,
		registry:     registry,
		gen:          gen,
		pub:          pub,
		now:          time.Now,
		contacts:     memstore.NewCollection(func(c models.Contact) string { return c.TicketID }),
		reviews:      memstore.NewCollection(func(r models.Review) string { return r.ID }),
		appointments: memstore.NewCollection(func(a models.Appointment) string { return a.Code }),
		tickets:      memstore.NewCollection(func(t models.SupportTicket) string { return t.Code }),
	}
}

// newWithClock is used by tests.
func newWithClock(catalog Catalog, registry Registry, gen *codegen.Generator, pub Publisher, now func() time.Time) *Service {
	s := New(catalog, registry, gen, pub)
	s.now = now
	return s
}

func (s *Service) CreateContact(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	if err := validate.Contact(in); err != nil {
		return models.Contact{}, err
	}
	c := models.Contact{
		TicketID:  s.gen.Numeric(codegen.ContactPrefix),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
		Status:    models.ContactStatusPending,
	}
	if err := s.contacts.Insert(c); err != nil {
		return models.Contact{}, err
	}
	s.publish(ctx, messages.KindContact, c.TicketID, "", c.CreatedAt)
	return c, nil
}

func (s *Service) GetContact(ticketID string) (models.Contact, error) {
	c, ok := s.contacts.Get(strings.ToUpper(strings.TrimSpace(ticketID)))
	if !ok {
		return models.Contact{}, apperr.NotFound(MsgContactNotFound)
	}
	return c, nil
}

// CreateApplication files an application and registers its tracking record
// with status "received".
func (s *Service) CreateApplication(ctx context.Context, in models.ApplicationInput) (*models.TrackingRecord, error) {
	if err := validate.Application(in); err != nil {
		return nil, err
	}
	svc, ok := s.catalog.Lookup(strings.TrimSpace(in.ServiceID))
	if !ok {
		return nil, apperr.NotFound(apperr.MsgServiceNotFound)
	}

	now := s.now().UTC()
	docs := in.Documents
	if docs == nil {
		docs = []string{}
	}
	rec := models.TrackingRecord{
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Applicant: models.Applicant{
			FullName: strings.TrimSpace(in.Applicant.FullName),
			Phone:    strings.TrimSpace(in.Applicant.Phone),
			Email:    strings.TrimSpace(in.Applicant.Email),
			IDNumber: strings.TrimSpace(in.Applicant.IDNumber),
			Address:  strings.TrimSpace(in.Applicant.Address),
		},
		SubmitDate: now.Format(time.DateOnly),
		Status:     models.TrackingStatusReceived,
		StatusHistory: []models.StatusEntry{
			{Status: models.TrackingStatusReceived, Date: now.Format(time.RFC3339), Note: noteReceived},
		},
		EstimatedCompletion: now.AddDate(0, 0, processingDays).Format(time.DateOnly),
		Agency:              svc.Agency,
		Fee:                 svc.Fee,
		Documents:           docs,
		DeliveryMethod:      orDefault(in.DeliveryMethod, models.DefaultDeliveryMethod),
		PaymentMethod:       orDefault(in.PaymentMethod, models.DefaultPaymentMethod),
		CreatedAt:           &now,
	}

	out, err := s.registry.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, messages.KindApplication, out.Code, svc.ID, now)
	return out, nil
}

func (s *Service) CreateAppointment(ctx context.Context, in models.AppointmentInput) (models.Appointment, error) {
	if err := validate.Appointment(in); err != nil {
		return models.Appointment{}, err
	}
	svc, ok := s.catalog.Lookup(strings.TrimSpace(in.ServiceID))
	if !ok {
		return models.Appointment{}, apperr.NotFound(apperr.MsgServiceNotFound)
	}

	now := s.now().UTC()
	a, err := s.appointments.InsertCoded(s.gen, codegen.Appointment, func(code string) models.Appointment {
		return models.Appointment{
			Code:        code,
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Date:        strings.TrimSpace(in.Date),
			Time:        strings.TrimSpace(in.Time),
			FullName:    strings.TrimSpace(in.FullName),
			Phone:       strings.TrimSpace(in.Phone),
			Email:       strings.TrimSpace(in.Email),
			Notes:       in.Notes,
			Location:    orDefault(in.Location, svc.Agency),
			Status:      models.AppointmentStatusPending,
			CreatedAt:   now,
		}
	})
	if err != nil {
		return models.Appointment{}, err
	}
	s.publish(ctx, messages.KindAppointment, a.Code, svc.ID, now)
	return a, nil
}

func (s *Service) GetAppointment(code string) (models.Appointment, error) {
	a, ok := s.appointments.Get(normalizeCode(code))
	if !ok {
		return models.Appointment{}, apperr.NotFound(MsgAppointmentNotFound)
	}
	return a, nil
}

func (s *Service) CreateSupportTicket(ctx context.Context, in models.SupportTicketInput) (models.SupportTicket, error) {
	if err := validate.SupportTicket(in); err != nil {
		return models.SupportTicket{}, err
	}
	now := s.now().UTC()
	t, err := s.tickets.InsertCoded(s.gen, codegen.SupportTicket, func(code string) models.SupportTicket {
		return models.SupportTicket{
			Code:        code,
			Subject:     strings.TrimSpace(in.Subject),
			Description: in.Description,
			Category:    strings.TrimSpace(in.Category),
			FullName:    strings.TrimSpace(in.FullName),
			Email:       strings.TrimSpace(in.Email),
			Phone:       strings.TrimSpace(in.Phone),
			Status:      models.SupportTicketStatusOpen,
			CreatedAt:   now,
		}
	})
	if err != nil {
		return models.SupportTicket{}, err
	}
	s.publish(ctx, messages.KindSupportTicket, t.Code, "", now)
	return t, nil
}

func (s *Service) GetSupportTicket(code string) (models.SupportTicket, error) {
	t, ok := s.tickets.Get(normalizeCode(code))
	if !ok {
		return models.SupportTicket{}, apperr.NotFound(MsgSupportTicketNotFound)
	}
	return t, nil
}

// CreateReview validates the rating before the service lookup, so a bad
// rating on an unknown service is still a 400.
func (s *Service) CreateReview(ctx context.Context, serviceID string, in models.ReviewInput) (models.Review, error) {
	rating, err := validate.Rating(in.Rating)
	if err != nil {
		return models.Review{}, err
	}
	if _, ok := s.catalog.Lookup(serviceID); !ok {
		return models.Review{}, apperr.NotFound(apperr.MsgServiceNotFound)
	}

	r := models.Review{
		ID:        uuid.NewString(),
		ServiceID: serviceID,
		Rating:    rating,
		Comment:   in.Comment,
		UserName:  orDefault(in.UserName, models.DefaultReviewerName),
		UserEmail: strings.TrimSpace(in.UserEmail),
		CreatedAt: s.now().UTC(),
		Status:    models.ReviewStatusApproved,
	}
	if err := s.reviews.Insert(r); err != nil {
		return models.Review{}, err
	}
	s.publish(ctx, messages.KindReview, r.ID, serviceID, r.CreatedAt)
	return r, nil
}

type ReviewPage struct {
	Reviews    []models.Review    `json:"reviews"`
	Stats      models.ReviewStats `json:"stats"`
	Pagination query.Pagination   `json:"pagination"`
}

// ListReviews returns approved reviews of a service. Stats cover all of
// them, not just the page.
func (s *Service) ListReviews(serviceID, rawPage, rawLimit string) (ReviewPage, error) {
	page, err := query.ParsePage(rawPage, rawLimit, query.DefaultLimit)
	if err != nil {
		return ReviewPage{}, err
	}
	all := s.reviews.Where(func(r models.Review) bool {
		return r.ServiceID == serviceID && r.Status == models.ReviewStatusApproved
	})
	out, meta := query.Paginate(all, page)
	return ReviewPage{Reviews: out, Stats: reviewStats(all), Pagination: meta}, nil
}

func reviewStats(rs []models.Review) models.ReviewStats {
	st := models.ReviewStats{
		Total:        len(rs),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(rs) == 0 {
		return st
	}
	sum := 0
	for _, r := range rs {
		sum += r.Rating
		st.Distribution[r.Rating]++
	}
	st.Average = math.Round(float64(sum)/float64(len(rs))*10) / 10
	return st
}

func (s *Service) publish(ctx context.Context, kind, code, serviceID string, at time.Time) {
	if s.pub == nil {
		return
	}
	err := s.pub.PublishSubmission(ctx, messages.SubmissionCreated{
		Kind:      kind,
		Code:      code,
		ServiceID: serviceID,
		CreatedAt: at,
	})
	if err != nil {
		// заявка уже сохранена, событие не критично
		slog.Warn("publish submission failed", "kind", kind, "code", code, "err", err)
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
