// Package elections serves the election section of the portal: demo voter
// lookup, polling stations, candidates, FAQ, calendar, results, and the
// subscription and feedback forms.
package elections

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/broker/messages"
	"github.com/BearBump/DVCPortal/internal/codegen"
	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/BearBump/DVCPortal/internal/query"
	"github.com/BearBump/DVCPortal/internal/storage/memstore"
	"github.com/BearBump/DVCPortal/internal/validate"
	"github.com/pkg/errors"
)

const (
	MsgAlreadySubscribed    = "Email hoặc số điện thoại đã được đăng ký"
	MsgSubscriptionNotFound = "Không tìm thấy đăng ký với mã này"
	MsgFeedbackNotFound     = "Không tìm thấy phản ánh với mã này"

	DefaultNewsLimit = 10
	votingAge        = 18

	ResultsNotStarted = "not-started"
	ResultsCounting   = "counting"
)

// Время Вьетнама (UTC+7), не зависит от TZ сервера.
var vnZone = time.FixedZone("ICT", 7*60*60)

// Publisher announces accepted forms. A nil Publisher is allowed.
type Publisher interface {
	PublishSubmission(ctx context.Context, msg messages.SubmissionCreated) error
}

type Service struct {
	data       models.ElectionData
	electionAt time.Time

	gen *codegen.Generator
	pub Publisher
	now func() time.Time

	subscriptions *memstore.Collection[models.Subscription]
	feedback      *memstore.Collection[models.Feedback]
}

func New(data models.ElectionData, gen *codegen.Generator, pub Publisher) (*Service, error) {
	at, err := time.ParseInLocation("2006-01-02T15:04:05", data.ElectionDate, vnZone)
	if err != nil {
		return nil, errors.Wrap(err, "parse election date")
	}
	return &Service{
		data:          data,
		electionAt:    at,
		gen:           gen,
		pub:           pub,
		now:           time.Now,
		subscriptions: memstore.NewCollection(func(s models.Subscription) string { return s.SubscriptionID }),
		feedback:      memstore.NewCollection(func(f models.Feedback) string { return f.TicketCode }),
	}, nil
}

// WithClock replaces the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Subscribe registers for election notifications. An email or phone already
// subscribed is rejected; the check and insert are atomic.
func (s *Service) Subscribe(ctx context.Context, in models.SubscriptionInput) (models.Subscription, error) {
	if err := validate.Subscription(in); err != nil {
		return models.Subscription{}, err
	}
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	sub := models.Subscription{
		SubscriptionID: s.gen.Numeric(codegen.SubscriptionPrefix),
		Email:          email,
		Phone:          phone,
		Name:           strings.TrimSpace(in.Name),
		Province:       strings.TrimSpace(in.Province),
		District:       strings.TrimSpace(in.District),
		Ward:           strings.TrimSpace(in.Ward),
		CreatedAt:      s.now().UTC(),
		Status:         models.SubscriptionStatusActive,
	}
	conflict := func(x models.Subscription) bool {
		return (email != "" && strings.EqualFold(x.Email, email)) || (phone != "" && x.Phone == phone)
	}
	if err := s.subscriptions.InsertUnless(sub, conflict, apperr.Validation(MsgAlreadySubscribed, "email", "phone")); err != nil {
		return models.Subscription{}, err
	}
	s.publish(ctx, messages.KindSubscription, sub.SubscriptionID, sub.CreatedAt)
	return sub, nil
}

func (s *Service) GetSubscription(id string) (models.Subscription, error) {
	sub, ok := s.subscriptions.Get(strings.ToUpper(strings.TrimSpace(id)))
	if !ok {
		return models.Subscription{}, apperr.NotFound(MsgSubscriptionNotFound)
	}
	return sub, nil
}

func (s *Service) SubmitFeedback(ctx context.Context, in models.FeedbackInput) (models.Feedback, error) {
	if err := validate.Feedback(in); err != nil {
		return models.Feedback{}, err
	}
	now := s.now().UTC()
	fb, err := s.feedback.InsertCoded(s.gen, codegen.Feedback, func(code string) models.Feedback {
		f := models.Feedback{
			TicketCode:   code,
			Type:         strings.TrimSpace(in.Type),
			Subject:      strings.TrimSpace(in.Subject),
			Description:  in.Description,
			Location:     strings.TrimSpace(in.Location),
			ContactEmail: strings.TrimSpace(in.ContactEmail),
			ContactPhone: strings.TrimSpace(in.ContactPhone),
			Anonymous:    in.Anonymous,
			Status:       models.FeedbackStatusReceived,
			CreatedAt:    now,
		}
		if f.Anonymous {
			f.ContactEmail, f.ContactPhone = "", ""
		}
		return f
	})
	if err != nil {
		return models.Feedback{}, err
	}
	s.publish(ctx, messages.KindFeedback, fb.TicketCode, now)
	return fb, nil
}

func (s *Service) GetFeedback(code string) (models.Feedback, error) {
	fb, ok := s.feedback.Get(strings.ToUpper(strings.TrimSpace(code)))
	if !ok {
		return models.Feedback{}, apperr.NotFound(MsgFeedbackNotFound)
	}
	return fb, nil
}

func (s *Service) publish(ctx context.Context, kind, code string, at time.Time) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishSubmission(ctx, messages.SubmissionCreated{Kind: kind, Code: code, CreatedAt: at}); err != nil {
		slog.Warn("publish submission failed", "kind", kind, "code", code, "err", err)
	}
}

func (s *Service) News(rawLimit string) ([]models.ElectionNews, error) {
	limit, err := query.ParseLimit(rawLimit, DefaultNewsLimit)
	if err != nil {
		return nil, err
	}
	return query.Head(s.data.News, limit), nil
}

func (s *Service) PollingStations(province, district, ward string) []models.PollingStation {
	return query.Filter(s.data.PollingStations,
		query.Contains(province, func(p models.PollingStation) string { return p.Province }),
		query.Contains(district, func(p models.PollingStation) string { return p.District }),
		query.Contains(ward, func(p models.PollingStation) string { return p.Ward }),
	)
}

func (s *Service) Candidates(constituency, position string) []models.Candidate {
	return query.Filter(s.data.Candidates,
		query.Contains(constituency, func(c models.Candidate) string { return c.Constituency }),
		query.Contains(position, func(c models.Candidate) string { return c.Position }),
	)
}

// Statistics returns the dataset figures stamped with the current time.
func (s *Service) Statistics() map[string]any {
	out := make(map[string]any, len(s.data.Statistics)+1)
	for k, v := range s.data.Statistics {
		out[k] = v
	}
	out["lastUpdated"] = s.now().UTC().Format(time.RFC3339)
	return out
}

// FAQ filters by exact category and by q over question and answer.
func (s *Service) FAQ(category, q string) ([]models.FAQ, []models.FAQCategory) {
	items := query.Filter(s.data.FAQ,
		query.Equals(category, func(f models.FAQ) string { return f.Category }),
		query.Contains(q,
			func(f models.FAQ) string { return f.Question },
			func(f models.FAQ) string { return f.Answer },
		),
	)
	cats := make([]models.FAQCategory, len(s.data.FAQCategories))
	copy(cats, s.data.FAQCategories)
	return items, cats
}

func (s *Service) Calendar() []models.CalendarEvent {
	return query.Head(s.data.Calendar, len(s.data.Calendar))
}
