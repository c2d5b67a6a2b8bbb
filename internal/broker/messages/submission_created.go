package messages

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Виды заявок, которые уходят в топик submissions.
const (
	KindContact       = "contact"
	KindApplication   = "application"
	KindAppointment   = "appointment"
	KindSupportTicket = "support_ticket"
	KindReview        = "review"
	KindSubscription  = "subscription"
	KindFeedback      = "feedback"
)

// SubmissionCreated is published once per accepted submission.
type SubmissionCreated struct {
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	ServiceID string    `json:"service_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DecodeSubmissionCreated parses a topic payload. Kind and code are required.
func DecodeSubmissionCreated(b []byte) (SubmissionCreated, error) {
	var m SubmissionCreated
	if err := json.Unmarshal(b, &m); err != nil {
		return SubmissionCreated{}, errors.Wrap(err, "decode submission.created")
	}
	if m.Kind == "" || m.Code == "" {
		return SubmissionCreated{}, errors.Errorf("submission.created without kind or code: %q", b)
	}
	return m, nil
}
