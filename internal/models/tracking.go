package models

import "time"

// Статусы заявления (в том виде, в каком их ждёт фронт).
const (
	TrackingStatusReceived   = "received"
	TrackingStatusVerifying  = "verifying"
	TrackingStatusProcessing = "processing"
	TrackingStatusApproval   = "approval"
	TrackingStatusCompleted  = "completed"
	TrackingStatusPending    = "pending"
)

type Applicant struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	IDNumber string `json:"idNumber,omitempty"`
	Address  string `json:"address,omitempty"`
}

type StatusEntry struct {
	Status string `json:"status"`
	Date   string `json:"date"`
	Note   string `json:"note"`
}

// TrackingRecord is an application as seen through its tracking code.
type TrackingRecord struct {
	Code                string        `json:"code"`
	ServiceID           string        `json:"serviceId,omitempty"`
	ServiceName         string        `json:"serviceName"`
	Applicant           Applicant     `json:"applicant"`
	SubmitDate          string        `json:"submitDate"`
	Status              string        `json:"status"`
	StatusHistory       []StatusEntry `json:"statusHistory"`
	EstimatedCompletion string        `json:"estimatedCompletion"`
	Agency              string        `json:"agency"`
	Fee                 string        `json:"fee,omitempty"`
	Documents           []string      `json:"documents,omitempty"`
	DeliveryMethod      string        `json:"deliveryMethod,omitempty"`
	PaymentMethod       string        `json:"paymentMethod,omitempty"`
	CreatedAt           *time.Time    `json:"createdAt,omitempty"`
}

type ApplicationInput struct {
	ServiceID      string    `json:"serviceId"`
	Applicant      Applicant `json:"applicant"`
	Documents      []string  `json:"documents"`
	DeliveryMethod string    `json:"deliveryMethod"`
	PaymentMethod  string    `json:"paymentMethod"`
}
