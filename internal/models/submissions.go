package models

import "time"

const (
	ReviewStatusApproved = "approved"

	ContactStatusPending     = "pending"
	AppointmentStatusPending = "pending"
	FeedbackStatusReceived   = "received"
	SubscriptionStatusActive = "active"
	SupportTicketStatusOpen  = "open"
	DefaultReviewerName      = "Ẩn danh"
	DefaultDeliveryMethod    = "pickup"
	DefaultPaymentMethod     = "cash"
)

type Contact struct {
	TicketID  string    `json:"ticketId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Phone   string `json:"phone"`
}

type Review struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"serviceId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

type ReviewInput struct {
	// Rating is a pointer so a missing value differs from zero.
	Rating    *float64 `json:"rating"`
	Comment   string   `json:"comment"`
	UserName  string   `json:"userName"`
	UserEmail string   `json:"userEmail"`
}

type ReviewStats struct {
	Total        int         `json:"total"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

type Appointment struct {
	Code        string    `json:"code"`
	ServiceID   string    `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	FullName    string    `json:"fullName"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Notes       string    `json:"notes"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AppointmentInput struct {
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
	Location  string `json:"location"`
}

type SupportTicket struct {
	Code        string    `json:"code"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SupportTicketInput struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Category    string `json:"category"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}
