// Package validate checks submitted forms before they reach storage.
package validate

import (
	"math"
	"regexp"
	"strings"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/models"
)

const (
	MsgRating          = "Vui lòng đánh giá từ 1-5 sao"
	MsgSubscribeTarget = "Vui lòng cung cấp email hoặc số điện thoại"
	MsgVoterFields     = "Vui lòng cung cấp đầy đủ thông tin (CCCD, họ tên, năm sinh)"
	MsgFeedbackFields  = "Vui lòng cung cấp đầy đủ thông tin (loại, tiêu đề, mô tả)"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// missing returns names of blank values; args are name/value pairs.
func missing(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if blank(pairs[i+1]) {
			out = append(out, pairs[i])
		}
	}
	return out
}

func Contact(in models.ContactInput) error {
	if m := missing("name", in.Name, "email", in.Email, "message", in.Message); len(m) > 0 {
		return apperr.Validation(apperr.MsgRequiredFields, m...)
	}
	if !IsEmail(strings.TrimSpace(in.Email)) {
		return apperr.Validation(apperr.MsgInvalidEmail, "email")
	}
	return nil
}

// Rating returns the integer rating or a validation error.
func Rating(r *float64) (int, error) {
	if r == nil || math.IsNaN(*r) || *r != math.Trunc(*r) || *r < 1 || *r > 5 {
		return 0, apperr.Validation(MsgRating, "rating")
	}
	return int(*r), nil
}

func Application(in models.ApplicationInput) error {
	if m := missing("serviceId", in.ServiceID, "applicant.fullName", in.Applicant.FullName, "applicant.phone", in.Applicant.Phone); len(m) > 0 {
		return apperr.Validation(apperr.MsgRequiredFields, m...)
	}
	return nil
}

func Appointment(in models.AppointmentInput) error {
	if m := missing("serviceId", in.ServiceID, "date", in.Date, "time", in.Time, "fullName", in.FullName, "phone", in.Phone); len(m) > 0 {
		return apperr.Validation(apperr.MsgRequiredFields, m...)
	}
	return nil
}

func Feedback(in models.FeedbackInput) error {
	if m := missing("type", in.Type, "subject", in.Subject, "description", in.Description); len(m) > 0 {
		return apperr.Validation(MsgFeedbackFields, m...)
	}
	return nil
}

func Subscription(in models.SubscriptionInput) error {
	if blank(in.Email) && blank(in.Phone) {
		return apperr.Validation(MsgSubscribeTarget, "email", "phone")
	}
	return nil
}

func VoterCheck(in models.VoterCheckInput) error {
	m := missing("idNumber", in.IDNumber, "fullName", in.FullName)
	if in.BirthYear <= 0 {
		m = append(m, "birthYear")
	}
	if len(m) > 0 {
		return apperr.Validation(MsgVoterFields, m...)
	}
	return nil
}

func SupportTicket(in models.SupportTicketInput) error {
	m := missing("subject", in.Subject, "description", in.Description, "fullName", in.FullName)
	if blank(in.Email) && blank(in.Phone) {
		m = append(m, "email", "phone")
	}
	if len(m) > 0 {
		return apperr.Validation(apperr.MsgRequiredFields, m...)
	}
	if !blank(in.Email) && !IsEmail(strings.TrimSpace(in.Email)) {
		return apperr.Validation(apperr.MsgInvalidEmail, "email")
	}
	return nil
}
