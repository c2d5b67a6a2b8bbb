package portal_api

import (
	"net/http"

	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgContactAccepted     = "Câu hỏi của bạn đã được gửi thành công. Chúng tôi sẽ phản hồi trong vòng 24 giờ."
	msgReviewAccepted      = "Cảm ơn bạn đã đánh giá dịch vụ!"
	msgAppointmentAccepted = "Đặt lịch hẹn thành công! Vui lòng chờ xác nhận."
	msgApplicationAccepted = "Nộp hồ sơ thành công!"
	msgTicketAccepted      = "Yêu cầu hỗ trợ của bạn đã được tiếp nhận. Chúng tôi sẽ liên hệ lại sớm nhất."
)

func (a *PortalAPI) createContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	c, err := a.submissions.CreateContact(r.Context(), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeCreated(w, msgContactAccepted, map[string]string{"ticketId": c.TicketID})
}

func (a *PortalAPI) getContact(w http.ResponseWriter, r *http.Request) {
	c, err := a.submissions.GetContact(chi.URLParam(r, "ticketId"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, c)
}

func (a *PortalAPI) createReview(w http.ResponseWriter, r *http.Request) {
	var in models.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	rv, err := a.submissions.CreateReview(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeCreated(w, msgReviewAccepted, rv)
}

func (a *PortalAPI) listReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := a.submissions.ListReviews(chi.URLParam(r, "id"), q.Get("page"), q.Get("limit"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, page)
}

func (a *PortalAPI) createApplication(w http.ResponseWriter, r *http.Request) {
	var in models.ApplicationInput
	if err := decodeJSON(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	rec, err := a.submissions.CreateApplication(r.Context(), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeCreated(w, msgApplicationAccepted, map[string]any{
		"applicationCode": rec.Code,
		"application":     rec,
	})
}

func (a *PortalAPI) getApplication(w http.ResponseWriter, r *http.Request) {
	rec, err := a.tracking.GetApplication(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, rec)
}

func (a *PortalAPI) createAppointment(w http.ResponseWriter, r *http.Request) {
	var in models.AppointmentInput
	if err := decodeJSON(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	ap, err := a.submissions.CreateAppointment(r.Context(), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeCreated(w, msgAppointmentAccepted, map[string]any{
		"appointmentCode": ap.Code,
		"appointment":     ap,
	})
}

func (a *PortalAPI) getAppointment(w http.ResponseWriter, r *http.Request) {
	ap, err := a.submissions.GetAppointment(chi.URLParam(r, "code"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, ap)
}

func (a *PortalAPI) createSupportTicket(w http.ResponseWriter, r *http.Request) {
	var in models.SupportTicketInput
	if err := decodeJSON(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	tk, err := a.submissions.CreateSupportTicket(r.Context(), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeCreated(w, msgTicketAccepted, map[string]any{
		"ticketCode": tk.Code,
		"ticket":     tk,
	})
}

func (a *PortalAPI) getSupportTicket(w http.ResponseWriter, r *http.Request) {
	tk, err := a.submissions.GetSupportTicket(chi.URLParam(r, "code"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, tk)
}
