package portal_api

import (
	"net/http"

	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgSubscribed       = "Đăng ký thành công! Bạn sẽ nhận được thông báo về cuộc bầu cử."
	msgFeedbackAccepted = "Phản ánh của bạn đã được tiếp nhận. Chúng tôi sẽ xem xét và phản hồi sớm nhất."
)

func (a *PortalAPI) electionInfo(w http.ResponseWriter, r *http.Request) {
	writeData(w, a.catalog.ElectionInfo())
}

func (a *PortalAPI) subscribe(w http.ResponseWriter, r *http.Request) {
	var in models.SubscriptionInput
	if err := decodeJSON(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	sub, err := a.elections.Subscribe(r.Context(), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeCreated(w, msgSubscribed, map[string]string{"subscriptionId": sub.SubscriptionID})
}

func (a *PortalAPI) getSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := a.elections.GetSubscription(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, sub)
}

func (a *PortalAPI) checkVoter(w http.ResponseWriter, r *http.Request) {
	var in models.VoterCheckInput
	if err := decodeJSON(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	res, err := a.elections.CheckVoter(in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, res)
}

func (a *PortalAPI) pollingStations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out := a.elections.PollingStations(q.Get("province"), q.Get("district"), q.Get("ward"))
	total := len(out)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out, Total: &total})
}

func (a *PortalAPI) electionNews(w http.ResponseWriter, r *http.Request) {
	out, err := a.elections.News(r.URL.Query().Get("limit"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, out)
}

func (a *PortalAPI) candidates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeData(w, a.elections.Candidates(q.Get("constituency"), q.Get("position")))
}

func (a *PortalAPI) electionStatistics(w http.ResponseWriter, r *http.Request) {
	writeData(w, a.elections.Statistics())
}

func (a *PortalAPI) faq(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, cats := a.elections.FAQ(q.Get("category"), q.Get("q"))
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out, Categories: cats})
}

func (a *PortalAPI) calendar(w http.ResponseWriter, r *http.Request) {
	writeData(w, a.elections.Calendar())
}

func (a *PortalAPI) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var in models.FeedbackInput
	if err := decodeJSON(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}
	fb, err := a.elections.SubmitFeedback(r.Context(), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeCreated(w, msgFeedbackAccepted, map[string]string{
		"ticketCode": fb.TicketCode,
		"status":     fb.Status,
	})
}

func (a *PortalAPI) getFeedback(w http.ResponseWriter, r *http.Request) {
	fb, err := a.elections.GetFeedback(chi.URLParam(r, "code"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, fb)
}

func (a *PortalAPI) results(w http.ResponseWriter, r *http.Request) {
	writeData(w, a.elections.Results())
}
