package portal_api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/BearBump/DVCPortal/data"
	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/cache/rediscache"
	"github.com/BearBump/DVCPortal/internal/codegen"
	"github.com/BearBump/DVCPortal/internal/services/catalog"
	"github.com/BearBump/DVCPortal/internal/services/elections"
	"github.com/BearBump/DVCPortal/internal/services/submissions"
	"github.com/BearBump/DVCPortal/internal/services/tracking"
	"github.com/BearBump/DVCPortal/internal/storage/memstore"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type response struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total      int `json:"total"`
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
	Total      *int            `json:"total"`
	Categories json.RawMessage `json:"categories"`
	Timestamp  string          `json:"timestamp"`
}

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	ds, err := data.LoadDataset("")
	require.NoError(t, err)
	ed, err := data.LoadElections("")
	require.NoError(t, err)
	gen, err := codegen.New(1)
	require.NoError(t, err)

	cat := catalog.New(memstore.NewCatalog(ds))
	trk := tracking.New(memstore.NewTrackingStore(), gen, nil, 0)
	el, err := elections.New(ed, gen, nil)
	require.NoError(t, err)

	return Deps{
		Catalog:     cat,
		Tracking:    trk,
		Submissions: submissions.New(cat, trk, gen, nil),
		Elections:   el,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(newTestDeps(t)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, response) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	code, body := do(t, srv, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, body.Success)
	require.Equal(t, "API is running", body.Message)
	require.NotEmpty(t, body.Timestamp)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	for _, p := range []string{"/api/nope", "/whatever", "/api/services/x/y/z"} {
		code, body := do(t, srv, http.MethodGet, p, "")
		require.Equal(t, http.StatusNotFound, code, p)
		require.False(t, body.Success)
		require.Equal(t, apperr.MsgRouteNotFound, body.Message)
	}
}

func TestListServices_Pagination(t *testing.T) {
	srv := newTestServer(t)

	code, body := do(t, srv, http.MethodGet, "/api/services?page=2&limit=5", "")
	require.Equal(t, http.StatusOK, code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &items))
	require.LessOrEqual(t, len(items), 5)
	require.NotNil(t, body.Pagination)
	require.Equal(t, 2, body.Pagination.Page)
	require.Equal(t, (body.Pagination.Total+4)/5, body.Pagination.TotalPages)

	code, body = do(t, srv, http.MethodGet, "/api/services?page=0", "")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, apperr.MsgInvalidPaging, body.Message)

	code, body = do(t, srv, http.MethodGet, "/api/services?page=99", "")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `[]`, string(body.Data))
}

func TestPagination_HugePageIsEmptyNotPanic(t *testing.T) {
	srv := newTestServer(t)
	for _, p := range []string{
		"/api/services?page=100000000000000000&limit=100",
		"/api/services/x/reviews?page=100000000000000000&limit=100",
		"/api/categories/giao-thong/services?page=9223372036854775807",
	} {
		code, body := do(t, srv, http.MethodGet, p, "")
		require.Equal(t, http.StatusOK, code, p)
		require.True(t, body.Success, p)
	}

	code, body := do(t, srv, http.MethodGet, "/api/services?page=100000000000000000&limit=100", "")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `[]`, string(body.Data))
	require.NotNil(t, body.Pagination)
	require.Equal(t, 100000000000000000, body.Pagination.Page)
}

func TestSearch_ShortQueryEmpty(t *testing.T) {
	srv := newTestServer(t)
	for _, q := range []string{"", "a", "%C4%91"} {
		code, body := do(t, srv, http.MethodGet, "/api/search?q="+q, "")
		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, `{"services":[],"categories":[]}`, string(body.Data))
	}

	_, body := do(t, srv, http.MethodGet, "/api/search?q=c%C4%83n%20c%C6%B0%E1%BB%9Bc", "")
	var res struct {
		Services []map[string]any `json:"services"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &res))
	require.NotEmpty(t, res.Services)
	require.LessOrEqual(t, len(res.Services), 5)
}

func TestServiceDetail_ViewsAndNotFound(t *testing.T) {
	deps := newTestDeps(t)
	srv := httptest.NewServer(New(deps).Handler())
	defer srv.Close()

	before, ok := deps.Catalog.Lookup("cccd-lan-dau")
	require.True(t, ok)

	for i := 1; i <= 2; i++ {
		code, body := do(t, srv, http.MethodGet, "/api/services/cccd-lan-dau", "")
		require.Equal(t, http.StatusOK, code)
		var d struct {
			Views    int             `json:"views"`
			Category json.RawMessage `json:"category"`
			Related  []any           `json:"relatedServices"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &d))
		require.Equal(t, before.Views+i, d.Views)
		require.NotEqual(t, "null", string(d.Category))
		require.NotNil(t, d.Related)
	}

	code, body := do(t, srv, http.MethodGet, "/api/services/nope", "")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, apperr.MsgServiceNotFound, body.Message)
}

func TestServiceDetail_ConcurrentViews(t *testing.T) {
	deps := newTestDeps(t)
	srv := httptest.NewServer(New(deps).Handler())
	defer srv.Close()

	before, _ := deps.Catalog.Lookup("gplx-b1")

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := srv.Client().Get(srv.URL + "/api/services/gplx-b1")
			if err == nil {
				_ = resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	after, _ := deps.Catalog.Lookup("gplx-b1")
	require.Equal(t, before.Views+n, after.Views)
}

func TestReviews(t *testing.T) {
	srv := newTestServer(t)

	for _, bad := range []string{`{"rating":0}`, `{"rating":6}`, `{}`} {
		code, body := do(t, srv, http.MethodPost, "/api/services/cccd-lan-dau/reviews", bad)
		require.Equal(t, http.StatusBadRequest, code, bad)
		require.False(t, body.Success)
	}

	code, _ := do(t, srv, http.MethodPost, "/api/services/nope/reviews", `{"rating":5}`)
	require.Equal(t, http.StatusNotFound, code)

	code, body := do(t, srv, http.MethodPost, "/api/services/cccd-lan-dau/reviews", `{"rating":4,"comment":"Nhanh"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, msgReviewAccepted, body.Message)

	code, body = do(t, srv, http.MethodGet, "/api/services/cccd-lan-dau/reviews", "")
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Reviews []map[string]any `json:"reviews"`
		Stats   struct {
			Total   int     `json:"total"`
			Average float64 `json:"average"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &page))
	require.Len(t, page.Reviews, 1)
	require.Equal(t, 1, page.Stats.Total)
	require.Equal(t, 4.0, page.Stats.Average)
}

func TestApplication_TrackableAfterwards(t *testing.T) {
	srv := newTestServer(t)

	code, body := do(t, srv, http.MethodPost, "/api/applications",
		`{"serviceId":"nope","applicant":{"fullName":"A","phone":"0901"}}`)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, apperr.MsgServiceNotFound, body.Message)

	code, body = do(t, srv, http.MethodPost, "/api/applications",
		`{"serviceId":"dang-ky-ket-hon","applicant":{"fullName":"Trần Thị B","phone":"0901234567"}}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, msgApplicationAccepted, body.Message)

	var created struct {
		ApplicationCode string `json:"applicationCode"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	require.Regexp(t, regexp.MustCompile(`^HS\d{4}\d+$`), created.ApplicationCode)

	code, body = do(t, srv, http.MethodGet, "/api/tracking/"+strings.ToLower(created.ApplicationCode), "")
	require.Equal(t, http.StatusOK, code)
	var rec struct {
		Code   string `json:"code"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &rec))
	require.Equal(t, created.ApplicationCode, rec.Code)
	require.Equal(t, "received", rec.Status)

	code, _ = do(t, srv, http.MethodGet, "/api/applications/"+created.ApplicationCode, "")
	require.Equal(t, http.StatusOK, code)

	code, body = do(t, srv, http.MethodGet, "/api/tracking/HS0000000000", "")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, tracking.MsgTrackingNotFound, body.Message)
}

func TestTracking_SeedCaseInsensitive(t *testing.T) {
	srv := newTestServer(t)
	code, body := do(t, srv, http.MethodGet, "/api/tracking/hs2026001234", "")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(body.Data), `"HS2026001234"`)
}

func TestContact_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	code, body := do(t, srv, http.MethodPost, "/api/contact", `{"name":"A","email":"a@b.com","message":"hi"}`)
	require.Equal(t, http.StatusOK, code)
	require.True(t, body.Success)
	var data struct {
		TicketID string `json:"ticketId"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Regexp(t, regexp.MustCompile(`^DVC\d+$`), data.TicketID)

	code, _ = do(t, srv, http.MethodGet, "/api/contact/"+data.TicketID, "")
	require.Equal(t, http.StatusOK, code)

	code, body = do(t, srv, http.MethodPost, "/api/contact", `{"name":"A","email":"bad","message":"hi"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, body.Success)
	require.Equal(t, apperr.MsgInvalidEmail, body.Message)
	require.Empty(t, body.Data)
}

func TestMalformedJSON(t *testing.T) {
	srv := newTestServer(t)
	code, body := do(t, srv, http.MethodPost, "/api/contact", `{"name":`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, apperr.MsgInvalidBody, body.Message)
}

func TestAppointmentsAndTickets(t *testing.T) {
	srv := newTestServer(t)

	code, body := do(t, srv, http.MethodPost, "/api/appointments",
		`{"serviceId":"gplx-b1","date":"2026-06-01","time":"08:30","fullName":"A","phone":"0901"}`)
	require.Equal(t, http.StatusOK, code)
	var ap struct {
		AppointmentCode string `json:"appointmentCode"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &ap))
	require.Regexp(t, `^LH\d{8}$`, ap.AppointmentCode)

	code, _ = do(t, srv, http.MethodGet, "/api/appointments/"+ap.AppointmentCode, "")
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, srv, http.MethodGet, "/api/appointments/LH00000000", "")
	require.Equal(t, http.StatusNotFound, code)

	code, body = do(t, srv, http.MethodPost, "/api/support/tickets",
		`{"subject":"Lỗi","description":"Không tải được biểu mẫu","fullName":"A","email":"a@b.vn"}`)
	require.Equal(t, http.StatusOK, code)
	var tk struct {
		TicketCode string `json:"ticketCode"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &tk))
	require.Regexp(t, `^TK\d{8}$`, tk.TicketCode)

	code, _ = do(t, srv, http.MethodGet, "/api/support/tickets/"+tk.TicketCode, "")
	require.Equal(t, http.StatusOK, code)
}

func TestElections(t *testing.T) {
	srv := newTestServer(t)

	code, body := do(t, srv, http.MethodGet, "/api/elections", "")
	require.Equal(t, http.StatusOK, code)
	require.NotEqual(t, "null", string(body.Data))

	code, body = do(t, srv, http.MethodPost, "/api/elections/subscribe", `{"email":"cu.tri@example.vn"}`)
	require.Equal(t, http.StatusOK, code)
	var sub struct {
		SubscriptionID string `json:"subscriptionId"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &sub))
	require.Regexp(t, `^SUB\d+$`, sub.SubscriptionID)

	code, body = do(t, srv, http.MethodPost, "/api/elections/subscribe", `{"email":"cu.tri@example.vn"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, elections.MsgAlreadySubscribed, body.Message)

	code, _ = do(t, srv, http.MethodGet, "/api/elections/subscriptions/"+sub.SubscriptionID, "")
	require.Equal(t, http.StatusOK, code)

	code, body = do(t, srv, http.MethodGet, "/api/elections/polling-stations", "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, body.Total)

	code, body = do(t, srv, http.MethodGet, "/api/elections/faq?category=voter", "")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, body.Categories)

	code, body = do(t, srv, http.MethodPost, "/api/elections/check-voter",
		`{"idNumber":"001234567890","fullName":"Nguyễn Văn An","birthYear":"1990"}`)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(body.Data), `"registered":true`)

	code, body = do(t, srv, http.MethodPost, "/api/elections/feedback",
		`{"type":"violation","subject":"S","description":"D","anonymous":true}`)
	require.Equal(t, http.StatusOK, code)
	var fb struct {
		TicketCode string `json:"ticketCode"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &fb))
	require.Equal(t, "received", fb.Status)

	code, _ = do(t, srv, http.MethodGet, "/api/elections/feedback/"+fb.TicketCode, "")
	require.Equal(t, http.StatusOK, code)

	for _, p := range []string{"/api/elections/news", "/api/elections/candidates", "/api/elections/statistics", "/api/elections/calendar", "/api/elections/results"} {
		code, body = do(t, srv, http.MethodGet, p, "")
		require.Equal(t, http.StatusOK, code, p)
		require.True(t, body.Success, p)
	}
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	deps := newTestDeps(t)
	deps.Limiter = rediscache.NewRateLimiter(mr.Addr())
	deps.SubmitPerMinute = 2
	srv := httptest.NewServer(New(deps).Handler())
	defer srv.Close()

	body := `{"name":"A","email":"a@b.com","message":"hi"}`
	for i := 0; i < 2; i++ {
		code, _ := do(t, srv, http.MethodPost, "/api/contact", body)
		require.Equal(t, http.StatusOK, code)
	}
	code, resp := do(t, srv, http.MethodPost, "/api/contact", body)
	require.Equal(t, http.StatusTooManyRequests, code)
	require.Equal(t, apperr.MsgRateLimited, resp.Message)

	// GET не ограничиваются
	code, _ = do(t, srv, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, code)
}

func doFrom(t *testing.T, srv *httptest.Server, forwardedFor, path, body string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestRateLimit_ForwardedForIgnoredWithoutTrustedProxy(t *testing.T) {
	mr := miniredis.RunT(t)
	deps := newTestDeps(t)
	deps.Limiter = rediscache.NewRateLimiter(mr.Addr())
	deps.SubmitPerMinute = 1
	srv := httptest.NewServer(New(deps).Handler())
	defer srv.Close()

	body := `{"name":"A","email":"a@b.com","message":"hi"}`
	require.Equal(t, http.StatusOK, doFrom(t, srv, "10.0.0.1", "/api/contact", body))
	// подмена заголовка не даёт нового окна
	require.Equal(t, http.StatusTooManyRequests, doFrom(t, srv, "10.0.0.2", "/api/contact", body))
}

func TestRateLimit_TrustedProxyKeysByForwardedFor(t *testing.T) {
	mr := miniredis.RunT(t)
	deps := newTestDeps(t)
	deps.Limiter = rediscache.NewRateLimiter(mr.Addr())
	deps.SubmitPerMinute = 1
	deps.TrustProxy = true
	srv := httptest.NewServer(New(deps).Handler())
	defer srv.Close()

	body := `{"name":"A","email":"a@b.com","message":"hi"}`
	require.Equal(t, http.StatusOK, doFrom(t, srv, "10.0.0.1", "/api/contact", body))
	require.Equal(t, http.StatusOK, doFrom(t, srv, "10.0.0.2", "/api/contact", body))
	require.Equal(t, http.StatusTooManyRequests, doFrom(t, srv, "10.0.0.1", "/api/contact", body))
	require.True(t, mr.Exists("dvc:rl:submit:10.0.0.2"))
}

func TestRateLimit_RedisDownLetsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	deps := newTestDeps(t)
	deps.Limiter = rediscache.NewRateLimiter(mr.Addr())
	deps.SubmitPerMinute = 1
	mr.Close()

	srv := httptest.NewServer(New(deps).Handler())
	defer srv.Close()
	code, _ := do(t, srv, http.MethodPost, "/api/contact", `{"name":"A","email":"a@b.com","message":"hi"}`)
	require.Equal(t, http.StatusOK, code)
}

func TestRecoverer(t *testing.T) {
	var logs bytes.Buffer
	deps := newTestDeps(t)
	deps.Logger = slog.New(slog.NewJSONHandler(&logs, nil))
	a := New(deps)

	r := chi.NewRouter()
	a.Mount(r)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) { panic("boom") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.JSONEq(t, `{"success":false,"message":"`+apperr.MsgInternal+`"}`, rr.Body.String())
	require.Contains(t, logs.String(), "panic recovered")
}
