package portal_api

import (
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/BearBump/DVCPortal/internal/apperr"
)

const rateWindow = time.Minute

func (a *PortalAPI) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			a.log.ErrorContext(r.Context(), "panic recovered",
				"path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
			writeFail(w, http.StatusInternalServerError, apperr.MsgInternal)
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimit allows submitPerMinute POSTs per client address. Limiter
// failures let the request through.
func (a *PortalAPI) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.limiter == nil || a.submitPerMinute <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		key := "submit:" + clientIP(r)
		ok, n, err := a.limiter.Allow(r.Context(), key, a.submitPerMinute, rateWindow)
		if err != nil {
			a.log.WarnContext(r.Context(), "rate limiter unavailable", "err", err)
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(rateWindow.Seconds())))
			a.log.InfoContext(r.Context(), "submission throttled", "client", clientIP(r), "count", n)
			a.writeError(w, r, apperr.RateLimited())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the host of RemoteAddr. Proxy headers reach it only through
// middleware.RealIP, which Mount installs when TrustProxy is set.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
