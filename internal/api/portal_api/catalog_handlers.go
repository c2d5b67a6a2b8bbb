package portal_api

import (
	"net/http"

	"github.com/BearBump/DVCPortal/internal/services/catalog"
	"github.com/go-chi/chi/v5"
)

func (a *PortalAPI) listCategories(w http.ResponseWriter, r *http.Request) {
	writeData(w, a.catalog.Categories())
}

func (a *PortalAPI) categoryServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := a.catalog.CategoryServices(chi.URLParam(r, "id"), q.Get("page"), q.Get("limit"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, res)
}

func (a *PortalAPI) listServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, meta, err := a.catalog.ListServices(catalog.ListParams{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Page:     q.Get("page"),
		Limit:    q.Get("limit"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out, Pagination: &meta})
}

func (a *PortalAPI) popularServices(w http.ResponseWriter, r *http.Request) {
	out, err := a.catalog.Popular(r.URL.Query().Get("limit"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, out)
}

func (a *PortalAPI) serviceDetail(w http.ResponseWriter, r *http.Request) {
	d, err := a.catalog.Detail(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, d)
}

func (a *PortalAPI) search(w http.ResponseWriter, r *http.Request) {
	writeData(w, a.catalog.Search(r.URL.Query().Get("q")))
}

func (a *PortalAPI) news(w http.ResponseWriter, r *http.Request) {
	out, err := a.catalog.News(r.URL.Query().Get("limit"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, out)
}

func (a *PortalAPI) statistics(w http.ResponseWriter, r *http.Request) {
	writeData(w, a.catalog.Statistics())
}

func (a *PortalAPI) getTracking(w http.ResponseWriter, r *http.Request) {
	rec, err := a.tracking.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeData(w, rec)
}
