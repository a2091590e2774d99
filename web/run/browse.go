package webapp

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/models"
)

type listingResponse struct {
	Path    string              `json:"path"`
	Rows    int                 `json:"rows"`
	Roles   []string            `json:"roles"`
	Stats   models.ListingStats `json:"stats"`
	Entries []entryView         `json:"entries"`
}

type Breadcrumb struct {
	Part string `json:"part"`
	Path string `json:"path"`
}

func snapshotListing(m *app.Model) listingResponse {
	entries := m.Entries()
	resp := listingResponse{
		Path:    m.Path(),
		Rows:    len(entries),
		Roles:   m.Roles().Keys(),
		Stats:   m.Stats(),
		Entries: make([]entryView, 0, len(entries)),
	}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, newEntryView(i, e))
	}
	return resp
}

func (webapp *WebApp) listing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp listingResponse
		webapp.locked(func(m *app.Model) {
			resp = snapshotListing(m)
		})
		writeJSON(w, http.StatusOK, resp)
	}
}

// field serves a single role value. Unknown roles and rows outside the
// listing answer with a null value, the same as the model accessor.
func (webapp *WebApp) field() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := rowParam(r)
		if err != nil {
			webapp.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
		role := chi.URLParam(r, "role")

		var value any
		webapp.locked(func(m *app.Model) {
			value = m.Field(row, role)
		})

		writeJSON(w, http.StatusOK, map[string]any{
			"row":   row,
			"role":  role,
			"value": value,
		})
	}
}

func (webapp *WebApp) breadcrumbs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var crumbs []Breadcrumb
		for _, p := range app.PathsToHome() {
			crumbs = append(crumbs, Breadcrumb{Part: filepath.Base(p), Path: p})
		}
		writeJSON(w, http.StatusOK, crumbs)
	}
}

type pathRequest struct {
	Path string `json:"path"`
}

func (webapp *WebApp) setPath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pathRequest
		if err := decodeJSON(w, r, &req); err != nil {
			webapp.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Path == "" {
			webapp.renderError(w, http.StatusBadRequest, "Path is required.")
			return
		}

		var resp listingResponse
		var err error
		webapp.locked(func(m *app.Model) {
			if err = m.Load(req.Path); err == nil {
				resp = snapshotListing(m)
			}
		})
		if err != nil {
			webapp.renderModelError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (webapp *WebApp) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp listingResponse
		var err error
		webapp.locked(func(m *app.Model) {
			if err = m.Refresh(); err == nil {
				resp = snapshotListing(m)
			}
		})
		if err != nil {
			webapp.renderModelError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
