package webapp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/models"
)

type statsResponse struct {
	Path  string              `json:"path"`
	Stats models.ListingStats `json:"stats"`
	Size  string              `json:"size"`
}

func (webapp *WebApp) stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp statsResponse
		webapp.locked(func(m *app.Model) {
			resp.Path = m.Path()
			resp.Stats = m.Stats()
		})
		resp.Size = app.FormatSize(resp.Stats.TotalSize)
		writeJSON(w, http.StatusOK, resp)
	}
}

type visitView struct {
	Path       string    `json:"path"`
	LastVisit  time.Time `json:"lastVisit"`
	VisitCount int       `json:"visitCount"`
	Entries    int       `json:"entries"`
}

type historyResponse struct {
	Visits     []visitView        `json:"visits"`
	Operations []models.Operation `json:"operations"`
}

// history lists recently visited directories and the latest mutations.
// The store has its own locking, so the model lock is not taken.
func (webapp *WebApp) history() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if webapp.History == nil {
			webapp.renderError(w, http.StatusServiceUnavailable, "History is disabled.")
			return
		}

		limit := 20
		if webapp.AppConfig != nil && webapp.AppConfig.History.Limit > 0 {
			limit = webapp.AppConfig.History.Limit
		}
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				webapp.renderError(w, http.StatusBadRequest, "Invalid limit.")
				return
			}
			limit = n
		}

		visits, err := webapp.History.Recent(r.Context(), limit)
		if err != nil {
			logging.WithContext(r.Context()).Warn("unable to read visits", logging.Err(err))
			webapp.renderError(w, http.StatusInternalServerError, "")
			return
		}
		ops, err := webapp.History.Operations(r.Context(), limit)
		if err != nil {
			logging.WithContext(r.Context()).Warn("unable to read operations", logging.Err(err))
			webapp.renderError(w, http.StatusInternalServerError, "")
			return
		}

		resp := historyResponse{Visits: []visitView{}, Operations: []models.Operation{}}
		for _, v := range visits {
			resp.Visits = append(resp.Visits, visitView(v))
		}
		resp.Operations = append(resp.Operations, ops...)
		writeJSON(w, http.StatusOK, resp)
	}
}
