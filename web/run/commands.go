package webapp

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/models"
)

type removeRequest struct {
	Paths []string `json:"paths"`
}

type pathError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type removeResponse struct {
	Errors  []pathError     `json:"errors"`
	Listing listingResponse `json:"listing"`
}

type renameRequest struct {
	Row  int    `json:"row"`
	Name string `json:"name"`
}

// remove always answers 200 once the request is valid: the model attempts
// every path and reloads, and per-path failures are listed in the body.
// Only entries of the current directory may be named; a request with any
// other path is refused as a whole.
func (webapp *WebApp) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req removeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			webapp.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(req.Paths) == 0 {
			webapp.renderError(w, http.StatusBadRequest, "At least one path is required.")
			return
		}

		resp := removeResponse{Errors: []pathError{}}
		var refused error
		webapp.locked(func(m *app.Model) {
			paths := make([]string, 0, len(req.Paths))
			for _, p := range req.Paths {
				abs, ok := listedPath(m.Path(), p)
				if !ok {
					refused = fmt.Errorf("%q is not an entry of the current directory", p)
					return
				}
				paths = append(paths, abs)
			}
			resp.Errors = append(resp.Errors, splitErrors(m.Remove(paths))...)
			resp.Listing = snapshotListing(m)
		})
		if refused != nil {
			logging.WithContext(r.Context()).Warn("refused remove request", logging.Err(refused))
			webapp.renderError(w, http.StatusBadRequest, refused.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (webapp *WebApp) rename() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameRequest
		if err := decodeJSON(w, r, &req); err != nil {
			webapp.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !app.ValidEntryName(req.Name) {
			webapp.renderError(w, http.StatusBadRequest, "Name must be a single path element.")
			return
		}

		var resp listingResponse
		var err error
		webapp.locked(func(m *app.Model) {
			if err = m.Rename(req.Row, req.Name); err == nil {
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

// listedPath resolves p against dir and reports whether the result names a
// visible entry directly inside dir.
func listedPath(dir, p string) (string, bool) {
	if dir == "" {
		return "", false
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	p = filepath.Clean(p)
	name := filepath.Base(p)
	if filepath.Dir(p) != dir || !app.ValidEntryName(name) || models.IsHiddenName(name) {
		return "", false
	}
	return p, true
}

// splitErrors flattens a joined error into one record per failing path.
func splitErrors(err error) []pathError {
	switch e := err.(type) {
	case nil:
		return nil
	case *app.OpError:
		p := e.Path
		if e.Op == models.OpLoad {
			p = "reload " + p
		}
		return []pathError{{Path: p, Error: e.Error()}}
	case interface{ Unwrap() []error }:
		var out []pathError
		for _, inner := range e.Unwrap() {
			out = append(out, splitErrors(inner)...)
		}
		return out
	}
	return []pathError{{Error: err.Error()}}
}
