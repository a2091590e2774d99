package webapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/models"
)

const maxBodyBytes = 1 << 20

// entryView is one listing row as served to clients.
type entryView struct {
	Row          int       `json:"row"`
	FileName     string    `json:"fileName"`
	FilePath     string    `json:"filePath"`
	FileSize     string    `json:"fileSize"`
	Size         int64     `json:"size"`
	IconSource   string    `json:"iconSource"`
	IsDir        bool      `json:"isDir"`
	IsFile       bool      `json:"isFile"`
	CreationDate time.Time `json:"creationDate"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

func newEntryView(row int, e models.DirectoryEntry) entryView {
	return entryView{
		Row:          row,
		FileName:     e.Name,
		FilePath:     e.FilePath,
		FileSize:     app.FormatSize(e.Size),
		Size:         e.Size,
		IconSource:   app.IconSource(e),
		IsDir:        e.IsDir,
		IsFile:       !e.IsDir,
		CreationDate: e.CreatedAt,
		ModifiedDate: e.ModifiedAt,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.L().Warn("failed to encode response", logging.Err(err))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// rowParam parses the {row} URL parameter. Range checks are left to the
// model.
func rowParam(r *http.Request) (int, error) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		return 0, fmt.Errorf("invalid row %q", chi.URLParam(r, "row"))
	}
	return row, nil
}
