package webapp

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/internal/logging"
)

// download streams the file at a listing row. It is the HTTP counterpart
// of handing a file to the desktop opener.
func (webapp *WebApp) download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := rowParam(r)
		if err != nil {
			webapp.renderError(w, http.StatusBadRequest, err.Error())
			return
		}

		var path, name string
		var isDir, ok bool
		webapp.locked(func(m *app.Model) {
			e, found := m.Entry(row)
			ok = found
			path, name, isDir = e.FilePath, e.Name, e.IsDir
		})
		if !ok {
			webapp.renderError(w, http.StatusBadRequest, fmt.Sprintf("Row %d is outside the listing.", row))
			return
		}
		if isDir {
			webapp.renderError(w, http.StatusBadRequest, "Directories cannot be downloaded.")
			return
		}

		logger := logging.WithContext(r.Context())
		logger.Info("download", logging.String("path", path))

		file, err := os.Open(path)
		if err != nil {
			logger.Warn("cannot open file", logging.String("path", path), logging.Err(err))
			webapp.renderError(w, http.StatusNotFound, "The file is listed but could not be opened.")
			return
		}
		defer file.Close()

		buffer := make([]byte, 512)
		n, _ := file.Read(buffer)
		mimeType := http.DetectContentType(buffer[:n])

		if _, err := file.Seek(0, io.SeekStart); err != nil {
			webapp.renderError(w, http.StatusInternalServerError, "")
			return
		}
		w.Header().Set("Content-Type", mimeType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))

		if _, err := io.Copy(w, file); err != nil {
			logger.Warn("error sending file", logging.String("path", path), logging.Err(err))
		}
	}
}
