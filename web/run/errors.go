package webapp

import (
	"errors"
	"net/http"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/internal/logging"
)

type errorData struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

var errorTemplates = map[int]errorData{
	http.StatusBadRequest: {
		Code:    400,
		Title:   "Bad Request",
		Message: "The request could not be understood by the server.",
	},
	http.StatusNotFound: {
		Code:    404,
		Title:   "Not Found",
		Message: "The page or file you're looking for doesn't exist or has been moved.",
	},
	http.StatusMethodNotAllowed: {
		Code:    405,
		Title:   "Method Not Allowed",
		Message: "The method is not supported for this resource.",
	},
	http.StatusConflict: {
		Code:    409,
		Title:   "Conflict",
		Message: "The operation could not be completed.",
	},
	http.StatusInternalServerError: {
		Code:    500,
		Title:   "Internal Server Error",
		Message: "Something went wrong on our end. Please try again later.",
	},
	http.StatusServiceUnavailable: {
		Code:    503,
		Title:   "Service Unavailable",
		Message: "The service is temporarily unavailable. Please try again later.",
	},
}

func (webapp *WebApp) renderError(w http.ResponseWriter, code int, customMessage string) {
	data, ok := errorTemplates[code]
	if !ok {
		data = errorData{
			Code:    code,
			Title:   "Error",
			Message: "An unexpected error occurred.",
		}
	}

	if customMessage != "" {
		data.Message = customMessage
	}

	writeJSON(w, code, data)
}

// statusFor maps model errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrPathUnavailable):
		return http.StatusNotFound
	case errors.Is(err, app.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrRenameFailed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (webapp *WebApp) renderModelError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	logging.WithContext(r.Context()).Warn("request failed", logging.Int("status", code), logging.Err(err))
	webapp.renderError(w, code, err.Error())
}

func (webapp *WebApp) notFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.renderError(w, http.StatusNotFound, "")
	}
}
