package api

import (
	"net/http"

	"github.com/dnrgps/dnrgps/pkg/errors"
)

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

// statusOf maps an error code to an HTTP status.
func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeMalformedAddress, errors.ErrCodeIndexOutOfRange, errors.ErrCodeMissingShapeColumn:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeLayerNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNotAttached, errors.ErrCodeNotAFeatureLayer:
		return http.StatusConflict
	case errors.ErrCodeUnprojectablePoint:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeLayerUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusOf(code)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.Logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: code})
}
