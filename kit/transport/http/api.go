package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// API provides a consistent means of responding from http handlers:
// JSON bodies, platform error encoding, and logging of encode failures.
type API struct {
	logger       *zap.Logger
	errorHandler ErrorHandler
}

// NewAPI creates a new API type.
func NewAPI(logger *zap.Logger) *API {
	return &API{logger: logger}
}

// Respond writes v as JSON with the given status code. A nil v writes
// only the status code.
func (a *API) Respond(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	if v == nil {
		w.WriteHeader(status)
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		a.Err(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil && a.logger != nil {
		a.logger.Error("failed to write response body", zap.Error(err))
	}
}

// Err writes the platform error encoding of err to the response.
func (a *API) Err(w http.ResponseWriter, r *http.Request, err error) {
	a.errorHandler.HandleHTTPError(r.Context(), err, w)
}

// DecodeJSON decodes the request body into v, limiting accepted input to
// valid JSON.
func (a *API) DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
