package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"steam-extract/pkg/models"
)

// follows RFC 7807: Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

func (pd *ProblemDetails) Error() string {
	return fmt.Sprintf("%d %s: %s", pd.Status, pd.Title, pd.Detail)
}

func WriteError(w http.ResponseWriter, status int, title, detail, instance string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	pd := &ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}

	json.NewEncoder(w).Encode(pd)
}

func WriteInternalServerError(w http.ResponseWriter, err error, instance string) {
	WriteError(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), instance)
}

func WriteBadRequest(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusBadRequest, "Bad Request", detail, instance)
}

func WriteNotFound(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusNotFound, "Not Found", detail, instance)
}

func WriteMethodNotAllowed(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed", detail, instance)
}

// WriteRemoteError maps pipeline and store API failures onto problem responses.
func WriteRemoteError(w http.ResponseWriter, err error, instance string) {
	switch {
	case errors.Is(err, models.ErrSuperseded):
		WriteError(w, http.StatusConflict, "Superseded", err.Error(), instance)
	case errors.Is(err, models.ErrNoSubject):
		WriteBadRequest(w, err.Error(), instance)
	case errors.Is(err, models.ErrUnknownFormat):
		WriteNotFound(w, err.Error(), instance)
	case errors.Is(err, models.ErrSchema):
		WriteError(w, http.StatusBadGateway, "Unexpected Store Response", err.Error(), instance)
	case errors.Is(err, models.ErrTransport):
		WriteError(w, http.StatusBadGateway, "Store Unreachable", err.Error(), instance)
	default:
		WriteInternalServerError(w, err, instance)
	}
}
