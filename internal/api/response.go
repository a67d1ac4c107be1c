package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Envelope is the uniform response wrapper for every operation. Data carries
// the operation-specific payload on success, and field-level details on
// validation failure; it is null otherwise.
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Response messages, kept verbatim across operations.
const (
	msgSuccess             = "Success"
	msgCreated             = "Created successfully"
	msgUpdated             = "Updated successfully"
	msgRecordNotExist      = "Record Not Exist"
	msgInvalidActor        = "Invalid Actor assigned"
	msgInvalidMovieRecord  = "Invalid Movie Record"
	msgInvalidPersonRecord = "Invalid Person Record"
	msgValidationFailed    = "Validation failed"
	msgInvalidPayload      = "Invalid request payload"
	msgSomethingWentWrong  = "Something went wrong"
)

func respondJSON(logger *slog.Logger, w http.ResponseWriter, r *http.Request, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
	}
}

func respondSuccess(logger *slog.Logger, w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	respondJSON(logger, w, r, status, Envelope{Status: true, Message: message, Data: data})
}

func respondError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(logger, w, r, status, Envelope{Status: false, Message: message, Data: nil})
}

// respondValidationError reports a failed validator run, surfacing per-field
// errors in the envelope's data.
func respondValidationError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make(map[string]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			details[fe.Field()] = fe.Tag()
		}
		respondJSON(logger, w, r, http.StatusBadRequest, Envelope{Status: false, Message: msgValidationFailed, Data: details})
		return
	}
	respondError(logger, w, r, http.StatusBadRequest, msgValidationFailed)
}
