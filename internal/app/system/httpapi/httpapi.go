// internal/app/system/httpapi/httpapi.go
//
// Shared JSON plumbing for the API features: response writers, request
// decoding with struct validation, and the mapping from domain errors to
// HTTP status codes.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	schedulestore "github.com/harvestchapel/rosterd/internal/app/store/schedules"
	userstore "github.com/harvestchapel/rosterd/internal/app/store/users"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"go.uber.org/zap"
)

var validate = validator.New()

// WriteJSON serializes v with the given status. Encoding failures are
// ignored; by then the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// Decode reads a JSON request body into v and runs struct validation.
// The returned error message is safe to echo back to the caller.
func Decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return fmt.Errorf("invalid or missing fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// FromError maps a domain or store error onto an HTTP response. Anything
// unrecognized is a 500 with the detail kept in the log, not the body.
func FromError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var ve *roster.ValidationError
	switch {
	case errors.As(err, &ve):
		Error(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, schedulestore.ErrDuplicateDate),
		errors.Is(err, userstore.ErrDuplicateUsername):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, roster.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, roster.ErrNotAssigned):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, roster.ErrAlreadyAnswered):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, schedulestore.ErrVersionConflict):
		Error(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
