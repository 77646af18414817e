package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// OK writes the {"ok": true} acknowledgement used by delete endpoints.
func OK(w http.ResponseWriter) {
	JSON(w, http.StatusOK, okResponse{OK: true})
}

// Error writes {"error": msg}. Server-side failures are logged with their cause.
func Error(w http.ResponseWriter, status int, msg string, cause error) {
	if status >= http.StatusInternalServerError {
		slog.Error(msg, "status", status, "error", cause)
	}

	JSON(w, status, errorResponse{Error: msg})
}

// Decode reads a JSON body into dst and validates it. On failure it has
// already written a 400 and returns false.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid payload: "+err.Error(), err)
		return false
	}

	if err := validate.StructCtx(r.Context(), dst); err != nil {
		Error(w, http.StatusBadRequest, validationMessage(err), err)
		return false
	}

	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}

		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
