// Package render holds the JSON request and response helpers shared by the handlers.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Lets numeric tags like gt=0 apply to decimal fields.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}

		return nil
	}, decimal.Decimal{})
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Decode reads the JSON body into req and runs its validate tags. On failure
// the response is already written and the caller must return.
func Decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		Error(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			Error(w, http.StatusBadRequest, err.Error())
			return false
		}

		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}

		JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields})

		return false
	}

	return true
}

// ID parses the {id} URL parameter.
func ID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}

// Status maps a service error to a response. Errors matching none of the
// known sentinels are internal.
func Status(w http.ResponseWriter, err error, known map[error]int) {
	for target, status := range known {
		if errors.Is(err, target) {
			Error(w, status, err.Error())
			return
		}
	}

	Error(w, http.StatusInternalServerError, "internal error")
}
