package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
	"github.com/sellmypostoffice/valuation-api/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeUsecaseError maps the usecase error taxonomy onto HTTP statuses.
// Validation failures keep their field-level detail; everything
// unrecognized is a 500 with the detail kept out of the response.
func writeUsecaseError(w http.ResponseWriter, err error) {
	var validationErrs usecase.ValidationErrors
	if errors.As(err, &validationErrs) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"details": validationErrs,
		})
		return
	}

	if errors.Is(err, entity.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if errors.Is(err, entity.ErrSlugTaken) {
		writeError(w, http.StatusConflict, "Slug already in use")
		return
	}

	log.Printf("internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
