package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sellmypostoffice/valuation-api/internal/usecase"
)

type AdminHandler struct {
	Admin *usecase.AdminUseCase
}

func NewAdminHandler(admin *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{Admin: admin}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// HandleListValuations is GET /admin/valuations?q=&stage=&page=&limit=.
func (h *AdminHandler) HandleListValuations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Admin.ListValuations(r.Context(), usecase.ListValuationsInput{
		Query: r.URL.Query().Get("q"),
		Stage: queryInt(r, "stage", 0),
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	})
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) HandleDeleteValuation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.Admin.DeleteValuation(r.Context(), id)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": removed})
}

// HandleResend is POST /admin/valuations/{id}/resend. Side effect only;
// the record is not mutated.
func (h *AdminHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Admin.ResendNotification(r.Context(), id); err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AdminHandler) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	out, err := h.Admin.ListLeads(r.Context(), usecase.ListLeadsInput{
		Query: r.URL.Query().Get("q"),
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	})
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) HandleDeleteLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.Admin.DeleteLead(r.Context(), id)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": removed})
}

// HandleExport is GET /admin/export?type=valuations|leads, returning a
// CSV attachment.
func (h *AdminHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "valuations"
	}

	var csv string
	var err error
	switch kind {
	case "valuations":
		csv, err = h.Admin.ExportValuationsCSV(r.Context())
	case "leads":
		csv, err = h.Admin.ExportLeadsCSV(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "Invalid type parameter")
		return
	}
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", kind, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}

func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.Stats(r.Context())
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
