package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
	"github.com/sellmypostoffice/valuation-api/internal/infra/http/middleware"
	"github.com/sellmypostoffice/valuation-api/internal/usecase"
)

type ValuationHandler struct {
	Intake     *usecase.IntakeUseCase
	Valuations entity.ValuationRepositoryInterface
}

func NewValuationHandler(intake *usecase.IntakeUseCase, valuations entity.ValuationRepositoryInterface) *ValuationHandler {
	return &ValuationHandler{Intake: intake, Valuations: valuations}
}

// HandleStart is POST /valuations: stage 1, contact info only.
func (h *ValuationHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var input usecase.StartIntakeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	v, err := h.Intake.Start(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordValuationStarted()
	writeJSON(w, http.StatusCreated, v)
}

// HandleGet is GET /valuations/{id}, used by the client to resume
// stage 2 after a reload.
func (h *ValuationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	v, err := h.Valuations.FindByID(r.Context(), id)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleComplete is PATCH /valuations/{id}: stage 2, property data in,
// estimates out. The report email is dispatched off the request path.
func (h *ValuationHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.CompleteIntakeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	v, err := h.Intake.Complete(r.Context(), id, input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordValuationCompleted()
	writeJSON(w, http.StatusOK, v)
}
