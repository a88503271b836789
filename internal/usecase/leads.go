package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

type CaptureLeadUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewCaptureLeadUseCase(leads entity.LeadRepositoryInterface) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{Leads: leads}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLead(input); len(errs) > 0 {
		return nil, errs
	}

	lead := &entity.Lead{
		ID:        "lead_" + uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Message:   input.Message,
		Page:      input.Page,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}
