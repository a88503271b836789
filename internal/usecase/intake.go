package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

// IntakeUseCase drives the two-stage valuation flow: stage 1 creates
// the record from contact data, stage 2 merges in the property data,
// runs the calculator and triggers the report email.
type IntakeUseCase struct {
	Valuations entity.ValuationRepositoryInterface
	Calc       *Calculator
	Dispatcher NotificationDispatcher
}

func NewIntakeUseCase(
	valuations entity.ValuationRepositoryInterface,
	calc *Calculator,
	dispatcher NotificationDispatcher,
) *IntakeUseCase {
	return &IntakeUseCase{
		Valuations: valuations,
		Calc:       calc,
		Dispatcher: dispatcher,
	}
}

func (uc *IntakeUseCase) Start(ctx context.Context, input StartIntakeInput) (*entity.Valuation, error) {
	if errs := ValidateStartIntake(input); len(errs) > 0 {
		return nil, errs
	}

	now := time.Now().UTC()
	v := &entity.Valuation{
		ID:              "val_" + uuid.New().String(),
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		Email:           strings.TrimSpace(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		Stage1Completed: true,
		Stage2Completed: false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.Valuations.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Complete merges the property data into the stage-1 record and runs
// the calculator. Calling it again with different numbers overwrites
// the previous property and estimate values; no history is kept.
// A dispatch failure never rolls the write back.
func (uc *IntakeUseCase) Complete(ctx context.Context, id string, input CompleteIntakeInput) (*entity.Valuation, error) {
	if errs := ValidateCompleteIntake(input); len(errs) > 0 {
		return nil, errs
	}

	v, err := uc.Valuations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	estimate := uc.Calc.Calculate(PropertyFinancials{
		AnnualRent:          input.AnnualRent,
		AnnualPropertyTaxes: input.AnnualPropertyTaxes,
		TaxesReimbursed:     input.TaxesReimbursed,
		AnnualInsurance:     input.AnnualInsurance,
		SquareFootage:       input.SquareFootage,
	})

	address := strings.TrimSpace(input.PropertyAddress)
	v.PropertyAddress = &address
	v.AnnualRent = &input.AnnualRent
	v.AnnualPropertyTaxes = &input.AnnualPropertyTaxes
	v.TaxesReimbursed = &input.TaxesReimbursed
	v.AnnualInsurance = &input.AnnualInsurance
	v.SquareFootage = &input.SquareFootage
	v.ConservativeEstimate = &estimate.Conservative
	v.OptimisticEstimate = &estimate.Optimistic
	v.Stage2Completed = true
	v.UpdatedAt = time.Now().UTC()

	if err := uc.Valuations.Update(ctx, v); err != nil {
		return nil, err
	}

	if uc.Dispatcher != nil {
		report := *v
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("report dispatch panic for %s: %v", report.ID, r)
				}
			}()
			if err := uc.Dispatcher.DispatchReport(context.Background(), &report); err != nil {
				log.Printf("report dispatch failed for %s: %v", report.ID, err)
			}
		}()
	}

	return v, nil
}
