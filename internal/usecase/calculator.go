package usecase

import "math"

// Business constants behind the estimate range. Configurable so the
// assumptions live in one place, but there is no runtime override.
type CalculatorConfig struct {
	MaintenancePerSqFt  float64 // annual maintenance assumption, $/sq ft
	ConservativeCapRate float64
	OptimisticCapRate   float64
}

func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		MaintenancePerSqFt:  1.75,
		ConservativeCapRate: 0.12,
		OptimisticCapRate:   0.08,
	}
}

type PropertyFinancials struct {
	AnnualRent          float64
	AnnualPropertyTaxes float64
	TaxesReimbursed     bool
	AnnualInsurance     float64
	SquareFootage       float64
}

type Estimate struct {
	Conservative int64 `json:"conservative"`
	Optimistic   int64 `json:"optimistic"`
}

type Calculator struct {
	cfg CalculatorConfig
}

func NewCalculator(cfg CalculatorConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate derives the value range from net operating income via the
// two cap rates. Pure; inputs are validated by the caller. NOI below
// zero floors both estimates at zero.
func (c *Calculator) Calculate(p PropertyFinancials) Estimate {
	maintenance := p.SquareFootage * c.cfg.MaintenancePerSqFt

	taxes := p.AnnualPropertyTaxes
	if p.TaxesReimbursed {
		taxes = 0
	}

	noi := p.AnnualRent - taxes - p.AnnualInsurance - maintenance

	return Estimate{
		Conservative: int64(math.Round(math.Max(noi/c.cfg.ConservativeCapRate, 0))),
		Optimistic:   int64(math.Round(math.Max(noi/c.cfg.OptimisticCapRate, 0))),
	}
}
