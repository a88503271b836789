package entity

import (
	"context"
	"time"
)

// Valuation is one prospective seller's property value estimate.
// Contact fields are filled at stage 1; property and estimate fields
// stay nil until stage 2 completes.
type Valuation struct {
	ID string `json:"id"`

	// Contact (stage 1)
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	// Property (stage 2)
	PropertyAddress     *string  `json:"propertyAddress"`
	AnnualRent          *float64 `json:"annualRent"`
	AnnualPropertyTaxes *float64 `json:"annualPropertyTaxes"`
	TaxesReimbursed     *bool    `json:"taxesReimbursed"`
	AnnualInsurance     *float64 `json:"annualInsurance"`
	SquareFootage       *float64 `json:"squareFootage"`

	// Computed
	ConservativeEstimate *int64 `json:"lowEstimatedValue"`
	OptimisticEstimate   *int64 `json:"highEstimatedValue"`

	Stage1Completed bool `json:"stage1Completed"`
	Stage2Completed bool `json:"stage2Completed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stage maps the completion flags to the numeric stage used by the
// admin index and filters: 1 = contact only, 2 = property submitted.
func (v *Valuation) Stage() int {
	if v.Stage2Completed {
		return 2
	}
	return 1
}

// ValuationIndexEntry is the denormalized summary kept in the listing
// index so admin tables never load every full record.
type ValuationIndexEntry struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Address      string    `json:"address,omitempty"`
	Stage        int       `json:"stage"`
	Conservative *int64    `json:"conservative,omitempty"`
	Optimistic   *int64    `json:"optimistic,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IndexEntry builds the summary row for this record.
func (v *Valuation) IndexEntry() ValuationIndexEntry {
	addr := ""
	if v.PropertyAddress != nil {
		addr = *v.PropertyAddress
	}
	return ValuationIndexEntry{
		ID:           v.ID,
		Email:        v.Email,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		Address:      addr,
		Stage:        v.Stage(),
		Conservative: v.ConservativeEstimate,
		Optimistic:   v.OptimisticEstimate,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

type ValuationRepositoryInterface interface {
	Create(ctx context.Context, v *Valuation) error
	FindByID(ctx context.Context, id string) (*Valuation, error)
	Update(ctx context.Context, v *Valuation) error
	// Delete reports whether a record was actually removed. A missing
	// id is not an error.
	Delete(ctx context.Context, id string) (bool, error)
	Index(ctx context.Context) ([]ValuationIndexEntry, error)
}
