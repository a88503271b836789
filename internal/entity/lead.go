package entity

import (
	"context"
	"time"
)

// Lead is one contact-form submission. Leads are immutable after
// creation: read, listed or deleted, never updated.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	Page      string    `json:"page,omitempty"` // source page tag
	CreatedAt time.Time `json:"createdAt"`
}

type LeadIndexEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *Lead) IndexEntry() LeadIndexEntry {
	return LeadIndexEntry{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		CreatedAt: l.CreatedAt,
	}
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	Delete(ctx context.Context, id string) (bool, error)
	Index(ctx context.Context) ([]LeadIndexEntry, error)
}
