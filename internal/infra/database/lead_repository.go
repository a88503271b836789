package database

import (
	"context"
	"errors"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

type LeadRepository struct {
	kv KV
}

func NewLeadRepository(kv KV) *LeadRepository {
	return &LeadRepository{kv: kv}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if err := setJSON(ctx, r.kv, BucketLeads, lead.ID, lead); err != nil {
		return err
	}

	index, err := r.Index(ctx)
	if err != nil {
		return err
	}
	index = append(index, lead.IndexEntry())
	return setJSON(ctx, r.kv, BucketLeads, LeadsIndexKey, index)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	var lead entity.Lead
	if err := getJSON(ctx, r.kv, BucketLeads, id, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.kv.Delete(ctx, BucketLeads, id)
	if err != nil {
		return false, err
	}

	index, err := r.Index(ctx)
	if err != nil {
		return removed, err
	}
	filtered := index[:0]
	for _, entry := range index {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	if err := setJSON(ctx, r.kv, BucketLeads, LeadsIndexKey, filtered); err != nil {
		return removed, err
	}
	return removed, nil
}

func (r *LeadRepository) Index(ctx context.Context) ([]entity.LeadIndexEntry, error) {
	var index []entity.LeadIndexEntry
	err := getJSON(ctx, r.kv, BucketLeads, LeadsIndexKey, &index)
	if errors.Is(err, entity.ErrNotFound) {
		return []entity.LeadIndexEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return index, nil
}
