package database

import (
	"context"
	"errors"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

type ValuationRepository struct {
	kv KV
}

func NewValuationRepository(kv KV) *ValuationRepository {
	return &ValuationRepository{kv: kv}
}

// Create writes the record first, then its index entry. The two writes
// are not atomic: a record without an index entry stays retrievable by
// id but invisible to listing, which callers tolerate.
func (r *ValuationRepository) Create(ctx context.Context, v *entity.Valuation) error {
	if err := setJSON(ctx, r.kv, BucketValuations, v.ID, v); err != nil {
		return err
	}
	return r.upsertIndex(ctx, v.IndexEntry())
}

func (r *ValuationRepository) FindByID(ctx context.Context, id string) (*entity.Valuation, error) {
	var v entity.Valuation
	if err := getJSON(ctx, r.kv, BucketValuations, id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ValuationRepository) Update(ctx context.Context, v *entity.Valuation) error {
	if err := setJSON(ctx, r.kv, BucketValuations, v.ID, v); err != nil {
		return err
	}
	return r.upsertIndex(ctx, v.IndexEntry())
}

func (r *ValuationRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.kv.Delete(ctx, BucketValuations, id)
	if err != nil {
		return false, err
	}
	if err := r.removeIndex(ctx, id); err != nil {
		return removed, err
	}
	return removed, nil
}

func (r *ValuationRepository) Index(ctx context.Context) ([]entity.ValuationIndexEntry, error) {
	var index []entity.ValuationIndexEntry
	err := getJSON(ctx, r.kv, BucketValuations, ValuationsIndexKey, &index)
	if errors.Is(err, entity.ErrNotFound) {
		return []entity.ValuationIndexEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return index, nil
}

func (r *ValuationRepository) upsertIndex(ctx context.Context, entry entity.ValuationIndexEntry) error {
	index, err := r.Index(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range index {
		if index[i].ID == entry.ID {
			index[i] = entry
			found = true
			break
		}
	}
	if !found {
		index = append(index, entry)
	}
	return setJSON(ctx, r.kv, BucketValuations, ValuationsIndexKey, index)
}

func (r *ValuationRepository) removeIndex(ctx context.Context, id string) error {
	index, err := r.Index(ctx)
	if err != nil {
		return err
	}
	filtered := index[:0]
	for _, entry := range index {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	return setJSON(ctx, r.kv, BucketValuations, ValuationsIndexKey, filtered)
}
