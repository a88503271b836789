package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
	"github.com/sellmypostoffice/valuation-api/internal/infra/database"
)

func newAdminFixture() (*AdminUseCase, *database.ValuationRepository, *database.LeadRepository, *capturingDispatcher) {
	kv := database.NewMemoryKV()
	valuations := database.NewValuationRepository(kv)
	leads := database.NewLeadRepository(kv)
	dispatcher := newCapturingDispatcher()
	return NewAdminUseCase(valuations, leads, dispatcher), valuations, leads, dispatcher
}

func seedValuation(t *testing.T, repo *database.ValuationRepository, email, address string, completed bool, updatedAt time.Time) *entity.Valuation {
	t.Helper()
	v := &entity.Valuation{
		ID:              "val_" + email,
		FirstName:       "Test",
		LastName:        "Seller",
		Email:           email,
		Stage1Completed: true,
		CreatedAt:       updatedAt,
		UpdatedAt:       updatedAt,
	}
	if completed {
		cons, opt := int64(500000), int64(750000)
		v.PropertyAddress = &address
		v.ConservativeEstimate = &cons
		v.OptimisticEstimate = &opt
		v.Stage2Completed = true
	}
	require.NoError(t, repo.Create(context.Background(), v))
	return v
}

func TestListValuationsFiltersAndPaginates(t *testing.T) {
	uc, valuations, _, _ := newAdminFixture()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedValuation(t, valuations, "alice@example.com", "10 Oak Ave", true, base.Add(3*time.Hour))
	seedValuation(t, valuations, "bob@example.com", "", false, base.Add(2*time.Hour))
	seedValuation(t, valuations, "carol@example.com", "99 Oak Ave", true, base.Add(1*time.Hour))

	out, err := uc.ListValuations(ctx, ListValuationsInput{})
	require.NoError(t, err)
	require.Len(t, out.Data, 3)
	// Most recently updated first.
	assert.Equal(t, "alice@example.com", out.Data[0].Email)
	assert.Equal(t, "carol@example.com", out.Data[2].Email)
	assert.Equal(t, 3, out.Pagination.Total)
	assert.Equal(t, 1, out.Pagination.TotalPages)

	out, err = uc.ListValuations(ctx, ListValuationsInput{Query: "oak"})
	require.NoError(t, err)
	assert.Len(t, out.Data, 2)

	out, err = uc.ListValuations(ctx, ListValuationsInput{Query: "BOB"})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "bob@example.com", out.Data[0].Email)

	out, err = uc.ListValuations(ctx, ListValuationsInput{Stage: 1})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "bob@example.com", out.Data[0].Email)

	out, err = uc.ListValuations(ctx, ListValuationsInput{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, 2, out.Pagination.TotalPages)

	// Pages past the end come back empty, not failing.
	out, err = uc.ListValuations(ctx, ListValuationsInput{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, out.Data)
	assert.Equal(t, 3, out.Pagination.Total)
}

func TestListLeadsSearchAndOrdering(t *testing.T) {
	uc, _, leads, _ := newAdminFixture()
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Ann Smith", "Ben Jones", "Cara Smith"} {
		require.NoError(t, leads.Create(ctx, &entity.Lead{
			ID:        fmt.Sprintf("lead_%d", i),
			Name:      name,
			Email:     fmt.Sprintf("lead%d@example.com", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	out, err := uc.ListLeads(ctx, ListLeadsInput{})
	require.NoError(t, err)
	require.Len(t, out.Data, 3)
	assert.Equal(t, "Cara Smith", out.Data[0].Name)

	out, err = uc.ListLeads(ctx, ListLeadsInput{Query: "smith"})
	require.NoError(t, err)
	assert.Len(t, out.Data, 2)
}

func TestListLeadsFallsBackToIndexSummary(t *testing.T) {
	kv := database.NewMemoryKV()
	leads := database.NewLeadRepository(kv)
	uc := NewAdminUseCase(database.NewValuationRepository(kv), leads, nil)
	ctx := context.Background()

	lead := &entity.Lead{
		ID:        "lead_orphan",
		Name:      "Orphan Entry",
		Email:     "orphan@example.com",
		Phone:     "555-0111",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, leads.Create(ctx, lead))

	// Drop the record blob but leave the index entry behind.
	_, err := kv.Delete(ctx, database.BucketLeads, lead.ID)
	require.NoError(t, err)

	out, err := uc.ListLeads(ctx, ListLeadsInput{})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Orphan Entry", out.Data[0].Name)
	assert.Empty(t, out.Data[0].Phone)
}

func TestDeleteValuationTwice(t *testing.T) {
	uc, valuations, _, _ := newAdminFixture()
	ctx := context.Background()

	v := seedValuation(t, valuations, "gone@example.com", "", false, time.Now().UTC())

	removed, err := uc.DeleteValuation(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	index, err := valuations.Index(ctx)
	require.NoError(t, err)
	assert.Empty(t, index)

	removed, err = uc.DeleteValuation(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestResendNotification(t *testing.T) {
	uc, valuations, _, dispatcher := newAdminFixture()
	ctx := context.Background()

	completed := seedValuation(t, valuations, "done@example.com", "5 Elm St", true, time.Now().UTC())
	contactOnly := seedValuation(t, valuations, "early@example.com", "", false, time.Now().UTC())

	require.NoError(t, uc.ResendNotification(ctx, completed.ID))
	report := dispatcher.wait(t)
	assert.Equal(t, completed.ID, report.ID)

	err := uc.ResendNotification(ctx, contactOnly.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	err = uc.ResendNotification(ctx, "val_missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestStats(t *testing.T) {
	uc, valuations, leads, _ := newAdminFixture()
	ctx := context.Background()

	now := time.Now().UTC()
	seedValuation(t, valuations, "a@example.com", "1 A St", true, now)
	seedValuation(t, valuations, "b@example.com", "", false, now)
	seedValuation(t, valuations, "c@example.com", "3 C St", true, now)
	require.NoError(t, leads.Create(ctx, &entity.Lead{ID: "lead_1", Name: "L", Email: "l@example.com", CreatedAt: now}))

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalValuations)
	assert.Equal(t, 2, stats.CompletedReports)
	assert.Equal(t, 1, stats.LeadsTotal)
	assert.Equal(t, 67, stats.ConversionRate)
}

func TestStatsEmpty(t *testing.T) {
	uc, _, _, _ := newAdminFixture()

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalValuations)
	assert.Zero(t, stats.ConversionRate)
}
