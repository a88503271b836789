package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
	"github.com/sellmypostoffice/valuation-api/internal/infra/database"
)

type capturingDispatcher struct {
	reports chan *entity.Valuation
}

func newCapturingDispatcher() *capturingDispatcher {
	return &capturingDispatcher{reports: make(chan *entity.Valuation, 4)}
}

func (d *capturingDispatcher) DispatchReport(ctx context.Context, v *entity.Valuation) error {
	d.reports <- v
	return nil
}

func (d *capturingDispatcher) wait(t *testing.T) *entity.Valuation {
	t.Helper()
	select {
	case v := <-d.reports:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher was not invoked")
		return nil
	}
}

func newIntakeFixture() (*IntakeUseCase, *database.ValuationRepository, *capturingDispatcher) {
	repo := database.NewValuationRepository(database.NewMemoryKV())
	dispatcher := newCapturingDispatcher()
	uc := NewIntakeUseCase(repo, NewCalculator(DefaultCalculatorConfig()), dispatcher)
	return uc, repo, dispatcher
}

func TestStartIntakeCreatesContactOnlyRecord(t *testing.T) {
	uc, repo, _ := newIntakeFixture()
	ctx := context.Background()

	v, err := uc.Start(ctx, StartIntakeInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "555-0100",
	})
	require.NoError(t, err)
	assert.Contains(t, v.ID, "val_")

	stored, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", stored.Email)
	assert.True(t, stored.Stage1Completed)
	assert.False(t, stored.Stage2Completed)
	assert.Equal(t, 1, stored.Stage())
	assert.Nil(t, stored.PropertyAddress)
	assert.Nil(t, stored.AnnualRent)
	assert.Nil(t, stored.ConservativeEstimate)
	assert.Nil(t, stored.OptimisticEstimate)

	index, err := repo.Index(ctx)
	require.NoError(t, err)
	require.Len(t, index, 1)
	assert.Equal(t, v.ID, index[0].ID)
	assert.Equal(t, 1, index[0].Stage)
}

func TestStartIntakeRejectsInvalidInput(t *testing.T) {
	uc, repo, _ := newIntakeFixture()
	ctx := context.Background()

	_, err := uc.Start(ctx, StartIntakeInput{FirstName: "Jane"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, ve.Field)
	}
	assert.Contains(t, fields, "lastName")
	assert.Contains(t, fields, "email")

	index, err := repo.Index(ctx)
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestCompleteIntakeComputesEstimatesAndDispatches(t *testing.T) {
	uc, repo, dispatcher := newIntakeFixture()
	ctx := context.Background()

	v, err := uc.Start(ctx, StartIntakeInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	require.NoError(t, err)

	completed, err := uc.Complete(ctx, v.ID, CompleteIntakeInput{
		PropertyAddress:     "123 Main St, Springfield",
		AnnualRent:          120000,
		AnnualPropertyTaxes: 8000,
		TaxesReimbursed:     false,
		AnnualInsurance:     3000,
		SquareFootage:       5000,
	})
	require.NoError(t, err)

	require.NotNil(t, completed.ConservativeEstimate)
	require.NotNil(t, completed.OptimisticEstimate)
	assert.Equal(t, int64(835417), *completed.ConservativeEstimate)
	assert.Equal(t, int64(1253125), *completed.OptimisticEstimate)
	assert.True(t, completed.Stage2Completed)
	assert.Equal(t, 2, completed.Stage())

	stored, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PropertyAddress)
	assert.Equal(t, "123 Main St, Springfield", *stored.PropertyAddress)
	assert.Equal(t, int64(835417), *stored.ConservativeEstimate)

	report := dispatcher.wait(t)
	assert.Equal(t, v.ID, report.ID)
	assert.Equal(t, "jane@example.com", report.Email)
}

func TestCompleteIntakeUnknownID(t *testing.T) {
	uc, repo, _ := newIntakeFixture()
	ctx := context.Background()

	_, err := uc.Complete(ctx, "val_missing", CompleteIntakeInput{
		PropertyAddress: "1 Nowhere Ln",
		AnnualRent:      50000,
		SquareFootage:   1000,
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	index, err := repo.Index(ctx)
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestCompleteIntakeTwiceOverwrites(t *testing.T) {
	uc, _, dispatcher := newIntakeFixture()
	ctx := context.Background()

	v, err := uc.Start(ctx, StartIntakeInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	require.NoError(t, err)

	first := CompleteIntakeInput{
		PropertyAddress: "123 Main St", AnnualRent: 120000,
		AnnualPropertyTaxes: 8000, AnnualInsurance: 3000, SquareFootage: 5000,
	}
	_, err = uc.Complete(ctx, v.ID, first)
	require.NoError(t, err)
	dispatcher.wait(t)

	second := first
	second.TaxesReimbursed = true
	updated, err := uc.Complete(ctx, v.ID, second)
	require.NoError(t, err)
	dispatcher.wait(t)

	assert.Equal(t, int64(902083), *updated.ConservativeEstimate)
	assert.Equal(t, int64(1353125), *updated.OptimisticEstimate)
	assert.True(t, *updated.TaxesReimbursed)
}

func TestCompleteIntakeRejectsBadFinancials(t *testing.T) {
	uc, _, _ := newIntakeFixture()
	ctx := context.Background()

	v, err := uc.Start(ctx, StartIntakeInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	require.NoError(t, err)

	_, err = uc.Complete(ctx, v.ID, CompleteIntakeInput{
		PropertyAddress: "123 Main St",
		AnnualRent:      -1,
		SquareFootage:   0,
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	stored, err := uc.Valuations.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, stored.Stage2Completed)
}
