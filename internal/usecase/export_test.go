package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
	"github.com/sellmypostoffice/valuation-api/internal/infra/database"
)

func TestExportValuationsCSV(t *testing.T) {
	uc, valuations, _, _ := newAdminFixture()
	ctx := context.Background()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	seedValuation(t, valuations, "a@example.com", "1 A St", true, now)
	seedValuation(t, valuations, "b@example.com", "", false, now)

	out, err := uc.ExportValuationsCSV(ctx)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"ID,Email,First Name,Last Name,Phone,Address,Annual Rent,Property Taxes,Insurance,Square Footage,Taxes Reimbursed,Stage,Conservative Estimate,Optimistic Estimate,Created At,Updated At",
		lines[0])
	assert.Contains(t, out, "a@example.com")
	assert.Contains(t, out, "1 A St")
	assert.Contains(t, out, "500000")
	assert.Contains(t, out, "2026-03-15T12:00:00Z")
}

func TestExportValuationsCSVFallsBackToIndex(t *testing.T) {
	kv := database.NewMemoryKV()
	valuations := database.NewValuationRepository(kv)
	uc := NewAdminUseCase(valuations, database.NewLeadRepository(kv), nil)
	ctx := context.Background()

	v := seedValuation(t, valuations, "gone@example.com", "7 G St", true, time.Now().UTC())
	_, err := kv.Delete(ctx, database.BucketValuations, v.ID)
	require.NoError(t, err)

	out, err := uc.ExportValuationsCSV(ctx)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// One data row per index entry even when the record blob is gone.
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "gone@example.com")
	assert.Contains(t, lines[1], "7 G St")
}

func TestExportLeadsCSVEscapesFields(t *testing.T) {
	uc, _, leads, _ := newAdminFixture()
	ctx := context.Background()

	require.NoError(t, leads.Create(ctx, &entity.Lead{
		ID:        "lead_1",
		Name:      `Dana "DJ" Jones`,
		Email:     "dana@example.com",
		Message:   "Call me, please\nanytime",
		Page:      "contact",
		CreatedAt: time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC),
	}))

	out, err := uc.ExportLeadsCSV(ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "ID,Name,Email,Phone,Message,Page,Created At\n"))
	assert.Contains(t, out, `"Dana ""DJ"" Jones"`)
	assert.Contains(t, out, "\"Call me, please\nanytime\"")
}

func TestExportEmptyStores(t *testing.T) {
	uc, _, _, _ := newAdminFixture()
	ctx := context.Background()

	vals, err := uc.ExportValuationsCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(vals, "\n"))

	leads, err := uc.ExportLeadsCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Email,Phone,Message,Page,Created At\n", leads)
}
