package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

var valuationCSVHeader = []string{
	"ID", "Email", "First Name", "Last Name", "Phone", "Address",
	"Annual Rent", "Property Taxes", "Insurance", "Square Footage",
	"Taxes Reimbursed", "Stage", "Conservative Estimate",
	"Optimistic Estimate", "Created At", "Updated At",
}

var leadCSVHeader = []string{
	"ID", "Name", "Email", "Phone", "Message", "Page", "Created At",
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func csvTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func writeCSV(header []string, rows [][]string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ExportValuationsCSV serializes every live index entry, resolving each
// to its full record and falling back to the index summary when the
// record blob is missing. Exactly one data row per index entry.
func (uc *AdminUseCase) ExportValuationsCSV(ctx context.Context) (string, error) {
	index, err := uc.Valuations.Index(ctx)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(index))
	for _, entry := range index {
		v, err := uc.Valuations.FindByID(ctx, entry.ID)
		if errors.Is(err, entity.ErrNotFound) {
			rows = append(rows, []string{
				entry.ID, entry.Email, entry.FirstName, entry.LastName, "",
				entry.Address, "", "", "", "", "",
				strconv.Itoa(entry.Stage),
				csvInt(entry.Conservative), csvInt(entry.Optimistic),
				csvTime(entry.CreatedAt), csvTime(entry.UpdatedAt),
			})
			continue
		}
		if err != nil {
			return "", err
		}

		address := ""
		if v.PropertyAddress != nil {
			address = *v.PropertyAddress
		}
		reimbursed := "No"
		if v.TaxesReimbursed != nil && *v.TaxesReimbursed {
			reimbursed = "Yes"
		}
		rows = append(rows, []string{
			v.ID, v.Email, v.FirstName, v.LastName, v.Phone, address,
			csvFloat(v.AnnualRent), csvFloat(v.AnnualPropertyTaxes),
			csvFloat(v.AnnualInsurance), csvFloat(v.SquareFootage),
			reimbursed,
			strconv.Itoa(v.Stage()),
			csvInt(v.ConservativeEstimate), csvInt(v.OptimisticEstimate),
			csvTime(v.CreatedAt), csvTime(v.UpdatedAt),
		})
	}

	return writeCSV(valuationCSVHeader, rows)
}

func (uc *AdminUseCase) ExportLeadsCSV(ctx context.Context) (string, error) {
	index, err := uc.Leads.Index(ctx)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(index))
	for _, entry := range index {
		lead, err := uc.Leads.FindByID(ctx, entry.ID)
		if errors.Is(err, entity.ErrNotFound) {
			rows = append(rows, []string{
				entry.ID, entry.Name, entry.Email, "", "", "",
				csvTime(entry.CreatedAt),
			})
			continue
		}
		if err != nil {
			return "", err
		}
		rows = append(rows, []string{
			lead.ID, lead.Name, lead.Email, lead.Phone, lead.Message,
			lead.Page, csvTime(lead.CreatedAt),
		})
	}

	return writeCSV(leadCSVHeader, rows)
}
