package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

const defaultPageSize = 20

// AdminUseCase backs the back-office tables: search, filter and
// pagination over both index structures, single-record delete, report
// resend and the dashboard stats.
type AdminUseCase struct {
	Valuations entity.ValuationRepositoryInterface
	Leads      entity.LeadRepositoryInterface
	Dispatcher NotificationDispatcher
}

func NewAdminUseCase(
	valuations entity.ValuationRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	dispatcher NotificationDispatcher,
) *AdminUseCase {
	return &AdminUseCase{
		Valuations: valuations,
		Leads:      leads,
		Dispatcher: dispatcher,
	}
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

func paginate(total, page, limit int) (start, end int, p Pagination) {
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return start, end, Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func (uc *AdminUseCase) ListValuations(ctx context.Context, input ListValuationsInput) (*ListValuationsOutput, error) {
	index, err := uc.Valuations.Index(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(input.Query))
	filtered := make([]entity.ValuationIndexEntry, 0, len(index))
	for _, entry := range index {
		if q != "" &&
			!strings.Contains(strings.ToLower(entry.Email), q) &&
			!strings.Contains(strings.ToLower(entry.Address), q) {
			continue
		}
		if input.Stage != 0 && entry.Stage != input.Stage {
			continue
		}
		filtered = append(filtered, entry)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})

	page, limit := normalizePaging(input.Page, input.Limit)
	start, end, pagination := paginate(len(filtered), page, limit)

	return &ListValuationsOutput{
		Data:       filtered[start:end],
		Pagination: pagination,
	}, nil
}

func (uc *AdminUseCase) ListLeads(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error) {
	index, err := uc.Leads.Index(ctx)
	if err != nil {
		return nil, err
	}

	// Resolve each entry to the full lead; a broken index entry falls
	// back to its summary fields instead of failing the listing.
	leads := make([]*entity.Lead, 0, len(index))
	for _, entry := range index {
		lead, err := uc.Leads.FindByID(ctx, entry.ID)
		if errors.Is(err, entity.ErrNotFound) {
			leads = append(leads, &entity.Lead{
				ID:        entry.ID,
				Name:      entry.Name,
				Email:     entry.Email,
				CreatedAt: entry.CreatedAt,
			})
			continue
		}
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	q := strings.ToLower(strings.TrimSpace(input.Query))
	if q != "" {
		filtered := leads[:0]
		for _, lead := range leads {
			if strings.Contains(strings.ToLower(lead.Name), q) ||
				strings.Contains(strings.ToLower(lead.Email), q) {
				filtered = append(filtered, lead)
			}
		}
		leads = filtered
	}

	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})

	page, limit := normalizePaging(input.Page, input.Limit)
	start, end, pagination := paginate(len(leads), page, limit)

	return &ListLeadsOutput{
		Data:       leads[start:end],
		Pagination: pagination,
	}, nil
}

func (uc *AdminUseCase) DeleteValuation(ctx context.Context, id string) (bool, error) {
	return uc.Valuations.Delete(ctx, id)
}

func (uc *AdminUseCase) DeleteLead(ctx context.Context, id string) (bool, error) {
	return uc.Leads.Delete(ctx, id)
}

// ResendNotification regenerates the report from the persisted record
// and re-triggers the dispatcher. Records without computed estimates
// have nothing to resend and surface as not found.
func (uc *AdminUseCase) ResendNotification(ctx context.Context, id string) error {
	v, err := uc.Valuations.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if v.ConservativeEstimate == nil || v.OptimisticEstimate == nil {
		return fmt.Errorf("valuation %s has no report to resend: %w", id, entity.ErrNotFound)
	}

	if uc.Dispatcher == nil {
		return nil
	}
	if err := uc.Dispatcher.DispatchReport(ctx, v); err != nil {
		// Best-effort, same contract as the intake path.
		log.Printf("report resend failed for %s: %v", id, err)
	}
	return nil
}

func (uc *AdminUseCase) Stats(ctx context.Context) (*StatsOutput, error) {
	valuations, err := uc.Valuations.Index(ctx)
	if err != nil {
		return nil, err
	}
	leads, err := uc.Leads.Index(ctx)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, v := range valuations {
		if v.Conservative != nil && v.Optimistic != nil {
			completed++
		}
	}

	conversion := 0
	if len(valuations) > 0 {
		conversion = int(math.Round(float64(completed) / float64(len(valuations)) * 100))
	}

	return &StatsOutput{
		TotalValuations:  len(valuations),
		CompletedReports: completed,
		LeadsTotal:       len(leads),
		ConversionRate:   conversion,
	}, nil
}
