package usecase

import (
	"context"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

// NotificationDispatcher hands a completed valuation off for report
// delivery. Implementations are best-effort: the write path that
// triggers a dispatch never fails because the dispatch did.
type NotificationDispatcher interface {
	DispatchReport(ctx context.Context, v *entity.Valuation) error
}
