package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
	"github.com/sellmypostoffice/valuation-api/internal/infra/http/middleware"
	"github.com/sellmypostoffice/valuation-api/internal/infra/integration/maps"
	"github.com/sellmypostoffice/valuation-api/internal/infra/mail"
	"github.com/sellmypostoffice/valuation-api/internal/usecase"
)

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*maps.Location, error)
	StreetViewURL(lat, lng float64) string
}

// Dispatcher renders and sends the valuation report email directly.
// Geocoding is best-effort: on failure the report falls back to the
// raw address with no Street View image.
type Dispatcher struct {
	Mailer      Mailer
	Maps        Geocoder
	CalcCfg     usecase.CalculatorConfig
	SiteBaseURL string
}

func NewDispatcher(mailer Mailer, geocoder Geocoder, calcCfg usecase.CalculatorConfig, siteBaseURL string) *Dispatcher {
	return &Dispatcher{
		Mailer:      mailer,
		Maps:        geocoder,
		CalcCfg:     calcCfg,
		SiteBaseURL: siteBaseURL,
	}
}

func (d *Dispatcher) DispatchReport(ctx context.Context, v *entity.Valuation) error {
	if v.ConservativeEstimate == nil || v.OptimisticEstimate == nil ||
		v.PropertyAddress == nil || v.AnnualRent == nil ||
		v.AnnualPropertyTaxes == nil || v.AnnualInsurance == nil ||
		v.SquareFootage == nil {
		return fmt.Errorf("valuation %s is not complete, nothing to report", v.ID)
	}

	formattedAddress := *v.PropertyAddress
	streetViewURL := ""
	if d.Maps != nil {
		loc, err := d.Maps.Geocode(ctx, *v.PropertyAddress)
		if err != nil {
			log.Printf("geocode failed for %s: %v", v.ID, err)
		} else {
			formattedAddress = loc.FormattedAddress
			streetViewURL = d.Maps.StreetViewURL(loc.Lat, loc.Lng)
		}
	}

	reimbursed := v.TaxesReimbursed != nil && *v.TaxesReimbursed
	taxes := *v.AnnualPropertyTaxes
	if reimbursed {
		taxes = 0
	}
	maintenance := *v.SquareFootage * d.CalcCfg.MaintenancePerSqFt
	noi := *v.AnnualRent - taxes - *v.AnnualInsurance - maintenance

	data := mail.ReportData{
		FirstName:        v.FirstName,
		LastName:         v.LastName,
		FormattedAddress: formattedAddress,
		StreetViewURL:    streetViewURL,
		AnnualRent:       mail.FormatMoney(*v.AnnualRent),
		PropertyTaxes:    mail.FormatMoney(*v.AnnualPropertyTaxes),
		TaxesReimbursed:  reimbursed,
		Insurance:        mail.FormatMoney(*v.AnnualInsurance),
		SquareFootage:    mail.FormatMoney(*v.SquareFootage),
		Maintenance:      mail.FormatMoney(maintenance),
		NetIncome:        mail.FormatMoney(noi),
		Conservative:     mail.FormatMoney(float64(*v.ConservativeEstimate)),
		Optimistic:       mail.FormatMoney(float64(*v.OptimisticEstimate)),
		SiteBaseURL:      d.SiteBaseURL,
		Year:             time.Now().Year(),
	}

	html, err := mail.RenderReport(data)
	if err != nil {
		return err
	}

	subject := mail.ReportSubject(*v.ConservativeEstimate, *v.OptimisticEstimate)
	if err := d.Mailer.Send(v.Email, subject, html); err != nil {
		middleware.RecordReportDispatchError("direct")
		return err
	}
	return nil
}
