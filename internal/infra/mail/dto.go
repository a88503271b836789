package mail

// EmailSender delivers HTML mail over SMTP.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// ReportData is the fully formatted payload for the valuation report
// template. All money fields arrive pre-formatted ("1,253,125") so the
// template stays dumb.
type ReportData struct {
	FirstName        string
	LastName         string
	FormattedAddress string
	StreetViewURL    string

	AnnualRent      string
	PropertyTaxes   string
	TaxesReimbursed bool
	Insurance       string
	SquareFootage   string
	Maintenance     string
	NetIncome       string

	Conservative string
	Optimistic   string

	SiteBaseURL string
	Year        int
}
