package usecase

import "github.com/sellmypostoffice/valuation-api/internal/entity"

type StartIntakeInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type CompleteIntakeInput struct {
	PropertyAddress     string  `json:"propertyAddress"`
	AnnualRent          float64 `json:"annualRent"`
	AnnualPropertyTaxes float64 `json:"annualPropertyTaxes"`
	TaxesReimbursed     bool    `json:"taxesReimbursed"`
	AnnualInsurance     float64 `json:"annualInsurance"`
	SquareFootage       float64 `json:"squareFootage"`
}

type CreateLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Page    string `json:"page"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ListValuationsInput struct {
	Query string
	Stage int // 0 = no filter, 1 = contact only, 2 = completed
	Page  int
	Limit int
}

type ListValuationsOutput struct {
	Data       []entity.ValuationIndexEntry `json:"data"`
	Pagination Pagination                   `json:"pagination"`
}

type ListLeadsInput struct {
	Query string
	Page  int
	Limit int
}

type ListLeadsOutput struct {
	Data       []*entity.Lead `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type StatsOutput struct {
	TotalValuations  int `json:"totalValuations"`
	CompletedReports int `json:"completedReports"`
	LeadsTotal       int `json:"leadsTotal"`
	ConversionRate   int `json:"conversionRate"` // percent, rounded
}

type BlogPostInput struct {
	Slug     string             `json:"slug"`
	Title    string             `json:"title"`
	Excerpt  string             `json:"excerpt"`
	Category string             `json:"category"`
	Date     string             `json:"date"`
	ReadTime string             `json:"readTime"`
	Featured bool               `json:"featured"`
	Content  entity.BlogContent `json:"content"`
}
