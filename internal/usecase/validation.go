package usecase

import (
	"net/mail"
	"strings"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func ValidateStartIntake(input StartIntakeInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, ValidationError{"firstName", "is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, ValidationError{"lastName", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	return errs
}

func ValidateCompleteIntake(input CompleteIntakeInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.PropertyAddress) == "" {
		errs = append(errs, ValidationError{"propertyAddress", "is required"})
	}
	if input.AnnualRent < 0 {
		errs = append(errs, ValidationError{"annualRent", "must not be negative"})
	}
	if input.AnnualPropertyTaxes < 0 {
		errs = append(errs, ValidationError{"annualPropertyTaxes", "must not be negative"})
	}
	if input.AnnualInsurance < 0 {
		errs = append(errs, ValidationError{"annualInsurance", "must not be negative"})
	}
	if input.SquareFootage <= 0 {
		errs = append(errs, ValidationError{"squareFootage", "must be positive"})
	}

	return errs
}

func ValidateCreateLead(input CreateLeadInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	return errs
}

func ValidateBlogPost(input BlogPostInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Title) == "" {
		errs = append(errs, ValidationError{"title", "is required"})
	}
	if strings.TrimSpace(input.Slug) == "" {
		errs = append(errs, ValidationError{"slug", "is required"})
	}
	if strings.TrimSpace(input.Excerpt) == "" {
		errs = append(errs, ValidationError{"excerpt", "is required"})
	}
	if strings.TrimSpace(input.Category) == "" {
		errs = append(errs, ValidationError{"category", "is required"})
	} else if !entity.IsValidBlogCategory(input.Category) {
		errs = append(errs, ValidationError{"category", "is not a known category"})
	}

	return errs
}
