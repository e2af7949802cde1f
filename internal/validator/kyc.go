package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/pkg/utils"
)

// kycDateFields must hold ISO dates when present
var kycDateFields = []struct {
	key   string
	label string
}{
	{"date_of_birth", "Date of Birth"},
	{"passport_issue_date", "Passport Issue Date"},
	{"passport_expiry_date", "Passport Expiry Date"},
	{"dual_passport_issue_date", "Dual Passport Issue Date"},
	{"dual_passport_expiry_date", "Dual Passport Expiry Date"},
	{"emirates_id_expiry", "Emirates ID Expiry Date"},
	{"visa_expiry", "Visa Expiry Date"},
}

// KYCValidator checks KYC applications using struct tags on the entity
type KYCValidator struct {
	validate *validator.Validate
}

// NewKYCValidator creates a KYC validator that reports fields by their JSON name
func NewKYCValidator() *KYCValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &KYCValidator{validate: v}
}

// Validate returns every violation for the application; empty means valid
func (v *KYCValidator) Validate(app *entity.KYCApplication) []string {
	if app == nil {
		return []string{"KYC application is required"}
	}

	errs := make([]string, 0)
	if err := v.validate.Struct(app); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return append(errs, err.Error())
		}
		for _, fe := range fieldErrs {
			switch fe.Tag() {
			case "required":
				errs = append(errs, fmt.Sprintf("%s is required", fe.Field()))
			case "oneof":
				errs = append(errs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
			case "numeric":
				errs = append(errs, fmt.Sprintf("%s must be numeric", fe.Field()))
			default:
				errs = append(errs, fmt.Sprintf("%s is invalid", fe.Field()))
			}
		}
	}

	fields := app.Fields()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if utils.ValidatePrintable(fields[key]) != nil {
			errs = append(errs, fmt.Sprintf("%s contains characters that cannot be printed on the application form", key))
		}
	}

	for _, df := range kycDateFields {
		value := strings.TrimSpace(fields[df.key])
		if value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			errs = append(errs, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", df.label))
		}
	}

	return errs
}
