package entity

import "time"

// KYCApplication is a customer due-diligence record captured for a purchaser
type KYCApplication struct {
	CustomerID string    `json:"customer_id"`
	KYCStatus  KYCStatus `json:"kyc_status"`

	// Customer
	ResidentialStatus       string `json:"residential_status" validate:"required"`
	FullName                string `json:"full_name" validate:"required"`
	ResidentialAddressLine1 string `json:"residential_address_line1" validate:"required"`
	ResidentialAddressLine2 string `json:"residential_address_line2"`
	HomeAddressLine1        string `json:"home_address_line1" validate:"required"`
	HomeAddressLine2        string `json:"home_address_line2"`
	ContactLandline         string `json:"contact_landline"`
	ContactOffice           string `json:"contact_office"`
	ContactMobile           string `json:"contact_mobile" validate:"required"`

	// Customer information
	Gender                 string `json:"gender" validate:"required,oneof=Male Female Other"`
	Nationality            string `json:"nationality" validate:"required"`
	DateOfBirth            string `json:"date_of_birth" validate:"required"`
	PlaceOfBirth           string `json:"place_of_birth" validate:"required"`
	PassportNumber         string `json:"passport_number" validate:"required"`
	PassportIssuePlace     string `json:"passport_issue_place" validate:"required"`
	PassportIssueDate      string `json:"passport_issue_date" validate:"required"`
	PassportExpiryDate     string `json:"passport_expiry_date" validate:"required"`
	DualNationality        string `json:"dual_nationality"`
	DualPassportNumber     string `json:"dual_passport_number"`
	DualPassportIssueDate  string `json:"dual_passport_issue_date"`
	DualPassportExpiryDate string `json:"dual_passport_expiry_date"`
	EmiratesID             string `json:"emirates_id" validate:"required"`
	EmiratesIDExpiry       string `json:"emirates_id_expiry" validate:"required"`
	VisaUID                string `json:"visa_uid" validate:"required"`
	VisaExpiry             string `json:"visa_expiry" validate:"required"`

	// Occupation
	Occupation              string `json:"occupation" validate:"required"`
	SponsorBusinessName     string `json:"sponsor_business_name" validate:"required"`
	SponsorBusinessAddress  string `json:"sponsor_business_address" validate:"required"`
	SponsorBusinessLandline string `json:"sponsor_business_landline" validate:"required"`
	SponsorBusinessMobile   string `json:"sponsor_business_mobile" validate:"required"`

	// Profile and payment
	AnnualIncome      string `json:"annual_income" validate:"required,numeric"`
	InvestmentPurpose string `json:"investment_purpose" validate:"required"`
	SourceOfFunds     string `json:"source_of_funds" validate:"required"`
	PaymentMethod     string `json:"payment_method" validate:"required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fields returns the application values keyed by their stored column name.
// Document layouts and the tabular store address fields through these keys.
func (a *KYCApplication) Fields() map[string]string {
	return map[string]string{
		"customer_id":               a.CustomerID,
		"kyc_status":                string(a.KYCStatus),
		"residential_status":        a.ResidentialStatus,
		"full_name":                 a.FullName,
		"residential_address_line1": a.ResidentialAddressLine1,
		"residential_address_line2": a.ResidentialAddressLine2,
		"home_address_line1":        a.HomeAddressLine1,
		"home_address_line2":        a.HomeAddressLine2,
		"contact_landline":          a.ContactLandline,
		"contact_office":            a.ContactOffice,
		"contact_mobile":            a.ContactMobile,
		"gender":                    a.Gender,
		"nationality":               a.Nationality,
		"date_of_birth":             a.DateOfBirth,
		"place_of_birth":            a.PlaceOfBirth,
		"passport_number":           a.PassportNumber,
		"passport_issue_place":      a.PassportIssuePlace,
		"passport_issue_date":       a.PassportIssueDate,
		"passport_expiry_date":      a.PassportExpiryDate,
		"dual_nationality":          a.DualNationality,
		"dual_passport_number":      a.DualPassportNumber,
		"dual_passport_issue_date":  a.DualPassportIssueDate,
		"dual_passport_expiry_date": a.DualPassportExpiryDate,
		"emirates_id":               a.EmiratesID,
		"emirates_id_expiry":        a.EmiratesIDExpiry,
		"visa_uid":                  a.VisaUID,
		"visa_expiry":               a.VisaExpiry,
		"occupation":                a.Occupation,
		"sponsor_business_name":     a.SponsorBusinessName,
		"sponsor_business_address":  a.SponsorBusinessAddress,
		"sponsor_business_landline": a.SponsorBusinessLandline,
		"sponsor_business_mobile":   a.SponsorBusinessMobile,
		"annual_income":             a.AnnualIncome,
		"investment_purpose":        a.InvestmentPurpose,
		"source_of_funds":           a.SourceOfFunds,
		"payment_method":            a.PaymentMethod,
	}
}

// SetField assigns a value by stored column name. Unknown keys are ignored.
func (a *KYCApplication) SetField(key, value string) {
	switch key {
	case "customer_id":
		a.CustomerID = value
	case "kyc_status":
		a.KYCStatus = KYCStatus(value)
	case "residential_status":
		a.ResidentialStatus = value
	case "full_name":
		a.FullName = value
	case "residential_address_line1":
		a.ResidentialAddressLine1 = value
	case "residential_address_line2":
		a.ResidentialAddressLine2 = value
	case "home_address_line1":
		a.HomeAddressLine1 = value
	case "home_address_line2":
		a.HomeAddressLine2 = value
	case "contact_landline":
		a.ContactLandline = value
	case "contact_office":
		a.ContactOffice = value
	case "contact_mobile":
		a.ContactMobile = value
	case "gender":
		a.Gender = value
	case "nationality":
		a.Nationality = value
	case "date_of_birth":
		a.DateOfBirth = value
	case "place_of_birth":
		a.PlaceOfBirth = value
	case "passport_number":
		a.PassportNumber = value
	case "passport_issue_place":
		a.PassportIssuePlace = value
	case "passport_issue_date":
		a.PassportIssueDate = value
	case "passport_expiry_date":
		a.PassportExpiryDate = value
	case "dual_nationality":
		a.DualNationality = value
	case "dual_passport_number":
		a.DualPassportNumber = value
	case "dual_passport_issue_date":
		a.DualPassportIssueDate = value
	case "dual_passport_expiry_date":
		a.DualPassportExpiryDate = value
	case "emirates_id":
		a.EmiratesID = value
	case "emirates_id_expiry":
		a.EmiratesIDExpiry = value
	case "visa_uid":
		a.VisaUID = value
	case "visa_expiry":
		a.VisaExpiry = value
	case "occupation":
		a.Occupation = value
	case "sponsor_business_name":
		a.SponsorBusinessName = value
	case "sponsor_business_address":
		a.SponsorBusinessAddress = value
	case "sponsor_business_landline":
		a.SponsorBusinessLandline = value
	case "sponsor_business_mobile":
		a.SponsorBusinessMobile = value
	case "annual_income":
		a.AnnualIncome = value
	case "investment_purpose":
		a.InvestmentPurpose = value
	case "source_of_funds":
		a.SourceOfFunds = value
	case "payment_method":
		a.PaymentMethod = value
	}
}

// KYCColumns is the fixed column order of the KYC customer table
var KYCColumns = []string{
	"customer_id", "kyc_status",
	"residential_status", "full_name",
	"residential_address_line1", "residential_address_line2",
	"home_address_line1", "home_address_line2",
	"contact_landline", "contact_office", "contact_mobile",
	"gender", "nationality", "date_of_birth", "place_of_birth",
	"passport_number", "passport_issue_place", "passport_issue_date", "passport_expiry_date",
	"dual_nationality", "dual_passport_number", "dual_passport_issue_date", "dual_passport_expiry_date",
	"emirates_id", "emirates_id_expiry", "visa_uid", "visa_expiry",
	"occupation", "sponsor_business_name", "sponsor_business_address",
	"sponsor_business_landline", "sponsor_business_mobile",
	"annual_income", "investment_purpose", "source_of_funds", "payment_method",
	"created_at", "updated_at",
}
