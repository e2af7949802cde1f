package entity

import "github.com/shopspring/decimal"

// Profile is the static issuer configuration merged into every document.
// It is loaded once at start and passed by value.
type Profile struct {
	CompanyName     string
	CompanyAddress  string
	CompanyCity     string
	CompanyWebsite  string
	CompanyPhone    string
	CompanyEmail    string
	CompanyVAT      string
	BankAccountName string
	BankAccountNo   string
	BankIBAN        string
	BankSwift       string
	BankBranch      string
	Terms           string
	BalanceDueTerms string
	VATRate         decimal.Decimal
	VATLabel        string
	FooterNote      string
	CurrencyCode    string
	DeclarationText string
	InvoicePrefix   string
}

// DefaultProfile returns the issuer profile used when no overrides are configured
func DefaultProfile() Profile {
	return Profile{
		CompanyName:     "VIHAAN REAL ESTATE BROKERAGE",
		CompanyAddress:  "Office No MO6, Al Jawhara building, Mankhool",
		CompanyCity:     "Dubai, UAE",
		CompanyWebsite:  "www.vrebuae.uae",
		CompanyPhone:    "+971 567 276363",
		CompanyEmail:    "customerservice@vrebuae.com",
		CompanyVAT:      "104070763800003",
		BankAccountName: "VIHAAN REAL ESTATE BROKERAGE",
		BankAccountNo:   "9758567498",
		BankIBAN:        "AE220860000009758567498",
		BankSwift:       "WIOBAEADXXX",
		BankBranch:      "Jebel Ali, Dubai",
		Terms:           "Due on Receipt",
		BalanceDueTerms: "Immediate",
		VATRate:         decimal.RequireFromString("0.05"),
		VATLabel:        "Standard Rate (5%)",
		FooterNote:      "Thank you for your Business",
		CurrencyCode:    "AED",
		DeclarationText: "I Hereby confirm that the above information provided is true and authentic " +
			"on the date of this declaration. I shall notify Vihaan Real Estate in case " +
			"of any changes in the above mentioned information.",
		InvoicePrefix: "VREB",
	}
}
