package utils

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	trnRegex   = regexp.MustCompile(`^\d{15}$`)
	controlRe  = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateEmail validates a local@domain.tld email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateTRN validates a UAE tax registration number (15 digits)
func ValidateTRN(trn string) error {
	if !trnRegex.MatchString(trn) {
		return fmt.Errorf("TRN must be exactly 15 digits: %s", trn)
	}
	return nil
}

// ValidateInvoiceNumber validates an invoice number of the form PREFIX####
func ValidateInvoiceNumber(number, prefix string) error {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\d{4}$`)
	if !pattern.MatchString(number) {
		return fmt.Errorf("invoice number must be in format '%s####': %s", prefix, number)
	}
	return nil
}

// ValidatePrintable checks that s can be drawn with the built-in PDF fonts,
// which only cover Windows-1252
func ValidatePrintable(s string) error {
	if _, err := charmap.Windows1252.NewEncoder().String(s); err != nil {
		return fmt.Errorf("text cannot be printed with the document font: %q", s)
	}
	return nil
}

// SanitizeString removes control characters and surrounding whitespace
func SanitizeString(s string) string {
	return strings.TrimSpace(controlRe.ReplaceAllString(s, ""))
}
