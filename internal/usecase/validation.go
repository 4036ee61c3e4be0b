package usecase

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

const (
	minRating          = 1
	maxRating          = 5
	minCommentLength   = 10
	maxCommentLength   = 500
	maxTrackingLength  = 64
	minListingName     = 3
	maxListingName     = 100
	maxDescription     = 2000
	minPasswordLength  = 6
	maxUserNameLength  = 100
	postalCodeDigits   = 8
	maxAddressFieldLen = 120
)

// Prices are stored as NUMERIC(12, 2).
const priceScale = 2

var maxPrice = decimal.RequireFromString("9999999999.99")

// ValidatePrice rejects non-positive amounts, fractions of a cent and values
// the price column cannot hold.
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return domainErrors.Validation("price must be greater than zero")
	}
	if !price.Equal(price.Truncate(priceScale)) {
		return domainErrors.Validation("price must have at most %d decimal places", priceScale)
	}
	if price.GreaterThan(maxPrice) {
		return domainErrors.Validation("price must be at most %s", maxPrice.StringFixed(priceScale))
	}
	return nil
}

// ValidateRating checks the score and the free-text comment left by a buyer.
// The comment is measured as given; callers trim it first.
func ValidateRating(rating int, comment string) error {
	if rating < minRating || rating > maxRating {
		return domainErrors.Validation("rating must be between %d and %d", minRating, maxRating)
	}
	n := utf8.RuneCountInString(comment)
	if n < minCommentLength || n > maxCommentLength {
		return domainErrors.Validation("comment must have between %d and %d characters", minCommentLength, maxCommentLength)
	}
	return nil
}

// NormalizeTrackingCode trims the code and maps blank input to nil.
func NormalizeTrackingCode(code string) (*string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(code) > maxTrackingLength {
		return nil, domainErrors.Validation("tracking code must have at most %d characters", maxTrackingLength)
	}
	return &code, nil
}

// NormalizeListing trims text fields and checks listing bounds.
func NormalizeListing(l *model.Listing) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Description = strings.TrimSpace(l.Description)

	if n := utf8.RuneCountInString(l.Name); n < minListingName || n > maxListingName {
		return domainErrors.Validation("name must have between %d and %d characters", minListingName, maxListingName)
	}
	if utf8.RuneCountInString(l.Description) > maxDescription {
		return domainErrors.Validation("description must have at most %d characters", maxDescription)
	}
	if l.Weight <= 0 {
		return domainErrors.Validation("weight must be greater than zero")
	}
	if err := ValidatePrice(l.Price); err != nil {
		return err
	}
	if l.Stock < 0 {
		return domainErrors.Validation("stock cannot be negative")
	}
	if l.CategoryID <= 0 {
		return domainErrors.Validation("category is required")
	}
	return nil
}

// NormalizeAddress trims fields, upper-cases the UF and strips the CEP dash.
func NormalizeAddress(a *model.Address) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"title", &a.Title},
		{"street", &a.Street},
		{"number", &a.Number},
		{"neighborhood", &a.Neighborhood},
		{"city", &a.City},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return domainErrors.Validation("%s is required", f.name)
		}
		if utf8.RuneCountInString(*f.value) > maxAddressFieldLen {
			return domainErrors.Validation("%s is too long", f.name)
		}
	}

	if a.Complement != nil {
		c := strings.TrimSpace(*a.Complement)
		if c == "" {
			a.Complement = nil
		} else {
			a.Complement = &c
		}
	}

	a.State = strings.ToUpper(strings.TrimSpace(a.State))
	if len(a.State) != 2 || !isLetters(a.State) {
		return domainErrors.Validation("state must be a two-letter UF")
	}

	a.PostalCode = strings.ReplaceAll(strings.TrimSpace(a.PostalCode), "-", "")
	if len(a.PostalCode) != postalCodeDigits || !isDigits(a.PostalCode) {
		return domainErrors.Validation("postal code must have %d digits", postalCodeDigits)
	}
	return nil
}

// NormalizeRegistration trims and lower-cases the email and checks credentials.
func NormalizeRegistration(u *model.User, password string) error {
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" || utf8.RuneCountInString(u.Name) > maxUserNameLength {
		return domainErrors.Validation("name must have between 1 and %d characters", maxUserNameLength)
	}
	email, err := normalizeEmail(u.Email)
	if err != nil {
		return err
	}
	u.Email = email
	if utf8.RuneCountInString(password) < minPasswordLength {
		return domainErrors.Validation("password must have at least %d characters", minPasswordLength)
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", domainErrors.Validation("email is invalid")
	}
	return raw, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
