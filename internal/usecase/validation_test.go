package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

func expectValidation(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidatePrice(t *testing.T) {
	if err := ValidatePrice(decimal.RequireFromString("0.01")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValidation(t, ValidatePrice(decimal.Zero))
	expectValidation(t, ValidatePrice(decimal.NewFromInt(-3)))

	if err := ValidatePrice(decimal.RequireFromString("19.900")); err != nil {
		t.Fatalf("trailing zeros are not extra precision: %v", err)
	}
	if err := ValidatePrice(decimal.RequireFromString("9999999999.99")); err != nil {
		t.Fatalf("unexpected error at column limit: %v", err)
	}
	expectValidation(t, ValidatePrice(decimal.RequireFromString("0.004")))
	expectValidation(t, ValidatePrice(decimal.RequireFromString("10.999")))
	expectValidation(t, ValidatePrice(decimal.RequireFromString("10000000000")))
	expectValidation(t, ValidatePrice(decimal.NewFromInt(100000000000)))
}

func TestValidateRating(t *testing.T) {
	good := "arrived well packed"
	if err := ValidateRating(1, good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateRating(5, strings.Repeat("a", 500)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectValidation(t, ValidateRating(0, good))
	expectValidation(t, ValidateRating(6, good))
	expectValidation(t, ValidateRating(3, ""))
	expectValidation(t, ValidateRating(3, "short"))
	expectValidation(t, ValidateRating(3, strings.Repeat("a", 501)))
}

func TestNormalizeTrackingCode(t *testing.T) {
	code, err := NormalizeTrackingCode("  BR123456789  ")
	if err != nil || code == nil || *code != "BR123456789" {
		t.Fatalf("unexpected result: %v %v", code, err)
	}

	code, err = NormalizeTrackingCode("   ")
	if err != nil || code != nil {
		t.Fatalf("expected nil code for blank input, got %v %v", code, err)
	}

	_, err = NormalizeTrackingCode(strings.Repeat("X", 65))
	expectValidation(t, err)
}

func validListing() model.Listing {
	return model.Listing{
		SellerID:    3,
		CategoryID:  1,
		Name:        "  Bicicleta aro 29 ",
		Description: "Pouco uso",
		Weight:      12.5,
		Price:       decimal.RequireFromString("899.90"),
		Stock:       2,
	}
}

func TestNormalizeListing(t *testing.T) {
	l := validListing()
	if err := NormalizeListing(&l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Name != "Bicicleta aro 29" {
		t.Fatalf("name not trimmed: %q", l.Name)
	}

	cases := map[string]func(*model.Listing){
		"short name":  func(l *model.Listing) { l.Name = "ab" },
		"long name":   func(l *model.Listing) { l.Name = strings.Repeat("n", 101) },
		"long desc":   func(l *model.Listing) { l.Description = strings.Repeat("d", 2001) },
		"zero weight": func(l *model.Listing) { l.Weight = 0 },
		"zero price":  func(l *model.Listing) { l.Price = decimal.Zero },
		"sub-cent":    func(l *model.Listing) { l.Price = decimal.RequireFromString("0.004") },
		"huge price":  func(l *model.Listing) { l.Price = decimal.NewFromInt(100000000000) },
		"neg stock":   func(l *model.Listing) { l.Stock = -1 },
		"no category": func(l *model.Listing) { l.CategoryID = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			l := validListing()
			mutate(&l)
			expectValidation(t, NormalizeListing(&l))
		})
	}
}

func validAddress() model.Address {
	complement := "  "
	return model.Address{
		UserID:       1,
		Title:        "Casa",
		Street:       "Rua das Flores",
		Number:       "10",
		Complement:   &complement,
		Neighborhood: "Centro",
		City:         "Recife",
		State:        "pe",
		PostalCode:   "50030-230",
	}
}

func TestNormalizeAddress(t *testing.T) {
	a := validAddress()
	if err := NormalizeAddress(&a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.State != "PE" || a.PostalCode != "50030230" {
		t.Fatalf("address not normalized: %+v", a)
	}
	if a.Complement != nil {
		t.Fatalf("blank complement should become nil")
	}

	cases := map[string]func(*model.Address){
		"missing street": func(a *model.Address) { a.Street = " " },
		"missing city":   func(a *model.Address) { a.City = "" },
		"long uf":        func(a *model.Address) { a.State = "PER" },
		"digit uf":       func(a *model.Address) { a.State = "P1" },
		"short cep":      func(a *model.Address) { a.PostalCode = "5003-023" },
		"letters cep":    func(a *model.Address) { a.PostalCode = "5003023A" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a := validAddress()
			mutate(&a)
			expectValidation(t, NormalizeAddress(&a))
		})
	}
}

func TestNormalizeRegistration(t *testing.T) {
	u := model.User{Name: " Ana ", Email: " Ana@Example.COM "}
	if err := NormalizeRegistration(&u, "secret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != "Ana" || u.Email != "ana@example.com" {
		t.Fatalf("user not normalized: %+v", u)
	}

	expectValidation(t, NormalizeRegistration(&model.User{Name: "", Email: "a@b.c"}, "secret1"))
	expectValidation(t, NormalizeRegistration(&model.User{Name: "Ana", Email: "not-an-email"}, "secret1"))
	expectValidation(t, NormalizeRegistration(&model.User{Name: "Ana", Email: "Ana <a@b.c>"}, "secret1"))
	expectValidation(t, NormalizeRegistration(&model.User{Name: "Ana", Email: "a@b.c"}, "123"))
}
