package validators

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsCNPJValid(t *testing.T) {
	cases := []struct {
		name  string
		cnpj  string
		valid bool
	}{
		{"valid cnpj", "11222333000181", true},
		{"valid cnpj other root", "34028316000103", true},
		{"wrong first check digit", "11222333000171", false},
		{"wrong second check digit", "11222333000180", false},
		{"all same digits", "11111111111111", false},
		{"too short", "1122233300018", false},
		{"too long", "112223330001811", false},
		{"formatted input rejected", "11.222.333/0001-81", false},
		{"letters", "1122233300018a", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCNPJValid(tc.cnpj); got != tc.valid {
				t.Errorf("IsCNPJValid(%q) = %v, want %v", tc.cnpj, got, tc.valid)
			}
		})
	}
}

func TestBarcodeValidatorTag(t *testing.T) {
	validate := validator.New()
	if err := validate.RegisterValidation("barcode", Barcode); err != nil {
		t.Fatalf("register barcode: %v", err)
	}

	type payload struct {
		Barcode string `validate:"barcode"`
	}
	digits := func(n int) string { return strings.Repeat("7", n) }

	cases := []struct {
		name  string
		code  string
		valid bool
	}{
		{"44 digit barcode", digits(44), true},
		{"47 digit typeable line", digits(47), true},
		{"48 digit typeable line", digits(48), true},
		{"too short", digits(43), false},
		{"too long", digits(49), false},
		{"non numeric", digits(43) + "x", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(&payload{Barcode: tc.code})
			if (err == nil) != tc.valid {
				t.Errorf("barcode %q: err=%v, want valid=%v", tc.code, err, tc.valid)
			}
		})
	}
}
