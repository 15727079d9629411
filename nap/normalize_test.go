package nap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases and trims", "  Joe's Pizza  ", "joe's pizza"},
		{"collapses internal whitespace", "Joe's   Pizza\tRestaurant", "joe's pizza restaurant"},
		{"keeps punctuation", "O'Malley & Sons, Inc.", "o'malley & sons, inc."},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"street suffix", "123 Main Street", "123 main st"},
		{"suite and street", "123 Main Street, Suite 100", "123 main st, ste 100"},
		{"already abbreviated", "123 Main St, Ste 100", "123 main st, ste 100"},
		{"directionals", "456 North Oak Avenue West", "456 n oak ave w"},
		{"compound directional untouched by simple rule", "789 Northeast Elm Road", "789 ne elm rd"},
		{"word boundary respected", "10 Streetlight Lane", "10 streetlight ln"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAddress(tt.input))
		})
	}
}

func TestNormalizeAddressIdempotent(t *testing.T) {
	inputs := []string{
		"123 Main Street, Suite 100",
		"456 North Oak Avenue West",
		"789 Northeast Elm Road, Apartment 4B",
		"1 Boulevard of the Allies",
	}

	for _, input := range inputs {
		once := NormalizeAddress(input)
		assert.Equal(t, once, NormalizeAddress(once), "normalization should be idempotent for %q", input)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"formatted US number", "(555) 123-4567", "5551234567"},
		{"dashed", "555-123-4567", "5551234567"},
		{"country code kept", "+1-555-123-4567", "15551234567"},
		{"dots and spaces", "555.123.4567 ext 9", "55512345679"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizeRecord(t *testing.T) {
	record := Record{
		Name:    "  Joe's   Pizza ",
		Address: "123 Main Street",
		Phone:   "(555) 123-4567",
	}

	normalized := NormalizeRecord(record)

	assert.Equal(t, "joe's pizza", normalized.Name)
	assert.Equal(t, "123 main st", normalized.Address)
	assert.Equal(t, "5551234567", normalized.Phone)

	// Input untouched
	assert.Equal(t, "  Joe's   Pizza ", record.Name)
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(555) 123-4567", FormatPhone("5551234567"))
	assert.Equal(t, "(555) 123-4567", FormatPhone("555-123-4567"))
	assert.Equal(t, "15551234567", FormatPhone("+1 555 123 4567"))
	assert.Equal(t, "", FormatPhone(""))
}
