package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_EmptyNumbersBecomeNull(t *testing.T) {
	form := NewPropertyForm()
	form.Address = "1 Oak Lane"
	form.Type = "House"
	form.Valuation = "£100"

	in := Coerce(form)

	assert.Nil(t, in.Bedrooms)
	assert.Nil(t, in.Bathrooms)
	assert.Equal(t, "No", in.Occupied)
}

func TestCoerce_ParsesNumericPrefixes(t *testing.T) {
	form := PropertyForm{Bedrooms: "3.7", Bathrooms: "1.5 baths"}

	in := Coerce(form)

	require.NotNil(t, in.Bedrooms)
	require.NotNil(t, in.Bathrooms)
	assert.Equal(t, 3, *in.Bedrooms)
	assert.Equal(t, 1.5, *in.Bathrooms)
}

func TestParseIntPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{in: "4", want: IntPtr(4)},
		{in: " 2 beds", want: IntPtr(2)},
		{in: "-1", want: IntPtr(-1)},
		{in: "", want: nil},
		{in: "abc", want: nil},
		{in: ".5", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntPrefix(tt.in))
		})
	}
}

func TestParseFloatPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{in: "2", want: FloatPtr(2)},
		{in: "2.5", want: FloatPtr(2.5)},
		{in: ".5", want: FloatPtr(0.5)},
		{in: "1e1", want: FloatPtr(10)},
		{in: "", want: nil},
		{in: "n/a", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFloatPrefix(tt.in))
		})
	}
}

func TestFormFromProperty(t *testing.T) {
	p := Property{
		ID:        7,
		Address:   "7 Elm Road",
		Type:      PropertyTypeFlat,
		Bedrooms:  IntPtr(2),
		Bathrooms: FloatPtr(1.5),
		Valuation: StringPtr("£300,000"),
	}

	form := FormFromProperty(p)

	assert.Equal(t, PropertyForm{
		Address:   "7 Elm Road",
		Type:      "Flat",
		Bedrooms:  "2",
		Bathrooms: "1.5",
		Valuation: "£300,000",
		Occupied:  "No",
	}, form)
}

func TestDisplayValuation(t *testing.T) {
	assert.Equal(t, "£250,000", Property{Valuation: StringPtr("250,000")}.DisplayValuation())
	assert.Equal(t, "£250,000", Property{Valuation: StringPtr("£250,000")}.DisplayValuation())
	assert.Equal(t, "", Property{}.DisplayValuation())
}
