package cli

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name      string
		want      string
		value     float64
		precision int
	}{
		{name: "thousands with decimals", value: 18248.5, precision: 2, want: "18,248.50"},
		{name: "millions without decimals", value: 1234567, precision: 0, want: "1,234,567"},
		{name: "small value", value: 2.23, precision: 2, want: "2.23"},
		{name: "rounds half up", value: 1234.567, precision: 2, want: "1,234.57"},
		{name: "negative", value: -1234.5, precision: 1, want: "-1,234.5"},
		{name: "negative rounds to zero", value: -0.001, precision: 2, want: "0.00"},
		{name: "zero", value: 0, precision: 0, want: "0"},
		{name: "infinity", value: math.Inf(1), precision: 2, want: "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.value, tt.precision))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	v := 11.0
	assert.Equal(t, "11.0%", FormatPercent(&v))
	assert.Equal(t, "n/a", FormatPercent(nil))
}
