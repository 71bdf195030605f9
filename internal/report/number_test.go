package report

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"integral value keeps a fraction", 160, "160.0"},
		{"zero", 0, "0.0"},
		{"negative zero", math.Copysign(0, -1), "-0.0"},
		{"fraction", 212.625, "212.625"},
		{"negative", -42.5, "-42.5"},
		{"shortest round trip", 0.1 + 0.2, "0.30000000000000004"},
		{"large integral below exponent threshold", 1e15, "1000000000000000.0"},
		{"exponent form at 1e16", 1e16, "1e+16"},
		{"small value in fixed form", 0.0001, "0.0001"},
		{"small value in exponent form", 0.000015, "1.5e-05"},
		{"large non integral", 1.2345678901234568e+17, "1.2345678901234568e+17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(Number(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.want, Number(tt.value).String())
		})
	}
}

func TestNumber_MarshalJSON_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := json.Marshal(Number(v))
		assert.Error(t, err)
	}
}
