package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a real value that always serializes as a real: integral values
// keep a ".0" suffix (160 -> 160.0), magnitudes outside [1e-4, 1e16) use
// exponent form (1e+16, 1.5e-05).
type Number float64

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	s, err := formatReal(float64(n))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (n Number) String() string {
	s, err := formatReal(float64(n))
	if err != nil {
		return strconv.FormatFloat(float64(n), 'g', -1, 64)
	}
	return s
}

func formatReal(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrUnencodableValue, v)
	}
	if v == 0 {
		if math.Signbit(v) {
			return "-0.0", nil
		}
		return "0.0", nil
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return "", err
	}
	if exp < -4 || exp >= 16 {
		return sci, nil
	}

	fixed := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed, nil
}
