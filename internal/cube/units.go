package cube

import "fmt"

// Unit kinds supported by coordinate conversion. Time coordinates carry
// "<unit> since epoch" style units; spatial coordinates carry plain length
// units.
const (
	kindTime   = "time"
	kindLength = "length"
)

type unitDef struct {
	kind   string
	factor float64 // multiplier into the kind's base unit (seconds, metres)
}

var units = map[string]unitDef{
	"seconds since epoch": {kindTime, 1},
	"minutes since epoch": {kindTime, 60},
	"hours since epoch":   {kindTime, 3600},
	"seconds":             {kindTime, 1},
	"minutes":             {kindTime, 60},
	"hours":               {kindTime, 3600},
	"mm":                  {kindLength, 0.001},
	"m":                   {kindLength, 1},
	"km":                  {kindLength, 1000},
}

// ConvertUnits converts a value from one unit into another. Both units must
// be known, even when they are equal. Conversion between different unit kinds
// (e.g. a length into a time coordinate's domain) is rejected.
func ConvertUnits(value float64, from, to string) (float64, error) {
	f, ok := units[from]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", from)
	}
	t, ok := units[to]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", to)
	}
	if f.kind != t.kind {
		return 0, fmt.Errorf("cannot convert %s unit %q into %s unit %q", f.kind, from, t.kind, to)
	}
	return value * f.factor / t.factor, nil
}

// ConvertPoints converts a sequence of values between units.
func ConvertPoints(values []float64, from, to string) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		c, err := ConvertUnits(v, from, to)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
