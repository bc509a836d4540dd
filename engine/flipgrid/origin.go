package flipgrid

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PerspectiveDistance is the perspective depth applied to every cell, in pixels.
const PerspectiveDistance = 1200.0

// originLiterals holds the perspective origin of each of the eight columns.
var originLiterals = [8]string{
	"400%",
	"300%",
	"200%",
	"100% 0%",
	"0% -100%",
	"-200%",
	"-300%",
	"-400%",
}

// Origin is a perspective-origin value: the literal plus its parsed percentages.
type Origin struct {
	Literal string
	X, Y    float64
}

var columnOrigins = func() [8]Origin {
	var out [8]Origin
	for i, lit := range originLiterals {
		o, err := ParseOrigin(lit)
		if err != nil {
			panic(err)
		}
		out[i] = o
	}
	return out
}()

// OriginForColumn returns the fixed perspective origin of a column. Only column mod 8 matters.
//
// Parameters:
//   - column: the column index
//
// Returns:
//   - Origin: the column's origin
func OriginForColumn(column int) Origin {
	return columnOrigins[((column%8)+8)%8]
}

// ParseOrigin parses a one- or two-value percentage origin such as "200%" or "0% -100%".
// A single value sets X and leaves Y centred at 50%.
//
// Parameters:
//   - literal: the origin literal
//
// Returns:
//   - Origin: the parsed origin
//   - error: an error if the literal is not one or two percentages
func ParseOrigin(literal string) (Origin, error) {
	fields := strings.Fields(literal)
	if len(fields) == 0 || len(fields) > 2 {
		return Origin{}, errors.Errorf("flipgrid: invalid origin %q", literal)
	}

	values := [2]float64{0, 50}
	for i, f := range fields {
		num, ok := strings.CutSuffix(f, "%")
		if !ok {
			return Origin{}, errors.Errorf("flipgrid: origin value %q is not a percentage", f)
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Origin{}, errors.Wrapf(err, "flipgrid: parse origin %q", literal)
		}
		values[i] = v
	}
	return Origin{Literal: literal, X: values[0], Y: values[1]}, nil
}
