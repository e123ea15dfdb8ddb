package decimath

import (
	"math"

	"github.com/shopspring/decimal"
)

// WorkingPrecision is the number of fractional digits kept by every rounded
// operation in the engine, regardless of display precision.
const WorkingPrecision int32 = 80

// MaxSeriesTerms bounds the Maclaurin summation in Sin and Cos.
const MaxSeriesTerms = 30

var (
	// Epsilon is the degeneracy threshold (1e-30).
	Epsilon = decimal.New(1, -30)

	// Pi to 100 fractional digits.
	Pi = decimal.RequireFromString("3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679")

	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	d180    = decimal.NewFromInt(180)
	d360    = decimal.NewFromInt(360)
	negD180 = decimal.NewFromInt(-180)
)

// Mul multiplies and rounds the product to WorkingPrecision.
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(WorkingPrecision)
}

// Div divides at WorkingPrecision. The divisor must not be zero.
func Div(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, WorkingPrecision)
}

// IsNearZero reports whether |d| < Epsilon.
func IsNearZero(d decimal.Decimal) bool {
	return d.Abs().LessThan(Epsilon)
}

// Sin returns sin(x) for x in radians.
func Sin(x decimal.Decimal) decimal.Decimal {
	result := decimal.Zero
	term := x
	x2 := Mul(x, x)

	for i := int64(0); i < MaxSeriesTerms; i++ {
		result = result.Add(term)
		term = Div(Mul(term, x2).Neg(), decimal.NewFromInt((2*i+2)*(2*i+3)))
		if IsNearZero(term) {
			break
		}
	}
	return result
}

// Cos returns cos(x) for x in radians.
func Cos(x decimal.Decimal) decimal.Decimal {
	result := one
	term := one
	x2 := Mul(x, x)

	for i := int64(0); i < MaxSeriesTerms; i++ {
		term = Div(Mul(term, x2).Neg(), decimal.NewFromInt((2*i+1)*(2*i+2)))
		result = result.Add(term)
		if IsNearZero(term) {
			break
		}
	}
	return result
}

// NormalizeAngle reduces degrees to the interval (-180, 180].
func NormalizeAngle(degrees decimal.Decimal) decimal.Decimal {
	// Mod keeps the sign of the dividend.
	d := degrees.Mod(d360)
	if d.GreaterThan(d180) {
		d = d.Sub(d360)
	} else if d.LessThanOrEqual(negD180) {
		d = d.Add(d360)
	}
	return d
}

// DegreesToRadians converts degrees to radians at working precision.
func DegreesToRadians(degrees decimal.Decimal) decimal.Decimal {
	return Div(degrees.Mul(Pi), d180)
}

// Sqrt returns the square root of a non-negative d using Newton iteration.
// It panics on negative input.
func Sqrt(d decimal.Decimal) decimal.Decimal {
	switch d.Sign() {
	case 0:
		return decimal.Zero
	case -1:
		panic("decimath: square root of negative number")
	}

	f, _ := d.Float64()
	x := decimal.NewFromFloat(math.Sqrt(f))
	if x.IsZero() || math.IsInf(f, 0) {
		x = one
	}

	for i := 0; i < 100; i++ {
		next := Div(x.Add(Div(d, x)), two)
		if next.Equal(x) {
			break
		}
		x = next
	}
	return x
}
