package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestVector3_Arithmetic(t *testing.T) {
	a := NewVector3(dec("1.5"), dec("-2"), dec("0.25"))
	b := NewVector3(dec("2"), dec("4"), dec("-8"))

	assert.True(t, a.Add(b).Equal(NewVector3(dec("3.5"), dec("2"), dec("-7.75"))))
	assert.True(t, a.Sub(b).Equal(NewVector3(dec("-0.5"), dec("-6"), dec("8.25"))))
	assert.True(t, a.Mul(b).Equal(NewVector3(dec("3"), dec("-8"), dec("-2"))))
	assert.True(t, a.Div(b).Equal(NewVector3(dec("0.75"), dec("-0.5"), dec("-0.03125"))))
	assert.True(t, a.Dot(b).Equal(dec("-7")))
}

func TestVector3_ImmutableThroughArithmetic(t *testing.T) {
	a := Vec(1, 2, 3)
	_ = a.Add(Vec(10, 10, 10))
	_ = a.Mul(Vec(0, 0, 0))
	assert.True(t, a.Equal(Vec(1, 2, 3)))
}

func TestVector3_DivByExactZeroPanics(t *testing.T) {
	assert.Panics(t, func() { Vec(1, 1, 1).Div(Vec(1, 0, 1)) })
}

func TestVector3_DivByTinyIsNotGuarded(t *testing.T) {
	tiny := NewVector3(dec("1e-31"), dec("1"), dec("1"))
	got := Vec(1, 1, 1).Div(tiny)
	assert.True(t, got.X.Equal(dec("1e31")))
}

func TestVector3_Cross(t *testing.T) {
	x, y, z := Vec(1, 0, 0), Vec(0, 1, 0), Vec(0, 0, 1)
	assert.True(t, x.Cross(y).Equal(z))
	assert.True(t, y.Cross(z).Equal(x))
	assert.True(t, z.Cross(x).Equal(y))
	assert.True(t, y.Cross(x).Equal(Vec(0, 0, -1)))
}

func TestVector3_Length(t *testing.T) {
	assert.True(t, Vec(3, 4, 0).Length().Equal(dec("5")))
	assert.True(t, Vec(2, 3, 6).Length().Equal(dec("7")))
}

func TestVector3_Format(t *testing.T) {
	v := NewVector3(dec("7"), dec("-0.000123456"), dec("1.005"))
	assert.Equal(t, "(7.00, 0.00, 1.01)", v.Format(2))
	assert.Equal(t, [3]string{"7.00000", "-0.00012", "1.00500"}, v.Components(5))
}

func TestParseVector3(t *testing.T) {
	v, err := ParseVector3(" (1.5, -2 ,3e2) ")
	require.NoError(t, err)
	assert.True(t, v.Equal(NewVector3(dec("1.5"), dec("-2"), dec("300"))))

	_, err = ParseVector3("1,2")
	assert.Error(t, err)

	_, err = ParseVector3("1,b,3")
	assert.Error(t, err)
}
