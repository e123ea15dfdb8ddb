/*
Package decimath provides decimal trigonometry and helpers for WorldForge.

Every function works on github.com/shopspring/decimal values and never goes
through float64 for its result. Sine and cosine are Maclaurin series summed
until a term falls below Epsilon, so callers must keep arguments within a few
multiples of Pi.

# Precision

All divisions round to WorkingPrecision fractional digits (half away from
zero). Products inside the series are rounded to the same scale so that digit
counts stay bounded. Additions and subtractions are exact.
*/
package decimath
