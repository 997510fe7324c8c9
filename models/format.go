package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FormatFixed1 renders x with exactly one decimal place, matching
// JavaScript's Number.prototype.toFixed(1): the sign comes from x < 0
// (so -0 prints "0.0" and -0.04 prints "-0.0") and ties round away from zero
// on the exact binary value.
func FormatFixed1(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	if math.Abs(x) >= 1e21 || math.IsInf(x, 0) {
		return formatJSNumber(x)
	}

	sign := ""
	if x < 0 {
		sign = "-"
	}
	x = math.Abs(x)

	// Every finite float64 has a terminating decimal expansion of at most
	// 1074 fractional digits, so this is exact.
	exact := strconv.FormatFloat(x, 'f', 1074, 64)
	dot := strings.IndexByte(exact, '.')
	intPart := exact[:dot]
	tenths := exact[dot+1]
	roundUp := exact[dot+2] >= '5'

	digits := []byte(intPart + string(tenths))
	if roundUp {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] == '9' {
				digits[i] = '0'
				continue
			}
			digits[i]++
			break
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
	}
	n := len(digits)
	return sign + string(digits[:n-1]) + "." + string(digits[n-1:])
}

// FormatGoal renders a goal value the way it is kept in the goal slot.
func FormatGoal(g float64) string {
	return formatJSNumber(g)
}

func formatJSNumber(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.IsNaN(x):
		return "NaN"
	case x == 0:
		return "0"
	}
	abs := math.Abs(x)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(x, 'e', -1, 64)
		// Go pads the exponent to two digits ("1e-07"); JavaScript does not.
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

var numberPrefix = regexp.MustCompile(`^[+-]?(Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)

// ParseNumber reads the longest numeric prefix of s after leading
// whitespace, as JavaScript's parseFloat does ("70kg" is 70, "kg" is NaN).
func ParseNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f\u00a0\ufeff")
	m := numberPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Exponent overflow still yields ±Inf from ParseFloat.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

// ParseFinite is ParseNumber restricted to finite values.
func ParseFinite(s string) (float64, bool) {
	v := ParseNumber(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
