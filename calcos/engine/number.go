package engine

import (
	"math"
	"strconv"
	"strings"
)

const (
	literalInf    = "Infinity"
	literalNegInf = "-Infinity"
	literalNaN    = "NaN"

	resultDecimals = 8
)

// parseNumber reads the longest numeric prefix of s, like the widget this
// engine mirrors: "12.5x" is 12.5, "Infinity" is +Inf, anything without a
// leading number is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r")
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	if strings.HasPrefix(s[i:], literalInf) {
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	lit := s[:end]
	if strings.HasSuffix(lit, ".") {
		lit = lit[:len(lit)-1]
	}
	// Out-of-range literals come back as ±Inf with ErrRange, which is what we want.
	v, _ := strconv.ParseFloat(lit, 64)
	return v
}

// formatResult renders an evaluation result: integers without a fractional
// part, everything else with up to 8 decimals and trailing zeros stripped.
func formatResult(v float64) string {
	if lit, ok := nonFinite(v); ok {
		return lit
	}
	if v == math.Trunc(v) {
		if v == 0 {
			return "0"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := fixed(v, resultDecimals)
	if strings.HasSuffix(s, "0") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// fixed formats v with n fractional digits. strconv breaks exact ties to
// even; the widget rounds them away from zero (1/512 is 0.00195313).
func fixed(v float64, n int) string {
	s := strconv.FormatFloat(v, 'f', n, 64)
	exact := strconv.FormatFloat(v, 'f', maxExactDecimals, 64)
	dot := strings.IndexByte(exact, '.')
	rest := exact[dot+1+n:]
	if rest[0] != '5' || strings.TrimRight(rest[1:], "0") != "" {
		return s
	}
	return roundUpLastDigit(exact[:dot+1+n])
}

// maxExactDecimals is enough fractional digits to print any float64 exactly.
const maxExactDecimals = 1074

// roundUpLastDigit adds one unit in the last place to a decimal string,
// keeping any sign: "-0.99" becomes "-1.00".
func roundUpLastDigit(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		switch c := b[i]; {
		case c == '.':
			continue
		case c == '9':
			b[i] = '0'
		case isDigit(c):
			b[i] = c + 1
			return string(b)
		default:
			// Carry out of a leading '-'.
			return string(b[:i+1]) + "1" + string(b[i+1:])
		}
	}
	return "1" + string(b)
}

// formatRaw renders v with the shortest decimal form that round-trips.
func formatRaw(v float64) string {
	if lit, ok := nonFinite(v); ok {
		return lit
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return literalNaN, true
	case math.IsInf(v, 1):
		return literalInf, true
	case math.IsInf(v, -1):
		return literalNegInf, true
	}
	return "", false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
