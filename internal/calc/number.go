package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultMaxLength is the longest display string shown verbatim.
	DefaultMaxLength = 9
	// DefaultExponentDigits is the number of mantissa fraction digits used past DefaultMaxLength.
	DefaultExponentDigits = 3

	// exactDigits is enough significant digits to print any float64 exactly.
	exactDigits       = 767
	maxFractionDigits = 100
)

// Formatter renders a stored display string for presentation.
type Formatter struct {
	// MaxLength is the longest display string returned unchanged.
	MaxLength int
	// Digits is the number of fraction digits in the scientific mantissa.
	Digits int
}

// DefaultFormatter truncates past 9 characters to 3 fraction digits.
var DefaultFormatter = Formatter{MaxLength: DefaultMaxLength, Digits: DefaultExponentDigits}

// Format returns display unchanged when it fits, otherwise its value in scientific notation.
func (f Formatter) Format(display string) string {
	maxLen := f.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	if len(display) <= maxLen {
		return display
	}
	digits := f.Digits
	if digits < 0 {
		digits = DefaultExponentDigits
	}
	return toExponential(parseNumber(display), digits)
}

// FormatForDisplay formats display with DefaultFormatter.
func FormatForDisplay(display string) string {
	return DefaultFormatter.Format(display)
}

// parseNumber reads the longest numeric prefix of s. A string without one reads as NaN.
func parseNumber(s string) float64 {
	prefix := numericPrefix(strings.TrimSpace(s))
	if prefix == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return s[:i+len("Infinity")]
	}

	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - start
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

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
			i = k
		}
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// stringify renders x with the shortest digits that parse back to x.
// Magnitudes in [1e-6, 1e21) use fixed notation, everything else an exponent.
func stringify(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}

	abs := math.Abs(x)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return trimExponent(strconv.FormatFloat(x, 'e', -1, 64))
}

// trimExponent drops the zero padding strconv puts on exponents ("1e-07" -> "1e-7").
func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 > len(s) {
		return s
	}
	head, sign, digits := s[:idx+1], s[idx+1:idx+2], s[idx+2:]
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return head + sign + digits
}

// toExponential renders x as d.ddd…e±n with exactly digits fraction digits.
// Ties round away from zero, judged on the exact binary value of x.
func toExponential(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return stringify(x)
	}
	if digits > maxFractionDigits {
		digits = maxFractionDigits
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	if x == 0 {
		return sign + withFraction("0"+strings.Repeat("0", digits)) + "e+0"
	}

	exact := strconv.FormatFloat(x, 'e', exactDigits, 64)
	idx := strings.IndexByte(exact, 'e')
	exp, _ := strconv.Atoi(exact[idx+1:])
	mantissa := []byte(strings.Replace(exact[:idx], ".", "", 1))

	kept := mantissa[:digits+1]
	if mantissa[digits+1] >= '5' {
		pos := len(kept) - 1
		for pos >= 0 {
			if kept[pos] == '9' {
				kept[pos] = '0'
				pos--
				continue
			}
			kept[pos]++
			break
		}
		if pos < 0 {
			kept = append([]byte{'1'}, kept[:len(kept)-1]...)
			exp++
		}
	}

	expSign := "+"
	if exp < 0 {
		expSign = "-"
		exp = -exp
	}
	return sign + withFraction(string(kept)) + "e" + expSign + strconv.Itoa(exp)
}

// withFraction inserts the decimal point after the leading digit.
func withFraction(digits string) string {
	if len(digits) <= 1 {
		return digits
	}
	return digits[:1] + "." + digits[1:]
}
