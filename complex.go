package fractarium

import (
	"fmt"
	"strconv"
	"strings"
)

// Complex is a point on the complex plane.
type Complex struct {
	Real, Imag float64
}

func (c Complex) String() string {
	return FormatComplex(c)
}

// ParseComplex parses a complex literal such as "3", "-2.5i", "3-2i" or "-3+i".
// The unit symbol is case-insensitive. Exponents and whitespace are not accepted.
func ParseComplex(s string) (Complex, error) {
	if s == "" {
		return Complex{}, fmt.Errorf("complex %q: empty: %w", s, ErrInvalidFormat)
	}

	last := s[len(s)-1]
	if last != 'i' && last != 'I' {
		re, ok := parseSignedReal(s)
		if !ok {
			return Complex{}, fmt.Errorf("complex %q: %w", s, ErrInvalidFormat)
		}
		return Complex{Real: re}, nil
	}

	body := s[:len(s)-1]

	// A sign past the first byte separates the real term from the imaginary one.
	split := strings.LastIndexAny(body, "+-")
	if split <= 0 {
		im, ok := parseImaginary(body)
		if !ok {
			return Complex{}, fmt.Errorf("complex %q: %w", s, ErrInvalidFormat)
		}
		return Complex{Imag: im}, nil
	}

	re, ok := parseSignedReal(body[:split])
	if !ok {
		return Complex{}, fmt.Errorf("complex %q: real part: %w", s, ErrInvalidFormat)
	}
	im, ok := parseImaginary(body[split:])
	if !ok {
		return Complex{}, fmt.Errorf("complex %q: imaginary part: %w", s, ErrInvalidFormat)
	}
	return Complex{Real: re, Imag: im}, nil
}

// FormatComplex returns the shortest literal that ParseComplex reads back as c.
func FormatComplex(c Complex) string {
	if c.Real == 0 && c.Imag == 0 {
		return "0"
	}

	var sb strings.Builder
	if c.Real != 0 {
		sb.WriteString(formatReal(c.Real))
	}
	if c.Imag != 0 {
		switch {
		case c.Imag == 1:
			if c.Real != 0 {
				sb.WriteByte('+')
			}
		case c.Imag == -1:
			sb.WriteByte('-')
		case c.Imag > 0:
			if c.Real != 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(formatReal(c.Imag))
		default:
			sb.WriteString(formatReal(c.Imag))
		}
		sb.WriteByte('i')
	}
	return sb.String()
}

func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseImaginary reads the coefficient in front of the unit symbol.
// An empty coefficient stands for 1.
func parseImaginary(s string) (float64, bool) {
	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	if s == "" {
		return sign, true
	}
	v, ok := parseUnsignedReal(s)
	return sign * v, ok
}

func parseSignedReal(s string) (float64, bool) {
	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	v, ok := parseUnsignedReal(s)
	return sign * v, ok
}

// parseUnsignedReal accepts digits with an optional fractional part: "12", "0.5".
func parseUnsignedReal(s string) (float64, bool) {
	intPart, frac, hasDot := strings.Cut(s, ".")
	if !isDigits(intPart) || (hasDot && !isDigits(frac)) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
