package parse

import (
	"math"
	"strconv"
	"strings"
)

// MagnitudeKind tells which representation a Magnitude holds.
type MagnitudeKind int

const (
	Absent MagnitudeKind = iota
	Integer
	Decimal
)

// Magnitude is a parsed count or score cell.
type Magnitude struct {
	Kind  MagnitudeKind
	Int   int64
	Float float64
}

// IntPtr returns the value as an integer, rounding decimals, or nil when absent.
func (m Magnitude) IntPtr() *int64 {
	switch m.Kind {
	case Integer:
		v := m.Int
		return &v
	case Decimal:
		v := int64(math.Round(m.Float))
		return &v
	}
	return nil
}

// FloatPtr returns the value as a float, or nil when absent.
func (m Magnitude) FloatPtr() *float64 {
	switch m.Kind {
	case Integer:
		v := float64(m.Int)
		return &v
	case Decimal:
		v := m.Float
		return &v
	}
	return nil
}

// ParseMagnitude parses cells such as "", "42", "4.5" and "3.2K".
// A K suffix scales by 1000 and yields an integer.
func ParseMagnitude(cell string) (Magnitude, error) {
	s := strings.TrimSpace(cell)
	switch {
	case s == "":
		return Magnitude{}, nil
	case strings.HasSuffix(s, "K"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "K"), 64)
		if err != nil {
			return Magnitude{}, &Error{Kind: KindMagnitude, Input: cell, Err: err}
		}
		return Magnitude{Kind: Integer, Int: int64(math.Round(f * 1000))}, nil
	case strings.Contains(s, "."):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Magnitude{}, &Error{Kind: KindMagnitude, Input: cell, Err: err}
		}
		return Magnitude{Kind: Decimal, Float: f}, nil
	default:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Magnitude{}, &Error{Kind: KindMagnitude, Input: cell, Err: err}
		}
		return Magnitude{Kind: Integer, Int: n}, nil
	}
}
