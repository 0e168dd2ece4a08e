package styles

import (
	"fmt"
	"strconv"
)

// Length is an ODF length literal such as "1.5cm" or "12pt".  The zero
// value means "unset".
type Length string

// Cm returns a length in centimetres.
func Cm(v float64) Length { return unit(v, "cm") }

// Mm returns a length in millimetres.
func Mm(v float64) Length { return unit(v, "mm") }

// Pt returns a length in points.
func Pt(v float64) Length { return unit(v, "pt") }

func unit(v float64, u string) Length {
	return Length(strconv.FormatFloat(v, 'f', -1, 64) + u)
}

// String implements fmt.Stringer.
func (l Length) String() string { return string(l) }

// Color is a #RRGGBB colour literal.  The zero value means "unset".
type Color string

// validColor reports whether c is empty or a #RRGGBB literal.
func validColor(c Color) error {
	if c == "" {
		return nil
	}
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("%w: colour %q is not #RRGGBB", ErrInvalidStyle, s)
	}
	if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
		return fmt.Errorf("%w: colour %q is not #RRGGBB", ErrInvalidStyle, s)
	}
	return nil
}
