// Package dateformat classifies spreadsheet number-format codes and their
// date/time tokens.  It is shared by the number-format engine and the config
// validator; it has no public-API contract of its own.
package dateformat

import "strings"

// Class is the calendar content of a format code.
type Class int

const (
	// None means the code contains no date or time token.
	None Class = iota
	// Date means only calendar tokens (year, month, day, weekday).
	Date
	// Time means only clock tokens (hour, minute, second, AM/PM).
	Time
	// DateTime means both.
	DateTime
)

// IsBuiltInDateID reports whether id is a built-in numFmtId that represents
// a date, datetime, or time format (ECMA-376 §18.8.30):
//
//	14–22   date and time formats (IDs 18–21 are time-only)
//	27–36   locale-specific CJK date formats
//	45–47   elapsed-time / seconds formats
//	50–58   locale-specific CJK date formats (variant set)
func IsBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// ScanFormatStr reports whether the unquoted, unbracketed part of a format
// code contains a date/time token character (d, m, y, h, s, or an era e/E
// that does not follow a digit placeholder).
func ScanFormatStr(formatStr string) bool {
	inDoubleQuote := false
	inBracket := false
	escaped := false
	var prev rune
	for _, ch := range formatStr {
		switch {
		case escaped:
			escaped = false
		case inDoubleQuote:
			if ch == '"' {
				inDoubleQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '\\':
			escaped = true
		case ch == '"':
			inDoubleQuote = true
		case ch == '[':
			inBracket = true
		case strings.ContainsRune("dDmMyYhHsS", ch):
			return true
		case ch == 'e' || ch == 'E':
			// 0.00E+00 is scientific notation, not an era.
			if prev != '0' && prev != '#' && prev != '?' && prev != '.' {
				return true
			}
		}
		if !inDoubleQuote && !inBracket {
			prev = ch
		}
	}
	return false
}

// IsHour reports whether the upper-cased token is an hour token.
func IsHour(upper string) bool { return upper == "H" || upper == "HH" }

// IsSecond reports whether the upper-cased token is a second token.
func IsSecond(upper string) bool { return upper == "S" || upper == "SS" }

// IsAmbiguousM reports whether the upper-cased token is M or MM, which mean
// minutes after an hour or before a second and months otherwise.
func IsAmbiguousM(upper string) bool { return upper == "M" || upper == "MM" }

// MinuteTokens marks which of the upper-cased date tokens in seq are minutes.
// An M/MM token is a minute when the nearest preceding date token is an hour
// or the nearest following date token is a second.
func MinuteTokens(seq []string) []bool {
	out := make([]bool, len(seq))
	for i, tok := range seq {
		if !IsAmbiguousM(tok) {
			continue
		}
		if i > 0 && IsHour(seq[i-1]) {
			out[i] = true
			continue
		}
		if i+1 < len(seq) && IsSecond(seq[i+1]) {
			out[i] = true
		}
	}
	return out
}

// Classify returns the class of a sequence of upper-cased date tokens as
// produced by the format-code tokenizer.
func Classify(seq []string) Class {
	minutes := MinuteTokens(seq)
	hasDate, hasTime := false, false
	for i, tok := range seq {
		switch {
		case minutes[i], IsHour(tok), IsSecond(tok), tok == "AM/PM", tok == "A/P":
			hasTime = true
		case tok == "":
		default:
			hasDate = true
		}
	}
	switch {
	case hasDate && hasTime:
		return DateTime
	case hasDate:
		return Date
	case hasTime:
		return Time
	}
	return None
}
