package numfmt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/xuri/nfp"

	"github.com/TsubasaBE/go-ods/internal/dateformat"
)

type partKind int

const (
	partText partKind = iota
	partNumber
	partCurrency
	partCalendar
	partTextContent
	partBoolean
)

// part is one child element of the data style, in document order.
type part struct {
	kind partKind
	// text is the literal for partText, the symbol for partCurrency and the
	// element local name (year, month, hours, …) for partCalendar.
	text     string
	long     bool
	textual  bool
	decimals int
}

// parse tokenizes d.code and fills kind, num and parts.
func (d *DataStyle) parse() error {
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(d.code)
	if len(sections) == 0 {
		return errors.New("empty format code")
	}
	sec := sections[0]

	var seq []string
	hasDigits := false
	for _, tok := range sec.Items {
		switch tok.TType {
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			seq = append(seq, strings.ToUpper(tok.TValue))
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder,
			nfp.TokenTypeDigitalPlaceHolder, nfp.TokenTypeGeneral:
			hasDigits = true
		}
	}

	switch class := dateformat.Classify(seq); {
	case class == dateformat.Time:
		d.kind = KindTime
		d.parseCalendar(sec, seq)
	case class != dateformat.None:
		d.kind = KindDate
		d.parseCalendar(sec, seq)
	case hasDigits:
		d.parseNumber(sec)
	default:
		// "@", `"n/a"` and other digit-free codes.
		d.kind = KindText
		d.parseText(sec)
	}
	if len(d.parts) == 0 {
		return errors.New("no renderable token")
	}
	return nil
}

func (d *DataStyle) addText(s string) {
	if s == "" {
		return
	}
	if n := len(d.parts); n > 0 && d.parts[n-1].kind == partText {
		d.parts[n-1].text += s
		return
	}
	d.parts = append(d.parts, part{kind: partText, text: s})
}

// ── numbers ──────────────────────────────────────────────────────────────────

func isDigitToken(tt string) bool {
	return tt == nfp.TokenTypeZeroPlaceHolder ||
		tt == nfp.TokenTypeHashPlaceHolder ||
		tt == nfp.TokenTypeDigitalPlaceHolder
}

func (d *DataStyle) parseNumber(sec nfp.Section) {
	items := sec.Items
	lastDigit := -1
	fraction := -1
	for i, tok := range items {
		if isDigitToken(tok.TType) {
			lastDigit = i
		}
		if tok.TType == nfp.TokenTypeFraction && fraction < 0 {
			fraction = i
		}
	}
	if fraction >= 0 {
		d.kind = KindFraction
		d.num = fractionLayout(items, fraction)
	}

	placed := false
	afterDecimal, inExponent := false, false
	for i, tok := range items {
		switch tok.TType {
		case nfp.TokenTypeGeneral:
			if !placed {
				d.num.General = true
				d.num.MinIntegerDigits = 1
				d.parts = append(d.parts, part{kind: partNumber})
				placed = true
			}

		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder:
			if !placed {
				d.parts = append(d.parts, part{kind: partNumber})
				placed = true
			}
			if fraction >= 0 {
				continue
			}
			n := len(tok.TValue)
			zero := tok.TType == nfp.TokenTypeZeroPlaceHolder
			switch {
			case inExponent:
				d.num.MinExponentDigits += n
			case afterDecimal:
				d.num.DecimalPlaces += n
				if zero {
					d.num.MinDecimalPlaces += n
				}
			case zero:
				d.num.MinIntegerDigits += n
			}

		case nfp.TokenTypeDecimalPoint:
			if placed && i < lastDigit {
				afterDecimal = true
			} else {
				d.addText(tok.TValue)
			}

		case nfp.TokenTypeThousandsSeparator:
			// Trailing separators scale by 1000; only a separator between
			// integer digits means grouping.
			if !afterDecimal && !inExponent && i < lastDigit {
				d.num.Grouping = true
			}

		case nfp.TokenTypeExponential:
			d.kind = KindScientific
			inExponent = true

		case nfp.TokenTypePercent:
			d.kind = KindPercentage
			d.addText("%")

		case nfp.TokenTypeCurrencyLanguage:
			d.applyCurrencyLanguage(tok)

		case nfp.TokenTypeLiteral:
			if sym := currencySymbol(tok.TValue); sym != "" {
				d.kind = KindCurrency
				d.parts = append(d.parts, part{kind: partCurrency, text: sym})
				continue
			}
			// Literals between digit placeholders have no ODF equivalent.
			if placed && i < lastDigit {
				continue
			}
			d.addText(tok.TValue)

		case nfp.TokenTypeAlignment:
			// "_)" reserves the width of a character; a space is the closest
			// ODF rendering.
			if placed && i > lastDigit {
				d.addText(" ")
			}
		}
	}
	if d.kind == KindScientific && d.num.MinIntegerDigits == 0 {
		d.num.MinIntegerDigits = 1
	}
}

// fractionLayout reads "# ?/?" style digit runs around the fraction slash at
// index slash.
func fractionLayout(items []nfp.Token, slash int) Number {
	var n Number
	i := slash - 1
	for ; i >= 0 && isDigitToken(items[i].TType); i-- {
		n.MinNumeratorDigits += zeroOrQuestion(items[i])
	}
	for ; i >= 0; i-- {
		if items[i].TType == nfp.TokenTypeZeroPlaceHolder {
			n.MinIntegerDigits += len(items[i].TValue)
		}
	}
	for _, tok := range items[slash+1:] {
		switch {
		case isDigitToken(tok.TType):
			n.MinDenominatorDigits += len(tok.TValue)
		case tok.TType == nfp.TokenTypeLiteral && n.MinDenominatorDigits == 0:
			if v, err := strconv.Atoi(strings.TrimSpace(tok.TValue)); err == nil && v > 0 {
				n.DenominatorValue = v
			}
		}
	}
	if n.MinNumeratorDigits == 0 {
		n.MinNumeratorDigits = 1
	}
	if n.MinDenominatorDigits == 0 && n.DenominatorValue == 0 {
		n.MinDenominatorDigits = 1
	}
	return n
}

// zeroOrQuestion counts the placeholders of tok that force a digit or a
// space ("0" and "?"); "#" digits are optional.
func zeroOrQuestion(tok nfp.Token) int {
	if tok.TType == nfp.TokenTypeHashPlaceHolder {
		return 0
	}
	return len(tok.TValue)
}

func (d *DataStyle) applyCurrencyLanguage(tok nfp.Token) {
	for _, p := range tok.Parts {
		switch p.Token.TType {
		case nfp.TokenSubTypeCurrencyString:
			if p.Token.TValue == "" {
				continue
			}
			d.kind = KindCurrency
			d.parts = append(d.parts, part{kind: partCurrency, text: p.Token.TValue})
		case nfp.TokenSubTypeLanguageInfo:
			if lang, country, ok := lookupLCID(p.Token.TValue); ok {
				d.language, d.country = lang, country
			}
		}
	}
}

func currencySymbol(lit string) string {
	switch s := strings.TrimSpace(lit); s {
	case "$", "€", "£", "¥", "₹", "₩", "CHF":
		return s
	}
	return ""
}

// lcids maps the hexadecimal Windows locale IDs most often found in format
// codes to ODF language/country pairs.
var lcids = map[int][2]string{
	0x0407: {"de", "DE"},
	0x0409: {"en", "US"},
	0x040C: {"fr", "FR"},
	0x0410: {"it", "IT"},
	0x0411: {"ja", "JP"},
	0x0412: {"ko", "KR"},
	0x0413: {"nl", "NL"},
	0x0416: {"pt", "BR"},
	0x0419: {"ru", "RU"},
	0x0804: {"zh", "CN"},
	0x0807: {"de", "CH"},
	0x0809: {"en", "GB"},
	0x080C: {"fr", "BE"},
	0x0810: {"it", "CH"},
	0x0816: {"pt", "PT"},
	0x0C0A: {"es", "ES"},
	0x100C: {"fr", "CH"},
	0x0449: {"ta", "IN"},
}

func lookupLCID(raw string) (language, country string, ok bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, ','); i >= 0 {
		raw = raw[:i]
	}
	id, err := strconv.ParseInt(raw, 16, 32)
	if err != nil {
		return "", "", false
	}
	lc, ok := lcids[int(id)&0xFFFF]
	if !ok {
		return "", "", false
	}
	return lc[0], lc[1], true
}

// ── dates and times ──────────────────────────────────────────────────────────

func (d *DataStyle) parseCalendar(sec nfp.Section, seq []string) {
	minutes := dateformat.MinuteTokens(seq)
	di := 0
	secondsFraction := false
	for _, tok := range sec.Items {
		switch tok.TType {
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			upper := seq[di]
			minute := minutes[di]
			di++
			if tok.TType == nfp.TokenTypeElapsedDateTimes {
				d.elapsed = true
			}
			if p, ok := calendarPart(upper, minute); ok {
				d.parts = append(d.parts, p)
			}
			secondsFraction = false

		case nfp.TokenTypeDecimalPoint:
			if n := len(d.parts); n > 0 && d.parts[n-1].kind == partCalendar && d.parts[n-1].text == "seconds" {
				secondsFraction = true
				continue
			}
			d.addText(tok.TValue)

		case nfp.TokenTypeZeroPlaceHolder:
			if secondsFraction {
				d.parts[len(d.parts)-1].decimals += len(tok.TValue)
			}

		case nfp.TokenTypeCurrencyLanguage:
			d.applyCurrencyLanguage(tok)
			if d.kind == KindCurrency {
				// A currency symbol inside a date code is decoration only.
				d.kind = KindDate
			}

		case nfp.TokenTypeLiteral:
			d.addText(tok.TValue)
			secondsFraction = false
		}
	}
}

// calendarPart maps one upper-cased date/time token to its ODF element.
func calendarPart(upper string, minute bool) (part, bool) {
	p := part{kind: partCalendar}
	switch {
	case upper == "AM/PM" || upper == "A/P":
		p.text = "am-pm"
	case strings.HasPrefix(upper, "Y") || strings.HasPrefix(upper, "E"):
		p.text = "year"
		p.long = len(upper) > 2 || upper[0] == 'E'
	case minute:
		p.text = "minutes"
		p.long = len(upper) == 2
	case strings.HasPrefix(upper, "M"):
		p.text = "month"
		p.long = len(upper) == 2 || len(upper) >= 4
		p.textual = len(upper) >= 3
	case strings.HasPrefix(upper, "D"):
		if len(upper) >= 3 {
			p.text = "day-of-week"
			p.long = len(upper) >= 4
		} else {
			p.text = "day"
			p.long = len(upper) == 2
		}
	case strings.HasPrefix(upper, "H"):
		p.text = "hours"
		p.long = len(upper) >= 2
	case strings.HasPrefix(upper, "S"):
		p.text = "seconds"
		p.long = len(upper) >= 2
	default:
		return part{}, false
	}
	return p, true
}

// ── text ─────────────────────────────────────────────────────────────────────

func (d *DataStyle) parseText(sec nfp.Section) {
	for _, tok := range sec.Items {
		switch tok.TType {
		case nfp.TokenTypeTextPlaceHolder:
			d.parts = append(d.parts, part{kind: partTextContent})
		case nfp.TokenTypeLiteral:
			d.addText(tok.TValue)
		}
	}
}
