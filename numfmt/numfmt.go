// Package numfmt builds data styles, the hidden number, percentage,
// currency, date, time, boolean and text formats that cell styles refer to,
// from spreadsheet number-format codes such as "#,##0.00", "0.0%",
// "yyyy-mm-dd hh:mm" or `@" units"`.
//
// Format-code tokenization is delegated to [github.com/xuri/nfp]; this
// package maps the resulting token stream onto ODF number:* elements.  Only
// the first section of a multi-section code is rendered: ODF expresses
// negative and zero sections as separate styles joined by style:map, which
// the container does not synthesize.
package numfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TsubasaBE/go-ods/internal/xmlutil"
	"github.com/TsubasaBE/go-ods/styles"
)

// ErrInvalidFormat is returned for an empty name or an unusable format code.
var ErrInvalidFormat = errors.New("numfmt: invalid format")

// Kind is the ODF data-style family a format code maps to.
type Kind int

// Kinds, one per ODF data-style element (scientific and fraction share
// number:number-style with plain numbers).
const (
	KindNumber Kind = iota
	KindPercentage
	KindScientific
	KindFraction
	KindCurrency
	KindDate
	KindTime
	KindBoolean
	KindText
)

var kindNames = [...]string{"number", "percentage", "scientific", "fraction", "currency", "date", "time", "boolean", "text"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Number holds the digit layout shared by the numeric kinds.  Fields that do
// not apply to a kind stay zero.
type Number struct {
	// General renders the value with as many decimals as it needs; the
	// decimal fields are ignored.
	General              bool
	DecimalPlaces        int
	MinDecimalPlaces     int
	MinIntegerDigits     int
	Grouping             bool
	MinExponentDigits    int
	MinNumeratorDigits   int
	MinDenominatorDigits int
	// DenominatorValue fixes the denominator of a fraction ("# ?/8").
	DenominatorValue int
}

// DataStyle is an immutable, always hidden data style.
type DataStyle struct {
	name     string
	code     string
	kind     Kind
	num      Number
	parts    []part
	language string
	country  string
	// elapsed is set for [h]-style codes whose hours must not wrap at 24.
	elapsed bool
}

var _ styles.DataStyle = (*DataStyle)(nil)

// Option adjusts a DataStyle under construction.
type Option func(*DataStyle)

// WithLocale sets number:language and number:country.  A locale embedded in
// the format code ("[$€-407]") takes precedence.
func WithLocale(language, country string) Option {
	return func(d *DataStyle) {
		d.language = language
		d.country = country
	}
}

// New parses code and returns the data style named name.
func New(name, code string, opts ...Option) (*DataStyle, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidFormat)
	}
	d := &DataStyle{name: name, code: code}
	for _, fn := range opts {
		fn(d)
	}
	if strings.EqualFold(strings.TrimSpace(code), "BOOLEAN") {
		d.kind = KindBoolean
		d.parts = []part{{kind: partBoolean}}
		return d, nil
	}
	if err := d.parse(); err != nil {
		return nil, fmt.Errorf("%w: %s: %q: %v", ErrInvalidFormat, name, code, err)
	}
	return d, nil
}

// NewBoolean returns a boolean data style.
func NewBoolean(name string, opts ...Option) (*DataStyle, error) {
	return New(name, "BOOLEAN", opts...)
}

// Name implements styles.Style.
func (d *DataStyle) Name() string { return d.name }

// Hidden implements styles.Style.  Data styles are always hidden.
func (d *DataStyle) Hidden() bool { return true }

// Code returns the format code the style was built from.
func (d *DataStyle) Code() string { return d.code }

// Kind returns the data-style family.
func (d *DataStyle) Kind() Kind { return d.kind }

// Number returns the digit layout.
func (d *DataStyle) Number() Number { return d.num }

// Locale returns the language and country codes, which may be empty.
func (d *DataStyle) Locale() (language, country string) { return d.language, d.country }

// ValueType implements styles.DataStyle.
func (d *DataStyle) ValueType() string {
	switch d.kind {
	case KindPercentage:
		return styles.ValuePercentage
	case KindCurrency:
		return styles.ValueCurrency
	case KindDate:
		return styles.ValueDate
	case KindTime:
		return styles.ValueTime
	case KindBoolean:
		return styles.ValueBoolean
	case KindText:
		return styles.ValueString
	}
	return styles.ValueFloat
}

func (d *DataStyle) element() string {
	switch d.kind {
	case KindPercentage:
		return "number:percentage-style"
	case KindCurrency:
		return "number:currency-style"
	case KindDate:
		return "number:date-style"
	case KindTime:
		return "number:time-style"
	case KindBoolean:
		return "number:boolean-style"
	case KindText:
		return "number:text-style"
	}
	return "number:number-style"
}

// AppendXML implements styles.Style.
func (d *DataStyle) AppendXML(util *xmlutil.Util, w io.Writer) error {
	var sb strings.Builder
	elem := d.element()
	sb.WriteString("<" + elem)
	util.Attr(&sb, "style:name", d.name)
	util.OptAttr(&sb, "number:language", d.language)
	util.OptAttr(&sb, "number:country", d.country)
	util.BoolAttr(&sb, "style:volatile", true)
	if d.elapsed {
		util.BoolAttr(&sb, "number:truncate-on-overflow", false)
	}
	sb.WriteString(">")
	for _, p := range d.parts {
		d.appendPart(util, &sb, p)
	}
	sb.WriteString("</" + elem + ">")
	return xmlutil.Flush(w, &sb)
}

func (d *DataStyle) appendPart(util *xmlutil.Util, sb *strings.Builder, p part) {
	switch p.kind {
	case partText:
		sb.WriteString("<number:text>")
		sb.WriteString(util.EscapeContent(p.text))
		sb.WriteString("</number:text>")
	case partNumber:
		appendNumber(util, sb, d.kind, d.num)
	case partCurrency:
		sb.WriteString("<number:currency-symbol")
		util.OptAttr(sb, "number:language", d.language)
		util.OptAttr(sb, "number:country", d.country)
		sb.WriteString(">")
		sb.WriteString(util.EscapeContent(p.text))
		sb.WriteString("</number:currency-symbol>")
	case partCalendar:
		sb.WriteString("<number:" + p.text)
		if p.long {
			util.Attr(sb, "number:style", "long")
		}
		if p.textual {
			util.BoolAttr(sb, "number:textual", true)
		}
		if p.decimals > 0 {
			util.IntAttr(sb, "number:decimal-places", p.decimals)
		}
		sb.WriteString("/>")
	case partTextContent:
		sb.WriteString("<number:text-content/>")
	case partBoolean:
		sb.WriteString("<number:boolean/>")
	}
}

// appendNumber renders the digit element of a numeric style.
func appendNumber(util *xmlutil.Util, sb *strings.Builder, kind Kind, n Number) {
	switch kind {
	case KindScientific:
		sb.WriteString("<number:scientific-number")
		util.IntAttr(sb, "number:decimal-places", n.DecimalPlaces)
		util.IntAttr(sb, "number:min-integer-digits", n.MinIntegerDigits)
		util.IntAttr(sb, "number:min-exponent-digits", n.MinExponentDigits)
		if n.Grouping {
			util.BoolAttr(sb, "number:grouping", true)
		}
		sb.WriteString("/>")
	case KindFraction:
		sb.WriteString("<number:fraction")
		util.IntAttr(sb, "number:min-integer-digits", n.MinIntegerDigits)
		util.IntAttr(sb, "number:min-numerator-digits", n.MinNumeratorDigits)
		if n.DenominatorValue > 0 {
			util.IntAttr(sb, "number:denominator-value", n.DenominatorValue)
		} else {
			util.IntAttr(sb, "number:min-denominator-digits", n.MinDenominatorDigits)
		}
		sb.WriteString("/>")
	default:
		sb.WriteString("<number:number")
		if !n.General {
			util.IntAttr(sb, "number:decimal-places", n.DecimalPlaces)
			if n.MinDecimalPlaces != n.DecimalPlaces {
				util.IntAttr(sb, "number:min-decimal-places", n.MinDecimalPlaces)
			}
		}
		util.IntAttr(sb, "number:min-integer-digits", n.MinIntegerDigits)
		if n.Grouping {
			util.BoolAttr(sb, "number:grouping", true)
		}
		sb.WriteString("/>")
	}
}
