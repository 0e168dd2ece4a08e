package numfmt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/TsubasaBE/go-ods/internal/xmlutil"
	"github.com/TsubasaBE/go-ods/styles"
)

func xmlOf(t *testing.T, d *DataStyle) string {
	t.Helper()
	var buf bytes.Buffer
	if err := d.AppendXML(xmlutil.New(), &buf); err != nil {
		t.Fatalf("AppendXML(%s): %v", d.Name(), err)
	}
	return buf.String()
}

func TestNewXML(t *testing.T) {
	tests := []struct {
		name string
		code string
		kind Kind
		want string
	}{
		{
			"fixed", "0.00", KindNumber,
			`<number:number-style style:name="fixed" style:volatile="true">` +
				`<number:number number:decimal-places="2" number:min-integer-digits="1"/>` +
				`</number:number-style>`,
		},
		{
			"grouped", "#,##0.00", KindNumber,
			`<number:number-style style:name="grouped" style:volatile="true">` +
				`<number:number number:decimal-places="2" number:min-integer-digits="1" number:grouping="true"/>` +
				`</number:number-style>`,
		},
		{
			"optional", "0.0#", KindNumber,
			`<number:number-style style:name="optional" style:volatile="true">` +
				`<number:number number:decimal-places="2" number:min-decimal-places="1" number:min-integer-digits="1"/>` +
				`</number:number-style>`,
		},
		{
			"general", "General", KindNumber,
			`<number:number-style style:name="general" style:volatile="true">` +
				`<number:number number:min-integer-digits="1"/>` +
				`</number:number-style>`,
		},
		{
			"pct", "0.00%", KindPercentage,
			`<number:percentage-style style:name="pct" style:volatile="true">` +
				`<number:number number:decimal-places="2" number:min-integer-digits="1"/>` +
				`<number:text>%</number:text>` +
				`</number:percentage-style>`,
		},
		{
			"sci", "0.00E+00", KindScientific,
			`<number:number-style style:name="sci" style:volatile="true">` +
				`<number:scientific-number number:decimal-places="2" number:min-integer-digits="1" number:min-exponent-digits="2"/>` +
				`</number:number-style>`,
		},
		{
			"frac", "# ?/?", KindFraction,
			`<number:number-style style:name="frac" style:volatile="true">` +
				`<number:fraction number:min-integer-digits="0" number:min-numerator-digits="1" number:min-denominator-digits="1"/>` +
				`</number:number-style>`,
		},
		{
			"eur", `#,##0.00\ [$€-407]`, KindCurrency,
			`<number:currency-style style:name="eur" number:language="de" number:country="DE" style:volatile="true">` +
				`<number:number number:decimal-places="2" number:min-integer-digits="1" number:grouping="true"/>` +
				`<number:text> </number:text>` +
				`<number:currency-symbol number:language="de" number:country="DE">€</number:currency-symbol>` +
				`</number:currency-style>`,
		},
		{
			"iso", "yyyy-mm-dd", KindDate,
			`<number:date-style style:name="iso" style:volatile="true">` +
				`<number:year number:style="long"/><number:text>-</number:text>` +
				`<number:month number:style="long"/><number:text>-</number:text>` +
				`<number:day number:style="long"/>` +
				`</number:date-style>`,
		},
		{
			"clock", "hh:mm:ss", KindTime,
			`<number:time-style style:name="clock" style:volatile="true">` +
				`<number:hours number:style="long"/><number:text>:</number:text>` +
				`<number:minutes number:style="long"/><number:text>:</number:text>` +
				`<number:seconds number:style="long"/>` +
				`</number:time-style>`,
		},
		{
			"elapsed", "[h]:mm", KindTime,
			`<number:time-style style:name="elapsed" style:volatile="true" number:truncate-on-overflow="false">` +
				`<number:hours/><number:text>:</number:text><number:minutes number:style="long"/>` +
				`</number:time-style>`,
		},
		{
			"txt", "@", KindText,
			`<number:text-style style:name="txt" style:volatile="true"><number:text-content/></number:text-style>`,
		},
		{
			"bool", "BOOLEAN", KindBoolean,
			`<number:boolean-style style:name="bool" style:volatile="true"><number:boolean/></number:boolean-style>`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := New(tc.name, tc.code)
			if err != nil {
				t.Fatalf("New(%q): %v", tc.code, err)
			}
			if d.Kind() != tc.kind {
				t.Fatalf("Kind = %v, want %v", d.Kind(), tc.kind)
			}
			if !d.Hidden() {
				t.Fatalf("data styles are always hidden")
			}
			if got := xmlOf(t, d); got != tc.want {
				t.Fatalf("XML:\n got %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestMonthVersusMinute(t *testing.T) {
	d, err := New("dt", "m/d/yy hh:mm")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Kind() != KindDate || d.ValueType() != styles.ValueDate {
		t.Fatalf("datetime code should be a date style, got %v", d.Kind())
	}
	var names []string
	for _, p := range d.parts {
		if p.kind == partCalendar {
			names = append(names, p.text)
		}
	}
	want := []string{"month", "day", "year", "hours", "minutes"}
	if len(names) != len(want) {
		t.Fatalf("calendar parts = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("calendar parts = %v, want %v", names, want)
		}
	}
}

func TestWithLocale(t *testing.T) {
	d, err := New("n", "0", WithLocale("fr", "FR"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if lang, country := d.Locale(); lang != "fr" || country != "FR" {
		t.Fatalf("Locale = %s/%s", lang, country)
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"", "0.00"},
		{"  ", "0.00"},
		{"blank", ""},
	}
	for _, tc := range tests {
		if _, err := New(tc.name, tc.code); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("New(%q, %q): expected ErrInvalidFormat, got %v", tc.name, tc.code, err)
		}
	}
}

func TestValueType(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"0.00", styles.ValueFloat},
		{"0.00E+00", styles.ValueFloat},
		{"# ??/??", styles.ValueFloat},
		{"0%", styles.ValuePercentage},
		{`"€"#,##0.00`, styles.ValueCurrency},
		{"d-mmm-yy", styles.ValueDate},
		{"mm:ss", styles.ValueTime},
		{"BOOLEAN", styles.ValueBoolean},
		{"@", styles.ValueString},
	}
	for _, tc := range tests {
		d, err := New("x", tc.code)
		if err != nil {
			t.Fatalf("New(%q): %v", tc.code, err)
		}
		if got := d.ValueType(); got != tc.want {
			t.Errorf("ValueType(%q) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestFromBuiltin(t *testing.T) {
	for _, id := range []int{0, 1, 2, 3, 4, 9, 10, 11, 12, 13, 14, 15, 20, 21, 22, 45, 46, 47, 49} {
		if _, err := FromBuiltin("b", id); err != nil {
			t.Errorf("FromBuiltin(%d): %v", id, err)
		}
	}
	if _, err := FromBuiltin("b", 163); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("unknown id: expected ErrInvalidFormat, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	defs, err := NewDefaults(Formats{Float: "#,##0.000"})
	if err != nil {
		t.Fatalf("NewDefaults: %v", err)
	}
	for _, vt := range []string{
		styles.ValueFloat, styles.ValuePercentage, styles.ValueCurrency,
		styles.ValueDate, styles.ValueTime, styles.ValueBoolean, styles.ValueString,
	} {
		d := defs.For(vt)
		if d == nil {
			t.Fatalf("no default for %s", vt)
		}
		if d.ValueType() != vt {
			t.Errorf("default for %s formats %s", vt, d.ValueType())
		}
	}
	if defs.Float.Code() != "#,##0.000" || defs.Float.Number().DecimalPlaces != 3 {
		t.Fatalf("float override ignored: %q", defs.Float.Code())
	}
	if defs.For("void") != nil {
		t.Fatalf("unknown value type should have no default")
	}
}

func TestDefaultsRejectMismatchedKind(t *testing.T) {
	if _, err := NewDefaults(Formats{Date: "0.00"}); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for a numeric date format, got %v", err)
	}
}
