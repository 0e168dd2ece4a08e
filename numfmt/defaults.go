package numfmt

import (
	"fmt"

	"github.com/TsubasaBE/go-ods/styles"
)

// Formats holds the format codes of the per-value-type default data styles.
type Formats struct {
	Float      string
	Percentage string
	Currency   string
	Date       string
	Time       string
}

// DefaultFormats returns the codes used when a document configures none.
func DefaultFormats() Formats {
	return Formats{
		Float:      "0.00",
		Percentage: "0.00%",
		Currency:   `#,##0.00\ [$€-407]`,
		Date:       "yyyy-mm-dd",
		Time:       "hh:mm:ss",
	}
}

// Defaults is the set of data styles typed cell setters fall back to.
type Defaults struct {
	Float      *DataStyle
	Percentage *DataStyle
	Currency   *DataStyle
	Date       *DataStyle
	Time       *DataStyle
	Boolean    *DataStyle
	String     *DataStyle
}

// NewDefaults builds the default data styles from f.  Empty codes take the
// value from DefaultFormats.
func NewDefaults(f Formats, opts ...Option) (Defaults, error) {
	def := DefaultFormats()
	pick := func(code, fallback string) string {
		if code == "" {
			return fallback
		}
		return code
	}
	var out Defaults
	specs := []struct {
		dst  **DataStyle
		name string
		code string
		want string
	}{
		{&out.Float, "float-data", pick(f.Float, def.Float), styles.ValueFloat},
		{&out.Percentage, "percentage-data", pick(f.Percentage, def.Percentage), styles.ValuePercentage},
		{&out.Currency, "currency-data", pick(f.Currency, def.Currency), styles.ValueCurrency},
		{&out.Date, "date-data", pick(f.Date, def.Date), styles.ValueDate},
		{&out.Time, "time-data", pick(f.Time, def.Time), styles.ValueTime},
		{&out.Boolean, "boolean-data", "BOOLEAN", styles.ValueBoolean},
		{&out.String, "string-data", "@", styles.ValueString},
	}
	for _, s := range specs {
		d, err := New(s.name, s.code, opts...)
		if err != nil {
			return Defaults{}, err
		}
		if d.ValueType() != s.want {
			return Defaults{}, fmt.Errorf("%w: %s: %q formats %s values, want %s", ErrInvalidFormat, s.name, s.code, d.ValueType(), s.want)
		}
		*s.dst = d
	}
	return out, nil
}

// For returns the default data style for an office:value-type, or nil.
func (d Defaults) For(valueType string) *DataStyle {
	switch valueType {
	case styles.ValueFloat:
		return d.Float
	case styles.ValuePercentage:
		return d.Percentage
	case styles.ValueCurrency:
		return d.Currency
	case styles.ValueDate:
		return d.Date
	case styles.ValueTime:
		return d.Time
	case styles.ValueBoolean:
		return d.Boolean
	case styles.ValueString:
		return d.String
	}
	return nil
}
