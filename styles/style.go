// Package styles defines the contract every style honours (a name, a hidden
// flag and self-serialization) together with the concrete style kinds a
// spreadsheet document needs: cell, row, column, text, page layout and
// master page styles.
//
// Styles are immutable values built by New* factory functions from a config
// struct.  Factories validate the config and fail with [ErrInvalidStyle]
// rather than producing a style that would break the document later.
//
// This package has no dependency on the container or the number-format
// engine, so both can import it without cycles.
package styles

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TsubasaBE/go-ods/internal/xmlutil"
)

// ErrInvalidStyle is returned by the New* factories for an unusable config.
var ErrInvalidStyle = errors.New("styles: invalid style")

// Style is a named, serializable formatting definition.
type Style interface {
	// Name is the unique style name within its destination.
	Name() string
	// Hidden reports whether the style belongs in an automatic (transient)
	// section rather than the common (named, user-visible) section.
	Hidden() bool
	// AppendXML writes the style's ODF representation to w.
	AppendXML(util *xmlutil.Util, w io.Writer) error
}

// DataStyle is a number/date/text format style that cell styles refer to by
// name.  Data styles are always hidden.
type DataStyle interface {
	Style
	// ValueType is the office:value-type of the cells the style formats:
	// float, percentage, currency, date, time, boolean or string.
	ValueType() string
}

// Value types reported by DataStyle.ValueType.
const (
	ValueFloat      = "float"
	ValuePercentage = "percentage"
	ValueCurrency   = "currency"
	ValueDate       = "date"
	ValueTime       = "time"
	ValueBoolean    = "boolean"
	ValueString     = "string"
)

// Styles embedded in a style that must be registered alongside it, such as
// the text styles of a master page's header and footer.
type embedder interface {
	EmbeddedStyles() []Style
}

// Embedded returns the styles s embeds, or nil.
func Embedded(s Style) []Style {
	if e, ok := s.(embedder); ok {
		return e.EmbeddedStyles()
	}
	return nil
}

func checkName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s: empty name", ErrInvalidStyle, kind)
	}
	return nil
}

// openStyle writes `<style:style style:name=".." style:family="..."` without
// closing the tag.
func openStyle(util *xmlutil.Util, sb *strings.Builder, name, family string) {
	sb.WriteString("<style:style")
	util.Attr(sb, "style:name", name)
	util.Attr(sb, "style:family", family)
}
