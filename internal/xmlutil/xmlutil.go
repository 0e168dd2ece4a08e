// Package xmlutil holds the XML helper context passed to every style
// serialization call.  One Util is created per document by the workbook
// writer and threaded through the write pass by parameter; there is no
// package-level instance.
package xmlutil

import (
	"io"
	"strconv"
	"strings"
)

// Util escapes text and builds attribute strings for ODF XML fragments.
type Util struct {
	attrEscaper    *strings.Replacer
	contentEscaper *strings.Replacer
}

// controlChars maps the C0 control characters XML 1.0 cannot represent to
// the empty string.  Tab, line feed and carriage return are allowed.
func controlChars() []string {
	var pairs []string
	for c := rune(0); c < 0x20; c++ {
		if c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		pairs = append(pairs, string(c), "")
	}
	return pairs
}

// New returns a ready Util.
func New() *Util {
	attr := append([]string{
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
		"\t", "&#x9;",
		"\n", "&#xA;",
		"\r", "&#xD;",
	}, controlChars()...)
	content := append([]string{
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	}, controlChars()...)
	return &Util{
		attrEscaper:    strings.NewReplacer(attr...),
		contentEscaper: strings.NewReplacer(content...),
	}
}

// EscapeAttr escapes s for use inside a double-quoted attribute value.
// Control characters other than tab, line feed and carriage return are
// dropped.
func (u *Util) EscapeAttr(s string) string {
	return u.attrEscaper.Replace(s)
}

// EscapeContent escapes s for use as element character data.  Control
// characters other than tab, line feed and carriage return are dropped.
func (u *Util) EscapeContent(s string) string {
	return u.contentEscaper.Replace(s)
}

// Attr appends ` name="value"` to sb, escaping value.
func (u *Util) Attr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(u.EscapeAttr(value))
	sb.WriteByte('"')
}

// IntAttr appends ` name="n"` to sb.
func (u *Util) IntAttr(sb *strings.Builder, name string, n int) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(strconv.Itoa(n))
	sb.WriteByte('"')
}

// BoolAttr appends ` name="true"` or ` name="false"` to sb.
func (u *Util) BoolAttr(sb *strings.Builder, name string, b bool) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(strconv.FormatBool(b))
	sb.WriteByte('"')
}

// OptAttr appends the attribute only when value is non-empty.
func (u *Util) OptAttr(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	u.Attr(sb, name, value)
}

// Flush writes the accumulated fragment to w.
func Flush(w io.Writer, sb *strings.Builder) error {
	_, err := io.WriteString(w, sb.String())
	return err
}
