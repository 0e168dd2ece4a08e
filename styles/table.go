package styles

import (
	"io"
	"strings"

	"github.com/TsubasaBE/go-ods/internal/xmlutil"
)

// RowStyleConfig describes a table-row style.
type RowStyleConfig struct {
	Name   string
	Hidden bool
	// RowHeight sets style:row-height; zero means optimal height.
	RowHeight Length
}

// TableRowStyle is a style:style of family table-row.
type TableRowStyle struct {
	cfg RowStyleConfig
}

// NewRowStyle validates cfg and returns the row style it describes.
func NewRowStyle(cfg RowStyleConfig) (*TableRowStyle, error) {
	if err := checkName("row style", cfg.Name); err != nil {
		return nil, err
	}
	return &TableRowStyle{cfg: cfg}, nil
}

func (s *TableRowStyle) Name() string { return s.cfg.Name }
func (s *TableRowStyle) Hidden() bool { return s.cfg.Hidden }

// AppendXML implements Style.
func (s *TableRowStyle) AppendXML(util *xmlutil.Util, w io.Writer) error {
	var sb strings.Builder
	openStyle(util, &sb, s.cfg.Name, "table-row")
	sb.WriteString("><style:table-row-properties")
	if s.cfg.RowHeight != "" {
		util.Attr(&sb, "style:row-height", string(s.cfg.RowHeight))
		util.BoolAttr(&sb, "style:use-optimal-row-height", false)
	} else {
		util.BoolAttr(&sb, "style:use-optimal-row-height", true)
	}
	util.Attr(&sb, "fo:break-before", "auto")
	sb.WriteString("/></style:style>")
	return xmlutil.Flush(w, &sb)
}

// ColumnStyleConfig describes a table-column style.
type ColumnStyleConfig struct {
	Name        string
	Hidden      bool
	ColumnWidth Length
	// DefaultCellStyle is referenced by table:default-cell-style-name on the
	// column element; it does not appear in the style itself.
	DefaultCellStyle *TableCellStyle
}

// TableColumnStyle is a style:style of family table-column.
type TableColumnStyle struct {
	cfg ColumnStyleConfig
}

// NewColumnStyle validates cfg and returns the column style it describes.
func NewColumnStyle(cfg ColumnStyleConfig) (*TableColumnStyle, error) {
	if err := checkName("column style", cfg.Name); err != nil {
		return nil, err
	}
	if cfg.ColumnWidth == "" {
		cfg.ColumnWidth = Cm(2.5)
	}
	return &TableColumnStyle{cfg: cfg}, nil
}

func (s *TableColumnStyle) Name() string { return s.cfg.Name }
func (s *TableColumnStyle) Hidden() bool { return s.cfg.Hidden }

// DefaultCellStyle returns the column's default cell style, or nil.
func (s *TableColumnStyle) DefaultCellStyle() *TableCellStyle { return s.cfg.DefaultCellStyle }

// AppendXML implements Style.
func (s *TableColumnStyle) AppendXML(util *xmlutil.Util, w io.Writer) error {
	var sb strings.Builder
	openStyle(util, &sb, s.cfg.Name, "table-column")
	sb.WriteString("><style:table-column-properties")
	util.Attr(&sb, "fo:break-before", "auto")
	util.Attr(&sb, "style:column-width", string(s.cfg.ColumnWidth))
	sb.WriteString("/></style:style>")
	return xmlutil.Flush(w, &sb)
}

// TextStyleConfig describes a text (span) style.
type TextStyleConfig struct {
	Name            string
	Visible         bool
	FontColor       Color
	FontSize        Length
	FontWeightBold  bool
	FontStyleItalic bool
}

// TextStyle is a style:style of family text.  Text styles are hidden unless
// Visible is set: they normally live in the automatic sections and are
// referenced from header and footer paragraphs.
type TextStyle struct {
	cfg TextStyleConfig
}

// NewTextStyle validates cfg and returns the text style it describes.
func NewTextStyle(cfg TextStyleConfig) (*TextStyle, error) {
	if err := checkName("text style", cfg.Name); err != nil {
		return nil, err
	}
	if err := validColor(cfg.FontColor); err != nil {
		return nil, err
	}
	return &TextStyle{cfg: cfg}, nil
}

func (s *TextStyle) Name() string { return s.cfg.Name }
func (s *TextStyle) Hidden() bool { return !s.cfg.Visible }

// AppendXML implements Style.
func (s *TextStyle) AppendXML(util *xmlutil.Util, w io.Writer) error {
	var sb strings.Builder
	openStyle(util, &sb, s.cfg.Name, "text")
	sb.WriteString("><style:text-properties")
	util.OptAttr(&sb, "fo:color", string(s.cfg.FontColor))
	util.OptAttr(&sb, "fo:font-size", string(s.cfg.FontSize))
	if s.cfg.FontWeightBold {
		util.Attr(&sb, "fo:font-weight", "bold")
	}
	if s.cfg.FontStyleItalic {
		util.Attr(&sb, "fo:font-style", "italic")
	}
	sb.WriteString("/></style:style>")
	return xmlutil.Flush(w, &sb)
}
