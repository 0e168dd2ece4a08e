package styles

import (
	"fmt"
	"io"
	"strings"

	"github.com/TsubasaBE/go-ods/internal/xmlutil"
)

// DefaultCellStyleName is the name of the document's default cell style.
const DefaultCellStyleName = "Default"

// Text alignments accepted by CellStyleConfig.TextAlign.
const (
	AlignStart  = "start"
	AlignCenter = "center"
	AlignEnd    = "end"
)

// CellStyleConfig describes a table-cell style.
type CellStyleConfig struct {
	Name   string
	Hidden bool
	// Parent is the common style this style inherits from.  A style with a
	// parent is a child style; it is never registered as a common style by
	// the merge path.
	Parent *TableCellStyle
	// DataStyle formats the cell value.
	DataStyle DataStyle

	BackgroundColor Color
	FontColor       Color
	FontWeightBold  bool
	FontStyleItalic bool
	FontSize        Length
	TextAlign       string
	WrapText        bool
}

// TableCellStyle is a style:style of family table-cell.
type TableCellStyle struct {
	cfg CellStyleConfig
}

// NewCellStyle validates cfg and returns the cell style it describes.
func NewCellStyle(cfg CellStyleConfig) (*TableCellStyle, error) {
	if err := checkName("cell style", cfg.Name); err != nil {
		return nil, err
	}
	if err := validColor(cfg.BackgroundColor); err != nil {
		return nil, err
	}
	if err := validColor(cfg.FontColor); err != nil {
		return nil, err
	}
	switch cfg.TextAlign {
	case "", AlignStart, AlignCenter, AlignEnd:
	default:
		return nil, fmt.Errorf("%w: cell style %q: text align %q", ErrInvalidStyle, cfg.Name, cfg.TextAlign)
	}
	if cfg.DataStyle != nil && !cfg.DataStyle.Hidden() {
		return nil, fmt.Errorf("%w: cell style %q: data style %q is not hidden", ErrInvalidStyle, cfg.Name, cfg.DataStyle.Name())
	}
	return &TableCellStyle{cfg: cfg}, nil
}

// DefaultCellStyle returns the visible, parentless "Default" cell style.
func DefaultCellStyle() *TableCellStyle {
	return &TableCellStyle{cfg: CellStyleConfig{Name: DefaultCellStyleName}}
}

// Name implements Style.
func (s *TableCellStyle) Name() string { return s.cfg.Name }

// Hidden implements Style.
func (s *TableCellStyle) Hidden() bool { return s.cfg.Hidden }

// Parent returns the parent style, or nil for a top-level style.
func (s *TableCellStyle) Parent() *TableCellStyle { return s.cfg.Parent }

// HasParent reports whether s is a child style.
func (s *TableCellStyle) HasParent() bool { return s.cfg.Parent != nil }

// DataStyle returns the attached data style, or nil.
func (s *TableCellStyle) DataStyle() DataStyle { return s.cfg.DataStyle }

// Config returns a copy of the style's configuration.
func (s *TableCellStyle) Config() CellStyleConfig { return s.cfg }

// AppendXML implements Style.
func (s *TableCellStyle) AppendXML(util *xmlutil.Util, w io.Writer) error {
	var sb strings.Builder
	openStyle(util, &sb, s.cfg.Name, "table-cell")
	if s.cfg.Parent != nil {
		util.Attr(&sb, "style:parent-style-name", s.cfg.Parent.Name())
	}
	if s.cfg.DataStyle != nil {
		util.Attr(&sb, "style:data-style-name", s.cfg.DataStyle.Name())
	}

	cellProps := s.cellProperties(util)
	textProps := s.textProperties(util)
	paraProps := ""
	if s.cfg.TextAlign != "" {
		var p strings.Builder
		p.WriteString("<style:paragraph-properties")
		util.Attr(&p, "fo:text-align", s.cfg.TextAlign)
		p.WriteString("/>")
		paraProps = p.String()
	}
	if cellProps == "" && textProps == "" && paraProps == "" {
		sb.WriteString("/>")
		return xmlutil.Flush(w, &sb)
	}
	sb.WriteString(">")
	sb.WriteString(cellProps)
	sb.WriteString(paraProps)
	sb.WriteString(textProps)
	sb.WriteString("</style:style>")
	return xmlutil.Flush(w, &sb)
}

func (s *TableCellStyle) cellProperties(util *xmlutil.Util) string {
	if s.cfg.BackgroundColor == "" && !s.cfg.WrapText {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<style:table-cell-properties")
	util.OptAttr(&sb, "fo:background-color", string(s.cfg.BackgroundColor))
	if s.cfg.WrapText {
		util.Attr(&sb, "fo:wrap-option", "wrap")
	}
	sb.WriteString("/>")
	return sb.String()
}

func (s *TableCellStyle) textProperties(util *xmlutil.Util) string {
	if s.cfg.FontColor == "" && !s.cfg.FontWeightBold && !s.cfg.FontStyleItalic && s.cfg.FontSize == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<style:text-properties")
	util.OptAttr(&sb, "fo:color", string(s.cfg.FontColor))
	util.OptAttr(&sb, "fo:font-size", string(s.cfg.FontSize))
	if s.cfg.FontWeightBold {
		util.Attr(&sb, "fo:font-weight", "bold")
	}
	if s.cfg.FontStyleItalic {
		util.Attr(&sb, "fo:font-style", "italic")
	}
	sb.WriteString("/>")
	return sb.String()
}
