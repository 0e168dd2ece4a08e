package styles

import (
	"fmt"
	"io"
	"strings"

	"github.com/TsubasaBE/go-ods/internal/xmlutil"
)

// Print orientations accepted by PageLayoutConfig.Orientation.
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// DefaultPageStyleName is the name used for the document's default page
// style when none is configured.
const DefaultPageStyleName = "Mpm1"

// PageLayoutConfig describes page geometry.  Zero fields take A4 portrait
// defaults.
type PageLayoutConfig struct {
	Name         string
	PageWidth    Length
	PageHeight   Length
	Margin       Length
	Orientation  string
	WritingMode  string
	HeaderHeight Length
	FooterHeight Length
}

// PageLayoutStyle is a style:page-layout.  Page layouts are always hidden.
type PageLayoutStyle struct {
	cfg PageLayoutConfig
}

// NewPageLayoutStyle validates cfg and returns the page layout it describes.
func NewPageLayoutStyle(cfg PageLayoutConfig) (*PageLayoutStyle, error) {
	if err := checkName("page layout", cfg.Name); err != nil {
		return nil, err
	}
	if cfg.PageWidth == "" {
		cfg.PageWidth = Cm(21)
	}
	if cfg.PageHeight == "" {
		cfg.PageHeight = Cm(29.7)
	}
	if cfg.Margin == "" {
		cfg.Margin = Cm(1.5)
	}
	if cfg.WritingMode == "" {
		cfg.WritingMode = "lr-tb"
	}
	if cfg.HeaderHeight == "" {
		cfg.HeaderHeight = Cm(0)
	}
	if cfg.FooterHeight == "" {
		cfg.FooterHeight = Cm(0)
	}
	switch cfg.Orientation {
	case "":
		cfg.Orientation = Portrait
	case Portrait, Landscape:
	default:
		return nil, fmt.Errorf("%w: page layout %q: orientation %q", ErrInvalidStyle, cfg.Name, cfg.Orientation)
	}
	return &PageLayoutStyle{cfg: cfg}, nil
}

// Name implements Style.
func (s *PageLayoutStyle) Name() string { return s.cfg.Name }

// Hidden implements Style.
func (s *PageLayoutStyle) Hidden() bool { return true }

// AppendXML implements Style.
func (s *PageLayoutStyle) AppendXML(util *xmlutil.Util, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("<style:page-layout")
	util.Attr(&sb, "style:name", s.cfg.Name)
	sb.WriteString("><style:page-layout-properties")
	util.Attr(&sb, "fo:page-width", string(s.cfg.PageWidth))
	util.Attr(&sb, "fo:page-height", string(s.cfg.PageHeight))
	util.Attr(&sb, "style:num-format", "1")
	util.Attr(&sb, "style:writing-mode", s.cfg.WritingMode)
	util.Attr(&sb, "style:print-orientation", s.cfg.Orientation)
	util.Attr(&sb, "fo:margin", string(s.cfg.Margin))
	sb.WriteString("/>")
	headerFooterStyle(util, &sb, "style:header-style", s.cfg.HeaderHeight)
	headerFooterStyle(util, &sb, "style:footer-style", s.cfg.FooterHeight)
	sb.WriteString("</style:page-layout>")
	return xmlutil.Flush(w, &sb)
}

func headerFooterStyle(util *xmlutil.Util, sb *strings.Builder, tag string, minHeight Length) {
	sb.WriteString("<" + tag + "><style:header-footer-properties")
	util.Attr(sb, "fo:min-height", string(minHeight))
	util.Attr(sb, "fo:margin", "0cm")
	sb.WriteString("/></" + tag + ">")
}

// Region is the content of a header or footer: one paragraph of text in an
// optional text style.
type Region struct {
	Text  string
	Style *TextStyle
}

// MasterPageConfig describes a master page.
type MasterPageConfig struct {
	Name string
	// PageLayoutName names the page layout the master page uses.
	PageLayoutName string
	Header         *Region
	Footer         *Region
}

// MasterPageStyle is a style:master-page.  Master pages are named,
// non-hidden styles written to the stylesheet's master-styles section.
type MasterPageStyle struct {
	cfg MasterPageConfig
}

// NewMasterPageStyle validates cfg and returns the master page it describes.
func NewMasterPageStyle(cfg MasterPageConfig) (*MasterPageStyle, error) {
	if err := checkName("master page", cfg.Name); err != nil {
		return nil, err
	}
	if cfg.PageLayoutName == "" {
		cfg.PageLayoutName = cfg.Name
	}
	return &MasterPageStyle{cfg: cfg}, nil
}

// Name implements Style.
func (s *MasterPageStyle) Name() string { return s.cfg.Name }

// Hidden implements Style.
func (s *MasterPageStyle) Hidden() bool { return false }

// Header returns the header region, or nil.
func (s *MasterPageStyle) Header() *Region { return s.cfg.Header }

// Footer returns the footer region, or nil.
func (s *MasterPageStyle) Footer() *Region { return s.cfg.Footer }

// EmbeddedStyles returns the text styles of the header and footer.  A style
// shared by both regions is listed once.
func (s *MasterPageStyle) EmbeddedStyles() []Style {
	var out []Style
	for _, r := range []*Region{s.cfg.Header, s.cfg.Footer} {
		if r == nil || r.Style == nil {
			continue
		}
		if len(out) == 1 && out[0].Name() == r.Style.Name() {
			continue
		}
		out = append(out, r.Style)
	}
	return out
}

// AppendXML implements Style.
func (s *MasterPageStyle) AppendXML(util *xmlutil.Util, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("<style:master-page")
	util.Attr(&sb, "style:name", s.cfg.Name)
	util.Attr(&sb, "style:page-layout-name", s.cfg.PageLayoutName)
	sb.WriteString(">")
	region(util, &sb, "style:header", s.cfg.Header)
	region(util, &sb, "style:footer", s.cfg.Footer)
	sb.WriteString("</style:master-page>")
	return xmlutil.Flush(w, &sb)
}

func region(util *xmlutil.Util, sb *strings.Builder, tag string, r *Region) {
	if r == nil {
		return
	}
	sb.WriteString("<" + tag + "><text:p>")
	if r.Style != nil {
		sb.WriteString("<text:span")
		util.Attr(sb, "text:style-name", r.Style.Name())
		sb.WriteString(">")
		sb.WriteString(util.EscapeContent(r.Text))
		sb.WriteString("</text:span>")
	} else {
		sb.WriteString(util.EscapeContent(r.Text))
	}
	sb.WriteString("</text:p></" + tag + ">")
	sb.WriteString("<" + tag + `-left style:display="false"/>`)
}

// PageStyle is a compound of a master page and the page layout it uses.
type PageStyle struct {
	master *MasterPageStyle
	layout *PageLayoutStyle
}

// PageStyleConfig describes a page style.  The master page and page layout
// share Name.
type PageStyleConfig struct {
	Name   string
	Layout PageLayoutConfig
	Header *Region
	Footer *Region
}

// NewPageStyle builds the master page and page layout of a page style.
func NewPageStyle(cfg PageStyleConfig) (*PageStyle, error) {
	if err := checkName("page style", cfg.Name); err != nil {
		return nil, err
	}
	lc := cfg.Layout
	lc.Name = cfg.Name
	layout, err := NewPageLayoutStyle(lc)
	if err != nil {
		return nil, err
	}
	master, err := NewMasterPageStyle(MasterPageConfig{
		Name:           cfg.Name,
		PageLayoutName: layout.Name(),
		Header:         cfg.Header,
		Footer:         cfg.Footer,
	})
	if err != nil {
		return nil, err
	}
	return &PageStyle{master: master, layout: layout}, nil
}

// DefaultPageStyle returns an A4 portrait page style without header or
// footer.
func DefaultPageStyle() *PageStyle {
	ps, _ := NewPageStyle(PageStyleConfig{Name: DefaultPageStyleName})
	return ps
}

// Name returns the name shared by both parts.
func (p *PageStyle) Name() string { return p.master.Name() }

// MasterPageStyle returns the master page part.
func (p *PageStyle) MasterPageStyle() *MasterPageStyle { return p.master }

// PageLayoutStyle returns the page layout part.
func (p *PageStyle) PageLayoutStyle() *PageLayoutStyle { return p.layout }
