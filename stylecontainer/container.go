// Package stylecontainer collects the styles of a spreadsheet document,
// rejects duplicate and misplaced registrations, synthesizes the anonymous
// cell styles that pair a common style with a data style, and writes each
// output zone in registration order.
//
// A Container is built up in one phase, frozen, and then written.  Every
// failed add leaves the container exactly as it was.  A Container is not
// safe for concurrent use.
package stylecontainer

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/TsubasaBE/go-ods/internal/logging"
	"github.com/TsubasaBE/go-ods/registry"
	"github.com/TsubasaBE/go-ods/styles"
)

// Dest is one of the three style zones shared by generic styles.  Data
// styles, master pages and page layouts have dedicated registries.
type Dest int

const (
	// ContentAutomaticStyles holds hidden styles referenced from the
	// document body (content.xml office:automatic-styles).
	ContentAutomaticStyles Dest = iota
	// StylesAutomaticStyles holds hidden styles referenced from the
	// stylesheet itself (styles.xml office:automatic-styles).
	StylesAutomaticStyles
	// StylesCommonStyles holds named, visible styles (styles.xml
	// office:styles).
	StylesCommonStyles
)

func (d Dest) String() string {
	switch d {
	case ContentAutomaticStyles:
		return "content-automatic-styles"
	case StylesAutomaticStyles:
		return "styles-automatic-styles"
	case StylesCommonStyles:
		return "styles-common-styles"
	}
	return fmt.Sprintf("Dest(%d)", int(d))
}

// hidden is the Hidden() value every style of d must have.
func (d Dest) hidden() bool { return d != StylesCommonStyles }

var (
	// ErrHiddenInvariant is returned when a style's hidden flag does not
	// match the zone it is added to or found in.
	ErrHiddenInvariant = errors.New("stylecontainer: hidden invariant violated")
	// ErrMergeCollision is returned when two different (base, data style)
	// pairs produce the same composite style name.
	ErrMergeCollision = errors.New("stylecontainer: merge collision")
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger.  The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Container) { c.log = l }
}

// WithDebug turns on rejection reporting in every registry, as Debug does.
func WithDebug() Option {
	return func(c *Container) { c.debug = true }
}

// Container holds every style of one document.
type Container struct {
	log   zerolog.Logger
	debug bool

	dataStyles  *registry.Registry[styles.DataStyle]
	masterPages *registry.Registry[*styles.MasterPageStyle]
	pageLayouts *registry.Registry[*styles.PageLayoutStyle]
	zones       *registry.Multi[Dest, styles.Style]
	merged      mergeCache
}

// New returns an empty container in the building state.
func New(opts ...Option) *Container {
	c := &Container{log: zerolog.Nop()}
	for _, fn := range opts {
		fn(c)
	}
	c.log = logging.Component(c.log, "stylecontainer")
	logOpt := registry.WithLogger(c.log)
	c.dataStyles = registry.New[styles.DataStyle](logOpt, registry.WithLabel("data-styles"))
	c.masterPages = registry.New[*styles.MasterPageStyle](logOpt, registry.WithLabel("master-page-styles"))
	c.pageLayouts = registry.New[*styles.PageLayoutStyle](logOpt, registry.WithLabel("page-layout-styles"))
	c.zones = registry.NewMulti[Dest, styles.Style](
		[]Dest{ContentAutomaticStyles, StylesAutomaticStyles, StylesCommonStyles}, logOpt)
	c.merged = mergeCache{entries: make(map[mergeKey]*styles.TableCellStyle)}
	if c.debug {
		c.Debug()
	}
	return c
}

// ── data styles ──────────────────────────────────────────────────────────────

// AddDataStyle registers a new data style.
func (c *Container) AddDataStyle(ds styles.DataStyle) error {
	return c.AddDataStyleMode(ds, registry.Create)
}

// AddDataStyleMode registers a data style with the given mode.  The style
// must be hidden.
func (c *Container) AddDataStyleMode(ds styles.DataStyle, mode registry.Mode) error {
	if err := checkHidden("data-styles", ds, true); err != nil {
		return err
	}
	return c.dataStyles.Add(ds.Name(), ds, mode)
}

// ── page styles ──────────────────────────────────────────────────────────────

// AddMasterPageStyle registers a new master page.
func (c *Container) AddMasterPageStyle(mp *styles.MasterPageStyle) error {
	return c.AddMasterPageStyleMode(mp, registry.Create)
}

// AddMasterPageStyleMode registers a master page with the given mode, then
// registers the styles it embeds (header and footer text styles) into the
// stylesheet's automatic styles with the same mode.  An embedded style that
// is already registered with an identical value is left alone.
func (c *Container) AddMasterPageStyleMode(mp *styles.MasterPageStyle, mode registry.Mode) error {
	if err := checkHidden("master-page-styles", mp, false); err != nil {
		return err
	}
	if err := c.masterPages.Check(mp.Name(), mode); err != nil {
		return err
	}
	embedded, err := c.pendingEmbedded(mp, mode)
	if err != nil {
		return err
	}
	if err := c.masterPages.Add(mp.Name(), mp, mode); err != nil {
		return err
	}
	for _, s := range embedded {
		if err := c.zones.Add(s.Name(), StylesAutomaticStyles, s, mode); err != nil {
			return err
		}
	}
	return nil
}

// pendingEmbedded returns the embedded styles of s that a cascade with mode
// still has to register, or the error the cascade would hit.
func (c *Container) pendingEmbedded(s styles.Style, mode registry.Mode) ([]styles.Style, error) {
	var out []styles.Style
	seen := make(map[string]styles.Style)
	for _, e := range styles.Embedded(s) {
		if err := checkHidden(StylesAutomaticStyles.String(), e, true); err != nil {
			return nil, err
		}
		if prev, ok := seen[e.Name()]; ok {
			if same(prev, e) {
				continue
			}
			return nil, fmt.Errorf("%w: %s: %q", registry.ErrDuplicateName, StylesAutomaticStyles, e.Name())
		}
		seen[e.Name()] = e
		if cur, ok := c.zones.Get(e.Name(), StylesAutomaticStyles); ok && same(cur, e) {
			continue
		}
		if err := c.zones.Check(e.Name(), StylesAutomaticStyles, mode); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// AddPageLayoutStyle registers a new page layout.
func (c *Container) AddPageLayoutStyle(pl *styles.PageLayoutStyle) error {
	return c.AddPageLayoutStyleMode(pl, registry.Create)
}

// AddPageLayoutStyleMode registers a page layout with the given mode.  The
// layout must be hidden.
func (c *Container) AddPageLayoutStyleMode(pl *styles.PageLayoutStyle, mode registry.Mode) error {
	if err := checkHidden("page-layout-styles", pl, true); err != nil {
		return err
	}
	return c.pageLayouts.Add(pl.Name(), pl, mode)
}

// AddPageStyle registers the master page and page layout of a new page
// style.
func (c *Container) AddPageStyle(ps *styles.PageStyle) error {
	return c.AddPageStyleMode(ps, registry.Create)
}

// AddPageStyleMode registers both parts of ps with the given mode.  Either
// both parts are registered or neither is.
func (c *Container) AddPageStyleMode(ps *styles.PageStyle, mode registry.Mode) error {
	pl := ps.PageLayoutStyle()
	if err := checkHidden("page-layout-styles", pl, true); err != nil {
		return err
	}
	if err := c.pageLayouts.Check(pl.Name(), mode); err != nil {
		return err
	}
	if err := c.AddMasterPageStyleMode(ps.MasterPageStyle(), mode); err != nil {
		return err
	}
	return c.pageLayouts.Add(pl.Name(), pl, mode)
}

// ── generic zones ────────────────────────────────────────────────────────────

// AddStyleToContentAutomaticStyles registers a new hidden style referenced
// from the document body.
func (c *Container) AddStyleToContentAutomaticStyles(s styles.Style) error {
	return c.AddStyleToContentAutomaticStylesMode(s, registry.Create)
}

// AddStyleToContentAutomaticStylesMode is AddStyleToContentAutomaticStyles
// with an explicit mode.
func (c *Container) AddStyleToContentAutomaticStylesMode(s styles.Style, mode registry.Mode) error {
	return c.addToZone(s, ContentAutomaticStyles, mode)
}

// AddStyleToStylesAutomaticStyles registers a new hidden style referenced
// from the stylesheet.
func (c *Container) AddStyleToStylesAutomaticStyles(s styles.Style) error {
	return c.AddStyleToStylesAutomaticStylesMode(s, registry.Create)
}

// AddStyleToStylesAutomaticStylesMode is AddStyleToStylesAutomaticStyles
// with an explicit mode.
func (c *Container) AddStyleToStylesAutomaticStylesMode(s styles.Style, mode registry.Mode) error {
	return c.addToZone(s, StylesAutomaticStyles, mode)
}

// AddStyleToStylesCommonStyles registers a new named, visible style.
func (c *Container) AddStyleToStylesCommonStyles(s styles.Style) error {
	return c.AddStyleToStylesCommonStylesMode(s, registry.Create)
}

// AddStyleToStylesCommonStylesMode is AddStyleToStylesCommonStyles with an
// explicit mode.
func (c *Container) AddStyleToStylesCommonStylesMode(s styles.Style, mode registry.Mode) error {
	return c.addToZone(s, StylesCommonStyles, mode)
}

func (c *Container) addToZone(s styles.Style, dest Dest, mode registry.Mode) error {
	if err := checkHidden(dest.String(), s, dest.hidden()); err != nil {
		return err
	}
	return c.zones.Add(s.Name(), dest, s, mode)
}

// AddNewDataStyleFromCellStyle registers a hidden cell style that already
// carries its data style: the cell style goes to the content automatic
// styles and its data style to the data styles.  A data style already
// registered with an identical value is not an error.
func (c *Container) AddNewDataStyleFromCellStyle(cs *styles.TableCellStyle) error {
	ds := cs.DataStyle()
	if ds == nil {
		return fmt.Errorf("%w: cell style %q has no data style", styles.ErrInvalidStyle, cs.Name())
	}
	if err := checkHidden(ContentAutomaticStyles.String(), cs, true); err != nil {
		return err
	}
	if err := checkHidden("data-styles", ds, true); err != nil {
		return err
	}
	if err := c.zones.Check(cs.Name(), ContentAutomaticStyles, registry.Create); err != nil {
		return err
	}
	addData, err := c.needsData(ds)
	if err != nil {
		return err
	}
	if err := c.zones.Add(cs.Name(), ContentAutomaticStyles, cs, registry.Create); err != nil {
		return err
	}
	if addData {
		return c.dataStyles.Add(ds.Name(), ds, registry.Create)
	}
	return nil
}

// needsData reports whether ds still has to be registered.  An identical
// registered value means no; a different one is a duplicate.
func (c *Container) needsData(ds styles.DataStyle) (bool, error) {
	if cur, ok := c.dataStyles.Get(ds.Name()); ok && same(cur, ds) {
		return false, nil
	}
	if err := c.dataStyles.Check(ds.Name(), registry.Create); err != nil {
		return false, err
	}
	return true, nil
}

// ── queries ──────────────────────────────────────────────────────────────────

// HasFooterHeader reports whether any registered master page has a header
// and whether any has a footer.
func (c *Container) HasFooterHeader() (hasHeader, hasFooter bool) {
	for _, mp := range c.masterPages.Values() {
		if mp.Header() != nil {
			hasHeader = true
		}
		if mp.Footer() != nil {
			hasFooter = true
		}
		if hasHeader && hasFooter {
			break
		}
	}
	return hasHeader, hasFooter
}

// DataStyles returns the registered data styles in registration order.
func (c *Container) DataStyles() []styles.DataStyle { return c.dataStyles.Values() }

// MasterPageStyles returns the registered master pages in registration
// order.
func (c *Container) MasterPageStyles() []*styles.MasterPageStyle { return c.masterPages.Values() }

// PageLayoutStyles returns the registered page layouts in registration
// order.
func (c *Container) PageLayoutStyles() []*styles.PageLayoutStyle { return c.pageLayouts.Values() }

// Styles returns the styles of dest in registration order.
func (c *Container) Styles(dest Dest) []styles.Style { return c.zones.Values(dest) }

// ── lifecycle ────────────────────────────────────────────────────────────────

// Freeze makes the container read-only.  It cannot be undone.
func (c *Container) Freeze() {
	c.dataStyles.Freeze()
	c.masterPages.Freeze()
	c.pageLayouts.Freeze()
	c.zones.Freeze()
	c.log.Debug().
		Int("data_styles", c.dataStyles.Len()).
		Int("master_pages", c.masterPages.Len()).
		Int("page_layouts", c.pageLayouts.Len()).
		Int("merged", len(c.merged.entries)).
		Msg("styles frozen")
}

// Frozen reports whether Freeze has been called.
func (c *Container) Frozen() bool { return c.zones.Frozen() }

// Debug turns on reporting of rejected registrations in every registry.
func (c *Container) Debug() {
	c.debug = true
	c.dataStyles.Debug()
	c.masterPages.Debug()
	c.pageLayouts.Debug()
	c.zones.Debug()
}

func checkHidden(zone string, s styles.Style, want bool) error {
	if s.Hidden() != want {
		return fmt.Errorf("%w: %s: %q has hidden=%t", ErrHiddenInvariant, zone, s.Name(), s.Hidden())
	}
	return nil
}

// same reports whether a and b are the same style value.  Styles are
// immutable, so structural equality is identity for registration purposes.
func same(a, b styles.Style) bool {
	return reflect.DeepEqual(a, b)
}
