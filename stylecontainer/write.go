package stylecontainer

import (
	"fmt"
	"io"

	"github.com/TsubasaBE/go-ods/internal/xmlutil"
	"github.com/TsubasaBE/go-ods/styles"
)

// WriteContentAutomaticStyles writes the hidden styles referenced from the
// document body.
func (c *Container) WriteContentAutomaticStyles(util *xmlutil.Util, w io.Writer) error {
	return c.writeZone(util, w, ContentAutomaticStyles)
}

// WriteStylesAutomaticStyles writes the hidden styles referenced from the
// stylesheet.
func (c *Container) WriteStylesAutomaticStyles(util *xmlutil.Util, w io.Writer) error {
	return c.writeZone(util, w, StylesAutomaticStyles)
}

// WriteStylesCommonStyles writes the named, visible styles.
func (c *Container) WriteStylesCommonStyles(util *xmlutil.Util, w io.Writer) error {
	return c.writeZone(util, w, StylesCommonStyles)
}

// WriteDataStyles writes every data style.  Data styles are referenced from
// both parts of the package, so the writer calls this once per part.
func (c *Container) WriteDataStyles(util *xmlutil.Util, w io.Writer) error {
	return writeAll(c, util, w, "data-styles", c.dataStyles.Values(), true)
}

// WriteMasterPageStylesToAutomaticStyles writes the page layouts, which
// live in the stylesheet's automatic styles.
func (c *Container) WriteMasterPageStylesToAutomaticStyles(util *xmlutil.Util, w io.Writer) error {
	return writeAll(c, util, w, "page-layout-styles", c.pageLayouts.Values(), true)
}

// WriteMasterPageStylesToMasterStyles writes the master pages.
func (c *Container) WriteMasterPageStylesToMasterStyles(util *xmlutil.Util, w io.Writer) error {
	return writeAll(c, util, w, "master-page-styles", c.masterPages.Values(), false)
}

func (c *Container) writeZone(util *xmlutil.Util, w io.Writer, dest Dest) error {
	return writeAll(c, util, w, dest.String(), c.zones.Values(dest), dest.hidden())
}

// writeAll checks every style of a zone before writing any of them, so a
// misplaced style never produces a partial zone.
func writeAll[S styles.Style](c *Container, util *xmlutil.Util, w io.Writer, zone string, values []S, hidden bool) error {
	for _, s := range values {
		if err := checkHidden(zone, s, hidden); err != nil {
			return err
		}
	}
	for _, s := range values {
		if err := s.AppendXML(util, w); err != nil {
			return fmt.Errorf("stylecontainer: write %s: %q: %w", zone, s.Name(), err)
		}
	}
	c.log.Debug().Str("zone", zone).Int("styles", len(values)).Msg("zone written")
	return nil
}
