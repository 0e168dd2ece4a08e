package stylecontainer

import (
	"errors"
	"fmt"

	"github.com/TsubasaBE/go-ods/registry"
	"github.com/TsubasaBE/go-ods/styles"
)

// compositeSep joins the base and data style names of a composite style.
const compositeSep = "@@"

// mergeKey identifies a (base, data style) pair by name.
type mergeKey struct {
	base string
	data string
}

type mergeCache struct {
	entries map[mergeKey]*styles.TableCellStyle
}

// AddChildCellStyle returns the hidden cell style that applies ds on top of
// base, creating and registering it on first use:
//
//   - ds is registered as a data style;
//   - base, when it has no parent, is registered as a common style;
//   - the composite "base@@ds" is registered in the content automatic
//     styles.
//
// Later calls with the same pair of names return the same composite without
// registering anything, even after Freeze.  A data style or base style that
// is already registered with a different value is an ErrDuplicateName; a
// composite name already taken by another style is an ErrMergeCollision.
func (c *Container) AddChildCellStyle(base *styles.TableCellStyle, ds styles.DataStyle) (*styles.TableCellStyle, error) {
	if base == nil || ds == nil {
		return nil, fmt.Errorf("%w: merge needs a base and a data style", styles.ErrInvalidStyle)
	}
	key := mergeKey{base: base.Name(), data: ds.Name()}
	if cs, ok := c.merged.entries[key]; ok {
		return cs, nil
	}

	if err := checkHidden("data-styles", ds, true); err != nil {
		return nil, err
	}
	addData, err := c.needsData(ds)
	if err != nil {
		return nil, err
	}
	addBase := false
	if !base.HasParent() {
		if addBase, err = c.needsCommon(base); err != nil {
			return nil, err
		}
	}

	name := base.Name() + compositeSep + ds.Name()
	cs, err := styles.NewCellStyle(styles.CellStyleConfig{
		Name:      name,
		Hidden:    true,
		Parent:    base,
		DataStyle: ds,
	})
	if err != nil {
		return nil, err
	}
	if err := c.zones.Check(name, ContentAutomaticStyles, registry.Create); err != nil {
		if errors.Is(err, registry.ErrDuplicateName) {
			return nil, fmt.Errorf("%w: %q from base %q and data style %q", ErrMergeCollision, name, base.Name(), ds.Name())
		}
		return nil, err
	}

	if addData {
		if err := c.dataStyles.Add(ds.Name(), ds, registry.Create); err != nil {
			return nil, err
		}
	}
	if addBase {
		if err := c.zones.Add(base.Name(), StylesCommonStyles, base, registry.Create); err != nil {
			return nil, err
		}
	}
	if err := c.zones.Add(name, ContentAutomaticStyles, cs, registry.Create); err != nil {
		return nil, err
	}
	c.merged.entries[key] = cs
	c.log.Debug().Str("style", name).Msg("composite cell style created")
	return cs, nil
}

// needsCommon is needsData for a parentless base style headed for the common
// styles.
func (c *Container) needsCommon(base *styles.TableCellStyle) (bool, error) {
	if err := checkHidden(StylesCommonStyles.String(), base, false); err != nil {
		return false, err
	}
	if cur, ok := c.zones.Get(base.Name(), StylesCommonStyles); ok && same(cur, base) {
		return false, nil
	}
	if err := c.zones.Check(base.Name(), StylesCommonStyles, registry.Create); err != nil {
		return false, err
	}
	return true, nil
}
