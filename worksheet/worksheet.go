// Package worksheet holds the cells of one table and writes them as an ODF
// table:table element.
//
// The typed setters are where cell formatting meets the style container:
// each one picks the data style for its value and asks the container for
// the anonymous cell style that applies it on top of the cell's base style.
package worksheet

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/TsubasaBE/go-ods/internal/dateformat"
	"github.com/TsubasaBE/go-ods/numfmt"
	"github.com/TsubasaBE/go-ods/registry"
	"github.com/TsubasaBE/go-ods/stylecontainer"
	"github.com/TsubasaBE/go-ods/styles"
)

// ErrInvalidCell is returned for negative coordinates, unsupported values
// and overlapping merges.
var ErrInvalidCell = errors.New("worksheet: invalid cell")

// Percentage is a float value written with office:value-type="percentage".
// 0.25 is 25%.
type Percentage float64

// Currency is a float value written with office:value-type="currency".
type Currency float64

// Dimension describes the used range of a worksheet.
type Dimension struct {
	// R is the first row index (0-based).
	R int
	// C is the first column index (0-based).
	C int
	// H is the height (number of rows).
	H int
	// W is the width (number of columns).
	W int
}

// Col applies a column style to columns C1 through C2 (0-based, inclusive).
type Col struct {
	C1    int
	C2    int
	Style *styles.TableColumnStyle
}

// MergeArea describes a merged cell range.
// R and C are the 0-based row and column of the top-left anchor cell.
// H is the height (number of rows) and W is the width (number of columns)
// spanned by the merge.
type MergeArea struct {
	R int
	C int
	H int
	W int
}

func (m MergeArea) contains(r, c int) bool {
	return r >= m.R && r < m.R+m.H && c >= m.C && c < m.C+m.W
}

func (m MergeArea) overlaps(o MergeArea) bool {
	return m.R < o.R+o.H && o.R < m.R+m.H && m.C < o.C+o.W && o.C < m.C+m.W
}

// Cell is a single worksheet cell.
type Cell struct {
	// R is the 0-based row index of the cell.
	R int
	// C is the 0-based column index of the cell.
	C int
	// V holds the typed cell value. The dynamic type is one of:
	//   - nil           (empty cell)
	//   - string
	//   - float64, Percentage, Currency
	//   - bool
	//   - time.Time     (date or date-time)
	//   - time.Duration (time of day or elapsed time)
	V any
	// ValueType is the office:value-type written for V.
	ValueType string
	// Style is the anonymous cell style of the cell, or nil for an empty
	// cell.
	Style *styles.TableCellStyle
}

// Option configures a Worksheet.
type Option func(*Worksheet)

// WithDefaultCellStyle sets the base style of cells set without one.  The
// default is styles.DefaultCellStyle().
func WithDefaultCellStyle(base *styles.TableCellStyle) Option {
	return func(ws *Worksheet) { ws.base = base }
}

// WithDate1904 makes SetDateSerial use the 1904 date system.
func WithDate1904() Option {
	return func(ws *Worksheet) { ws.date1904 = true }
}

// Worksheet is one table of the document.
type Worksheet struct {
	// Name is the table name as it appears on the sheet tab.
	Name string
	// Cols contains the column-style ranges in the order they were set.  A
	// later range wins where ranges overlap.
	Cols []Col
	// MergeCells contains all merged-cell ranges defined in the sheet.
	MergeCells []MergeArea

	rows      map[int]map[int]Cell
	rowStyles map[int]*styles.TableRowStyle
	container *stylecontainer.Container
	defaults  numfmt.Defaults
	base      *styles.TableCellStyle
	date1904  bool
}

// New returns an empty worksheet whose cell styles are registered in c.
func New(name string, c *stylecontainer.Container, defaults numfmt.Defaults, opts ...Option) (*Worksheet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("worksheet: empty name")
	}
	ws := &Worksheet{
		Name:      name,
		rows:      make(map[int]map[int]Cell),
		rowStyles: make(map[int]*styles.TableRowStyle),
		container: c,
		defaults:  defaults,
		base:      styles.DefaultCellStyle(),
	}
	for _, fn := range opts {
		fn(ws)
	}
	return ws, nil
}

// Set stores v in the cell at (r, c) using the default base style and the
// default data style for v's type.  A nil v clears the cell.
func (ws *Worksheet) Set(r, c int, v any) error {
	return ws.SetStyled(r, c, v, nil, nil)
}

// SetStyled stores v in the cell at (r, c).  A nil base means the sheet's
// default cell style; a nil ds means the default data style for v's type.
// A numeric value may be given any numeric data style, and is then written
// with that style's value type.  A ds holding a nil pointer is rejected with
// ErrInvalidCell.
func (ws *Worksheet) SetStyled(r, c int, v any, base *styles.TableCellStyle, ds styles.DataStyle) error {
	if r < 0 || c < 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidCell, r, c)
	}
	v, vt, err := normalize(v)
	if err != nil {
		return fmt.Errorf("%w: (%d, %d): %v", ErrInvalidCell, r, c, err)
	}
	if v == nil {
		delete(ws.rows[r], c)
		return nil
	}
	if nilPointer(ds) {
		return fmt.Errorf("%w: (%d, %d): nil %T data style", ErrInvalidCell, r, c, ds)
	}
	if ds == nil {
		def := ws.defaults.For(vt)
		if def == nil {
			return fmt.Errorf("%w: (%d, %d): no default data style for %s values", ErrInvalidCell, r, c, vt)
		}
		ds = def
	}
	switch {
	case ds.ValueType() == vt:
	case isNumeric(vt) && isNumeric(ds.ValueType()):
		vt = ds.ValueType()
	default:
		return fmt.Errorf("%w: (%d, %d): %s value with %s data style %q", ErrInvalidCell, r, c, vt, ds.ValueType(), ds.Name())
	}
	if base == nil {
		base = ws.base
	}
	cs, err := ws.container.AddChildCellStyle(base, ds)
	if err != nil {
		return fmt.Errorf("worksheet %s: cell (%d, %d): %w", ws.Name, r, c, err)
	}
	row, ok := ws.rows[r]
	if !ok {
		row = make(map[int]Cell)
		ws.rows[r] = row
	}
	row[c] = Cell{R: r, C: c, V: v, ValueType: vt, Style: cs}
	return nil
}

// SetString stores a text value.
func (ws *Worksheet) SetString(r, c int, s string) error { return ws.Set(r, c, s) }

// SetFloat stores a number.
func (ws *Worksheet) SetFloat(r, c int, f float64) error { return ws.Set(r, c, f) }

// SetInt stores an integer as a number.
func (ws *Worksheet) SetInt(r, c int, n int) error { return ws.Set(r, c, n) }

// SetPercentage stores a percentage; 0.25 is 25%.
func (ws *Worksheet) SetPercentage(r, c int, f float64) error { return ws.Set(r, c, Percentage(f)) }

// SetCurrency stores an amount of money.
func (ws *Worksheet) SetCurrency(r, c int, f float64) error { return ws.Set(r, c, Currency(f)) }

// SetBool stores a boolean.
func (ws *Worksheet) SetBool(r, c int, b bool) error { return ws.Set(r, c, b) }

// SetDate stores a date or date-time.
func (ws *Worksheet) SetDate(r, c int, t time.Time) error { return ws.Set(r, c, t) }

// SetDateSerial stores a date given as a spreadsheet serial number.
func (ws *Worksheet) SetDateSerial(r, c int, serial float64) error {
	t, err := dateformat.SerialToTime(serial, ws.date1904)
	if err != nil {
		return fmt.Errorf("%w: (%d, %d): %v", ErrInvalidCell, r, c, err)
	}
	return ws.Set(r, c, t)
}

// SetDuration stores a time of day or an elapsed time.
func (ws *Worksheet) SetDuration(r, c int, d time.Duration) error { return ws.Set(r, c, d) }

// Cell returns the cell at (r, c).  An unset cell has a nil V.
func (ws *Worksheet) Cell(r, c int) Cell {
	if cell, ok := ws.rows[r][c]; ok {
		return cell
	}
	return Cell{R: r, C: c}
}

// SetRowStyle applies rs to row r.  The style is registered in the content
// automatic styles; a later style with the same name replaces it.
func (ws *Worksheet) SetRowStyle(r int, rs *styles.TableRowStyle) error {
	if r < 0 {
		return fmt.Errorf("%w: row %d", ErrInvalidCell, r)
	}
	if err := ws.container.AddStyleToContentAutomaticStylesMode(rs, registry.CreateOrUpdate); err != nil {
		return fmt.Errorf("worksheet %s: row %d: %w", ws.Name, r, err)
	}
	ws.rowStyles[r] = rs
	return nil
}

// SetColumnStyle applies cs to columns c1 through c2.  The column's default
// cell style, if any, is registered as a common style.
func (ws *Worksheet) SetColumnStyle(c1, c2 int, cs *styles.TableColumnStyle) error {
	if c1 < 0 || c2 < c1 {
		return fmt.Errorf("%w: columns %d..%d", ErrInvalidCell, c1, c2)
	}
	if def := cs.DefaultCellStyle(); def != nil {
		if err := ws.container.AddStyleToStylesCommonStylesMode(def, registry.CreateOrUpdate); err != nil {
			return fmt.Errorf("worksheet %s: columns %d..%d: %w", ws.Name, c1, c2, err)
		}
	}
	if err := ws.container.AddStyleToContentAutomaticStylesMode(cs, registry.CreateOrUpdate); err != nil {
		return fmt.Errorf("worksheet %s: columns %d..%d: %w", ws.Name, c1, c2, err)
	}
	ws.Cols = append(ws.Cols, Col{C1: c1, C2: c2, Style: cs})
	return nil
}

// Merge spans the cell at (r, c) over h rows and w columns.
func (ws *Worksheet) Merge(r, c, h, w int) error {
	m := MergeArea{R: r, C: c, H: h, W: w}
	if r < 0 || c < 0 || h < 1 || w < 1 || h*w == 1 {
		return fmt.Errorf("%w: merge %+v", ErrInvalidCell, m)
	}
	for _, o := range ws.MergeCells {
		if m.overlaps(o) {
			return fmt.Errorf("%w: merge %+v overlaps %+v", ErrInvalidCell, m, o)
		}
	}
	ws.MergeCells = append(ws.MergeCells, m)
	return nil
}

// Dimension returns the range spanned by the set cells and merges, or nil
// for an empty sheet.
func (ws *Worksheet) Dimension() *Dimension {
	minR, minC, maxR, maxC := math.MaxInt, math.MaxInt, -1, -1
	grow := func(r, c int) {
		minR, minC = min(minR, r), min(minC, c)
		maxR, maxC = max(maxR, r), max(maxC, c)
	}
	for r, row := range ws.rows {
		for c := range row {
			grow(r, c)
		}
	}
	for _, m := range ws.MergeCells {
		grow(m.R, m.C)
		grow(m.R+m.H-1, m.C+m.W-1)
	}
	if maxR < 0 {
		return nil
	}
	return &Dimension{R: minR, C: minC, H: maxR - minR + 1, W: maxC - minC + 1}
}

// Rows iterates over the worksheet rows in order, calling yield for each one.
// Every row spans columns 0 through the last used column; unset cells have
// a nil V.
//
// When sparse is false empty rows above and between used rows are emitted as
// rows of empty cells.  When sparse is true only rows holding at least one
// set cell are yielded.
func (ws *Worksheet) Rows(sparse bool) func(yield func([]Cell) bool) {
	return func(yield func([]Cell) bool) {
		dim := ws.Dimension()
		if dim == nil {
			return
		}
		width := dim.C + dim.W
		used := make([]int, 0, len(ws.rows))
		for r := range ws.rows {
			used = append(used, r)
		}
		slices.Sort(used)
		next := 0
		for _, r := range used {
			if len(ws.rows[r]) == 0 {
				continue
			}
			if !sparse {
				for ; next < r; next++ {
					if !yield(makeEmptyRow(next, width)) {
						return
					}
				}
			}
			row := makeEmptyRow(r, width)
			for c, cell := range ws.rows[r] {
				row[c] = cell
			}
			if !yield(row) {
				return
			}
			next = r + 1
		}
	}
}

// makeEmptyRow returns a row of nil-valued Cells spanning [0, width).
func makeEmptyRow(r, width int) []Cell {
	row := make([]Cell, width)
	for c := range row {
		row[c] = Cell{R: r, C: c}
	}
	return row
}

// normalize maps the accepted Go value types onto the stored ones and
// returns the office:value-type of the result.
func normalize(v any) (any, string, error) {
	switch x := v.(type) {
	case nil:
		return nil, "", nil
	case string:
		return x, styles.ValueString, nil
	case float64:
		return x, styles.ValueFloat, finite(x)
	case float32:
		return float64(x), styles.ValueFloat, finite(float64(x))
	case int:
		return float64(x), styles.ValueFloat, nil
	case int64:
		return float64(x), styles.ValueFloat, nil
	case int32:
		return float64(x), styles.ValueFloat, nil
	case Percentage:
		return x, styles.ValuePercentage, finite(float64(x))
	case Currency:
		return x, styles.ValueCurrency, finite(float64(x))
	case bool:
		return x, styles.ValueBoolean, nil
	case time.Time:
		return x, styles.ValueDate, nil
	case time.Duration:
		return x, styles.ValueTime, nil
	}
	return nil, "", fmt.Errorf("unsupported value type %T", v)
}

// nilPointer reports whether ds holds a nil pointer, which the ds == nil
// check does not catch.
func nilPointer(ds styles.DataStyle) bool {
	v := reflect.ValueOf(ds)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func finite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("non-finite number %v", f)
	}
	return nil
}

func isNumeric(vt string) bool {
	return vt == styles.ValueFloat || vt == styles.ValuePercentage || vt == styles.ValueCurrency
}
