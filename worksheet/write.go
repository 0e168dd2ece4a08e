package worksheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-ods/internal/xmlutil"
	"github.com/TsubasaBE/go-ods/styles"
)

// AppendXML writes the sheet as a table:table element.
func (ws *Worksheet) AppendXML(util *xmlutil.Util, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("<table:table")
	util.Attr(&sb, "table:name", ws.Name)
	sb.WriteString(">")

	width := 1
	if dim := ws.Dimension(); dim != nil {
		width = dim.C + dim.W
	}
	for _, col := range ws.Cols {
		width = max(width, col.C2+1)
	}
	ws.appendColumns(util, &sb, width)
	if err := xmlutil.Flush(w, &sb); err != nil {
		return err
	}

	if err := ws.appendRows(util, w, width); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</table:table>")
	return err
}

// appendColumns writes one table:table-column per run of columns sharing a
// column style.
func (ws *Worksheet) appendColumns(util *xmlutil.Util, sb *strings.Builder, width int) {
	styleAt := func(c int) *styles.TableColumnStyle {
		var s *styles.TableColumnStyle
		for _, col := range ws.Cols {
			if c >= col.C1 && c <= col.C2 {
				s = col.Style
			}
		}
		return s
	}
	for c := 0; c < width; {
		s := styleAt(c)
		n := 1
		for c+n < width && styleAt(c+n) == s {
			n++
		}
		sb.WriteString("<table:table-column")
		if s != nil {
			util.Attr(sb, "table:style-name", s.Name())
			if def := s.DefaultCellStyle(); def != nil {
				util.Attr(sb, "table:default-cell-style-name", def.Name())
			}
		}
		if n > 1 {
			util.IntAttr(sb, "table:number-columns-repeated", n)
		}
		sb.WriteString("/>")
		c += n
	}
}

func (ws *Worksheet) appendRows(util *xmlutil.Util, w io.Writer, width int) error {
	var sb strings.Builder
	blank := 0
	flushBlank := func() {
		if blank == 0 {
			return
		}
		sb.WriteString("<table:table-row")
		if blank > 1 {
			util.IntAttr(&sb, "table:number-rows-repeated", blank)
		}
		sb.WriteString(">")
		emptyCells(util, &sb, width)
		sb.WriteString("</table:table-row>")
		blank = 0
	}

	last := -1
	if dim := ws.Dimension(); dim != nil {
		last = dim.R + dim.H - 1
	}
	for r := range ws.rowStyles {
		last = max(last, r)
	}
	for r := 0; r <= last; r++ {
		rs := ws.rowStyles[r]
		if rs == nil && len(ws.rows[r]) == 0 && !ws.inMerge(r) {
			blank++
			continue
		}
		flushBlank()
		sb.WriteString("<table:table-row")
		if rs != nil {
			util.Attr(&sb, "table:style-name", rs.Name())
		}
		sb.WriteString(">")
		ws.appendCells(util, &sb, r, width)
		sb.WriteString("</table:table-row>")
		if err := xmlutil.Flush(w, &sb); err != nil {
			return err
		}
		sb.Reset()
	}
	flushBlank()
	return xmlutil.Flush(w, &sb)
}

func (ws *Worksheet) inMerge(r int) bool {
	for _, m := range ws.MergeCells {
		if r >= m.R && r < m.R+m.H {
			return true
		}
	}
	return false
}

func emptyCells(util *xmlutil.Util, sb *strings.Builder, n int) {
	sb.WriteString("<table:table-cell")
	if n > 1 {
		util.IntAttr(sb, "table:number-columns-repeated", n)
	}
	sb.WriteString("/>")
}

func (ws *Worksheet) appendCells(util *xmlutil.Util, sb *strings.Builder, r, width int) {
	empty := 0
	for c := 0; c < width; c++ {
		anchor, covered := ws.mergeAt(r, c)
		cell, set := ws.rows[r][c]
		if !set && anchor == nil && !covered {
			empty++
			continue
		}
		if empty > 0 {
			emptyCells(util, sb, empty)
			empty = 0
		}
		if covered {
			sb.WriteString("<table:covered-table-cell/>")
			continue
		}
		appendCell(util, sb, cell, anchor)
	}
	if empty > 0 {
		emptyCells(util, sb, empty)
	}
}

// mergeAt returns the merge anchored at (r, c), or reports whether (r, c) is
// covered by another cell's merge.
func (ws *Worksheet) mergeAt(r, c int) (anchor *MergeArea, covered bool) {
	for i, m := range ws.MergeCells {
		if !m.contains(r, c) {
			continue
		}
		if m.R == r && m.C == c {
			return &ws.MergeCells[i], false
		}
		return nil, true
	}
	return nil, false
}

func appendCell(util *xmlutil.Util, sb *strings.Builder, cell Cell, span *MergeArea) {
	sb.WriteString("<table:table-cell")
	if cell.Style != nil {
		util.Attr(sb, "table:style-name", cell.Style.Name())
	}
	if span != nil {
		util.IntAttr(sb, "table:number-columns-spanned", span.W)
		util.IntAttr(sb, "table:number-rows-spanned", span.H)
	}
	if cell.V == nil {
		sb.WriteString("/>")
		return
	}
	util.Attr(sb, "office:value-type", cell.ValueType)
	var text string
	switch v := cell.V.(type) {
	case string:
		text = v
	case bool:
		util.BoolAttr(sb, "office:boolean-value", v)
		text = strings.ToUpper(strconv.FormatBool(v))
	case time.Time:
		text = v.Format("2006-01-02T15:04:05")
		util.Attr(sb, "office:date-value", text)
	case time.Duration:
		util.Attr(sb, "office:time-value", isoDuration(v))
		text = clock(v)
	default:
		text = strconv.FormatFloat(floatOf(v), 'f', -1, 64)
		util.Attr(sb, "office:value", text)
	}
	sb.WriteString("><text:p>")
	sb.WriteString(util.EscapeContent(text))
	sb.WriteString("</text:p></table:table-cell>")
}

func floatOf(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case Percentage:
		return float64(x)
	case Currency:
		return float64(x)
	}
	return 0
}

// isoDuration formats d as an ISO 8601 duration, e.g. PT36H05M09S.
func isoDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign, d = "-", -d
	}
	h := int64(d / time.Hour)
	m := int64(d % time.Hour / time.Minute)
	s := int64(d % time.Minute / time.Second)
	return fmt.Sprintf("%sPT%02dH%02dM%02dS", sign, h, m, s)
}

func clock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign, d = "-", -d
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, int64(d/time.Hour), int64(d%time.Hour/time.Minute), int64(d%time.Minute/time.Second))
}
