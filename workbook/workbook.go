// Package workbook assembles worksheets and their styles into an .ods file
// (a ZIP archive).
package workbook

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/TsubasaBE/go-ods/config"
	"github.com/TsubasaBE/go-ods/internal/logging"
	"github.com/TsubasaBE/go-ods/internal/manifest"
	"github.com/TsubasaBE/go-ods/internal/xmlutil"
	"github.com/TsubasaBE/go-ods/numfmt"
	"github.com/TsubasaBE/go-ods/stylecontainer"
	"github.com/TsubasaBE/go-ods/styles"
	"github.com/TsubasaBE/go-ods/worksheet"
)

// Part names inside the package.
const (
	partMimetype = "mimetype"
	partManifest = "META-INF/manifest.xml"
	partContent  = "content.xml"
	partStyles   = "styles.xml"
)

const officeNamespaces = ` xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"` +
	` xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"` +
	` xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"` +
	` xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"` +
	` xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"` +
	` xmlns:number="urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0"` +
	` office:version="1.2"`

// Option configures a Workbook.
type Option func(*Workbook)

// WithConfig replaces config.Default().
func WithConfig(cfg config.Config) Option {
	return func(wb *Workbook) { wb.cfg = cfg }
}

// WithLogger sets the logger.  Without it the workbook builds one from the
// config's [log] table.
func WithLogger(l zerolog.Logger) Option {
	return func(wb *Workbook) {
		wb.log = l
		wb.hasLog = true
	}
}

// Workbook is an .ods document under construction.
type Workbook struct {
	cfg      config.Config
	log      zerolog.Logger
	hasLog   bool
	util     *xmlutil.Util
	styles   *stylecontainer.Container
	defaults numfmt.Defaults
	sheets   []*worksheet.Worksheet
	page     *styles.PageStyle
	date1904 bool
}

// New returns an empty workbook.  The default cell style and the default
// page style are registered before New returns.
func New(opts ...Option) (*Workbook, error) {
	wb := &Workbook{cfg: config.Default(), util: xmlutil.New()}
	for _, fn := range opts {
		fn(wb)
	}
	if err := config.Validate(wb.cfg); err != nil {
		return nil, err
	}
	if !wb.hasLog {
		wb.log = logging.New(wb.cfg.Log.LoggingOptions())
	}
	wb.log = logging.Component(wb.log, "workbook")

	doc := wb.cfg.Document
	var fmtOpts []numfmt.Option
	if doc.Locale != "" {
		fmtOpts = append(fmtOpts, numfmt.WithLocale(doc.LocaleParts()))
	}
	defaults, err := numfmt.NewDefaults(doc.Formats(), fmtOpts...)
	if err != nil {
		return nil, fmt.Errorf("workbook: default formats: %w", err)
	}
	wb.defaults = defaults

	scOpts := []stylecontainer.Option{stylecontainer.WithLogger(wb.log)}
	if doc.DebugStyles {
		scOpts = append(scOpts, stylecontainer.WithDebug())
	}
	wb.styles = stylecontainer.New(scOpts...)
	if err := wb.styles.AddStyleToStylesCommonStyles(styles.DefaultCellStyle()); err != nil {
		return nil, fmt.Errorf("workbook: default cell style: %w", err)
	}
	page, err := styles.NewPageStyle(styles.PageStyleConfig{Name: doc.DefaultPageStyle})
	if err != nil {
		return nil, fmt.Errorf("workbook: default page style: %w", err)
	}
	if err := wb.styles.AddPageStyle(page); err != nil {
		return nil, fmt.Errorf("workbook: default page style: %w", err)
	}
	wb.page = page
	return wb, nil
}

// SetDate1904 makes sheets added afterwards read date serials in the 1904
// date system.
func (wb *Workbook) SetDate1904(v bool) { wb.date1904 = v }

// Styles returns the workbook's style container.  Styles registered here
// are written with the document.
func (wb *Workbook) Styles() *stylecontainer.Container { return wb.styles }

// Defaults returns the data styles applied to cells set without one.
func (wb *Workbook) Defaults() numfmt.Defaults { return wb.defaults }

// PageStyle returns the default page style.
func (wb *Workbook) PageStyle() *styles.PageStyle { return wb.page }

// AddSheet appends a new, empty worksheet.  Sheet names are unique without
// regard to case.
func (wb *Workbook) AddSheet(name string) (*worksheet.Worksheet, error) {
	if _, err := wb.SheetByName(name); err == nil {
		return nil, fmt.Errorf("workbook: sheet %q already exists", name)
	}
	var opts []worksheet.Option
	if wb.date1904 {
		opts = append(opts, worksheet.WithDate1904())
	}
	ws, err := worksheet.New(name, wb.styles, wb.defaults, opts...)
	if err != nil {
		return nil, err
	}
	wb.sheets = append(wb.sheets, ws)
	wb.log.Debug().Str("sheet", name).Int("index", len(wb.sheets)).Msg("sheet added")
	return ws, nil
}

// Sheets returns the display names of all worksheets in order.
func (wb *Workbook) Sheets() []string {
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the worksheet at the given 1-based index.
// Index 1 refers to the first sheet. An out-of-range index returns a non-nil
// error describing the valid range.
func (wb *Workbook) Sheet(idx int) (*worksheet.Worksheet, error) {
	if idx < 1 || idx > len(wb.sheets) {
		return nil, fmt.Errorf("workbook: sheet index %d out of range [1, %d]", idx, len(wb.sheets))
	}
	return wb.sheets[idx-1], nil
}

// SheetByName returns the worksheet with the given name (case-insensitive).
// It returns a non-nil error if no sheet with that name exists.
func (wb *Workbook) SheetByName(name string) (*worksheet.Worksheet, error) {
	for _, s := range wb.sheets {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("workbook: sheet %q not found", name)
}

// Save writes the document to the named file.
func (wb *Workbook) Save(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("workbook: create %q: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("workbook: close %q: %w", name, cerr)
		}
	}()
	return wb.Write(f)
}

// Write freezes the style container and writes the document to w.  The
// workbook accepts no new styles afterwards; cells that reuse styles
// already in use can still be set and the document written again.
func (wb *Workbook) Write(w io.Writer) error {
	if len(wb.sheets) == 0 {
		return fmt.Errorf("workbook: no sheets")
	}
	wb.styles.Freeze()
	hasHeader, hasFooter := wb.styles.HasFooterHeader()
	wb.log.Debug().Bool("header", hasHeader).Bool("footer", hasFooter).Msg("page regions")

	zw := zip.NewWriter(w)
	// The mimetype entry comes first and uncompressed so the file type can
	// be sniffed at a fixed offset.
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: partMimetype, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("workbook: %s: %w", partMimetype, err)
	}
	if _, err := io.WriteString(mw, manifest.MediaTypeSpreadsheet); err != nil {
		return fmt.Errorf("workbook: %s: %w", partMimetype, err)
	}

	data, err := manifest.New(partContent, partStyles).Marshal()
	if err != nil {
		return err
	}
	if err := writePart(zw, partManifest, func(pw io.Writer) error {
		_, err := pw.Write(data)
		return err
	}); err != nil {
		return err
	}
	if err := writePart(zw, partStyles, wb.writeStyles); err != nil {
		return err
	}
	if err := writePart(zw, partContent, wb.writeContent); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("workbook: close archive: %w", err)
	}
	wb.log.Info().Int("sheets", len(wb.sheets)).Msg("document written")
	return nil
}

func writePart(zw *zip.Writer, name string, fn func(io.Writer) error) error {
	pw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("workbook: %s: %w", name, err)
	}
	if err := fn(pw); err != nil {
		return fmt.Errorf("workbook: %s: %w", name, err)
	}
	return nil
}

// writeStyles writes styles.xml: data styles and common styles in
// office:styles, page layouts in office:automatic-styles and master pages
// in office:master-styles.
func (wb *Workbook) writeStyles(w io.Writer) error {
	sc := wb.styles
	steps := []func(io.Writer) error{
		text(xmlHeader + `<office:document-styles` + officeNamespaces + `><office:styles>`),
		func(w io.Writer) error { return sc.WriteDataStyles(wb.util, w) },
		func(w io.Writer) error { return sc.WriteStylesCommonStyles(wb.util, w) },
		text(`</office:styles><office:automatic-styles>`),
		func(w io.Writer) error { return sc.WriteStylesAutomaticStyles(wb.util, w) },
		func(w io.Writer) error { return sc.WriteMasterPageStylesToAutomaticStyles(wb.util, w) },
		text(`</office:automatic-styles><office:master-styles>`),
		func(w io.Writer) error { return sc.WriteMasterPageStylesToMasterStyles(wb.util, w) },
		text(`</office:master-styles></office:document-styles>`),
	}
	return run(w, steps)
}

// writeContent writes content.xml: data styles and content automatic styles
// followed by one table:table per sheet.
func (wb *Workbook) writeContent(w io.Writer) error {
	sc := wb.styles
	steps := []func(io.Writer) error{
		text(xmlHeader + `<office:document-content` + officeNamespaces + `><office:automatic-styles>`),
		func(w io.Writer) error { return sc.WriteDataStyles(wb.util, w) },
		func(w io.Writer) error { return sc.WriteContentAutomaticStyles(wb.util, w) },
		text(`</office:automatic-styles><office:body><office:spreadsheet>`),
	}
	for _, ws := range wb.sheets {
		steps = append(steps, func(w io.Writer) error { return ws.AppendXML(wb.util, w) })
	}
	steps = append(steps, text(`</office:spreadsheet></office:body></office:document-content>`))
	return run(w, steps)
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

func text(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func run(w io.Writer, steps []func(io.Writer) error) error {
	for _, step := range steps {
		if err := step(w); err != nil {
			return err
		}
	}
	return nil
}
