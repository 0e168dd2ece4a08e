package workbook

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/TsubasaBE/go-ods/config"
	"github.com/TsubasaBE/go-ods/internal/manifest"
	"github.com/TsubasaBE/go-ods/styles"
)

func newWorkbook(t *testing.T, opts ...Option) *Workbook {
	t.Helper()
	wb, err := New(append([]Option{WithLogger(zerolog.Nop())}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return wb
}

// readParts returns the archive's entries in order and their contents.
func readParts(t *testing.T, data []byte) ([]*zip.File, map[string]string) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(b)
	}
	return zr.File, parts
}

func TestWritePackageLayout(t *testing.T) {
	wb := newWorkbook(t)
	ws, err := wb.AddSheet("Data")
	if err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	if err := ws.SetFloat(0, 1, 42); err != nil {
		t.Fatalf("SetFloat: %v", err)
	}
	if err := ws.SetString(0, 0, "total"); err != nil {
		t.Fatalf("SetString: %v", err)
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	files, parts := readParts(t, buf.Bytes())

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	if want := []string{"mimetype", "META-INF/manifest.xml", "styles.xml", "content.xml"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	if files[0].Method != zip.Store {
		t.Fatalf("mimetype is compressed")
	}
	if parts["mimetype"] != manifest.MediaTypeSpreadsheet {
		t.Fatalf("mimetype = %q", parts["mimetype"])
	}

	m, err := manifest.Parse([]byte(parts["META-INF/manifest.xml"]))
	if err != nil {
		t.Fatalf("manifest.Parse: %v", err)
	}
	if m["/"] != manifest.MediaTypeSpreadsheet || m["content.xml"] != "text/xml" || m["styles.xml"] != "text/xml" {
		t.Fatalf("manifest = %v", m)
	}

	content := parts["content.xml"]
	for _, want := range []string{
		`<office:automatic-styles><number:number-style style:name="float-data"`,
		`<style:style style:name="Default@@float-data" style:family="table-cell" style:parent-style-name="Default" style:data-style-name="float-data"`,
		`<office:spreadsheet><table:table table:name="Data">`,
		`office:value-type="float" office:value="42"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("content.xml missing %s:\n%s", want, content)
		}
	}

	st := parts["styles.xml"]
	for _, want := range []string{
		`<office:styles><number:number-style style:name="float-data"`,
		`<style:style style:name="Default" style:family="table-cell"`,
		`<office:automatic-styles><style:page-layout style:name="Mpm1"`,
		`<office:master-styles><style:master-page style:name="Mpm1" style:page-layout-name="Mpm1"`,
	} {
		if !strings.Contains(st, want) {
			t.Errorf("styles.xml missing %s:\n%s", want, st)
		}
	}
	if strings.Contains(st, "Default@@") {
		t.Errorf("styles.xml holds a content automatic style")
	}
}

func TestWriteFreezesStyles(t *testing.T) {
	wb := newWorkbook(t)
	ws, _ := wb.AddSheet("A")
	_ = ws.SetFloat(0, 0, 1)
	if err := wb.Write(io.Discard); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !wb.Styles().Frozen() {
		t.Fatalf("styles not frozen after Write")
	}
	if err := ws.SetFloat(1, 0, 2); err != nil {
		t.Fatalf("reusing a written style: %v", err)
	}
	if err := ws.SetString(1, 1, "new"); err == nil {
		t.Fatalf("new style after Write succeeded")
	}
	if err := wb.Write(io.Discard); err != nil {
		t.Fatalf("second Write: %v", err)
	}
}

func TestWriteWithoutSheetsFails(t *testing.T) {
	wb := newWorkbook(t)
	if err := wb.Write(io.Discard); err == nil {
		t.Fatalf("expected an error for a workbook without sheets")
	}
}

func TestSheetLookup(t *testing.T) {
	wb := newWorkbook(t)
	for _, name := range []string{"One", "Two"} {
		if _, err := wb.AddSheet(name); err != nil {
			t.Fatalf("AddSheet(%s): %v", name, err)
		}
	}
	if _, err := wb.AddSheet("one"); err == nil {
		t.Fatalf("duplicate sheet name accepted")
	}
	if got := wb.Sheets(); !reflect.DeepEqual(got, []string{"One", "Two"}) {
		t.Fatalf("Sheets = %v", got)
	}
	ws, err := wb.Sheet(2)
	if err != nil || ws.Name != "Two" {
		t.Fatalf("Sheet(2) = %v, %v", ws, err)
	}
	for _, idx := range []int{0, 3} {
		if _, err := wb.Sheet(idx); err == nil {
			t.Errorf("Sheet(%d) succeeded", idx)
		}
	}
	ws, err = wb.SheetByName("TWO")
	if err != nil || ws.Name != "Two" {
		t.Fatalf("SheetByName = %v, %v", ws, err)
	}
	if _, err := wb.SheetByName("three"); err == nil {
		t.Fatalf("SheetByName found a missing sheet")
	}
}

func TestConfigDrivesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[document]
locale = "de-DE"
default_page_style = "Report"
float_format = "#,##0.000"
`))
	if err != nil {
		t.Fatalf("config.Parse: %v", err)
	}
	wb := newWorkbook(t, WithConfig(cfg))
	if got := wb.Defaults().Float.Code(); got != "#,##0.000" {
		t.Fatalf("float code = %q", got)
	}
	if lang, country := wb.Defaults().Float.Locale(); lang != "de" || country != "DE" {
		t.Fatalf("float locale = %s-%s", lang, country)
	}
	if wb.PageStyle().Name() != "Report" {
		t.Fatalf("page style = %q", wb.PageStyle().Name())
	}
	masters := wb.Styles().MasterPageStyles()
	if len(masters) != 1 || masters[0].Name() != "Report" {
		t.Fatalf("master pages = %v", masters)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Document.DefaultPageStyle = ""
	if _, err := New(WithConfig(cfg), WithLogger(zerolog.Nop())); err == nil {
		t.Fatalf("expected an error for an invalid config")
	}
}

func TestHeaderFooterPageStyle(t *testing.T) {
	wb := newWorkbook(t)
	ps, err := styles.NewPageStyle(styles.PageStyleConfig{
		Name:   "WithHeader",
		Header: &styles.Region{Text: "Report"},
	})
	if err != nil {
		t.Fatalf("NewPageStyle: %v", err)
	}
	if err := wb.Styles().AddPageStyle(ps); err != nil {
		t.Fatalf("AddPageStyle: %v", err)
	}
	if h, f := wb.Styles().HasFooterHeader(); !h || f {
		t.Fatalf("HasFooterHeader = %t, %t", h, f)
	}
}

func TestSave(t *testing.T) {
	wb := newWorkbook(t)
	ws, _ := wb.AddSheet("S")
	_ = ws.SetBool(0, 0, false)
	path := filepath.Join(t.TempDir(), "out.ods")
	if err := wb.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	_, parts := readParts(t, data)
	if !strings.Contains(parts["content.xml"], `office:boolean-value="false"`) {
		t.Fatalf("saved content.xml lacks the cell:\n%s", parts["content.xml"])
	}
}
