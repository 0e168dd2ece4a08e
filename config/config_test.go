package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TsubasaBE/go-ods/internal/logging"
	"github.com/TsubasaBE/go-ods/numfmt"
	"github.com/TsubasaBE/go-ods/styles"
)

func TestParseEmptyGivesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestParseOverrides(t *testing.T) {
	data := []byte(`
[document]
debug_styles = true
locale = "de-DE"
float_format = "#,##0.000"
date_format = "dd.mm.yyyy"

[log]
level = "debug"
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Document.DebugStyles || cfg.Document.FloatFormat != "#,##0.000" || cfg.Document.DateFormat != "dd.mm.yyyy" {
		t.Fatalf("document section not applied: %+v", cfg.Document)
	}
	if cfg.Document.TimeFormat != Default().Document.TimeFormat {
		t.Fatalf("unset time_format lost its default: %q", cfg.Document.TimeFormat)
	}
	if lang, country := cfg.Document.LocaleParts(); lang != "de" || country != "DE" {
		t.Fatalf("LocaleParts = %s/%s", lang, country)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
}

func TestParseAcceptsGeneralFloat(t *testing.T) {
	cfg, err := Parse([]byte("[document]\nfloat_format = \"General\""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Document.FloatFormat != "General" {
		t.Fatalf("float_format = %q", cfg.Document.FloatFormat)
	}
	defs, err := numfmt.NewDefaults(cfg.Document.Formats())
	if err != nil {
		t.Fatalf("NewDefaults: %v", err)
	}
	if got := defs.Float.ValueType(); got != styles.ValueFloat {
		t.Fatalf("General formats %s values", got)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad toml", `[document`, "parse failed"},
		{"empty page style", "[document]\ndefault_page_style = \" \"", "default_page_style"},
		{"bad locale", "[document]\nlocale = \"german\"", "locale"},
		{"numeric date", "[document]\ndate_format = \"0.00\"", "date_format"},
		{"numeric time", "[document]\ntime_format = \"#,##0\"", "time_format"},
		{"date as float", "[document]\nfloat_format = \"yyyy\"", "float-data"},
		{"text as percentage", "[document]\npercentage_format = \"@\"", "formats invalid"},
		{"log level", "[log]\nlevel = \"chatty\"", "log level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestEnvOverridesLogLevel(t *testing.T) {
	t.Setenv(logging.EnvLogLevel, "warn")
	cfg, err := Parse([]byte("[log]\nlevel = \"debug\""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("log level = %q, want warn from %s", cfg.Log.Level, logging.EnvLogLevel)
	}
}

func TestTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goods.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("WriteTemplate overwrote an existing file")
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(template): %v", err)
	}
	if cfg.Document.CurrencyFormat != `#,##0.00\ [$€-407]` {
		t.Fatalf("currency_format = %q", cfg.Document.CurrencyFormat)
	}
	if !cfg.Log.LoggingOptions().Console {
		t.Fatalf("template enables the console logger")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
