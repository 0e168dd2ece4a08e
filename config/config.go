// Package config loads go-ods document settings from TOML.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/TsubasaBE/go-ods/internal/dateformat"
	"github.com/TsubasaBE/go-ods/internal/logging"
	"github.com/TsubasaBE/go-ods/numfmt"
	"github.com/TsubasaBE/go-ods/styles"
)

// Config is the root of a go-ods TOML file.
type Config struct {
	Document DocumentConfig `toml:"document"`
	Log      LogConfig      `toml:"log"`
}

// DocumentConfig holds the per-document style settings.
type DocumentConfig struct {
	// DebugStyles reports every rejected style registration at debug level.
	DebugStyles      bool   `toml:"debug_styles"`
	DefaultPageStyle string `toml:"default_page_style"`
	// Locale is "ll" or "ll-CC", e.g. "de-DE".
	Locale           string `toml:"locale"`
	FloatFormat      string `toml:"float_format"`
	PercentageFormat string `toml:"percentage_format"`
	CurrencyFormat   string `toml:"currency_format"`
	DateFormat       string `toml:"date_format"`
	TimeFormat       string `toml:"time_format"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	f := numfmt.DefaultFormats()
	return Config{
		Document: DocumentConfig{
			DefaultPageStyle: styles.DefaultPageStyleName,
			FloatFormat:      f.Float,
			PercentageFormat: f.Percentage,
			CurrencyFormat:   f.Currency,
			DateFormat:       f.Date,
			TimeFormat:       f.Time,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads, defaults and validates the TOML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of Default, applies environment overrides
// and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	applyEnv(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if lvl := strings.TrimSpace(os.Getenv(logging.EnvLogLevel)); lvl != "" {
		cfg.Log.Level = lvl
	}
}

var localeRE = regexp.MustCompile(`^[a-z]{2,3}(-[A-Z]{2})?$`)

// Validate reports the first invalid setting.
func Validate(cfg Config) error {
	doc := cfg.Document
	if strings.TrimSpace(doc.DefaultPageStyle) == "" {
		return fmt.Errorf("document config missing default_page_style")
	}
	if doc.Locale != "" && !localeRE.MatchString(doc.Locale) {
		return fmt.Errorf("document locale %q is not ll or ll-CC", doc.Locale)
	}
	if doc.DateFormat != "" && !dateformat.ScanFormatStr(doc.DateFormat) {
		return fmt.Errorf("date_format %q has no date token", doc.DateFormat)
	}
	if doc.TimeFormat != "" && !dateformat.ScanFormatStr(doc.TimeFormat) {
		return fmt.Errorf("time_format %q has no time token", doc.TimeFormat)
	}
	if _, err := numfmt.NewDefaults(doc.Formats()); err != nil {
		return fmt.Errorf("document formats invalid: %w", err)
	}
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("log level %q unknown", cfg.Log.Level)
	}
	return nil
}

// Formats returns the configured default format codes.
func (d DocumentConfig) Formats() numfmt.Formats {
	return numfmt.Formats{
		Float:      d.FloatFormat,
		Percentage: d.PercentageFormat,
		Currency:   d.CurrencyFormat,
		Date:       d.DateFormat,
		Time:       d.TimeFormat,
	}
}

// LocaleParts splits Locale into its language and country codes.
func (d DocumentConfig) LocaleParts() (language, country string) {
	language, country, _ = strings.Cut(d.Locale, "-")
	return language, country
}

// LoggingOptions converts the log section for logging.New.
func (l LogConfig) LoggingOptions() logging.Options {
	return logging.Options{Level: l.Level, Console: l.Console}
}
