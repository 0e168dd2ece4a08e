package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes a commented starter config to path.  An existing
// file is kept unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const template = `[document]
# report rejected style registrations at debug level
debug_styles = false
default_page_style = "Mpm1"
locale = "en-US"
float_format = "0.00"
percentage_format = "0.00%"
currency_format = "#,##0.00\\ [$€-407]"
date_format = "yyyy-mm-dd"
time_format = "hh:mm:ss"

[log]
level = "info"
console = true
`
