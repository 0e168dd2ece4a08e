package dateformat

import (
	"fmt"
	"math"
	"time"
)

// maxSerial is one above the last valid 1900-system serial (9999-12-31).
const maxSerial = 2_958_466

// SerialToTime converts a spreadsheet date serial to a UTC time.
//
// In the 1900 system serial 1 is 1900-01-01 and serial 60 is the phantom
// 1900-02-29 inherited from Lotus 1-2-3, so serials from 61 on are shifted
// back one day.  In the 1904 system serial 0 is 1904-01-01 with no
// correction.  The fractional day is rounded to the nearest second; a
// rounding that reaches midnight rolls over to the next day.
func SerialToTime(serial float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("dateformat: invalid serial %v", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("dateformat: negative serial %v not supported", serial)
	}
	limit := float64(maxSerial)
	if date1904 {
		limit -= 1462
	}
	if serial > limit {
		return time.Time{}, fmt.Errorf("dateformat: serial %v exceeds maximum supported value %v", serial, limit)
	}

	fracSec, rollover := serialToFracSec(serial)
	days := int(serial) + rollover
	sec := time.Duration(fracSec) * time.Second
	if date1904 {
		return time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(days)*24*time.Hour + sec), nil
	}
	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	switch {
	case days == 0:
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(sec), nil
	case days >= 61:
		return base.Add(time.Duration(days-1)*24*time.Hour + sec), nil
	}
	return base.Add(time.Duration(days)*24*time.Hour + sec), nil
}

// serialToFracSec returns the whole seconds within the day of a serial's
// fractional part, and 1 when rounding reached the next midnight.
func serialToFracSec(serial float64) (fracSec int64, rollover int) {
	const roundEpsilon = 1e-9
	fracDay := (serial - math.Trunc(serial)) + roundEpsilon
	const nanosInADay = float64(24 * 60 * 60 * 1e9)
	durNanos := time.Duration(fracDay * nanosInADay)
	ns := int(durNanos % time.Second)
	secs := int64(durNanos / time.Second)
	if ns > 500_000_000 {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	return secs % 86400, int(secs / 86400)
}
