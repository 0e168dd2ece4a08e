// Package ods provides a pure-Go writer for OpenDocument spreadsheet (.ods)
// files.  No cgo is required.
//
// # Quick start
//
//	wb, err := ods.Create()
//	if err != nil { ... }
//
//	sheet, err := wb.AddSheet("Sheet1")
//	if err != nil { ... }
//	_ = sheet.SetString(0, 0, "total")
//	_ = sheet.SetFloat(0, 1, 42)
//
//	if err := wb.Save("Book1.ods"); err != nil { ... }
//
// # Styles
//
// Every cell is written with an anonymous cell style named "base@@data",
// which applies a data style (the number format) on top of a visible base
// cell style.  [stylecontainer.Container.AddChildCellStyle] builds and
// deduplicates these composites; the worksheet setters call it for you.
// Styles of your own are registered through [workbook.Workbook.Styles]
// before the first Write, after which the container is frozen.
//
// # Dates
//
// Cells take [time.Time] values directly.  Spreadsheet date serials coming
// from other sources can be converted with [ConvertDate] or, for the 1904
// date system, [ConvertDateEx].
//
// # Format detection
//
// [IsDateFormat] checks whether a number-format ID (and optional custom
// format string) represents a date, datetime or time format.
package ods

import (
	"time"

	"github.com/TsubasaBE/go-ods/internal/dateformat"
	"github.com/TsubasaBE/go-ods/workbook"
)

// Version is the current version of the go-ods library.
const Version = "0.1.0"

// Create returns an empty workbook.  Without options it uses
// config.Default() and logs to stderr at info level.
func Create(opts ...workbook.Option) (*workbook.Workbook, error) {
	return workbook.New(opts...)
}

// ConvertDate converts a 1900-system date serial number to a [time.Time]
// value.
//
// Serial 60 is the phantom 1900-02-29 that spreadsheets inherited from
// Lotus 1-2-3, so serials from 61 on are shifted back one day.  The
// fractional part is rounded to the nearest second.
func ConvertDate(date float64) (time.Time, error) {
	return dateformat.SerialToTime(date, false)
}

// ConvertDateEx converts a date serial number to a [time.Time] value in the
// 1900 or, when date1904 is true, the 1904 date system.
func ConvertDateEx(date float64, date1904 bool) (time.Time, error) {
	return dateformat.SerialToTime(date, date1904)
}

// IsDateFormat reports whether a number-format ID (and optional custom format
// string) represents a date, datetime or time format.
//
// For built-in formats (id < 164) formatStr is ignored.  For custom formats
// the unquoted, unbracketed part of formatStr is scanned for date and time
// tokens.
func IsDateFormat(id int, formatStr string) bool {
	if dateformat.IsBuiltInDateID(id) {
		return true
	}
	if id < 164 {
		return false
	}
	return dateformat.ScanFormatStr(formatStr)
}
