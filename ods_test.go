package ods_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"

	ods "github.com/TsubasaBE/go-ods"
	"github.com/TsubasaBE/go-ods/workbook"
)

func TestConvertDate(t *testing.T) {
	tests := []struct {
		serial float64
		want   time.Time
	}{
		{1, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
		{59, time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC)},
		{61, time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)},
		{45658.5, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := ods.ConvertDate(tc.serial)
		if err != nil {
			t.Fatalf("ConvertDate(%v): %v", tc.serial, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("ConvertDate(%v) = %v, want %v", tc.serial, got, tc.want)
		}
	}
	if _, err := ods.ConvertDate(-1); err == nil {
		t.Errorf("ConvertDate(-1) succeeded")
	}
}

func TestConvertDateEx1904(t *testing.T) {
	got, err := ods.ConvertDateEx(1, true)
	if err != nil {
		t.Fatalf("ConvertDateEx: %v", err)
	}
	if want := time.Date(1904, 1, 2, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("ConvertDateEx(1, true) = %v, want %v", got, want)
	}
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		id   int
		code string
		want bool
	}{
		{14, "", true},
		{20, "", true},
		{2, "", false},
		{49, "", false},
		{164, "yyyy-mm-dd", true},
		{164, "0.00", false},
		{164, `"day"0`, false},
	}
	for _, tc := range tests {
		if got := ods.IsDateFormat(tc.id, tc.code); got != tc.want {
			t.Errorf("IsDateFormat(%d, %q) = %t, want %t", tc.id, tc.code, got, tc.want)
		}
	}
}

func TestCreate(t *testing.T) {
	wb, err := ods.Create(workbook.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sheet, err := wb.AddSheet("Sheet1")
	if err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	if err := sheet.SetString(0, 0, "hello"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Fatalf("output is not a ZIP archive")
	}
}
