package dateformat

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestIsBuiltInDateID(t *testing.T) {
	for _, id := range []int{14, 18, 22, 27, 36, 45, 47, 50, 58} {
		if !IsBuiltInDateID(id) {
			t.Errorf("IsBuiltInDateID(%d) = false, want true", id)
		}
	}
	for _, id := range []int{0, 2, 13, 23, 37, 44, 48, 59, 164} {
		if IsBuiltInDateID(id) {
			t.Errorf("IsBuiltInDateID(%d) = true, want false", id)
		}
	}
}

func TestScanFormatStr(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-mm-dd", true},
		{"hh:mm", true},
		{"0.00", false},
		{"0.00E+00", false},
		{`"day"0`, false},
		{`[Red]0`, false},
		{`\d0`, false},
		{"e", true},
	}
	for _, tc := range tests {
		if got := ScanFormatStr(tc.code); got != tc.want {
			t.Errorf("ScanFormatStr(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestMinuteTokens(t *testing.T) {
	tests := []struct {
		seq  []string
		want []bool
	}{
		{[]string{"YYYY", "MM", "DD"}, []bool{false, false, false}},
		{[]string{"HH", "MM"}, []bool{false, true}},
		{[]string{"MM", "SS"}, []bool{true, false}},
		{[]string{"M", "D", "YY", "H", "MM"}, []bool{false, false, false, false, true}},
	}
	for _, tc := range tests {
		if got := MinuteTokens(tc.seq); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("MinuteTokens(%v) = %v, want %v", tc.seq, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		seq  []string
		want Class
	}{
		{nil, None},
		{[]string{"YYYY", "MM", "DD"}, Date},
		{[]string{"HH", "MM", "SS"}, Time},
		{[]string{"MM", "SS"}, Time},
		{[]string{"H", "MM", "AM/PM"}, Time},
		{[]string{"M", "D", "YY", "HH", "MM"}, DateTime},
		{[]string{"MMM"}, Date},
	}
	for _, tc := range tests {
		if got := Classify(tc.seq); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.seq, got, tc.want)
		}
	}
}

func TestSerialToTime(t *testing.T) {
	tests := []struct {
		serial   float64
		date1904 bool
		want     time.Time
	}{
		{0, false, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
		{1, false, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
		{59, false, time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC)},
		{61, false, time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)},
		{45658.5, false, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
		{0, true, time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)},
		{0.99999999999, false, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := SerialToTime(tc.serial, tc.date1904)
		if err != nil {
			t.Fatalf("SerialToTime(%v, %v): %v", tc.serial, tc.date1904, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("SerialToTime(%v, %v) = %v, want %v", tc.serial, tc.date1904, got, tc.want)
		}
	}
}

func TestSerialToTimeRejects(t *testing.T) {
	for _, serial := range []float64{-1, math.NaN(), math.Inf(1), 3e6} {
		if _, err := SerialToTime(serial, false); err == nil {
			t.Errorf("SerialToTime(%v) succeeded, want error", serial)
		}
	}
}
