package services

import (
	"testing"
	"time"
)

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		expect string
	}{
		{"april_start", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), "26-27"},
		{"march_end", time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), "25-26"},
		{"january", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "25-26"},
		{"december", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "25-26"},
		{"year_2000", time.Date(2000, time.June, 1, 0, 0, 0, 0, time.UTC), "00-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FiscalYear(tt.date); got != tt.expect {
				t.Errorf("FiscalYear(%v) = %q, want %q", tt.date, got, tt.expect)
			}
		})
	}
}

func TestFormatPONumber(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		fy       string
		seq      int
		expected string
	}{
		{"first", "HV-22", "25-26", 1, "ST-PO-HV-22-25-26-001"},
		{"double digit", "HV-22", "25-26", 42, "ST-PO-HV-22-25-26-042"},
		{"triple digit", "HV-22", "25-26", 123, "ST-PO-HV-22-25-26-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPONumber(tt.ref, tt.fy, tt.seq); got != tt.expected {
				t.Errorf("formatPONumber(%q, %q, %d) = %q, want %q",
					tt.ref, tt.fy, tt.seq, got, tt.expected)
			}
		})
	}
}
