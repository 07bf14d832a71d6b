package services

import "testing"

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		expect string
	}{
		{"zero", 0, "₹0.00"},
		{"hundreds", 500, "₹500.00"},
		{"thousands", 4550, "₹4,550.00"},
		{"lakhs", 123456, "₹1,23,456.00"},
		{"crores", 12345678.90, "₹1,23,45,678.90"},
		{"decimals rounded", 99.999, "₹100.00"},
		{"negative", -4550, "-₹4,550.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatINR(tt.amount); got != tt.expect {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.expect)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name   string
		qty    float64
		expect string
	}{
		{"whole number", 100, "100"},
		{"fractional", 12.5, "12.50"},
		{"zero", 0, "0"},
		{"small fraction", 0.25, "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQty(tt.qty); got != tt.expect {
				t.Errorf("FormatQty(%v) = %q, want %q", tt.qty, got, tt.expect)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		expect string
	}{
		{"positive gets explicit sign", 25, "+25.0%"},
		{"negative", -20, "-20.0%"},
		{"zero", 0, "0.0%"},
		{"fractional", 12.34, "+12.3%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPercent(tt.pct); got != tt.expect {
				t.Errorf("FormatPercent(%v) = %q, want %q", tt.pct, got, tt.expect)
			}
		})
	}
}
