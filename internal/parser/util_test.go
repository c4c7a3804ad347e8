package parser

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"25.99", 25.99, false},
		{"1,234.56", 1234.56, false},
		{"₹1,234.56", 1234.56, false},
		{"Rs.500", 500, false},
		{"£25.99", 25.99, false},
		{"-25.99", -25.99, false},
		{"1,234,567.89", 1234567.89, false},
		{"120.00Cr", 120, false},
		{"0.00", 0.00, false},
		{"", 0, false},
		{"-", 0, false},
		{" 25.99 ", 25.99, false},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestParseCellDate(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"15/01/2024", "2024-01-15", true},
		{"15-01-2024", "2024-01-15", true},
		{"5/3/24", "2024-03-05", true},
		{"15 Jan 2024", "2024-01-15", true},
		{"1 September 2023", "2023-09-01", true},
		{"2024-03-05", "2024-03-05", true},
		{"31/02/2024", "", false},
		{"01/13/2024", "", false},
		{"01/01/1899", "", false},
		{"not a date", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseCellDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsAmount(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"250.00", true},
		{"1,000", true},
		{"", false},
		{"UPI DEBIT", false},
		{"Balance", false},
	}

	for _, tt := range tests {
		if got := isAmount(tt.input); got != tt.want {
			t.Errorf("isAmount(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestContainsAny(t *testing.T) {
	if !containsAny("Indian Bank Statement", []string{"indian bank"}) {
		t.Error("expected case-insensitive match")
	}
	if containsAny("Statement", []string{"", "HDFC"}) {
		t.Error("expected no match")
	}
}
