package utils

import (
	"strings"
	"testing"
)

func TestAnalyzeCSVCommaDelimited(t *testing.T) {
	csv := "title,group_sku,price\nWidget,W-1,10.50\nGadget,G-1,5.25\n"

	result, err := AnalyzeCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	if result.Delimiter != ',' {
		t.Errorf("delimiter = %q, want ','", result.Delimiter)
	}
	if result.NumericSeparator != "." {
		t.Errorf("numeric separator = %q, want '.'", result.NumericSeparator)
	}
	if !result.HasHeader {
		t.Error("expected header detection")
	}
	if result.Columns != 3 {
		t.Errorf("columns = %d, want 3", result.Columns)
	}
}

func TestAnalyzeCSVSemicolonDelimited(t *testing.T) {
	csv := "title;group_sku;price\nWidget;W-1;10,50\nGadget;G-1;5,25\n"

	result, err := AnalyzeCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	if result.Delimiter != ';' {
		t.Errorf("delimiter = %q, want ';'", result.Delimiter)
	}
	if result.NumericSeparator != "," {
		t.Errorf("numeric separator = %q, want ','", result.NumericSeparator)
	}
}

func TestAnalyzeCSVEmpty(t *testing.T) {
	if _, err := AnalyzeCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestNormalizeNumericValue(t *testing.T) {
	tests := []struct {
		value     string
		separator string
		want      string
	}{
		{"10,50", ",", "10.50"},
		{"10.50", ".", "10.50"},
		{` "7,5" `, ",", "7.5"},
		{"", ",", ""},
	}

	for _, tt := range tests {
		if got := NormalizeNumericValue(tt.value, tt.separator); got != tt.want {
			t.Errorf("NormalizeNumericValue(%q, %q) = %q, want %q", tt.value, tt.separator, got, tt.want)
		}
	}
}

func TestParseCSVWithDetectedDelimiter(t *testing.T) {
	csv := "title;group_sku\nWidget;W-1\n"

	records, analysis, err := ParseCSVWithDetectedDelimiter(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSVWithDetectedDelimiter failed: %v", err)
	}
	if analysis.Delimiter != ';' {
		t.Errorf("delimiter = %q, want ';'", analysis.Delimiter)
	}
	if len(records) != 2 || records[1][0] != "Widget" {
		t.Errorf("unexpected records: %v", records)
	}
}
