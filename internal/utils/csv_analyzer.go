package utils

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// CSVAnalysisResult holds the detected shape of an uploaded CSV
type CSVAnalysisResult struct {
	Delimiter           rune    `json:"delimiter"`         // ',' or ';'
	NumericSeparator    string  `json:"numeric_separator"` // '.' or ','
	HasHeader           bool    `json:"has_header"`
	Columns             int     `json:"columns"`
	SampleRows          int     `json:"sample_rows"`
	DelimiterConfidence float64 `json:"delimiter_confidence"` // 0.0 to 1.0
}

// AnalyzeCSV inspects a CSV stream to detect the delimiter and numeric format
func AnalyzeCSV(reader io.Reader) (*CSVAnalysisResult, error) {
	scanner := bufio.NewScanner(reader)
	var lines []string
	maxLines := 10

	for i := 0; i < maxLines && scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	delimiter, confidence := detectDelimiter(lines)

	// Semicolon-delimited files typically use comma decimals
	numericSeparator := "."
	if delimiter == ';' {
		numericSeparator = ","
	}

	columns := countColumns(lines[0], delimiter)

	result := &CSVAnalysisResult{
		Delimiter:           delimiter,
		NumericSeparator:    numericSeparator,
		HasHeader:           hasHeader(lines, delimiter),
		Columns:             columns,
		SampleRows:          len(lines),
		DelimiterConfidence: confidence,
	}

	return result, nil
}

// detectDelimiter picks the most likely delimiter from the sample lines
func detectDelimiter(lines []string) (rune, float64) {
	if len(lines) == 0 {
		return ',', 0.0
	}

	delimiters := []rune{',', ';'}
	scores := make(map[rune]float64)

	for _, delimiter := range delimiters {
		scores[delimiter] = analyzeDelimiterConsistency(lines, delimiter)
	}

	bestDelimiter := ','
	bestScore := scores[',']

	if scores[';'] > bestScore {
		bestDelimiter = ';'
		bestScore = scores[';']
	}

	return bestDelimiter, bestScore
}

// analyzeDelimiterConsistency scores how consistently a delimiter splits the lines
func analyzeDelimiterConsistency(lines []string, delimiter rune) float64 {
	if len(lines) < 2 {
		return 0.0
	}

	delimiterStr := string(delimiter)
	firstLineColumns := len(strings.Split(lines[0], delimiterStr))

	if firstLineColumns < 2 {
		return 0.0
	}

	consistentLines := 0
	totalLines := len(lines)

	for _, line := range lines {
		columns := len(strings.Split(line, delimiterStr))
		// Tolerate one column of variance for empty trailing fields
		if columns >= firstLineColumns-1 && columns <= firstLineColumns+1 {
			consistentLines++
		}
	}

	consistency := float64(consistentLines) / float64(totalLines)

	// Favor delimiters that produce more columns
	columnBonus := float64(firstLineColumns) * 0.1
	if columnBonus > 0.3 {
		columnBonus = 0.3
	}

	return consistency + columnBonus
}

func countColumns(line string, delimiter rune) int {
	return len(strings.Split(line, string(delimiter)))
}

// hasHeader guesses whether the first line is a header row
func hasHeader(lines []string, delimiter rune) bool {
	if len(lines) < 2 {
		return false
	}

	delimiterStr := string(delimiter)
	firstLine := strings.Split(lines[0], delimiterStr)

	headerWords := []string{
		"title", "name", "price", "msrp", "description", "sku", "group_sku",
		"sub_sku", "code", "brand", "stock", "quantity", "length", "width",
		"height", "volume", "weight", "features",
	}

	headerCount := 0
	numericPattern := regexp.MustCompile(`^\d+([.,]\d+)*$`)

	for _, field := range firstLine {
		field = strings.ToLower(strings.TrimSpace(field))
		field = strings.Trim(field, `"'`)

		for _, headerWord := range headerWords {
			if strings.Contains(field, headerWord) {
				headerCount++
				break
			}
		}

		// Numeric fields make a header row less likely
		if numericPattern.MatchString(field) {
			headerCount--
		}
	}

	return float64(headerCount)/float64(len(firstLine)) > 0.3
}

// NormalizeNumericValue converts a detected comma decimal to the standard form
func NormalizeNumericValue(value string, numericSeparator string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)

	if value == "" {
		return value
	}

	if numericSeparator == "," {
		// "10,50" -> "10.50"
		value = strings.ReplaceAll(value, ",", ".")
	}

	return value
}

// ParseCSVWithDetectedDelimiter analyzes and parses a CSV in one pass
func ParseCSVWithDetectedDelimiter(reader io.Reader) ([][]string, *CSVAnalysisResult, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read content: %w", err)
	}

	contentReader := strings.NewReader(string(content))
	analysis, err := AnalyzeCSV(contentReader)
	if err != nil {
		return nil, nil, fmt.Errorf("analysis failed: %w", err)
	}

	contentReader = strings.NewReader(string(content))
	csvReader := csv.NewReader(contentReader)
	csvReader.Comma = analysis.Delimiter
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, analysis, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return records, analysis, nil
}
