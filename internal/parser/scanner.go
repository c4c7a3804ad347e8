package parser

import (
	"strings"
)

// Header markers of the statement's transaction table. Both must appear on
// the same line for it to count as the header.
var headerMarkers = []string{"Credit Amount", "Debit Amount"}

// SplitLines breaks raw text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// TransactionLines returns the lines that follow the table header. When no
// header is present the whole text is returned; headerFound tells which.
func TransactionLines(text string) (lines []string, headerFound bool) {
	all := SplitLines(text)
	for i, line := range all {
		if isTableHeader(line) {
			return all[i+1:], true
		}
	}
	return all, false
}

func isTableHeader(line string) bool {
	for _, marker := range headerMarkers {
		if !strings.Contains(line, marker) {
			return false
		}
	}
	return true
}
