package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// minReadableLen is the shortest text accepted as a real extraction.
const minReadableLen = 50

// statementWords appear in virtually every bank statement; text with none
// of them is treated as garbage.
var statementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "withdrawal",
	"deposit", "opening", "closing", "transfer", "upi", "neft",
	"particulars", "narration", "page", "period",
}

// Pages returns parser input for an uploaded file. PDFs go through text
// extraction; text and CSV uploads are split on form feeds.
func Pages(filename string, data []byte) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ExtractPDF(data)
	case ".txt", ".csv":
		return SplitPages(string(data)), nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

// SplitPages splits pasted text into pages on form feed characters.
func SplitPages(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	parts := strings.Split(text, "\f")
	pages := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			pages = append(pages, p)
		}
	}
	if len(pages) == 0 {
		return []string{""}
	}
	return pages
}

// IsReadable reports whether extracted pages look like statement text:
// long enough, mostly printable and mentioning a statement word.
func IsReadable(pages []string) bool {
	total := 0
	for _, p := range pages {
		total += len(strings.TrimSpace(p))
	}
	if total <= minReadableLen {
		return false
	}
	if quality(pages) <= 0.6 {
		return false
	}
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, w := range statementWords {
		if strings.Contains(combined, w) {
			return true
		}
	}
	return false
}

// quality is the share of runes that are ASCII letters, digits, whitespace
// or common statement punctuation and currency signs.
func quality(pages []string) float64 {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isStatementRune(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isStatementRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(".,-/:;()'\"₹£$€%&@#!?+=*_", r)
}
