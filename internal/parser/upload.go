package parser

import (
	"fmt"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/extractor"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// ParseUpload turns an uploaded statement into candidates, picking the
// parser from the file extension.
func ParseUpload(filename string, data []byte) (*models.StatementInfo, error) {
	kind, err := DetectSource(filename)
	if err != nil {
		return nil, err
	}
	pages, err := extractor.Pages(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", filename, err)
	}
	p, err := New(kind)
	if err != nil {
		return nil, err
	}
	return p.Parse(pages)
}

// ParseText runs the statement parser over text the client already
// extracted, with pages separated by form feeds.
func ParseText(text string) (*models.StatementInfo, error) {
	return (&StatementParser{}).Parse(extractor.SplitPages(text))
}
