package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/logger"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/parser"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/review"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/store"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/writer"
)

type extractCmd struct {
	Files  []string `arg:"" type:"existingfile" help:"Statement files (.pdf, .txt or .csv)."`
	Output string   `short:"o" help:"Output CSV path (defaults to the input name with .csv; ignored for several inputs)."`
	Save   bool     `help:"Merge the candidates into the store after extraction."`
	User   string   `default:"default" help:"User whose transactions receive merged candidates."`
	Debug  bool     `help:"Print how every line was classified."`
}

func (c *extractCmd) Run(g *globals) error {
	log := logger.New(g.LogLevel)
	reviews := review.NewRegistry()

	for _, path := range c.Files {
		info, err := c.extract(path)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", path, err)
		}
		if !info.Placeholder {
			reviews.Session(c.User).Add(info.Transactions)
		}
		log.Debug().Str("file", path).Int("candidates", len(info.Transactions)).Msg("Extracted")
	}

	if !c.Save {
		return nil
	}

	repo, err := store.Open(g.Store)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	n, err := reviews.Session(c.User).Merge(context.Background(), repo, c.User)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %d transaction(s) to %s\n", n, g.Store)
	return nil
}

func (c *extractCmd) extract(path string) (*models.StatementInfo, error) {
	fmt.Printf("Processing: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := parser.ParseUpload(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	if info.Bank != "" {
		fmt.Printf("  Detected bank: %s\n", info.Bank)
	}
	if info.Placeholder {
		fmt.Println("  Warning: No transactions found. The statement layout may not match expected patterns.")
	} else {
		fmt.Printf("  Found %d transaction(s)\n", len(info.Transactions))
	}
	if c.Debug {
		for _, dl := range info.DebugLines {
			fmt.Printf("  %4d %-12s %s %s\n", dl.LineNum, dl.Result, dl.Text, dl.Note)
		}
	}

	outPath := c.Output
	if outPath == "" || len(c.Files) > 1 {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
	}
	if outPath == path {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".candidates.csv"
	}

	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	if err := (&writer.CSVWriter{}).WriteTransactions(f, info.Transactions); err != nil {
		return nil, fmt.Errorf("CSV write failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	fmt.Printf("  Output: %s\n", outPath)
	return info, nil
}
