package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"langportal/internal/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column layout of an import sheet
const (
	colText = iota
	colTransliteration
	colMeaning
	colPartOfSpeech
	colGroup
)

// WordCreator stores imported words
type WordCreator interface {
	CreateWord(ctx context.Context, word *domain.Word) error
	AddToGroup(ctx context.Context, wordID int64, groupName string) (*domain.Group, error)
}

// Config defines the import configuration
type Config struct {
	SheetName string // Name of the sheet to import, the first sheet when empty
	StartRow  int    // The row to start importing from (1-based index)
}

// DefaultConfig skips the header row of the first sheet
func DefaultConfig() Config {
	return Config{StartRow: 2}
}

// Result holds the result of an import operation
type Result struct {
	TotalProcessed int
	Created        int
	Grouped        int
	Errors         []string
}

// Importer reads vocabulary spreadsheets
type Importer struct {
	words  WordCreator
	logger *zap.Logger
}

// New creates an importer
func New(words WordCreator, logger *zap.Logger) *Importer {
	return &Importer{words: words, logger: logger}
}

// ImportFile imports words from an .xlsx file
func (i *Importer) ImportFile(ctx context.Context, path string, cfg Config) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f, cfg)
}

// Import reads columns A to E of every row: word, transliteration, meaning,
// part of speech and an optional group. Invalid rows are reported in the
// result; only storage outages abort the import.
func (i *Importer) Import(ctx context.Context, f *excelize.File, cfg Config) (*Result, error) {
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &Result{Errors: make([]string, 0)}
	for idx, row := range rows {
		rowNum := idx + 1
		if rowNum < cfg.StartRow || isBlank(row) {
			continue
		}

		result.TotalProcessed++

		if err := i.importRow(ctx, row, result); err != nil {
			if errors.Is(err, domain.ErrStorageUnavailable) {
				return result, fmt.Errorf("row %d: %w", rowNum, err)
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	i.logger.Info("Spreadsheet imported",
		zap.String("sheet", sheet),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (i *Importer) importRow(ctx context.Context, row []string, result *Result) error {
	word := &domain.Word{
		Text:            cell(row, colText),
		Transliteration: cell(row, colTransliteration),
		Meaning:         cell(row, colMeaning),
		PartOfSpeech:    cell(row, colPartOfSpeech),
	}
	if err := i.words.CreateWord(ctx, word); err != nil {
		return err
	}
	result.Created++

	if group := cell(row, colGroup); group != "" {
		if _, err := i.words.AddToGroup(ctx, word.ID, group); err != nil {
			return fmt.Errorf("word %q created but not grouped: %w", word.Text, err)
		}
		result.Grouped++
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
