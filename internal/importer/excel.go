package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/example/pinyinquest/pkg/models"
)

// SpreadsheetConfig defines how a vocabulary spreadsheet is read
type SpreadsheetConfig struct {
	FilePath      string // Path to the Excel or CSV file
	HanziColumn   string // Column with the hanzi
	PinyinColumn  string // Column with the pinyin
	MeaningColumn string // Column with the meaning
	SheetName     string // Name of the sheet to import
	StartRow      int    // The row to start importing from (1-based index)
}

// DefaultSpreadsheetConfig returns the default spreadsheet layout
func DefaultSpreadsheetConfig() SpreadsheetConfig {
	return SpreadsheetConfig{
		HanziColumn:   "A",
		PinyinColumn:  "B",
		MeaningColumn: "C",
		SheetName:     "Sheet1",
		StartRow:      2, // By default, start from the second row (skip header)
	}
}

// SpreadsheetResult holds the outcome of a spreadsheet import
type SpreadsheetResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
	Items          []models.VocabItem
}

// ImportSpreadsheet reads vocabulary rows from an Excel or CSV file. Rows
// without a pinyin value are skipped and reported, not fatal.
func ImportSpreadsheet(config SpreadsheetConfig) (*SpreadsheetResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config)
	}

	return importFromExcel(config)
}

func importFromExcel(config SpreadsheetConfig) (*SpreadsheetResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &SpreadsheetResult{
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		processVocabRow(rowCells(row, config), result, i+1)
	}

	return result, nil
}

func importFromCSV(config SpreadsheetConfig) (*SpreadsheetResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &SpreadsheetResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++
		processVocabRow(rowCells(row, config), result, rowNum)
	}

	return result, nil
}

// rowCells pulls the configured columns out of a raw row, tolerating short rows
func rowCells(row []string, config SpreadsheetConfig) [3]string {
	var cells [3]string
	if idx := columnToIndex(config.HanziColumn); idx >= 0 && idx < len(row) {
		cells[0] = strings.TrimSpace(row[idx])
	}
	if idx := columnToIndex(config.PinyinColumn); idx >= 0 && idx < len(row) {
		cells[1] = strings.TrimSpace(row[idx])
	}
	if idx := columnToIndex(config.MeaningColumn); idx >= 0 && idx < len(row) {
		cells[2] = strings.TrimSpace(row[idx])
	}
	return cells
}

func processVocabRow(cells [3]string, result *SpreadsheetResult, rowNum int) {
	if cells[1] == "" {
		result.Skipped++
		if cells[0] != "" || cells[2] != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: pinyin cannot be empty", rowNum))
		}
		return
	}

	result.Items = append(result.Items, models.VocabItem{
		ID:      uuid.NewString(),
		Hanzi:   cells[0],
		Pinyin:  cells[1],
		Meaning: cells[2],
	})
	result.Imported++
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
