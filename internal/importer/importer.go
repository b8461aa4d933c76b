package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"vocabquest/internal/database"
	"vocabquest/internal/repository"
)

// Config defines how a unit file is read. Excel files use two columns, unit
// title and word. CSV files may either use the same two columns or mark a new
// unit with a row whose word cell is empty.
type Config struct {
	FilePath   string
	SheetName  string
	SkipHeader bool
}

// DefaultConfig returns the default import configuration
func DefaultConfig(filePath string) Config {
	return Config{
		FilePath:   filePath,
		SheetName:  "Sheet1",
		SkipHeader: true,
	}
}

// Result holds the outcome of an import operation
type Result struct {
	TotalRows    int
	UnitsCreated int
	WordsAdded   int
	Skipped      int
	Errors       []string
}

// Importer loads vocabulary units from Excel or CSV files
type Importer struct {
	units *repository.UnitRepository
}

func New(db *database.DB) *Importer {
	return &Importer{units: repository.NewUnitRepository(db)}
}

// ImportUnits imports units and their words from an Excel or CSV file
func (imp *Importer) ImportUnits(cfg Config) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(cfg.FilePath))
	if ext == ".csv" {
		return imp.importFromCSV(cfg)
	}
	return imp.importFromExcel(cfg)
}

func (imp *Importer) importFromExcel(cfg Config) (*Result, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	state := imp.newImportState()
	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		var title, word string
		if len(row) > 0 {
			title = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			word = strings.TrimSpace(row[1])
		}
		state.addRow(title, word, i+1)
	}
	return state.result, nil
}

func (imp *Importer) importFromCSV(cfg Config) (*Result, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	state := imp.newImportState()
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rowNum++
		if rowNum == 1 && cfg.SkipHeader {
			continue
		}

		var title, word string
		if len(row) > 0 {
			title = strings.Trim(strings.TrimSpace(row[0]), "\"")
		}
		if len(row) > 1 {
			word = strings.TrimSpace(row[1])
		}
		state.addRow(title, word, rowNum)
	}
	return state.result, nil
}

// importState tracks the current unit across rows so files can either repeat
// the unit title on every row or mention it once as a section header
type importState struct {
	imp          *Importer
	result       *Result
	currentTitle string
	currentUnit  int64
	wordCount    int
	unitCount    int
}

func (imp *Importer) newImportState() *importState {
	return &importState{
		imp:    imp,
		result: &Result{Errors: make([]string, 0)},
	}
}

func (s *importState) addRow(title, word string, rowNum int) {
	if title == "" && word == "" {
		return
	}
	s.result.TotalRows++

	if title != "" && word == "" {
		// Section header row: switch the current unit
		if err := s.switchUnit(title); err != nil {
			s.result.Errors = append(s.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
		return
	}
	if word == "" {
		s.result.Skipped++
		return
	}

	if title != "" && title != s.currentTitle {
		if err := s.switchUnit(title); err != nil {
			s.result.Errors = append(s.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			return
		}
	}
	if s.currentUnit == 0 {
		s.result.Skipped++
		s.result.Errors = append(s.result.Errors, fmt.Sprintf("Row %d: word %q has no unit", rowNum, word))
		return
	}

	s.wordCount++
	if err := s.imp.units.AddWord(s.currentUnit, word, s.wordCount); err != nil {
		s.result.Errors = append(s.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}
	s.result.WordsAdded++
}

func (s *importState) switchUnit(title string) error {
	unit, err := s.imp.units.GetUnitByTitle(title)
	if err != nil {
		return err
	}
	if unit == nil {
		existing, err := s.imp.units.ListUnits()
		if err != nil {
			return err
		}
		unit, err = s.imp.units.CreateUnit(title, len(existing)+1)
		if err != nil {
			return err
		}
		s.result.UnitsCreated++
	}
	s.currentTitle = title
	s.currentUnit = unit.ID
	s.wordCount = 0
	return nil
}
