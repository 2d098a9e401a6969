package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/killallgit/cardsheet-api/internal/models"
	"github.com/killallgit/cardsheet-api/internal/services/normalizer"
)

const (
	DefaultSheet = "Cards"
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Workbook builds an xlsx file holding table on a single sheet. The header row
// carries the column names. Only the image column is written as formulas;
// every other string is stored as literal text, even when it starts with "=".
func Workbook(table *models.Table, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeHeader(f, sheet, table.Columns); err != nil {
		_ = f.Close()
		return nil, err
	}

	formulaCol := formulaColumn(table.Columns)

	for r, row := range table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := setCell(f, sheet, cell, value, c == formulaCol); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	for c, name := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("set header %s: %w", name, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// formulaColumn returns the index of the image column, or -1
func formulaColumn(columns []string) int {
	for i, name := range columns {
		if name == normalizer.ImageField {
			return i
		}
	}
	return -1
}

func setCell(f *excelize.File, sheet, cell string, value any, formula bool) error {
	s, ok := value.(string)
	if !ok {
		return f.SetCellValue(sheet, cell, value)
	}
	if formula && strings.HasPrefix(s, "=") {
		return f.SetCellFormula(sheet, cell, strings.TrimPrefix(s, "="))
	}
	return f.SetCellStr(sheet, cell, s)
}

// WriteXLSX streams the workbook for table to w
func WriteXLSX(w io.Writer, table *models.Table, sheet string) error {
	f, err := Workbook(table, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook for table to path, creating parent directories
func SaveXLSX(path string, table *models.Table, sheet string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := Workbook(table, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
