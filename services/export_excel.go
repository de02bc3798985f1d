package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	// SummarySheet and DetailsSheet are the two sheets of an exported
	// survey workbook; import looks them up by these names.
	SummarySheet = "Summary"
	DetailsSheet = "SOR Details"
)

// GenerateExcel renders the survey export as a two-sheet workbook and
// returns the file contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet to Summary, then add Details.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(DetailsSheet); err != nil {
		return nil, fmt.Errorf("add details sheet: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	// ── Summary sheet ───────────────────────────────────────────────────

	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 26); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "C", "C", 50); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}

	if err := f.MergeCell(SummarySheet, "A1", "C1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(SummarySheet, "A1", data.Title)
	f.SetCellStyle(SummarySheet, "A1", "C1", titleStyle)

	f.SetCellValue(SummarySheet, "A3", "Field")
	f.SetCellValue(SummarySheet, "B3", "Label")
	f.SetCellValue(SummarySheet, "C3", "Value")
	f.SetCellStyle(SummarySheet, "A3", "C3", headerStyle)

	row := 4
	for _, field := range data.Summary {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(SummarySheet, "A"+rowStr, field.Tag)
		f.SetCellValue(SummarySheet, "B"+rowStr, field.Label)
		f.SetCellValue(SummarySheet, "C"+rowStr, sanitizeExcelCell(field.Value))
		f.SetCellStyle(SummarySheet, "B"+rowStr, "B"+rowStr, labelStyle)
		row++
	}

	// ── Details sheet ───────────────────────────────────────────────────

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}
	lastCol := columns[len(columns)-1]
	widths := []float64{16, 12, 40, 8, 10, 8, 10, 30, 10, 8, 16}
	for i, col := range columns {
		if err := f.SetColWidth(DetailsSheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	for i, h := range DetailHeader {
		f.SetCellValue(DetailsSheet, columns[i]+"1", h)
	}
	f.SetCellStyle(DetailsSheet, "A1", lastCol+"1", headerStyle)

	row = 2
	for _, r := range data.Details {
		rowStr := fmt.Sprintf("%d", row)
		for i, cell := range r.Row() {
			f.SetCellValue(DetailsSheet, columns[i]+rowStr, sanitizeExcelCell(cell))
		}
		f.SetCellStyle(DetailsSheet, "A"+rowStr, lastCol+rowStr, rowStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
