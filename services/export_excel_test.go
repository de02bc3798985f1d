package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_Sheets(t *testing.T) {
	result, err := GenerateExcel(BuildExportData(buildTestSurvey()))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SummarySheet || sheets[1] != DetailsSheet {
		t.Errorf("sheets = %v, want [%s %s]", sheets, SummarySheet, DetailsSheet)
	}

	title, _ := f.GetCellValue(SummarySheet, "A1")
	if title != "Empty Homes Survey" {
		t.Errorf("title cell = %q", title)
	}
}

func TestGenerateExcel_SummaryTags(t *testing.T) {
	result, err := GenerateExcel(BuildExportData(buildTestSurvey()))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	// Header row 3, first data row 4: tag in A, label in B, value in C.
	header, _ := f.GetCellValue(SummarySheet, "A3")
	if header != "Field" {
		t.Errorf("A3 = %q, want Field", header)
	}
	tag, _ := f.GetCellValue(SummarySheet, "A4")
	if tag != TagSurveyorName {
		t.Errorf("A4 = %q, want %q", tag, TagSurveyorName)
	}
	value, _ := f.GetCellValue(SummarySheet, "C4")
	if value != "Sam Byrne" {
		t.Errorf("C4 = %q, want Sam Byrne", value)
	}
}

func TestGenerateExcel_DetailRows(t *testing.T) {
	result, err := GenerateExcel(BuildExportData(buildTestSurvey()))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(DetailsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 details", len(rows))
	}
	if rows[0][0] != "Section" || rows[0][1] != "Code" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "Kitchen" || rows[1][1] != "KIT001" {
		t.Errorf("first detail row = %v", rows[1])
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain text", "hello", "hello"},
		{"formula", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"plus", "+1234", "'+1234"},
		{"minus", "-1234", "'-1234"},
		{"at sign", "@cmd", "'@cmd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.input); got != tt.expect {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
