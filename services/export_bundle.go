package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportBaseName builds the deterministic export file stem from the
// property address, whitespace collapsed to underscores:
// "12 High St" -> "Empty_Homes_Survey_12_High_St".
func ExportBaseName(propertyAddress string) string {
	safe := whitespaceRun.ReplaceAllString(propertyAddress, "_")
	return "Empty_Homes_Survey_" + safe
}

// GenerateBundle zips the Excel and PDF renderings of the export into a
// single archive.
func GenerateBundle(data ExportData, baseName string) ([]byte, error) {
	xlsxBytes, err := GenerateExcel(data)
	if err != nil {
		return nil, fmt.Errorf("bundle excel: %w", err)
	}
	pdfBytes, err := GeneratePDF(data)
	if err != nil {
		return nil, fmt.Errorf("bundle pdf: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name    string
		content []byte
	}{
		{baseName + ".xlsx", xlsxBytes},
		{baseName + ".pdf", pdfBytes},
	}
	for _, file := range files {
		w, err := zw.Create(file.name)
		if err != nil {
			return nil, fmt.Errorf("bundle create %s: %w", file.name, err)
		}
		if _, err := w.Write(file.content); err != nil {
			return nil, fmt.Errorf("bundle write %s: %w", file.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("bundle close: %w", err)
	}
	return buf.Bytes(), nil
}
