package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ImportedRow is one parsed line from the "SOR Details" sheet.
type ImportedRow struct {
	Section     string // normalized
	Code        string
	Description string
	UOM         string
	Quantity    string
	SMV         string
	Cost        string
	Comment     string
	Recharge    string
	Time        string
	Contractor  string
}

// ImportedSurvey is the raw content of a previously exported workbook.
type ImportedSurvey struct {
	Fields  map[string]string // summary values keyed by field tag
	Details []ImportedRow
}

// summarySetters maps a field tag to the survey field it restores. Derived
// totals tags have no setter and are skipped.
var summarySetters = map[string]func(*Survey, string){
	TagSurveyorName:      func(s *Survey, v string) { s.SurveyorName = v },
	TagPropertyAddress:   func(s *Survey, v string) { s.PropertyAddress = v },
	TagVoidRating:        func(s *Survey, v string) { s.VoidRating = v },
	TagVoidType:          func(s *Survey, v string) { s.VoidType = v },
	TagMWRRequired:       func(s *Survey, v string) { s.MWRRequired = parseYesNo(v) },
	TagComments:          func(s *Survey, v string) { s.OverallComments = v },
	TagAsbestosNotes:     func(s *Survey, v string) { s.Notes.AsbestosNotes = v },
	TagLorryNotes:        func(s *Survey, v string) { s.Notes.LorryNotes = v },
	TagContractorNotes:   func(s *Survey, v string) { s.Notes.ContractorNotes = v },
	TagLoftChecked:       func(s *Survey, v string) { s.Notes.LoftChecked = v },
	TagLoftNeedsClearing: func(s *Survey, v string) { s.Notes.LoftNeedsClearing = v },
	TagCookerClearance:   func(s *Survey, v string) { s.Notes.CookerClearance = v },
	TagCookerPointType:   func(s *Survey, v string) { s.Notes.CookerPointType = v },
	TagKitchenExtractor:  func(s *Survey, v string) { s.Notes.KitchenExtractor = v },
	TagKitchenMWR:        func(s *Survey, v string) { s.Notes.KitchenMWR = v },
	TagBathroomExtractor: func(s *Survey, v string) { s.Notes.BathroomExtractor = v },
	TagShowerFitted:      func(s *Survey, v string) { s.Notes.ShowerFitted = v },
	TagShowerType:        func(s *Survey, v string) { s.Notes.ShowerType = v },
	TagBathTurn:          func(s *Survey, v string) { s.Notes.BathTurn = v },
	TagBathroomMWR:       func(s *Survey, v string) { s.Notes.BathroomMWR = v },
}

// legacyLabels maps pre-tagging export labels back onto field tags, so
// workbooks written before the Field column existed still import.
var legacyLabels = map[string]string{
	"surveyor name":          TagSurveyorName,
	"property address":       TagPropertyAddress,
	"void rating":            TagVoidRating,
	"void type":              TagVoidType,
	"mwr required":           TagMWRRequired,
	"comments":               TagComments,
	"asbestos notes":         TagAsbestosNotes,
	"lorry clearance notes":  TagLorryNotes,
	"contractor work notes":  TagContractorNotes,
	"loft checked":           TagLoftChecked,
	"loft needs clearing":    TagLoftNeedsClearing,
	"cooker clearance":       TagCookerClearance,
	"cooker point type":      TagCookerPointType,
	"kitchen extractor fan":  TagKitchenExtractor,
	"kitchen mwr":            TagKitchenMWR,
	"bathroom extractor fan": TagBathroomExtractor,
	"shower fitted":          TagShowerFitted,
	"shower type":            TagShowerType,
	"bath turn required":     TagBathTurn,
	"bathroom mwr":           TagBathroomMWR,
}

// ParseWorkbook reads a previously exported survey workbook. Unrecognized
// labels, tags and sheets are skipped, never an error; the worst case is an
// empty import.
func ParseWorkbook(r io.Reader) (*ImportedSurvey, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	imp := &ImportedSurvey{Fields: make(map[string]string)}

	// Summary sheet: rows of (tag, label, value). Legacy workbooks carry
	// (label, value) pairs instead; match those by exact label.
	if rows, err := f.GetRows(SummarySheet); err == nil {
		for _, cells := range rows {
			if len(cells) == 0 {
				continue
			}
			first := strings.TrimSpace(cells[0])
			if _, ok := summarySetters[first]; ok {
				imp.Fields[first] = cellAt(cells, 2)
				continue
			}
			if tag, ok := legacyLabels[strings.ToLower(first)]; ok {
				imp.Fields[tag] = cellAt(cells, 1)
			}
		}
	}

	// Details sheet: header row then one row per line item.
	if rows, err := f.GetRows(DetailsSheet); err == nil && len(rows) > 1 {
		for _, cells := range rows[1:] {
			section := NormalizeSection(cellAt(cells, 0))
			if section == "" {
				continue
			}
			imp.Details = append(imp.Details, ImportedRow{
				Section:     section,
				Code:        strings.TrimSpace(cellAt(cells, 1)),
				Description: cellAt(cells, 2),
				UOM:         cellAt(cells, 3),
				Quantity:    cellAt(cells, 4),
				SMV:         cellAt(cells, 5),
				Cost:        cellAt(cells, 6),
				Comment:     cellAt(cells, 7),
				Recharge:    cellAt(cells, 8),
				Time:        cellAt(cells, 9),
				Contractor:  cellAt(cells, 10),
			})
		}
	}

	return imp, nil
}

// ApplyImport merges a parsed workbook into the survey. Summary fields are
// restored by tag. Priced rows are matched back to the survey's catalog rows
// by code — quantity, comment and recharge overlay the match; rows with no
// match append verbatim. Free-form sections are replaced wholesale by the
// imported rows.
func ApplyImport(s *Survey, imp *ImportedSurvey) {
	for tag, value := range imp.Fields {
		if setter, ok := summarySetters[tag]; ok {
			setter(s, value)
		}
	}

	// Wholesale replacement: the imported workbook is the complete
	// free-form state, including the empty case.
	for _, name := range []string{SectionLorry, SectionContractor} {
		if sec := s.Section(name); sec != nil {
			sec.Items = nil
		}
	}

	for _, row := range imp.Details {
		if !IsKnownSection(row.Section) {
			continue
		}
		sec := s.Section(row.Section)

		if IsFreeForm(row.Section) {
			sec.Items = append(sec.Items, Item{
				ID:           uuid.NewString(),
				Kind:         KindFreeForm,
				Description:  row.Description,
				Cost:         ParseNum(row.Cost),
				TimeEstimate: ParseNum(row.Time),
				Recharge:     parseYesNo(row.Recharge),
				Comment:      row.Comment,
				Contractor:   row.Contractor,
			})
			continue
		}

		if match := findByCode(sec, row.Code); match != nil {
			match.Quantity = ParseQty(row.Quantity)
			match.Comment = row.Comment
			match.Recharge = parseYesNo(row.Recharge)
			continue
		}

		// Unknown code: keep the imported row as-is so no data is lost.
		sec.Items = append(sec.Items, Item{
			ID:          uuid.NewString(),
			Kind:        KindPriced,
			Code:        row.Code,
			Description: row.Description,
			UOM:         row.UOM,
			SMV:         ParseNum(row.SMV),
			Cost:        ParseNum(row.Cost),
			Quantity:    ParseQty(row.Quantity),
			Comment:     row.Comment,
			Recharge:    parseYesNo(row.Recharge),
		})
	}
}

func findByCode(sec *SectionItems, code string) *Item {
	if code == "" {
		return nil
	}
	for i := range sec.Items {
		if sec.Items[i].Code == code {
			return &sec.Items[i]
		}
	}
	return nil
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
