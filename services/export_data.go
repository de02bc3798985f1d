package services

import "fmt"

// Summary field tags. The export writes these stable tags into the Summary
// sheet so import never depends on label text staying byte-identical.
const (
	TagSurveyorName      = "surveyor_name"
	TagPropertyAddress   = "property_address"
	TagVoidRating        = "void_rating"
	TagVoidType          = "void_type"
	TagMWRRequired       = "mwr_required"
	TagTotalSMV          = "total_smv"
	TagTotalVoidDays     = "total_void_days"
	TagTotalCost         = "total_cost"
	TagRechargeSMV       = "recharge_smv"
	TagRechargeDays      = "recharge_days"
	TagRechargeCost      = "recharge_cost"
	TagComments          = "comments"
	TagAsbestosNotes     = "asbestos_notes"
	TagLorryNotes        = "lorry_notes"
	TagContractorNotes   = "contractor_notes"
	TagLoftChecked       = "loft_checked"
	TagLoftNeedsClearing = "loft_needs_clearing"
	TagCookerClearance   = "cooker_clearance"
	TagCookerPointType   = "cooker_point_type"
	TagKitchenExtractor  = "kitchen_extractor"
	TagKitchenMWR        = "kitchen_mwr"
	TagBathroomExtractor = "bathroom_extractor"
	TagShowerFitted      = "shower_fitted"
	TagShowerType        = "shower_type"
	TagBathTurn          = "bath_turn"
	TagBathroomMWR       = "bathroom_mwr"
)

// SummaryField is one label/value pair on the Summary sheet, keyed by a
// stable tag.
type SummaryField struct {
	Tag   string
	Label string
	Value string
}

// DetailRow is one line on the "SOR Details" sheet. Time and Contractor are
// only populated for free-form rows.
type DetailRow struct {
	Section     string
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

// ExportData holds everything the Excel and PDF renderers need.
type ExportData struct {
	Title   string
	Summary []SummaryField
	Details []DetailRow
	Totals  Totals
}

// DetailHeader is the column header row of the "SOR Details" sheet, and the
// shape import expects back.
var DetailHeader = []string{
	"Section", "Code", "Description", "UOM", "Quantity",
	"SMV", "Cost", "Comment", "Recharge?", "Time", "Contractor",
}

// BuildExportData projects a survey into summary fields and detail rows.
// Detail rows cover priced items with quantity > 0 plus free-form rows that
// carry content; untouched template rows never reach an export.
func BuildExportData(s *Survey) ExportData {
	totals := ComputeTotals(s)

	summary := []SummaryField{
		{TagSurveyorName, "Surveyor Name", s.SurveyorName},
		{TagPropertyAddress, "Property Address", s.PropertyAddress},
		{TagVoidRating, "Void Rating", s.VoidRating},
		{TagVoidType, "Void Type", s.VoidType},
		{TagMWRRequired, "MWR Required", yesNo(s.MWRRequired)},
		{TagTotalSMV, "Total SMV", FormatQty(float64(totals.VoidSMV))},
		{TagTotalVoidDays, "Total Void Days", trimDays(totals.VoidDays)},
		{TagTotalCost, "Total Cost (£)", totals.VoidCost},
		{TagRechargeSMV, "Recharge SMV", FormatQty(totals.RechargeSMV)},
		{TagRechargeDays, "Recharge Days", trimDays(totals.RechargeDays)},
		{TagRechargeCost, "Recharge Cost (£)", totals.RechargeCost},
		{TagComments, "Comments", s.OverallComments},
		{TagAsbestosNotes, "Asbestos Notes", s.Notes.AsbestosNotes},
		{TagLorryNotes, "Lorry Clearance Notes", s.Notes.LorryNotes},
		{TagContractorNotes, "Contractor Work Notes", s.Notes.ContractorNotes},
		{TagLoftChecked, "Loft Checked", s.Notes.LoftChecked},
		{TagLoftNeedsClearing, "Loft Needs Clearing", s.Notes.LoftNeedsClearing},
		{TagCookerClearance, "Cooker Clearance", s.Notes.CookerClearance},
		{TagCookerPointType, "Cooker Point Type", s.Notes.CookerPointType},
		{TagKitchenExtractor, "Kitchen Extractor Fan", s.Notes.KitchenExtractor},
		{TagKitchenMWR, "Kitchen MWR", s.Notes.KitchenMWR},
		{TagBathroomExtractor, "Bathroom Extractor Fan", s.Notes.BathroomExtractor},
		{TagShowerFitted, "Shower Fitted", s.Notes.ShowerFitted},
		{TagShowerType, "Shower Type", s.Notes.ShowerType},
		{TagBathTurn, "Bath Turn Required", s.Notes.BathTurn},
		{TagBathroomMWR, "Bathroom MWR", s.Notes.BathroomMWR},
	}

	var details []DetailRow
	for _, sec := range s.Sections {
		if sec.Name == SearchableSection {
			continue
		}
		display := TitleCase(sec.Name)
		for _, it := range sec.Items {
			if IsFreeForm(sec.Name) {
				if !FreeFormHasContent(sec.Name, it) {
					continue
				}
				details = append(details, DetailRow{
					Section:     display,
					Description: it.Description,
					Cost:        FormatQty(it.Cost),
					Comment:     it.Comment,
					Recharge:    yesNo(it.Recharge),
					Time:        FormatQty(it.TimeEstimate),
					Contractor:  it.Contractor,
				})
				continue
			}
			if it.Quantity <= 0 {
				continue
			}
			details = append(details, DetailRow{
				Section:     display,
				Code:        it.Code,
				Description: it.Description,
				UOM:         it.UOM,
				Quantity:    FormatQty(float64(it.Quantity)),
				SMV:         FormatQty(it.SMV),
				Cost:        FormatQty(it.Cost),
				Comment:     it.Comment,
				Recharge:    yesNo(it.Recharge),
			})
		}
	}

	return ExportData{
		Title:   "Empty Homes Survey",
		Summary: summary,
		Details: details,
		Totals:  totals,
	}
}

// trimDays renders a day count with one decimal place.
func trimDays(days float64) string {
	return fmt.Sprintf("%.1f", days)
}

// Row converts a detail row into its cell order on the sheet.
func (r DetailRow) Row() []string {
	return []string{
		r.Section, r.Code, r.Description, r.UOM, r.Quantity,
		r.SMV, r.Cost, r.Comment, r.Recharge, r.Time, r.Contractor,
	}
}
