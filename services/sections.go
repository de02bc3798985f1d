// Package services provides the survey domain logic: section catalog,
// line-item store, totals computation and export/import row building.
package services

import "strings"

// SectionOrder is the fixed iteration order for survey sections.
// "contractor work" stays last.
var SectionOrder = []string{
	"general",
	"asbestos",
	"decoration",
	"lorry clearance",
	"external works",
	"sheds",
	"loft",
	"hall/stair/landing",
	"w/c (closet)",
	"living room",
	"dining room",
	"kitchen",
	"bathroom/wetroom",
	"bedroom 1",
	"bedroom 2",
	"bedroom 3",
	"bedroom 4",
	"contractor work",
}

const (
	// SectionLorry and SectionContractor are the two free-form sections:
	// their items are not drawn from the SOR price list.
	SectionLorry      = "lorry clearance"
	SectionContractor = "contractor work"

	// SearchableSection is the reserved catalog key for SORs that can be
	// searched and added to any section but are never rendered as a
	// section of their own and never contribute to totals.
	SearchableSection = "searchable"
)

// IsFreeForm reports whether the section holds free-form items
// (lorry clearance / contractor work) rather than priced SORs.
func IsFreeForm(section string) bool {
	return section == SectionLorry || section == SectionContractor
}

// IsKnownSection reports whether name is one of the catalog sections.
func IsKnownSection(name string) bool {
	for _, s := range SectionOrder {
		if s == name {
			return true
		}
	}
	return false
}

// NormalizeSection lowercases and trims a section name so that imported
// spreadsheets match regardless of casing ("Kitchen " -> "kitchen").
func NormalizeSection(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TitleCase converts "kitchen" to "Kitchen" for display and export.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
