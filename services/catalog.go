package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// CatalogItem is one SOR template from the price list: the fields copied
// onto a priced line item when it is added to a survey.
type CatalogItem struct {
	Section     string  `json:"section,omitempty"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	UOM         string  `json:"uom"`
	SMV         float64 `json:"smv"`
	Cost        float64 `json:"cost"`
}

// sorFileItem tolerates the source file's loosely typed numerics.
type sorFileItem struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	UOM         string    `json:"uom"`
	SMV         FlexFloat `json:"smv"`
	Cost        FlexFloat `json:"cost"`
}

// LoadSORFile reads the SOR catalog document: a mapping of section name to
// priced-item templates, plus the reserved "searchable" list. Sections the
// catalog does not know are dropped; numerics coerce through the
// safe-parse rule.
func LoadSORFile(path string) (map[string][]CatalogItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read SOR file: %w", err)
	}

	var parsed map[string][]sorFileItem
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse SOR file: %w", err)
	}

	catalog := make(map[string][]CatalogItem)
	for section, items := range parsed {
		section = NormalizeSection(section)
		if section != SearchableSection && !IsKnownSection(section) {
			continue
		}
		for _, it := range items {
			catalog[section] = append(catalog[section], CatalogItem{
				Section:     section,
				Code:        it.Code,
				Description: it.Description,
				UOM:         it.UOM,
				SMV:         float64(it.SMV),
				Cost:        float64(it.Cost),
			})
		}
	}
	return catalog, nil
}

// MatchesSearch reports whether every whitespace-separated term of the
// query appears somewhere in the item's code or description, in any order.
func MatchesSearch(query string, it CatalogItem) bool {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return false
	}
	haystack := strings.ToLower(it.Code + " " + it.Description)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
