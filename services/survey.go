package services

import "github.com/google/uuid"

// Item kinds. Priced items come from the SOR catalog and are billed per
// unit quantity; free-form items carry a total cost and an hour estimate.
const (
	KindPriced   = "priced"
	KindFreeForm = "freeform"
)

// DefaultLorryCost is the placeholder cost seeded onto the lorry clearance
// template row. A lorry row still carrying exactly this cost with no
// description, comment or time estimate is treated as untouched and ignored
// by totals and exports.
const DefaultLorryCost = 100.00

// Item is one line within a section's list.
type Item struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Code         string    `json:"code,omitempty"`
	Description  string    `json:"description"`
	UOM          string    `json:"uom,omitempty"`
	SMV          float64   `json:"smv,omitempty"`
	Cost         float64   `json:"cost"`
	Quantity     int       `json:"quantity"`
	Comment      string    `json:"comment"`
	Recharge     bool      `json:"recharge"`
	TimeEstimate float64   `json:"time_estimate,omitempty"` // hours
	Contractor   string    `json:"contractor,omitempty"`
}

// FeatureNotes holds the per-room survey answers recorded alongside the
// line items.
type FeatureNotes struct {
	AsbestosNotes     string `json:"asbestos_notes"`
	LorryNotes        string `json:"lorry_notes"`
	ContractorNotes   string `json:"contractor_notes"`
	LoftChecked       string `json:"loft_checked"`
	LoftNeedsClearing string `json:"loft_needs_clearing"`
	CookerClearance   string `json:"cooker_clearance"`
	CookerPointType   string `json:"cooker_point_type"`
	KitchenExtractor  string `json:"kitchen_extractor"`
	KitchenMWR        string `json:"kitchen_mwr"`
	BathroomExtractor string `json:"bathroom_extractor"`
	ShowerFitted      string `json:"shower_fitted"`
	ShowerType        string `json:"shower_type"`
	BathTurn          string `json:"bath_turn"`
	BathroomMWR       string `json:"bathroom_mwr"`
}

// SectionItems is a named section and its ordered item list.
type SectionItems struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Survey is the full in-memory survey record: header fields plus every
// section's items in catalog order. It is the input to totals, recharge
// extraction and the export builders, and the unit serialized into
// snapshots.
type Survey struct {
	ID              string         `json:"id,omitempty"`
	SurveyorName    string         `json:"surveyor_name"`
	PropertyAddress string         `json:"property_address"`
	VoidRating      string         `json:"void_rating"`
	VoidType        string         `json:"void_type"`
	MWRRequired     bool           `json:"mwr_required"`
	OverallComments string         `json:"overall_comments"`
	Notes           FeatureNotes   `json:"notes"`
	Sections        []SectionItems `json:"sections"`
}

// NewSurvey returns a survey with every catalog section present (empty) in
// iteration order.
func NewSurvey(surveyor, address string) *Survey {
	s := &Survey{
		SurveyorName:    surveyor,
		PropertyAddress: address,
		VoidRating:      "Green",
		VoidType:        "Minor",
	}
	for _, name := range SectionOrder {
		s.Sections = append(s.Sections, SectionItems{Name: name})
	}
	return s
}

// Section returns the section with the given (normalized) name, or nil.
func (s *Survey) Section(name string) *SectionItems {
	name = NormalizeSection(name)
	for i := range s.Sections {
		if s.Sections[i].Name == name {
			return &s.Sections[i]
		}
	}
	return nil
}

// NormalizeNewItem applies the add-time rules for a section: free-form rows
// keep whatever the caller sent, catalog rows start in the neutral state
// with quantity 0, no comment and recharge off.
func NormalizeNewItem(section string, item Item) Item {
	if IsFreeForm(section) {
		item.Kind = KindFreeForm
		return item
	}
	item.Kind = KindPriced
	item.Quantity = 0
	item.Comment = ""
	item.Recharge = false
	return item
}

// AddItem appends item to the named section and returns the stored item.
// New items pass through NormalizeNewItem and get a stable synthetic ID so
// later updates and removals never depend on list position.
func (s *Survey) AddItem(section string, item Item) *Item {
	sec := s.Section(section)
	if sec == nil {
		return nil
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item = NormalizeNewItem(sec.Name, item)
	sec.Items = append(sec.Items, item)
	return &sec.Items[len(sec.Items)-1]
}

// UpdateItem replaces the item with the given ID in full. The replacement
// keeps the original ID and kind; callers pass the complete item, not a
// partial patch. Returns false if no item has that ID.
func (s *Survey) UpdateItem(id string, item Item) bool {
	for i := range s.Sections {
		for j := range s.Sections[i].Items {
			if s.Sections[i].Items[j].ID == id {
				item.ID = id
				item.Kind = s.Sections[i].Items[j].Kind
				s.Sections[i].Items[j] = item
				return true
			}
		}
	}
	return false
}

// RemoveItem deletes the item with the given ID. Unknown IDs are a no-op.
func (s *Survey) RemoveItem(id string) {
	for i := range s.Sections {
		items := s.Sections[i].Items
		for j := range items {
			if items[j].ID == id {
				s.Sections[i].Items = append(items[:j], items[j+1:]...)
				return
			}
		}
	}
}

// ItemByID returns the item with the given ID and its section name.
func (s *Survey) ItemByID(id string) (*Item, string) {
	for i := range s.Sections {
		for j := range s.Sections[i].Items {
			if s.Sections[i].Items[j].ID == id {
				return &s.Sections[i].Items[j], s.Sections[i].Name
			}
		}
	}
	return nil, ""
}

// isPhantomFreeForm reports whether a free-form item is an untouched
// template row: no description, no comment, no time estimate, and for lorry
// clearance a cost still equal to the seeded placeholder. Such rows are
// skipped by totals, exports and submission.
func isPhantomFreeForm(section string, it Item) bool {
	if it.Description != "" || it.Comment != "" || it.TimeEstimate != 0 {
		return false
	}
	if section == SectionLorry {
		return it.Cost == DefaultLorryCost
	}
	return true
}

// FreeFormHasContent reports whether a free-form row carries anything worth
// exporting: any text field, a time estimate, or a real (non-placeholder)
// cost.
func FreeFormHasContent(section string, it Item) bool {
	if it.Description != "" || it.Comment != "" || it.Contractor != "" || it.TimeEstimate != 0 {
		return true
	}
	if section == SectionLorry && it.Cost == DefaultLorryCost {
		return false
	}
	return it.Cost != 0
}

// FilterForSubmission returns a copy of the survey with inert rows removed:
// zero-quantity priced items and contentless free-form rows. The dashboard
// and document store receive only rows the surveyor actually filled in.
func FilterForSubmission(s *Survey) *Survey {
	out := *s
	out.Sections = nil
	for _, sec := range s.Sections {
		filtered := SectionItems{Name: sec.Name}
		for _, it := range sec.Items {
			if IsFreeForm(sec.Name) {
				if FreeFormHasContent(sec.Name, it) {
					filtered.Items = append(filtered.Items, it)
				}
				continue
			}
			if it.Quantity > 0 {
				filtered.Items = append(filtered.Items, it)
			}
		}
		out.Sections = append(out.Sections, filtered)
	}
	return &out
}
