package services

// RechargeLine is one recharge-flagged item projected for display: priced
// items carry their extended cost (unit cost x quantity), free-form items
// their entered total.
type RechargeLine struct {
	Section     string  `json:"section"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Comment     string  `json:"comment"`
}

// ExtractRecharges collects every recharge-flagged item across all
// non-reserved sections, in section order then item order. No dedup.
func ExtractRecharges(s *Survey) []RechargeLine {
	var lines []RechargeLine
	for _, sec := range s.Sections {
		if sec.Name == SearchableSection {
			continue
		}
		for _, it := range sec.Items {
			if !it.Recharge {
				continue
			}
			cost := it.Cost
			code := it.Code
			if it.Kind == KindPriced {
				cost = it.Cost * float64(it.Quantity)
			} else {
				code = ""
			}
			lines = append(lines, RechargeLine{
				Section:     TitleCase(sec.Name),
				Code:        code,
				Description: it.Description,
				Cost:        cost,
				Comment:     it.Comment,
			})
		}
	}
	return lines
}
