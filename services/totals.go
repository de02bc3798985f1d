package services

import (
	"fmt"
	"math"
)

// MinutesPerDay converts accumulated SMV minutes into person-days.
const MinutesPerDay = 400.0

// RechargeWarningDays is the recharge-day count above which the survey is
// flagged for review.
const RechargeWarningDays = 5.0

// Totals are the derived aggregates recomputed from the item lists on every
// read. Costs are rendered as 2-decimal strings ready for display/export.
type Totals struct {
	VoidSMV         int     `json:"void_smv"`
	VoidCost        string  `json:"void_cost"`
	VoidDays        float64 `json:"void_days"`
	RechargeSMV     float64 `json:"recharge_smv"`
	RechargeCost    string  `json:"recharge_cost"`
	RechargeDays    float64 `json:"recharge_days"`
	RechargeWarning bool    `json:"recharge_warning"`
}

// ComputeTotals folds the survey's sections into the four accumulators.
//
// Free-form rows (lorry clearance / contractor work): untouched template
// rows are skipped; cost always counts toward void cost; recharged rows
// additionally count their cost and their hours (as minutes) on the
// recharge side. Free-form time never counts toward void SMV — it is
// assumed to be additional contractor time, not void-clock time.
//
// Priced rows: inert until quantity > 0; SMV and cost both always count on
// the void side, and count again on the recharge side when flagged.
func ComputeTotals(s *Survey) Totals {
	var voidSMV, voidCost, rechargeSMV, rechargeCost float64

	for _, sec := range s.Sections {
		if sec.Name == SearchableSection {
			continue
		}
		freeForm := IsFreeForm(sec.Name)
		for _, it := range sec.Items {
			if freeForm {
				if isPhantomFreeForm(sec.Name, it) {
					continue
				}
				voidCost += it.Cost
				if it.Recharge {
					rechargeCost += it.Cost
					rechargeSMV += it.TimeEstimate * 60
				}
				continue
			}

			if it.Quantity <= 0 {
				continue
			}
			qty := float64(it.Quantity)
			smvTotal := it.SMV * qty
			costTotal := it.Cost * qty
			voidSMV += smvTotal
			voidCost += costTotal
			if it.Recharge {
				rechargeSMV += smvTotal
				rechargeCost += costTotal
			}
		}
	}

	rechargeDays := rechargeSMV / MinutesPerDay
	return Totals{
		VoidSMV:         int(math.Round(voidSMV)),
		VoidCost:        fmt.Sprintf("%.2f", voidCost),
		VoidDays:        voidSMV / MinutesPerDay,
		RechargeSMV:     rechargeSMV,
		RechargeCost:    fmt.Sprintf("%.2f", rechargeCost),
		RechargeDays:    rechargeDays,
		RechargeWarning: rechargeDays > RechargeWarningDays,
	}
}
