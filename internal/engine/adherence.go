package engine

import "math"

// PlanAdherence returns the percentage of the day's pre-planned baseline
// that was actually completed, rounded to an integer. A day with no
// pre-planned baseline yields 0; distinguishing "no plan" from a literal
// zero is the caller's concern.
func PlanAdherence(d Day) int {
	total := 0
	completed := 0

	for _, it := range d.PlanItems {
		if it.WasPrePlanned && plannedFor(it, d) {
			total++
		}
	}
	for _, it := range d.FactItems {
		if it.WasPrePlanned && plannedFor(it, d) {
			total++
			completed++
		}
	}
	for _, it := range d.PrePlanItems {
		if plannedFor(it, d) {
			total++
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

func plannedFor(it Item, d Day) bool {
	return it.PlannedDate != nil && sameDate(*it.PlannedDate, d.Date)
}
