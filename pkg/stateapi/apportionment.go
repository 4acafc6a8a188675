package stateapi

import "time"

// ApportionmentRatio computes the fraction of the tax year attributable to
// residency in one state: 1 for full-year residents, 0 for nonresidents, and
// day-counted for part-year residents. Move-in/move-out dates are clamped to
// the year's boundaries; a missing side defaults to the corresponding year
// boundary, and a fully missing or inverted range falls back to the whole
// year.
func ApportionmentRatio(year int, status ResidencyStatus, moveIn, moveOut *time.Time) float64 {
	switch status {
	case ResidencyNonresident:
		return 0
	case ResidencyPartYear:
	default:
		return 1
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	daysInYear := int(end.Sub(start).Hours()/24) + 1

	from, to := start, end
	if moveIn != nil {
		from = clampDate(*moveIn, start, end)
	}
	if moveOut != nil {
		to = clampDate(*moveOut, start, end)
	}
	if moveIn == nil && moveOut == nil {
		return 1
	}
	if from.After(to) {
		return 1
	}

	daysPresent := int(to.Sub(from).Hours()/24) + 1
	if daysPresent < 0 {
		daysPresent = 0
	}
	if daysPresent > daysInYear {
		daysPresent = daysInYear
	}
	return float64(daysPresent) / float64(daysInYear)
}

func clampDate(d, lo, hi time.Time) time.Time {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(lo) {
		return lo
	}
	if d.After(hi) {
		return hi
	}
	return d
}
