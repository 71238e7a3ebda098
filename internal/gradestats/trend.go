package gradestats

import "sort"

// YearStats pairs a calendar year with statistics over every grade recorded
// in that year.
type YearStats struct {
	Year       int        `json:"year"`
	Statistics Statistics `json:"statistics"`
}

// GPATrend computes per-year statistics from yearly distributions together
// with the least-squares slope of average GPA over time, in GPA points per
// year. The slope is nil when fewer than two years have a defined GPA.
func GPATrend(byYear map[int]Distribution) ([]YearStats, *float64) {
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	series := make([]YearStats, 0, len(years))
	var xs, ys []float64
	for _, year := range years {
		stats := Compute(byYear[year])
		series = append(series, YearStats{Year: year, Statistics: stats})
		if stats.AverageGPA != nil {
			xs = append(xs, float64(year))
			ys = append(ys, *stats.AverageGPA)
		}
	}

	if len(xs) < 2 {
		return series, nil
	}

	slope := leastSquaresSlope(xs, ys)
	slope = roundTo(slope, 4)
	return series, &slope
}

// leastSquaresSlope fits y = a + b*x and returns b. Callers guarantee at
// least two points; a degenerate x spread yields 0.
func leastSquaresSlope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// CumulativeRates reports the share of graded students at or above each
// letter band. The F row covers every graded student, so it is 100 whenever
// any student was graded.
type CumulativeRates struct {
	AtOrAboveA *float64 `json:"at_or_above_a"`
	AtOrAboveB *float64 `json:"at_or_above_b"`
	AtOrAboveC *float64 `json:"at_or_above_c"`
	AtOrAboveD *float64 `json:"at_or_above_d"`
	AtOrAboveF *float64 `json:"at_or_above_f"`
}

// Cumulative derives at-or-above band rates from computed statistics.
func Cumulative(stats Statistics) CumulativeRates {
	graded := stats.TotalGradedStudents
	c := stats.GradeCounts
	return CumulativeRates{
		AtOrAboveA: percent(c.A, graded),
		AtOrAboveB: percent(c.A+c.B, graded),
		AtOrAboveC: percent(c.A+c.B+c.C, graded),
		AtOrAboveD: percent(c.A+c.B+c.C+c.D, graded),
		AtOrAboveF: percent(c.A+c.B+c.C+c.D+c.F, graded),
	}
}
