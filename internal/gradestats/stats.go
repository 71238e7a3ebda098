// Package gradestats derives descriptive statistics from grade-count
// distributions: average GPA, pass and withdrawal rates, and per-letter-band
// breakdowns. Compute is a total, side-effect-free function; every ratio with
// an empty denominator is reported as nil rather than zero.
//
// Classification policy: S and P count as passing (excluded from GPA), N
// counts as failing, W is the only withdrawn grade, and the withdrawal-rate
// denominator is the full student count including withdrawals. Any other
// label outside the A-F table contributes to total_students only.
package gradestats

import "math"

// Distribution maps a grade label (e.g. "A-", "W") to a student count.
type Distribution map[string]int

// gpaTable assigns grade points to the A-F grades on the standard
// third-point scale. Grades absent from this table never affect GPA.
var gpaTable = map[string]float64{
	"A+": 4.333, "A": 4.0, "A-": 3.667,
	"B+": 3.333, "B": 3.0, "B-": 2.667,
	"C+": 2.333, "C": 2.0, "C-": 1.667,
	"D+": 1.333, "D": 1.0, "D-": 0.667,
	"F": 0.0,
}

var (
	passingGrades   = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "S", "P"}
	failingGrades   = []string{"F", "N"}
	withdrawnGrades = []string{"W"}

	aBand = []string{"A+", "A", "A-"}
	bBand = []string{"B+", "B", "B-"}
	cBand = []string{"C+", "C", "C-"}
	dBand = []string{"D+", "D", "D-"}
	fBand = []string{"F"}
)

// GradeRates holds per-band percentages of graded (passing+failing)
// students. A nil rate means there were no graded students.
type GradeRates struct {
	A *float64 `json:"a_rate"`
	B *float64 `json:"b_rate"`
	C *float64 `json:"c_rate"`
	D *float64 `json:"d_rate"`
	F *float64 `json:"f_rate"`
}

// GradeCounts holds raw student counts per band and per classification.
type GradeCounts struct {
	A         int `json:"a_count"`
	B         int `json:"b_count"`
	C         int `json:"c_count"`
	D         int `json:"d_count"`
	F         int `json:"f_count"`
	Withdrawn int `json:"withdrawn_count"`
	Passed    int `json:"passed_count"`
	Failed    int `json:"failed_count"`
}

// Statistics is the derived snapshot for one distribution. Rate fields are
// nil (JSON null) when their denominator is zero.
type Statistics struct {
	AverageGPA          *float64     `json:"average_gpa"`
	TotalStudents       int          `json:"total_students"`
	TotalGradedStudents int          `json:"total_graded_students"`
	TotalAFStudents     int          `json:"total_af_students"`
	PassRate            *float64     `json:"pass_rate"`
	WithdrawalRate      *float64     `json:"withdrawal_rate"`
	GradeRates          GradeRates   `json:"grade_rates"`
	GradeCounts         GradeCounts  `json:"grade_counts"`
	GradeDistribution   Distribution `json:"grade_distribution"`
}

// Compute derives statistics from a grade distribution. It never fails: a
// nil or empty distribution yields zero counts and nil rates. The input is
// copied into the result and never mutated.
func Compute(grades Distribution) Statistics {
	stats := Statistics{GradeDistribution: Distribution{}}
	if len(grades) == 0 {
		return stats
	}

	var points float64
	for label, count := range grades {
		stats.GradeDistribution[label] = count
		stats.TotalStudents += count
		if gpa, ok := gpaTable[label]; ok {
			points += gpa * float64(count)
			stats.TotalAFStudents += count
		}
	}

	if stats.TotalAFStudents > 0 {
		gpa := roundTo(points/float64(stats.TotalAFStudents), 3)
		stats.AverageGPA = &gpa
	}

	stats.GradeCounts = GradeCounts{
		A:         sumCounts(grades, aBand),
		B:         sumCounts(grades, bBand),
		C:         sumCounts(grades, cBand),
		D:         sumCounts(grades, dBand),
		F:         sumCounts(grades, fBand),
		Withdrawn: sumCounts(grades, withdrawnGrades),
		Passed:    sumCounts(grades, passingGrades),
		Failed:    sumCounts(grades, failingGrades),
	}

	stats.TotalGradedStudents = stats.GradeCounts.Passed + stats.GradeCounts.Failed

	stats.PassRate = percent(stats.GradeCounts.Passed, stats.TotalGradedStudents)
	stats.WithdrawalRate = percent(stats.GradeCounts.Withdrawn, stats.TotalStudents)
	stats.GradeRates = GradeRates{
		A: percent(stats.GradeCounts.A, stats.TotalGradedStudents),
		B: percent(stats.GradeCounts.B, stats.TotalGradedStudents),
		C: percent(stats.GradeCounts.C, stats.TotalGradedStudents),
		D: percent(stats.GradeCounts.D, stats.TotalGradedStudents),
		F: percent(stats.GradeCounts.F, stats.TotalGradedStudents),
	}

	return stats
}

// Sum adds distributions together per grade label. Used to aggregate term
// records into course, professor, or yearly scopes.
func Sum(dists ...Distribution) Distribution {
	total := Distribution{}
	for _, d := range dists {
		for label, count := range d {
			total[label] += count
		}
	}
	return total
}

func sumCounts(grades Distribution, labels []string) int {
	n := 0
	for _, label := range labels {
		n += grades[label]
	}
	return n
}

// percent returns part/total as a percentage rounded to one decimal place,
// or nil when total is zero.
func percent(part, total int) *float64 {
	if total <= 0 {
		return nil
	}
	v := roundTo(float64(part)/float64(total)*100, 1)
	return &v
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
