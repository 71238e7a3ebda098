package gradestats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_EmptyDistribution(t *testing.T) {
	for _, grades := range []Distribution{nil, {}} {
		stats := Compute(grades)

		assert.Nil(t, stats.AverageGPA)
		assert.Nil(t, stats.PassRate)
		assert.Nil(t, stats.WithdrawalRate)
		assert.Nil(t, stats.GradeRates.A)
		assert.Nil(t, stats.GradeRates.F)
		assert.Equal(t, 0, stats.TotalStudents)
		assert.Equal(t, 0, stats.TotalGradedStudents)
		assert.Equal(t, 0, stats.TotalAFStudents)
		assert.Equal(t, GradeCounts{}, stats.GradeCounts)
		assert.Empty(t, stats.GradeDistribution)
		assert.NotNil(t, stats.GradeDistribution)
	}
}

func TestCompute_SingleAPlus(t *testing.T) {
	stats := Compute(Distribution{"A+": 10})

	require.NotNil(t, stats.AverageGPA)
	assert.Equal(t, 4.333, *stats.AverageGPA)
	assert.Equal(t, 10, stats.TotalStudents)
	assert.Equal(t, 10, stats.TotalGradedStudents)
	assert.Equal(t, 10, stats.TotalAFStudents)
	require.NotNil(t, stats.PassRate)
	assert.Equal(t, 100.0, *stats.PassRate)
	require.NotNil(t, stats.GradeRates.A)
	assert.Equal(t, 100.0, *stats.GradeRates.A)
	assert.Equal(t, 0.0, *stats.GradeRates.B)
	assert.Equal(t, 0.0, *stats.GradeRates.C)
	assert.Equal(t, 0.0, *stats.GradeRates.D)
	assert.Equal(t, 0.0, *stats.GradeRates.F)
}

func TestCompute_HalfAHalfF(t *testing.T) {
	stats := Compute(Distribution{"A": 5, "F": 5})

	require.NotNil(t, stats.AverageGPA)
	assert.Equal(t, 2.0, *stats.AverageGPA)
	assert.Equal(t, 50.0, *stats.PassRate)
	assert.Equal(t, 50.0, *stats.GradeRates.A)
	assert.Equal(t, 50.0, *stats.GradeRates.F)
	assert.Equal(t, 5, stats.GradeCounts.Passed)
	assert.Equal(t, 5, stats.GradeCounts.Failed)
}

func TestCompute_OnlyWithdrawals(t *testing.T) {
	stats := Compute(Distribution{"W": 3})

	assert.Nil(t, stats.AverageGPA)
	assert.Nil(t, stats.PassRate)
	assert.Nil(t, stats.GradeRates.A)
	assert.Nil(t, stats.GradeRates.F)
	require.NotNil(t, stats.WithdrawalRate)
	assert.Equal(t, 100.0, *stats.WithdrawalRate)
	assert.Equal(t, 3, stats.TotalStudents)
	assert.Equal(t, 0, stats.TotalGradedStudents)
	assert.Equal(t, 3, stats.GradeCounts.Withdrawn)
}

func TestCompute_SatisfactoryCountsAsPassingNotGPA(t *testing.T) {
	stats := Compute(Distribution{"S": 10, "A": 10})

	// S contributes to pass rate but never to GPA.
	require.NotNil(t, stats.AverageGPA)
	assert.Equal(t, 4.0, *stats.AverageGPA)
	assert.Equal(t, 10, stats.TotalAFStudents)
	assert.Equal(t, 20, stats.TotalGradedStudents)
	assert.Equal(t, 100.0, *stats.PassRate)
}

func TestCompute_UnknownLabelsCountTowardTotalOnly(t *testing.T) {
	stats := Compute(Distribution{"A": 4, "I": 2, "XYZ": 1})

	assert.Equal(t, 7, stats.TotalStudents)
	assert.Equal(t, 4, stats.TotalAFStudents)
	assert.Equal(t, 4, stats.TotalGradedStudents)
	assert.Equal(t, 100.0, *stats.PassRate)
}

func TestCompute_WithdrawalDenominatorIncludesEveryone(t *testing.T) {
	stats := Compute(Distribution{"A": 6, "W": 2, "I": 2})

	require.NotNil(t, stats.WithdrawalRate)
	assert.Equal(t, 20.0, *stats.WithdrawalRate)
}

func TestCompute_TotalStudentsIsSumOfCounts(t *testing.T) {
	grades := Distribution{"A+": 1, "B-": 2, "C": 3, "W": 4, "P": 5, "N": 6, "??": 7}
	sum := 0
	for _, n := range grades {
		sum += n
	}
	assert.Equal(t, sum, Compute(grades).TotalStudents)
}

func TestCompute_Rounding(t *testing.T) {
	// 1 A + 2 B = (4.0 + 6.0) / 3 = 3.3333... -> 3.333
	stats := Compute(Distribution{"A": 1, "B": 2})
	require.NotNil(t, stats.AverageGPA)
	assert.Equal(t, 3.333, *stats.AverageGPA)
	// 1/3 graded -> 33.3%
	assert.Equal(t, 33.3, *stats.GradeRates.A)
	assert.Equal(t, 66.7, *stats.GradeRates.B)
}

func TestCompute_Idempotent(t *testing.T) {
	grades := Distribution{"A": 3, "B+": 2, "W": 1, "S": 4}

	first, err := json.Marshal(Compute(grades))
	require.NoError(t, err)
	second, err := json.Marshal(Compute(grades))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// The input must survive untouched.
	assert.Equal(t, Distribution{"A": 3, "B+": 2, "W": 1, "S": 4}, grades)
}

func TestCompute_MoreAsNeverLowersGPAOrPassRate(t *testing.T) {
	base := Distribution{"A": 2, "C": 5, "F": 3}
	prevGPA := *Compute(base).AverageGPA
	prevPass := *Compute(base).PassRate

	for a := 3; a <= 30; a += 3 {
		d := Distribution{"A": a, "C": 5, "F": 3}
		stats := Compute(d)
		assert.GreaterOrEqual(t, *stats.AverageGPA, prevGPA)
		assert.GreaterOrEqual(t, *stats.PassRate, prevPass)
		prevGPA = *stats.AverageGPA
		prevPass = *stats.PassRate
	}
}

func TestCompute_DistributionEchoIsACopy(t *testing.T) {
	grades := Distribution{"A": 1}
	stats := Compute(grades)
	stats.GradeDistribution["A"] = 99
	assert.Equal(t, 1, grades["A"])
}

func TestSum(t *testing.T) {
	total := Sum(
		Distribution{"A": 1, "B": 2},
		Distribution{"A": 3, "W": 1},
		nil,
	)
	assert.Equal(t, Distribution{"A": 4, "B": 2, "W": 1}, total)
}

func TestGPATrend(t *testing.T) {
	series, slope := GPATrend(map[int]Distribution{
		2021: {"B": 10},
		2022: {"B+": 10},
		2023: {"A-": 10},
	})

	require.Len(t, series, 3)
	assert.Equal(t, 2021, series[0].Year)
	assert.Equal(t, 2023, series[2].Year)
	require.NotNil(t, slope)
	// 3.0 -> 3.333 -> 3.667 is roughly a third of a point per year.
	assert.InDelta(t, 0.3335, *slope, 0.001)
}

func TestGPATrend_TooFewYears(t *testing.T) {
	series, slope := GPATrend(map[int]Distribution{2023: {"A": 5}})
	assert.Len(t, series, 1)
	assert.Nil(t, slope)

	// Years with no A-F grades do not count toward the fit.
	_, slope = GPATrend(map[int]Distribution{
		2022: {"W": 5},
		2023: {"A": 5},
	})
	assert.Nil(t, slope)
}

func TestCumulative(t *testing.T) {
	stats := Compute(Distribution{"A": 2, "B": 3, "C": 4, "F": 1})
	cum := Cumulative(stats)

	require.NotNil(t, cum.AtOrAboveA)
	assert.Equal(t, 20.0, *cum.AtOrAboveA)
	assert.Equal(t, 50.0, *cum.AtOrAboveB)
	assert.Equal(t, 90.0, *cum.AtOrAboveC)
	assert.Equal(t, 90.0, *cum.AtOrAboveD)
	assert.Equal(t, 100.0, *cum.AtOrAboveF)
}

func TestCumulative_NoGradedStudents(t *testing.T) {
	cum := Cumulative(Compute(Distribution{"W": 4}))
	assert.Nil(t, cum.AtOrAboveA)
	assert.Nil(t, cum.AtOrAboveF)
}

func TestTermName(t *testing.T) {
	assert.Equal(t, "Fall 2023", TermName(1239))
	assert.Equal(t, "Spring 2021", TermName(1213))
	assert.Equal(t, "Summer 2019", TermName(1195))
	assert.Equal(t, "Invalid Term", TermName(1230))
}

func TestLevelPrefixes(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4"}, LevelPrefixes([]string{"undergraduate"}))
	assert.Equal(t, []string{"5", "6", "7", "8", "9"}, LevelPrefixes([]string{"master", "doctoral"}))
	assert.Nil(t, LevelPrefixes([]string{"bogus"}))
}
