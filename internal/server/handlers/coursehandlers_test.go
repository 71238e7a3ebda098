package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchCoursesByDept(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses?dept=CSCI")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2.0, body["count"])

	courses := asList(t, body, "courses")
	require.Len(t, courses, 2)

	// Largest enrollment first.
	first := courses[0].(map[string]any)
	second := courses[1].(map[string]any)
	require.Equal(t, "1133", first["course_num"])
	require.Equal(t, "5511", second["course_num"])

	stats := asObject(t, second, "grades_stats")
	require.Equal(t, 3.308, stats["average_gpa"])
	require.Equal(t, 92.3, stats["pass_rate"])
}

func TestSearchCoursesGeneralTerm(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses?q=artificial")
	require.Equal(t, http.StatusOK, code)

	courses := asList(t, body, "courses")
	require.Len(t, courses, 1)
	require.Equal(t, "5511", courses[0].(map[string]any)["course_num"])
}

func TestSearchCoursesMinGPAFilter(t *testing.T) {
	r := newTestRouter(t)

	// 5511 sits at 3.308 and 1133 at 3.063; only HIST 1001 (4.0) clears 3.5.
	code, body := getJSON(t, r, "/api/v1/courses?min_gpa=3.5")
	require.Equal(t, http.StatusOK, code)

	courses := asList(t, body, "courses")
	require.Len(t, courses, 1)
	require.Equal(t, "HIST", courses[0].(map[string]any)["dept_abbr"])
}

func TestSearchCoursesMaxGPAFilter(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses?max_gpa=3.1")
	require.Equal(t, http.StatusOK, code)

	courses := asList(t, body, "courses")
	require.Len(t, courses, 1)
	require.Equal(t, "1133", courses[0].(map[string]any)["course_num"])
}

func TestSearchCoursesLevelFilter(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses?dept=CSCI&level=5")
	require.Equal(t, http.StatusOK, code)

	courses := asList(t, body, "courses")
	require.Len(t, courses, 1)
	require.Equal(t, "5511", courses[0].(map[string]any)["course_num"])

	code, body = getJSON(t, r, "/api/v1/courses?dept=CSCI&level=master")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, asList(t, body, "courses"), 1)
}

func TestSearchCoursesLimitAppliesAfterFiltering(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses?limit=1")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1.0, body["count"])
	require.Len(t, asList(t, body, "courses"), 1)
}

func TestSearchCoursesBadParams(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/courses?limit=abc",
		"/api/v1/courses?limit=0",
		"/api/v1/courses?min_gpa=high",
		"/api/v1/courses?level=kindergarten",
	} {
		code, _ := getJSON(t, r, path)
		require.Equal(t, http.StatusBadRequest, code, "path %s", path)
	}
}

func TestGetCourseDetails(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses/CSCI/5511")
	require.Equal(t, http.StatusOK, code)

	course := asObject(t, body, "course")
	require.Equal(t, "Artificial Intelligence I", course["course_name"])
	stats := asObject(t, course, "grades_stats")
	require.Equal(t, 3.308, stats["average_gpa"])
	require.Equal(t, 7.1, stats["withdrawal_rate"])

	// Two Karypis terms plus one Smith term.
	require.Len(t, asList(t, body, "distributions"), 3)

	libeds := asList(t, body, "libeds")
	require.Len(t, libeds, 1)
	require.Equal(t, "Technology and Society", libeds[0])
}

func TestGetCourseDetailsNotFound(t *testing.T) {
	r := newTestRouter(t)

	code, _ := getJSON(t, r, "/api/v1/courses/CSCI/9999")
	require.Equal(t, http.StatusNotFound, code)
}

func TestGetCourseTrends(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses/CSCI/5511/trends")
	require.Equal(t, http.StatusOK, code)

	terms := asList(t, body, "terms")
	require.Len(t, terms, 3)

	first := terms[0].(map[string]any)
	require.Equal(t, 1199.0, first["term"])
	require.Equal(t, "Fall 2019", first["term_name"])
	firstStats := asObject(t, first, "statistics")
	require.Equal(t, 3.75, firstStats["average_gpa"])

	last := terms[2].(map[string]any)
	require.Equal(t, "Fall 2023", last["term_name"])

	years := asList(t, body, "years")
	require.Len(t, years, 3)
	require.Equal(t, 2019.0, years[0].(map[string]any)["year"])
	require.Equal(t, 2023.0, years[2].(map[string]any)["year"])
}

func TestGetCourseInflation(t *testing.T) {
	r := newTestRouter(t)

	// Yearly GPA falls 3.75 -> 3.5 -> 3.0, so the slope is negative.
	code, body := getJSON(t, r, "/api/v1/courses/CSCI/5511/inflation")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, -0.1875, body["gpa_slope_per_year"])
	require.Equal(t, false, body["inflation_detected"])
	require.Len(t, asList(t, body, "years"), 3)
}

func TestGetCourseInflationSingleTerm(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses/HIST/1001/inflation")
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, body["gpa_slope_per_year"])
	require.Equal(t, false, body["inflation_detected"])
}

func TestGetCoursePercentiles(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses/CSCI/5511/percentiles")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 130.0, body["total_graded_students"])

	counts := asObject(t, body, "grade_counts")
	require.Equal(t, 70.0, counts["a_count"])
	require.Equal(t, 50.0, counts["b_count"])
	require.Equal(t, 10.0, counts["f_count"])

	cumulative := asObject(t, body, "cumulative_rates")
	require.Equal(t, 53.8, cumulative["at_or_above_a"])
	require.Equal(t, 92.3, cumulative["at_or_above_b"])
	require.Equal(t, 100.0, cumulative["at_or_above_f"])
}

func TestCompareProfessorToCourse(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses/CSCI/5511/professors/101/comparison")
	require.Equal(t, http.StatusOK, code)

	profStats := asObject(t, body, "professor_statistics")
	require.Equal(t, 3.273, profStats["average_gpa"])
	courseStats := asObject(t, body, "course_statistics")
	require.Equal(t, 3.308, courseStats["average_gpa"])

	require.InDelta(t, -0.035, body["gpa_delta"].(float64), 1e-6)
	require.InDelta(t, -1.4, body["pass_rate_delta"].(float64), 1e-6)
}

func TestCompareProfessorToCourseUnknownProfessor(t *testing.T) {
	r := newTestRouter(t)

	code, _ := getJSON(t, r, "/api/v1/courses/CSCI/5511/professors/999/comparison")
	require.Equal(t, http.StatusNotFound, code)
}

func TestGetCourseRankingsEasiest(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses/rankings?order=easiest")
	require.Equal(t, http.StatusOK, code)

	courses := asList(t, body, "courses")
	require.Len(t, courses, 3)
	require.Equal(t, "1001", courses[0].(map[string]any)["course_num"])
	require.Equal(t, "5511", courses[1].(map[string]any)["course_num"])
	require.Equal(t, "1133", courses[2].(map[string]any)["course_num"])
}

func TestGetCourseRankingsHardest(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses/rankings?order=hardest")
	require.Equal(t, http.StatusOK, code)

	courses := asList(t, body, "courses")
	require.Len(t, courses, 3)
	require.Equal(t, "1133", courses[0].(map[string]any)["course_num"])
}

func TestGetCourseRankingsMinStudents(t *testing.T) {
	r := newTestRouter(t)

	code, body := getJSON(t, r, "/api/v1/courses/rankings?order=easiest&min_students=100")
	require.Equal(t, http.StatusOK, code)

	courses := asList(t, body, "courses")
	require.Len(t, courses, 2)
	for _, c := range courses {
		require.Equal(t, "CSCI", c.(map[string]any)["dept_abbr"])
	}
}

func TestGetCourseRankingsBadOrder(t *testing.T) {
	r := newTestRouter(t)

	code, _ := getJSON(t, r, "/api/v1/courses/rankings?order=sideways")
	require.Equal(t, http.StatusBadRequest, code)
}
