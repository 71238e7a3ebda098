package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/types"
)

// inflationThreshold is the yearly GPA slope above which a course is
// flagged as inflating, in grade points per year.
const inflationThreshold = 0.02

// SearchCourses searches courses with optional filters.
// Query parameters:
//   - q: general search term matched against dept+number, description, dept
//   - campus: campus code (default UMNTC)
//   - dept: department abbreviation (e.g., "CSCI")
//   - number: course number (e.g., "5511")
//   - level: repeatable; digit 1-9 or undergraduate/master/doctoral
//   - min_gpa, max_gpa: average-GPA bounds, applied after statistics
//   - limit: maximum results, applied after filtering
func (h *Handler) SearchCourses(c *gin.Context) {
	limit, err := parseLimit(c, defaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	minGPA, err := parseFloatParam(c, "min_gpa", -1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	maxGPA, err := parseFloatParam(c, "max_gpa", 5)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prefixes, err := parseLevels(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := types.CourseQuery{
		Campus:        campusParam(c),
		DeptAbbr:      strings.TrimSpace(c.Query("dept")),
		CourseNum:     strings.TrimSpace(c.Query("number")),
		LevelPrefixes: prefixes,
		Search:        strings.TrimSpace(c.Query("q")),
	}

	courses, err := h.db.SearchCourses(c.Request.Context(), query)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	attachCourseStats(courses)

	if minGPA > 0 || maxGPA < 5 {
		filtered := courses[:0]
		for _, course := range courses {
			if withinGPABounds(course.Stats, minGPA, maxGPA) {
				filtered = append(filtered, course)
			}
		}
		courses = filtered
	}

	if limit > 0 && len(courses) > limit {
		courses = courses[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(courses),
		"courses": courses,
		"query": gin.H{
			"q":       query.Search,
			"campus":  query.Campus,
			"dept":    query.DeptAbbr,
			"number":  query.CourseNum,
			"level":   prefixes,
			"min_gpa": minGPA,
			"max_gpa": maxGPA,
		},
	})
}

// GetCourseDetails returns one course with its grade distribution and
// statistics per professor and term, plus fulfilled liberal-education
// requirements.
func (h *Handler) GetCourseDetails(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	offerings, err := h.db.CourseOfferings(c.Request.Context(), course.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for i := range offerings {
		stats := gradestats.Compute(offerings[i].Grades)
		offerings[i].Stats = &stats
	}

	libeds, err := h.db.CourseLibEds(c.Request.Context(), course.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	stats := gradestats.Compute(course.TotalGrades)
	course.Stats = &stats

	c.JSON(http.StatusOK, gin.H{
		"course":        course,
		"distributions": offerings,
		"libeds":        libeds,
	})
}

// GetCourseTrends returns per-term and per-year statistics for a course
// across all professors.
func (h *Handler) GetCourseTrends(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	records, err := h.db.CourseTermRecords(c.Request.Context(), course.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	// Several professors may grade the same term; merge before computing.
	byTerm := map[int]gradestats.Distribution{}
	for _, rec := range records {
		byTerm[rec.Term] = gradestats.Sum(byTerm[rec.Term], rec.Grades)
	}
	terms := make([]int, 0, len(byTerm))
	for term := range byTerm {
		terms = append(terms, term)
	}
	sort.Ints(terms)

	type termTrend struct {
		Term       int                   `json:"term"`
		TermName   string                `json:"term_name"`
		Statistics gradestats.Statistics `json:"statistics"`
	}
	termSeries := make([]termTrend, 0, len(terms))
	for _, term := range terms {
		termSeries = append(termSeries, termTrend{
			Term:       term,
			TermName:   gradestats.TermName(term),
			Statistics: gradestats.Compute(byTerm[term]),
		})
	}

	yearSeries, _ := gradestats.GPATrend(groupByYear(records))

	c.JSON(http.StatusOK, gin.H{
		"dept_abbr":  course.DeptAbbr,
		"course_num": course.CourseNum,
		"terms":      termSeries,
		"years":      yearSeries,
	})
}

// GetCourseInflation reports the yearly GPA series for a course and
// whether its least-squares slope indicates grade inflation.
func (h *Handler) GetCourseInflation(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	records, err := h.db.CourseTermRecords(c.Request.Context(), course.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	series, slope := gradestats.GPATrend(groupByYear(records))

	detected := slope != nil && *slope >= inflationThreshold && len(series) >= 3

	c.JSON(http.StatusOK, gin.H{
		"dept_abbr":          course.DeptAbbr,
		"course_num":         course.CourseNum,
		"years":              series,
		"gpa_slope_per_year": slope,
		"inflation_detected": detected,
	})
}

// GetCoursePercentiles returns band counts and rates for a course plus the
// cumulative share of graded students at or above each band.
func (h *Handler) GetCoursePercentiles(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	stats := gradestats.Compute(course.TotalGrades)

	c.JSON(http.StatusOK, gin.H{
		"dept_abbr":             course.DeptAbbr,
		"course_num":            course.CourseNum,
		"total_graded_students": stats.TotalGradedStudents,
		"grade_counts":          stats.GradeCounts,
		"grade_rates":           stats.GradeRates,
		"cumulative_rates":      gradestats.Cumulative(stats),
	})
}

// CompareProfessorToCourse contrasts one professor's grading in a course
// against the course aggregate across all professors.
func (h *Handler) CompareProfessorToCourse(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	profID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professor id must be an integer"})
		return
	}

	professor, err := h.db.GetProfessor(c.Request.Context(), profID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	records, err := h.db.ProfessorCourseTermRecords(c.Request.Context(), profID, course.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	profDist := gradestats.Distribution{}
	for _, rec := range records {
		profDist = gradestats.Sum(profDist, rec.Grades)
	}

	profStats := gradestats.Compute(profDist)
	courseStats := gradestats.Compute(course.TotalGrades)

	c.JSON(http.StatusOK, gin.H{
		"course":               course,
		"professor":            professor,
		"professor_statistics": profStats,
		"course_statistics":    courseStats,
		"gpa_delta":            floatDelta(profStats.AverageGPA, courseStats.AverageGPA),
		"pass_rate_delta":      floatDelta(profStats.PassRate, courseStats.PassRate),
	})
}

// GetCourseRankings lists the easiest or hardest courses by average GPA.
// Query parameters: order (easiest|hardest), campus, dept, level,
// min_students, limit. Results are cached per query.
func (h *Handler) GetCourseRankings(c *gin.Context) {
	order := strings.ToLower(strings.TrimSpace(c.DefaultQuery("order", "easiest")))
	if order != "easiest" && order != "hardest" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be easiest or hardest"})
		return
	}
	limit, err := parseLimit(c, defaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	minStudents, err := parseFloatParam(c, "min_students", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prefixes, err := parseLevels(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := types.CourseQuery{
		Campus:        campusParam(c),
		DeptAbbr:      strings.TrimSpace(c.Query("dept")),
		LevelPrefixes: prefixes,
	}

	cacheKey := fmt.Sprintf("rankings|%s|%s|%s|%v|%v|%d",
		order, query.Campus, query.DeptAbbr, prefixes, minStudents, limit)
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached.(gin.H))
		return
	}

	courses, err := h.db.SearchCourses(c.Request.Context(), query)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	attachCourseStats(courses)

	filtered := courses[:0]
	for _, course := range courses {
		if course.TotalStudents >= int(minStudents) {
			filtered = append(filtered, course)
		}
	}
	courses = filtered

	sortCoursesByGPA(courses, order == "easiest")

	if limit > 0 && len(courses) > limit {
		courses = courses[:limit]
	}

	response := gin.H{
		"order":   order,
		"count":   len(courses),
		"courses": courses,
	}
	h.cache.Set(cacheKey, response, cache.DefaultExpiration)

	c.JSON(http.StatusOK, response)
}

// loadCourse resolves the :dept/:number path pair, answering 404 itself
// when the course does not exist.
func (h *Handler) loadCourse(c *gin.Context) (*types.Course, bool) {
	dept := strings.TrimSpace(c.Param("dept"))
	number := strings.TrimSpace(c.Param("number"))
	if dept == "" || number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department and course number are required"})
		return nil, false
	}

	course, err := h.db.GetCourse(c.Request.Context(), campusParam(c), dept, number)
	if err != nil {
		respondStoreError(c, err)
		return nil, false
	}
	return course, true
}

// groupByYear merges term records into calendar-year distributions.
func groupByYear(records []types.TermRecord) map[int]gradestats.Distribution {
	byYear := map[int]gradestats.Distribution{}
	for _, rec := range records {
		year := gradestats.TermYear(rec.Term)
		byYear[year] = gradestats.Sum(byYear[year], rec.Grades)
	}
	return byYear
}

func floatDelta(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := *a - *b
	return &d
}
