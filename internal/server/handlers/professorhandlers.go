package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/types"
)

// SearchProfessors searches professors by name and/or database ID and
// attaches the courses each has taught.
// Query parameters: name (substring, spaces ignored), id, limit.
func (h *Handler) SearchProfessors(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	idValue := strings.TrimSpace(c.Query("id"))

	var profID int
	if idValue != "" {
		var err error
		profID, err = strconv.Atoi(idValue)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id parameter must be an integer"})
			return
		}
	}
	if name == "" && profID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a name or an id"})
		return
	}

	limit, err := parseLimit(c, defaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	professors, err := h.db.SearchProfessors(c.Request.Context(), types.ProfessorQuery{
		ID:    profID,
		Name:  name,
		Limit: limit,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	type professorResult struct {
		types.Professor
		CoursesTaught []types.TaughtCourse `json:"courses_taught"`
	}
	results := make([]professorResult, 0, len(professors))
	for _, prof := range professors {
		courses, err := h.db.ProfessorCourses(c.Request.Context(), prof.ID, campusParam(c))
		if err != nil {
			respondStoreError(c, err)
			return
		}
		results = append(results, professorResult{Professor: prof, CoursesTaught: courses})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      len(results),
		"professors": results,
	})
}

// GetProfessorDetails returns a professor with overall grade statistics
// across every course they taught, plus per-course and per-term breakdowns.
func (h *Handler) GetProfessorDetails(c *gin.Context) {
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

	records, err := h.db.ProfessorTermRecords(c.Request.Context(), profID, campusParam(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	type termDetail struct {
		Term       int                     `json:"term"`
		TermName   string                  `json:"term_name"`
		Students   int                     `json:"students"`
		Grades     gradestats.Distribution `json:"grades"`
		Statistics gradestats.Statistics   `json:"statistics"`
	}
	type courseDetail struct {
		DeptAbbr    string                  `json:"dept_abbr"`
		CourseNum   string                  `json:"course_num"`
		CourseName  string                  `json:"course_name"`
		OnestopLink string                  `json:"onestop_link,omitempty"`
		Description string                  `json:"course_description,omitempty"`
		CredMin     int                     `json:"cred_min"`
		CredMax     int                     `json:"cred_max"`
		Students    int                     `json:"students"`
		Grades      gradestats.Distribution `json:"grades"`
		Statistics  gradestats.Statistics   `json:"statistics"`
		Terms       []termDetail            `json:"terms"`
	}

	overall := gradestats.Distribution{}
	totalStudents := 0
	var courses []courseDetail
	index := map[string]int{}

	// Records arrive ordered by course then term, so grouping preserves
	// department/number order.
	for _, rec := range records {
		key := rec.DeptAbbr + " " + rec.CourseNum
		i, seen := index[key]
		if !seen {
			i = len(courses)
			index[key] = i
			courses = append(courses, courseDetail{
				DeptAbbr:    rec.DeptAbbr,
				CourseNum:   rec.CourseNum,
				CourseName:  rec.CourseName,
				OnestopLink: rec.OnestopLink,
				Description: rec.Description,
				CredMin:     rec.CredMin,
				CredMax:     rec.CredMax,
				Grades:      gradestats.Distribution{},
			})
		}

		courses[i].Students += rec.Students
		courses[i].Grades = gradestats.Sum(courses[i].Grades, rec.Grades)
		courses[i].Terms = append(courses[i].Terms, termDetail{
			Term:       rec.Term,
			TermName:   gradestats.TermName(rec.Term),
			Students:   rec.Students,
			Grades:     rec.Grades,
			Statistics: gradestats.Compute(rec.Grades),
		})

		totalStudents += rec.Students
		overall = gradestats.Sum(overall, rec.Grades)
	}

	for i := range courses {
		courses[i].Statistics = gradestats.Compute(courses[i].Grades)
	}

	c.JSON(http.StatusOK, gin.H{
		"professor": professor,
		"overall_statistics": gin.H{
			"statistics":                 gradestats.Compute(overall),
			"unique_courses":             len(courses),
			"total_students_taught":      totalStudents,
			"overall_grade_distribution": overall,
		},
		"details_per_course": courses,
	})
}
