package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
)

// GetDepartments lists every department rollup on a campus with its grade
// statistics. Cached per campus.
func (h *Handler) GetDepartments(c *gin.Context) {
	campus := campusParam(c)

	cacheKey := "departments|" + campus
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached.(gin.H))
		return
	}

	departments, err := h.db.ListDepartments(c.Request.Context(), campus)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for i := range departments {
		stats := gradestats.Compute(departments[i].TotalGrades)
		departments[i].Stats = &stats
	}

	response := gin.H{
		"campus":      campus,
		"count":       len(departments),
		"departments": departments,
	}
	h.cache.Set(cacheKey, response, cache.DefaultExpiration)

	c.JSON(http.StatusOK, response)
}

// GetDepartment returns a single department rollup with statistics.
func (h *Handler) GetDepartment(c *gin.Context) {
	dept := strings.ToUpper(strings.TrimSpace(c.Param("dept")))
	if dept == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department abbreviation is required"})
		return
	}

	department, err := h.db.GetDepartment(c.Request.Context(), campusParam(c), dept)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	stats := gradestats.Compute(department.TotalGrades)
	department.Stats = &stats

	c.JSON(http.StatusOK, gin.H{"department": department})
}

// GetLibEds lists the liberal-education requirements.
func (h *Handler) GetLibEds(c *gin.Context) {
	libeds, err := h.db.ListLibEds(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(libeds),
		"libeds": libeds,
	})
}

// GetLibEdCourses lists courses fulfilling a liberal-education requirement,
// resolved by partial name match.
func (h *Handler) GetLibEdCourses(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requirement name is required"})
		return
	}
	limit, err := parseLimit(c, 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	libed, err := h.db.FindLibEd(c.Request.Context(), name)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	courses, err := h.db.LibEdCourses(c.Request.Context(), libed.ID, campusParam(c), limit)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	attachCourseStats(courses)

	c.JSON(http.StatusOK, gin.H{
		"libed":   libed,
		"count":   len(courses),
		"courses": courses,
	})
}

// GetReference returns the department abbreviation map and the term
// encoding rules.
func (h *Handler) GetReference(c *gin.Context) {
	departments, err := h.db.DepartmentNames(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"departments": departments,
		"terms": gin.H{
			"encoding": "1900 + term/10 is the year; the last digit is the season",
			"seasons":  gin.H{"3": "Spring", "5": "Summer", "9": "Fall"},
			"example":  gin.H{"term": 1239, "name": gradestats.TermName(1239)},
		},
	})
}
