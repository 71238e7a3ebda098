// Package handlers implements the HTTP query tools over the grades store.
// Every tool follows one shape: fetch distributions, compute statistics via
// gradestats, then filter, sort, and limit the enriched records. Filters on
// derived statistics always run after statistics computation, and limits
// always apply after filtering.
package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/store"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/types"
)

const (
	defaultCampus = "UMNTC"
	defaultLimit  = 20
	maxLimit      = 100
)

type Handler struct {
	db    *store.Store
	cache *cache.Cache
}

func New(db *store.Store, c *cache.Cache) *Handler {
	return &Handler{db: db, cache: c}
}

// Health responds with a simple service heartbeat.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Gopher Grades API is running",
	})
}

func campusParam(c *gin.Context) string {
	campus := strings.ToUpper(strings.TrimSpace(c.Query("campus")))
	if campus == "" {
		return defaultCampus
	}
	return campus
}

func parseLimit(c *gin.Context, fallback int) (int, error) {
	value := strings.TrimSpace(c.Query("limit"))
	if value == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("limit parameter must be a positive integer")
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}

func parseFloatParam(c *gin.Context, name string, fallback float64) (float64, error) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parameter must be a number", name)
	}
	return f, nil
}

// parseLevels turns repeated level parameters (digits 1-9 or the named
// levels undergraduate/master/doctoral) into course-number prefixes.
func parseLevels(c *gin.Context) ([]string, error) {
	values := c.QueryArray("level")
	var digits, names []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if len(v) == 1 && v >= "1" && v <= "9" {
			digits = append(digits, v)
			continue
		}
		switch v {
		case "undergraduate", "master", "doctoral":
			names = append(names, v)
		default:
			return nil, fmt.Errorf("level must be a digit 1-9 or one of undergraduate, master, doctoral")
		}
	}
	return append(digits, gradestats.LevelPrefixes(names)...), nil
}

// respondStoreError maps ErrNotFound to 404 and everything else to 500.
func respondStoreError(c *gin.Context, err error) {
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("query failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
}

// withinGPABounds keeps records whose GPA is inside [min, max]. Courses
// without a defined GPA are never filtered out: the bounds constrain a
// statistic, not its absence.
func withinGPABounds(stats *gradestats.Statistics, minGPA, maxGPA float64) bool {
	if stats == nil || stats.AverageGPA == nil {
		return true
	}
	if minGPA > 0 && *stats.AverageGPA < minGPA {
		return false
	}
	if maxGPA < 5 && *stats.AverageGPA > maxGPA {
		return false
	}
	return true
}

// sortCoursesByGPA orders courses by average GPA. Records without a GPA
// rank last in either direction.
func sortCoursesByGPA(courses []types.Course, descending bool) {
	sentinel := -1.0
	if !descending {
		sentinel = 99.0
	}
	key := func(c types.Course) float64 {
		if c.Stats == nil || c.Stats.AverageGPA == nil {
			return sentinel
		}
		return *c.Stats.AverageGPA
	}
	sort.SliceStable(courses, func(i, j int) bool {
		if descending {
			return key(courses[i]) > key(courses[j])
		}
		return key(courses[i]) < key(courses[j])
	})
}

// attachCourseStats computes statistics for courses that carry grades.
func attachCourseStats(courses []types.Course) {
	for i := range courses {
		if len(courses[i].TotalGrades) == 0 {
			continue
		}
		stats := gradestats.Compute(courses[i].TotalGrades)
		courses[i].Stats = &stats
	}
}
