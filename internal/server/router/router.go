package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/server/handlers"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/server/middleware"
)

// New wires handlers and middleware into an HTTP router.
func New(handler *handlers.Handler, mw *middleware.Manager) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), mw.RequestLog(), mw.CORS())

	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	v1.Use(mw.RateLimit())
	{
		courses := v1.Group("/courses")
		{
			courses.GET("", handler.SearchCourses)
			courses.GET("/rankings", handler.GetCourseRankings)
			courses.GET("/:dept/:number", handler.GetCourseDetails)
			courses.GET("/:dept/:number/trends", handler.GetCourseTrends)
			courses.GET("/:dept/:number/inflation", handler.GetCourseInflation)
			courses.GET("/:dept/:number/percentiles", handler.GetCoursePercentiles)
			courses.GET("/:dept/:number/professors/:id/comparison", handler.CompareProfessorToCourse)
		}

		professors := v1.Group("/professors")
		{
			professors.GET("", handler.SearchProfessors)
			professors.GET("/:id", handler.GetProfessorDetails)
		}

		departments := v1.Group("/departments")
		{
			departments.GET("", handler.GetDepartments)
			departments.GET("/:dept", handler.GetDepartment)
		}

		libeds := v1.Group("/libeds")
		{
			libeds.GET("", handler.GetLibEds)
			libeds.GET("/:name/courses", handler.GetLibEdCourses)
		}

		v1.GET("/reference/terms", handler.GetReference)
		v1.POST("/stats", handler.ComputeStats)
	}

	return router
}
