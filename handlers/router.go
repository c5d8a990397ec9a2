package handlers

import (
	"github.com/gin-gonic/gin"
)

// NewRouter wires the student routes onto a gin engine.
// Any path under /students/ is addressed by its first segment, so
// /students/3/extra reaches the same student as /students/3.
func NewRouter(h *APIHandler) *gin.Engine {
	router := gin.Default()
	router.Use(RequestID())

	// Unknown shapes such as PUT /students must answer 404, not redirect.
	router.RedirectTrailingSlash = false

	router.GET("/students", h.ListStudents)
	router.POST("/students", h.CreateStudent)
	router.GET("/students/*rest", h.GetStudent)
	router.PUT("/students/*rest", h.UpdateStudent)
	router.DELETE("/students/*rest", h.DeleteStudent)

	// Spreadsheet routes
	router.GET("/export/students", h.ExportStudents)
	router.POST("/import/students", h.ImportStudents)

	router.GET("/ping", PingHandler)

	router.NoRoute(RouteNotFound)
	return router
}
