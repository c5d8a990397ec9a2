package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"student-records-go/db"
	"student-records-go/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// --- Spreadsheet Handlers ---

// ExportStudents handles GET /export/students[?course=X]
func (h *APIHandler) ExportStudents(c *gin.Context) {
	students, err := h.Store.LoadAll(c.Request.Context())
	if err != nil {
		h.storageFailure(c, "ExportStudents", err)
		return
	}

	students = filterByCourse(students, c.Query("course"))
	sortByName(students)

	var buf bytes.Buffer
	if err := db.WriteStudentsToExcel(&buf, students); err != nil {
		log.Printf("[%s] Error exporting students: %v", requestID(c), err)
		respondError(c, http.StatusInternalServerError, "Failed to export students")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ImportStudents handles POST /import/students
func (h *APIHandler) ImportStudents(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("[%s] Error getting form file: %v", requestID(c), err)
		respondError(c, http.StatusBadRequest, "Error retrieving uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	log.Printf("[%s] Received file upload: %s", requestID(c), header.Filename)

	inputs, err := db.ReadStudentsFromExcel(file)
	if err != nil {
		log.Printf("[%s] Error reading students from file %s: %v", requestID(c), header.Filename, err)
		respondError(c, http.StatusBadRequest, "Failed to import students: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request.Context()
	students, err := h.Store.LoadAll(ctx)
	if err != nil {
		h.storageFailure(c, "ImportStudents", err)
		return
	}

	for _, in := range inputs {
		student := models.Student{ID: models.NextID(students)}
		student.Apply(in)
		students = append(students, student)
	}

	if len(inputs) > 0 {
		if err := h.Store.SaveAll(ctx, students); err != nil {
			h.storageFailure(c, "ImportStudents", err)
			return
		}
	}

	log.Printf("[%s] Successfully imported %d students", requestID(c), len(inputs))
	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": len(inputs),
	})
}
