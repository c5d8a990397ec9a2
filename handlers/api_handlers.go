package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"student-records-go/db"
	"student-records-go/models"
)

var (
	errInvalidJSON   = errors.New("Invalid JSON data")
	errMissingFields = errors.New("Name and course are required")
)

const (
	msgStudentNotFound = "Student not found"
	msgRouteNotFound   = "Route not found"
	msgStorageFailure  = "Failed to access student storage"

	studentsPrefix = "/students/"
)

// APIHandler holds the dependencies for API handlers, like the student store
type APIHandler struct {
	Store db.Store

	// mu serializes load+mutate+save sequences
	mu sync.Mutex
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(store db.Store) *APIHandler {
	return &APIHandler{
		Store: store,
	}
}

// --- Student Handlers ---

// ListStudents handles GET /students[?course=X]
func (h *APIHandler) ListStudents(c *gin.Context) {
	students, err := h.Store.LoadAll(c.Request.Context())
	if err != nil {
		h.storageFailure(c, "ListStudents", err)
		return
	}

	students = filterByCourse(students, c.Query("course"))
	if students == nil {
		// Return empty list instead of null for JSON consistency
		c.JSON(http.StatusOK, []models.Student{})
		return
	}
	sortByName(students)
	c.JSON(http.StatusOK, students)
}

// GetStudent handles GET /students/{id}
func (h *APIHandler) GetStudent(c *gin.Context) {
	id := studentID(c)

	students, err := h.Store.LoadAll(c.Request.Context())
	if err != nil {
		h.storageFailure(c, "GetStudent", err)
		return
	}

	idx := models.FindIndex(students, id)
	if idx == -1 {
		respondError(c, http.StatusNotFound, msgStudentNotFound)
		return
	}
	c.JSON(http.StatusOK, students[idx])
}

// CreateStudent handles POST /students
func (h *APIHandler) CreateStudent(c *gin.Context) {
	input, err := bindStudentInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request.Context()
	students, err := h.Store.LoadAll(ctx)
	if err != nil {
		h.storageFailure(c, "CreateStudent", err)
		return
	}

	student := models.Student{ID: models.NextID(students)}
	student.Apply(input)
	students = append(students, student)

	if err := h.Store.SaveAll(ctx, students); err != nil {
		h.storageFailure(c, "CreateStudent", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Student added successfully",
		"student": student,
	})
}

// UpdateStudent handles PUT /students/{id}
func (h *APIHandler) UpdateStudent(c *gin.Context) {
	id := studentID(c)

	input, err := bindStudentInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request.Context()
	students, err := h.Store.LoadAll(ctx)
	if err != nil {
		h.storageFailure(c, "UpdateStudent", err)
		return
	}

	idx := models.FindIndex(students, id)
	if idx == -1 {
		respondError(c, http.StatusNotFound, msgStudentNotFound)
		return
	}

	students[idx].Apply(input)
	if err := h.Store.SaveAll(ctx, students); err != nil {
		h.storageFailure(c, "UpdateStudent", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Student updated successfully",
		"student": students[idx],
	})
}

// DeleteStudent handles DELETE /students/{id}
func (h *APIHandler) DeleteStudent(c *gin.Context) {
	id := studentID(c)

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request.Context()
	students, err := h.Store.LoadAll(ctx)
	if err != nil {
		h.storageFailure(c, "DeleteStudent", err)
		return
	}

	if models.FindIndex(students, id) == -1 {
		respondError(c, http.StatusNotFound, msgStudentNotFound)
		return
	}

	remaining := make([]models.Student, 0, len(students))
	for _, s := range students {
		if !s.MatchesID(id) {
			remaining = append(remaining, s)
		}
	}

	if err := h.Store.SaveAll(ctx, remaining); err != nil {
		h.storageFailure(c, "DeleteStudent", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}

// --- Helpers ---

// studentID returns the first path segment after /students/, taken from the
// escaped path so that an encoded slash stays inside the segment.
func studentID(c *gin.Context) string {
	rest := strings.TrimPrefix(c.Request.URL.EscapedPath(), studentsPrefix)
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// bindStudentInput reads the request body. An empty body counts as {}.
func bindStudentInput(c *gin.Context) (models.StudentInput, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[%s] Error reading request body: %v", requestID(c), err)
		return models.StudentInput{}, errInvalidJSON
	}
	return parseStudentInput(body)
}

func parseStudentInput(body []byte) (models.StudentInput, error) {
	// Only a zero-length body counts as {}; whitespace alone is invalid JSON.
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return models.StudentInput{}, errInvalidJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// Valid JSON that is not an object carries no fields.
		return models.StudentInput{}, errMissingFields
	}
	if fields == nil {
		// null
		return models.StudentInput{}, errInvalidJSON
	}

	input := models.StudentInput{
		Name:   stringField(fields["name"]),
		Age:    fields["age"],
		Course: stringField(fields["course"]),
	}
	if input.Name == "" || input.Course == "" {
		return models.StudentInput{}, errMissingFields
	}
	return input, nil
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func filterByCourse(students []models.Student, course string) []models.Student {
	if course == "" {
		return students
	}
	want := strings.ToLower(course)
	filtered := make([]models.Student, 0, len(students))
	for _, s := range students {
		if strings.ToLower(s.Course) == want {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func sortByName(students []models.Student) {
	col := collate.New(language.Und)
	sort.SliceStable(students, func(i, j int) bool {
		return col.CompareString(students[i].Name, students[j].Name) < 0
	})
}
