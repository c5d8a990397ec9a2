package models

import (
	"encoding/json"
	"strconv"
)

// Student represents a student record
type Student struct {
	ID     int             `json:"id"`            // Assigned by the service
	Name   string          `json:"name"`          // Required
	Age    json.RawMessage `json:"age,omitempty"` // Passed through untouched
	Course string          `json:"course"`        // Required
}

// StudentInput is the writable part of a Student, decoded from a request body
type StudentInput struct {
	Name   string
	Age    json.RawMessage
	Course string
}

// MatchesID reports whether the student's id equals a path-derived id.
// Comparison is done on the string form, so "7" matches 7 and "07" does not.
func (s Student) MatchesID(id string) bool {
	return strconv.Itoa(s.ID) == id
}

// Apply replaces the writable fields, keeping the id.
func (s *Student) Apply(in StudentInput) {
	s.Name = in.Name
	s.Age = in.Age
	s.Course = in.Course
}

// NextID returns the id for a new record: the last element's id plus one,
// or 1 for an empty collection. Callers rely on the last element holding the
// largest id.
func NextID(students []Student) int {
	if len(students) == 0 {
		return 1
	}
	return students[len(students)-1].ID + 1
}

// FindIndex returns the index of the first student matching id, or -1.
func FindIndex(students []Student, id string) int {
	for i, s := range students {
		if s.MatchesID(id) {
			return i
		}
	}
	return -1
}
