package db

import (
	"context"
	"sync"

	"student-records-go/models"
)

// MemoryStore holds the collection in memory. Used by tests and as a
// scratch backend.
type MemoryStore struct {
	mu       sync.Mutex
	students []models.Student
}

// NewMemoryStore creates a MemoryStore seeded with a copy of students
func NewMemoryStore(students ...models.Student) *MemoryStore {
	return &MemoryStore{students: cloneStudents(students)}
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStudents(s.students), nil
}

func (s *MemoryStore) SaveAll(ctx context.Context, students []models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = cloneStudents(students)
	return nil
}

func cloneStudents(in []models.Student) []models.Student {
	out := make([]models.Student, len(in))
	copy(out, in)
	return out
}
