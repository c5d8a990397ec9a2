package db

import (
	"context"
	"fmt"

	"student-records-go/models"
)

// Store loads and saves the whole student collection.
// Implementations do no locking; callers serialize mutations.
type Store interface {
	LoadAll(ctx context.Context) ([]models.Student, error)
	SaveAll(ctx context.Context, students []models.Student) error
}

// StorageError reports a failure to read or write the backing collection
type StorageError struct {
	Op     string // "load" or "save"
	Target string // file path or redis key
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("student storage %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
