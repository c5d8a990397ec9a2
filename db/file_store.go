package db

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"student-records-go/models"
)

// FileStore keeps the collection as a JSON array in a single file
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// LoadAll reads and parses the backing file
func (s *FileStore) LoadAll(_ context.Context) ([]models.Student, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &StorageError{Op: "load", Target: s.Path, Err: err}
	}

	var students []models.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, &StorageError{Op: "load", Target: s.Path, Err: err}
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// SaveAll replaces the backing file with the given collection.
// The data goes to a temp file in the same directory which is then renamed
// over the target.
func (s *FileStore) SaveAll(_ context.Context, students []models.Student) error {
	if students == nil {
		students = []models.Student{}
	}
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Target: s.Path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return &StorageError{Op: "save", Target: s.Path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "save", Target: s.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", Target: s.Path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", Target: s.Path, Err: err}
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", Target: s.Path, Err: err}
	}
	return nil
}
