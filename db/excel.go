package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"student-records-go/models"
)

const exportSheetName = "Students"

// --- Excel Import ---

// ReadStudentsFromExcel reads student rows from the first sheet of an Excel
// stream. Row 1 is a header; columns are Name, Age, Course. Rows without a
// name or course are skipped.
func ReadStudentsFromExcel(file io.Reader) ([]models.StudentInput, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		log.Printf("Error opening Excel reader: %v", err)
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Printf("Error getting rows from sheet '%s': %v", sheetName, err)
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	inputs := []models.StudentInput{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		var name, age, course string
		if len(row) > 0 {
			name = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			age = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			course = strings.TrimSpace(row[2])
		}

		if name == "" || course == "" {
			log.Printf("Skipping row %d due to missing Name or Course (Name: '%s', Course: '%s')", i+1, name, course)
			continue
		}

		inputs = append(inputs, models.StudentInput{
			Name:   name,
			Age:    ageFromCell(age),
			Course: course,
		})
	}
	return inputs, nil
}

// ageFromCell turns a cell into a JSON value: numbers stay numbers, anything
// else becomes a string, an empty cell means no age.
func ageFromCell(cell string) json.RawMessage {
	if cell == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(cell, 64); err == nil && json.Valid([]byte(cell)) {
		return json.RawMessage(cell)
	}
	b, _ := json.Marshal(cell)
	return b
}

// --- Excel Export ---

// WriteStudentsToExcel writes students to w as a workbook with one sheet
func WriteStudentsToExcel(w io.Writer, students []models.Student) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return fmt.Errorf("failed to name export sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &[]interface{}{"ID", "Name", "Age", "Course"}); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, s := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{s.ID, s.Name, ageToCell(s.Age), s.Course}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for student %d: %w", s.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write excel file: %w", err)
	}
	return nil
}

func ageToCell(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch val := v.(type) {
	case nil:
		return ""
	case float64, string, bool:
		return val
	default:
		return string(raw)
	}
}
