package db

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/xuri/excelize/v2"
	"student-records-go/models"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return &buf
}

func TestReadStudentsFromExcel(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Name", "Age", "Course"},
		{"Ann", 20, "CS"},
		{"Bob", "", "Math"},
		{"", 30, "Math"},
		{"Cid", "unknown", ""},
		{"Dee", "twenty", "Art"},
	})

	inputs, err := ReadStudentsFromExcel(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inputs) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(inputs))
	}

	if inputs[0].Name != "Ann" || string(inputs[0].Age) != "20" || inputs[0].Course != "CS" {
		t.Errorf("unexpected first row: %+v", inputs[0])
	}
	if inputs[1].Age != nil {
		t.Errorf("expected no age for Bob, got %s", inputs[1].Age)
	}
	if string(inputs[2].Age) != `"twenty"` {
		t.Errorf("expected string age, got %s", inputs[2].Age)
	}
}

func TestReadStudentsFromExcel_NotAWorkbook(t *testing.T) {
	_, err := ReadStudentsFromExcel(bytes.NewBufferString("plain text"))
	if err == nil {
		t.Fatal("expected error for non-excel input")
	}
}

func TestWriteStudentsToExcel(t *testing.T) {
	students := []models.Student{
		{ID: 1, Name: "Ann", Age: json.RawMessage(`21`), Course: "CS"},
		{ID: 4, Name: "Bob", Course: "Math"},
	}

	var buf bytes.Buffer
	if err := WriteStudentsToExcel(&buf, students); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Students")
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Course" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "Ann" || rows[1][2] != "21" || rows[1][3] != "CS" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "4" || rows[2][2] != "" {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}
