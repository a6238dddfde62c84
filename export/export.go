// Package export serializes the final question list. JSONL and CSV are the
// canonical flat outputs consumed downstream; the XLSX workbook exists for
// operators who review the question bank by hand. All three carry the same
// question set in the same order.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Avionetito/PoliciApp/exam"
)

// CSVHeader is the fixed header row of the tabular output.
var CSVHeader = []string{"tema", "number", "text", "a", "b", "c", "d", "answer"}

// WriteJSONL writes one JSON object per question, one per line.
func WriteJSONL(w io.Writer, questions []exam.Question) error {
	enc := json.NewEncoder(w)
	for _, q := range questions {
		if err := enc.Encode(q); err != nil {
			return fmt.Errorf("export: encode question %d: %w", q.Number, err)
		}
	}
	return nil
}

// WriteCSV writes the header row followed by one record per question. The
// answer column is empty for unresolved questions.
func WriteCSV(w io.Writer, questions []exam.Question) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, q := range questions {
		record := []string{q.Topic, strconv.Itoa(q.Number), q.Text}
		record = append(record, q.Options...)
		record = append(record, q.Answer)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write question %d: %w", q.Number, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes an "Preguntas" worksheet with the same columns as the
// CSV output.
func WriteXLSX(w io.Writer, questions []exam.Question) error {
	f := excelize.NewFile()
	const sheet = "Preguntas"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}

	for i, h := range CSVHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("export: write header: %w", err)
		}
	}
	for row, q := range questions {
		values := []any{q.Topic, q.Number, q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.Answer}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("export: write question %d: %w", q.Number, err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "C", "C", 60)
	_ = f.SetColWidth(sheet, "D", "G", 32)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: xlsx write: %w", err)
	}
	return nil
}

// WriteAll writes questions.jsonl, questions.csv and questions.xlsx into
// dir, creating it if needed.
func WriteAll(dir string, questions []exam.Question) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create output dir: %w", err)
	}
	writers := []struct {
		name  string
		write func(io.Writer, []exam.Question) error
	}{
		{"questions.jsonl", WriteJSONL},
		{"questions.csv", WriteCSV},
		{"questions.xlsx", WriteXLSX},
	}
	for _, wr := range writers {
		if err := writeFile(dir, wr.name, wr.write, questions); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(dir, name string, write func(io.Writer, []exam.Question) error, questions []exam.Question) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("export: create %s: %w", name, err)
	}
	if err := write(f, questions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
