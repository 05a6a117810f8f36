package application

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/socialsched/goscheduler/scheduler/domain"
	"github.com/xuri/excelize/v2"
)

// sheetName is the single worksheet holding the exported rows.
const sheetName = "Scheduled Posts"

// exportHeader is the fixed column order of every export format.
var exportHeader = []string{"Date & Time", "Platform", "Caption", "Status"}

// columnWidths are character-equivalent widths per column.
var columnWidths = []float64{20, 15, 50, 12}

// Exporter projects the post sequence into tabular files under dir.
type Exporter struct {
	dir string

	// now stamps the export filename; injectable for tests.
	now func() time.Time
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{
		dir: dir,
		now: time.Now,
	}
}

// ExportXLSX serializes posts into a spreadsheet workbook and returns
// the generated filename. A serialization failure leaves no file behind.
func (e *Exporter) ExportXLSX(posts []domain.Post) (string, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to name export sheet: %w", err)
	}

	for i, row := range exportRows(posts) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", fmt.Errorf("failed to address export row %d: %w", i+1, err)
		}
		if err := workbook.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write export row %d: %w", i+1, err)
		}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", fmt.Errorf("failed to size export column %d: %w", i+1, err)
		}
		if err := workbook.SetColWidth(sheetName, col, col, width); err != nil {
			return "", fmt.Errorf("failed to size export column %s: %w", col, err)
		}
	}

	var buf bytes.Buffer
	if _, err := workbook.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return e.writeFile(e.filename("xlsx"), buf.Bytes())
}

// ExportCSV serializes posts into a comma-delimited file with the same
// columns as the workbook variant and returns the generated filename.
// Embedded delimiters and quotes survive a parse back by column.
func (e *Exporter) ExportCSV(posts []domain.Post) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.WriteAll(exportRows(posts)); err != nil {
		return "", fmt.Errorf("failed to serialize csv: %w", err)
	}

	return e.writeFile(e.filename("csv"), buf.Bytes())
}

// exportRows projects posts into the 4-column tabular shape, header
// row first. Status is rendered with its first letter capitalized.
func exportRows(posts []domain.Post) [][]string {
	rows := make([][]string, 0, len(posts)+1)
	rows = append(rows, exportHeader)

	for _, post := range posts {
		rows = append(rows, []string{
			post.ScheduledDate + " " + post.ScheduledTime,
			string(post.Platform),
			post.Caption,
			capitalize(string(post.Status)),
		})
	}

	return rows
}

// filename stamps the export with today's date, not any post's date.
func (e *Exporter) filename(ext string) string {
	return fmt.Sprintf("social-scheduler-posts-%s.%s", e.now().Format(domain.DateLayout), ext)
}

// writeFile lands content at name via a temp file and rename, so a
// failure mid-write never leaves a partial export.
func (e *Exporter) writeFile(name string, content []byte) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(e.dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(e.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize export file: %w", err)
	}

	return name, nil
}

// capitalize upper-cases the first letter only, leaving the rest as-is.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	if runes[0] >= 'a' && runes[0] <= 'z' {
		runes[0] = runes[0] - 'a' + 'A'
	}
	return string(runes)
}
