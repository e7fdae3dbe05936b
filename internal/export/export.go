// Package export renders semester reports in json, csv and pdf form.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"semtrack/internal/docstore"
	"semtrack/internal/logger"
	"semtrack/pkg/palette"
)

type Exporter struct {
	store *docstore.Store
}

func New(store *docstore.Store) *Exporter {
	return &Exporter{store: store}
}

// Export renders the named semester, or every known semester when name
// is empty, in the requested format.
func (e *Exporter) Export(ctx context.Context, semester, format string) ([]byte, error) {
	var names []string
	if semester != "" {
		names = []string{semester}
	} else {
		names = e.store.SemesterNames(ctx)
	}

	report := make(map[string]docstore.SemesterRecord, len(names))
	for _, name := range names {
		report[name] = e.store.SemesterData(ctx, name)
	}

	logger.Export().Debug("exporting %d semester(s) as %s", len(names), format)

	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(report, "", "  ")
	case "csv":
		return renderCSV(names, report)
	case "pdf":
		return renderPDF(names, report)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func renderCSV(names []string, report map[string]docstore.SemesterRecord) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"semester", "subject", "color", "task_index", "title", "due_date", "completed"})

	for _, name := range names {
		for _, subjectName := range sortedSubjects(report[name]) {
			subject := report[name][subjectName]
			if len(subject.Tasks) == 0 {
				_ = w.Write([]string{name, subjectName, subject.ColorTag, "", "", "", ""})
				continue
			}
			for i, task := range subject.Tasks {
				_ = w.Write([]string{
					name, subjectName, subject.ColorTag,
					strconv.Itoa(i), task.Title, task.DueDate, strconv.FormatBool(task.Completed),
				})
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func renderPDF(names []string, report map[string]docstore.SemesterRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Semester Task Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(40, 6, "generated "+time.Now().Format(palette.DateLayout))
	pdf.Ln(10)

	for _, name := range names {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(40, 8, name)
		pdf.Ln(9)

		for _, subjectName := range sortedSubjects(report[name]) {
			subject := report[name][subjectName]

			r, g, b := hexRGB(subject.ColorTag)
			pdf.SetFont("Arial", "B", 10)
			pdf.SetTextColor(r, g, b)
			pdf.Cell(40, 6, subjectName)
			pdf.Ln(7)

			pdf.SetFont("Arial", "", 10)
			pdf.SetTextColor(60, 60, 60)
			for _, task := range subject.Tasks {
				mark := "[ ]"
				if task.Completed {
					mark = "[x]"
				}
				line := fmt.Sprintf("%s %s (due %s)", mark, task.Title, task.DueDate)
				pdf.MultiCell(0, 5, line, "0", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedSubjects(record docstore.SemesterRecord) []string {
	names := make([]string, 0, len(record))
	for name := range record {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// hexRGB parses "#RRGGBB"; anything unparsable falls back to black.
func hexRGB(color string) (int, int, int) {
	color = strings.TrimPrefix(color, "#")
	if len(color) != 6 {
		return 0, 0, 0
	}
	value, err := strconv.ParseUint(color, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(value >> 16 & 0xFF), int(value >> 8 & 0xFF), int(value & 0xFF)
}
