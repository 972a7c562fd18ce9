// Package export turns in-memory screen lists into downloadable .xlsx
// workbooks.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"rental_admin/internal/models"
)

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DateLayout is the en-IN locale date (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// location is the zone dates are shown in. India has no DST, so the fixed
// zone matches Asia/Kolkata.
var location = time.FixedZone("IST", 5*60*60+30*60)

// SetLocation changes the display zone. Call it before serving requests.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

// Column maps a record to one spreadsheet cell.
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(T) string
}

// Sheet is the export layout of one screen.
type Sheet[T any] struct {
	Name        string
	File        string
	Placeholder string
	Columns     []Column[T]
}

func (s Sheet[T]) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	return out
}

// Rows builds exactly one row per record. Blank values become the placeholder.
func (s Sheet[T]) Rows(items []T) [][]string {
	placeholder := s.Placeholder
	if placeholder == "" {
		placeholder = "-"
	}
	out := make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			v := ""
			if c.Value != nil {
				v = strings.TrimSpace(c.Value(item))
			}
			if v == "" {
				v = placeholder
			}
			row[i] = v
		}
		out = append(out, row)
	}
	return out
}

var headerStyle = &excelize.Style{
	Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
	Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
	Alignment: &excelize.Alignment{Horizontal: "center"},
}

// Write serializes the records as a workbook with a single named sheet.
func (s Sheet[T]) Write(w io.Writer, items []T) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.Name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headers := s.Headers()
	if err := writeRow(f, s.Name, 1, headers); err != nil {
		return err
	}
	for i, row := range s.Rows(items) {
		if err := writeRow(f, s.Name, i+2, row); err != nil {
			return err
		}
	}

	if len(headers) > 0 {
		style, err := f.NewStyle(headerStyle)
		if err != nil {
			return fmt.Errorf("creating header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, "A1", last, style); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	for i, c := range s.Columns {
		if c.Width <= 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, col, col, c.Width); err != nil {
			return fmt.Errorf("setting width of %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Bytes is Write into a buffer.
func (s Sheet[T]) Bytes(items []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Write(&buf, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}

// FormatDate renders an API timestamp as DD/MM/YYYY in the display zone,
// or "" if unparseable.
func FormatDate(s string) string {
	t, ok := models.ParseTime(s)
	if !ok {
		return ""
	}
	return t.In(location).Format(DateLayout)
}
