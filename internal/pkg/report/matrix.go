package report

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin   = 10.0
	nameWidth    = 48.0
	totalWidth   = 10.0
	rowHeight    = 6.0
	maxDayColumn = 31
)

// MatrixPDF renders an attendance matrix as a landscape A4 document. Ranges wider than a month
// are split across pages, each page repeating the employee names. Long employee lists continue
// on further pages under a repeated day header.
func MatrixPDF(title string, m attendance.Matrix) ([]byte, error) {
	w := newMatrixWriter(title, m)
	w.render()

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type matrixWriter struct {
	pdf       *gofpdf.Fpdf
	title     string
	m         attendance.Matrix
	cellWidth float64
	bottom    float64

	// core fonts are cp1252 encoded
	text func(string) string
}

func newMatrixWriter(title string, m attendance.Matrix) *matrixWriter {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle(title, true)

	pageWidth, pageHeight := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin - nameWidth - 2*totalWidth

	return &matrixWriter{
		pdf:       pdf,
		title:     title,
		m:         m,
		cellWidth: usable / float64(maxDayColumn),
		bottom:    pageHeight - pageMargin,
		text:      pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (w *matrixWriter) render() {
	chunks := chunkDays(len(w.m.Days), maxDayColumn)
	if len(chunks) == 0 {
		chunks = [][2]int{{0, 0}}
	}
	for _, c := range chunks {
		w.chunk(c[0], c[1])
	}
}

// chunk writes the day columns [from, to) for every employee.
func (w *matrixWriter) chunk(from, to int) {
	pdf, m := w.pdf, w.m

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, w.text(w.title), "", 1, "L", false, 0, "")
	if to > from {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s to %s",
			m.Days[from].Date.Format("2006-01-02"), m.Days[to-1].Date.Format("2006-01-02")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	w.header(from, to)

	for _, row := range m.Rows {
		if pdf.GetY()+rowHeight > w.bottom {
			pdf.AddPage()
			w.header(from, to)
		}
		w.row(row, from, to)
	}

	if len(m.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 8, "No employees", "", 1, "L", false, 0, "")
	}
}

func (w *matrixWriter) header(from, to int) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(nameWidth, rowHeight, "Employee", "1", 0, "L", true, 0, "")
	for i := from; i < to; i++ {
		pdf.CellFormat(w.cellWidth, rowHeight, fmt.Sprintf("%d", w.m.Days[i].Date.Day()), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(totalWidth, rowHeight, "P", "1", 0, "C", true, 0, "")
	pdf.CellFormat(totalWidth, rowHeight, "A", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 7)
}

func (w *matrixWriter) row(row attendance.Row, from, to int) {
	pdf := w.pdf
	pdf.CellFormat(nameWidth, rowHeight, w.text(truncate(row.Employee.FullName(), 30)), "1", 0, "L", false, 0, "")

	present, absent := 0, 0
	for i := from; i < to; i++ {
		cell := row.Cells[i]
		fill := !cell.Day.IsWorking
		if fill {
			pdf.SetFillColor(240, 240, 240)
		}
		pdf.CellFormat(w.cellWidth, rowHeight, cellText(cell), "1", 0, "C", fill, 0, "")
		if cell.Mark != nil {
			switch cell.Mark.Status {
			case attendance.StatusPresent:
				present++
			case attendance.StatusAbsent:
				absent++
			}
		}
	}
	pdf.CellFormat(totalWidth, rowHeight, fmt.Sprintf("%d", present), "1", 0, "C", false, 0, "")
	pdf.CellFormat(totalWidth, rowHeight, fmt.Sprintf("%d", absent), "1", 1, "C", false, 0, "")
}

func cellText(c attendance.Cell) string {
	if c.Mark == nil {
		return ""
	}
	switch c.Mark.Status {
	case attendance.StatusPresent:
		return "P"
	case attendance.StatusAbsent:
		return "A"
	}
	return ""
}

// chunkDays splits n columns into [from, to) windows of at most size.
func chunkDays(n, size int) [][2]int {
	var out [][2]int
	for from := 0; from < n; from += size {
		out = append(out, [2]int{from, min(from+size, n)})
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
