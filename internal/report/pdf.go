package report

import (
	"fmt"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/dpttk/bldd/internal/constants"
	"github.com/dpttk/bldd/internal/index"
)

// Page geometry, in points. A4 portrait with equal margins all around.
const (
	pdfMargin = 50

	// Vertical space reserved before emitting a header; a header that
	// does not fit moves to a fresh page.
	pdfHeaderBand = 50

	titleFontSize = 16
	archFontSize  = 14
	libFontSize   = 12
	execFontSize  = 10

	titleAdvance = 30
	archAdvance  = 20
	libAdvance   = 15
	execAdvance  = 12
	libGap       = 10
)

// pdfWriter tracks the cursor while laying out report lines top-down.
type pdfWriter struct {
	doc        *fpdf.Fpdf
	pageWidth  float64
	pageHeight float64
	y          float64
}

func newPDFWriter() *pdfWriter {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	w, h := doc.GetPageSize()

	pw := &pdfWriter{doc: doc, pageWidth: w, pageHeight: h}
	pw.newPage()
	return pw
}

func (pw *pdfWriter) newPage() {
	pw.doc.AddPage()
	pw.y = pdfMargin
}

// ensure starts a new page when less than reserve points remain.
func (pw *pdfWriter) ensure(reserve float64) {
	if pw.y > pw.pageHeight-pdfMargin-reserve {
		pw.newPage()
	}
}

func (pw *pdfWriter) text(x float64, style string, size float64, s string) {
	pw.doc.SetFont("Helvetica", style, size)
	pw.doc.Text(x, pw.y, s)
}

// execLine renders one executable entry, abbreviating paths that overflow
// the text area to ".../<basename>". Prefix information is sacrificed to
// keep the trailing segment readable.
func (pw *pdfWriter) execLine(path string) {
	if pw.y > pw.pageHeight-pdfMargin {
		pw.newPage()
	}

	pw.text(pdfMargin+10, "", execFontSize, "-> ")

	pw.doc.SetFont("Helvetica", "", execFontSize)
	line := path
	if pw.doc.GetStringWidth(path) > pw.pageWidth-2*pdfMargin-20 {
		line = abbreviatePath(path)
	}
	pw.doc.Text(pdfMargin+30, pw.y, line)

	pw.y += execAdvance
}

func abbreviatePath(path string) string {
	return ".../" + filepath.Base(path)
}

// SavePDF renders the paginated report and writes it to path. The content
// mirrors the plain-text format exactly.
func SavePDF(store *index.Store, path string) error {
	pw := newPDFWriter()

	pw.text(pdfMargin, "B", titleFontSize, Title)
	pw.y += titleAdvance

	for _, arch := range store.Architectures() {
		pw.ensure(pdfHeaderBand)
		header := fmt.Sprintf("%s %s %s", constants.ReportSeparator, arch.Tag(), constants.ReportSeparator)
		pw.text(pdfMargin, "B", archFontSize, header)
		pw.y += archAdvance

		for _, lib := range arch.LibrariesByUsage() {
			pw.ensure(pdfHeaderBand)
			pw.text(pdfMargin, "B", libFontSize, fmt.Sprintf("%s (%d execs)", lib.Name(), lib.Count()))
			pw.y += libAdvance

			for _, exec := range lib.Executables() {
				pw.execLine(exec)
			}
			pw.y += libGap
		}
	}

	if err := pw.doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("cannot save PDF to %s: %w", path, err)
	}
	return nil
}
