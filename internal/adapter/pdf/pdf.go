// Package pdf renders plan reports as PDF documents.
package pdf

import (
	"bytes"
	"fmt"

	"fitplanner/internal/domain"

	"github.com/go-pdf/fpdf"
)

// Layout in points on a US Letter page (612x792), measured from the top.
const (
	titleX       = 200.0
	titleY       = 42.0
	bodyX        = 50.0
	bodyTop      = 92.0
	lineStep     = 20.0
	bottomMargin = 50.0
	pageHeight   = 792.0
	titleSize    = 16.0
	bodySize     = 12.0
)

// Renderer lays out report lines with Helvetica on Letter pages.
type Renderer struct{}

var _ domain.ReportRenderer = Renderer{}

// New returns a PDF renderer.
func New() Renderer {
	return Renderer{}
}

// ContentType returns the document MIME type.
func (Renderer) ContentType() string { return "application/pdf" }

// Extension returns the document file extension.
func (Renderer) Extension() string { return ".pdf" }

// Render draws lines[0] as the heading and the remaining lines as body
// text, starting a new page whenever the current one fills.
func (Renderer) Render(lines []string) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetTitle(domain.ReportTitle, true)
	doc.SetAutoPageBreak(false, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	y := bodyTop
	if len(lines) > 0 {
		doc.SetFont("Helvetica", "B", titleSize)
		doc.Text(titleX, titleY, tr(lines[0]))
		lines = lines[1:]
	}

	doc.SetFont("Helvetica", "", bodySize)
	for _, line := range lines {
		if y > pageHeight-bottomMargin {
			doc.AddPage()
			doc.SetFont("Helvetica", "", bodySize)
			y = bottomMargin
		}
		doc.Text(bodyX, y, tr(line))
		y += lineStep
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
