// Package render: PDF renderer.
// Lays out a document tree with gofpdf. Headings get variable font sizes,
// paragraphs honour text alignment, and tables are drawn as equal-width
// cell grids. Images and embedded HTML blocks are not rendered.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/richtree/core"
	"github.com/gaurav-prasanna/richtree/core/doctree"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin = 15.0
	pdfIndent = 6.0
)

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// PDFRenderer renders a document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// pdfWriter carries the page and the translator for one render.
type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	indent float64
}

// Render converts the document into PDF bytes.
func (r *PDFRenderer) Render(doc *doctree.Node, meta core.DocumentMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, w.tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	for _, c := range doc.Content {
		w.block(c)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("laying out PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (w *pdfWriter) block(n *doctree.Node) {
	pdf := w.pdf
	switch n.Type {
	case doctree.NodeHeading:
		size, ok := headingSizes[n.Attrs.Int("level")]
		if !ok {
			size = 10
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, size*0.6, w.tr(strings.TrimSpace(n.TextContent())), "", "L", false)
		pdf.Ln(2)

	case doctree.NodeParagraph:
		w.paragraph(n, alignment(n.Attrs.String("textAlign")))

	case doctree.NodeText:
		w.paragraph(n, "L")

	case doctree.NodeCodeBlock:
		pdf.Ln(2)
		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		for _, line := range strings.Split(n.TextContent(), "\n") {
			pdf.MultiCell(0, 4.5, w.tr(line), "", "L", true)
		}
		pdf.Ln(2)

	case doctree.NodeBulletList, doctree.NodeOrderedList:
		w.list(n)

	case doctree.NodeBlockQuote:
		w.indented(func() {
			pdf.SetTextColor(80, 80, 80)
			for _, c := range n.Content {
				w.block(c)
			}
			pdf.SetTextColor(0, 0, 0)
		})

	case doctree.NodeTable:
		w.table(n)

	case doctree.NodeThematicBreak:
		pdf.Ln(3)
		y := pdf.GetY()
		pageW, _ := pdf.GetPageSize()
		pdf.SetDrawColor(180, 180, 180)
		pdf.Line(pdfMargin+w.indent, y, pageW-pdfMargin, y)
		pdf.Ln(3)

	case doctree.NodeImage, doctree.NodeHTMLBlock, doctree.NodeHTMLComment:
		// Not rendered.

	default:
		for _, c := range n.Content {
			w.block(c)
		}
	}
}

// paragraph writes the inline text of n. Strong-only and emph-only
// paragraphs take the matching font style.
func (w *pdfWriter) paragraph(n *doctree.Node, align string) {
	text := strings.TrimSpace(n.TextContent())
	if text == "" {
		return
	}
	w.pdf.SetFont("Helvetica", fontStyle(n), 10)
	w.pdf.MultiCell(0, 5, w.tr(text), "", align, false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) list(n *doctree.Node) {
	order := n.Attrs.Int("order")
	if order < 1 {
		order = 1
	}
	w.indented(func() {
		for i, item := range n.Content {
			prefix := "• "
			if n.Type == doctree.NodeOrderedList {
				prefix = strconv.Itoa(order+i) + ". "
			}
			if item.Attrs.Bool("task") {
				if item.Attrs.Bool("checked") {
					prefix += "[x] "
				} else {
					prefix += "[ ] "
				}
			}
			w.listItem(item, prefix)
		}
	})
}

// listItem writes the prefix in front of the item's first paragraph and
// renders any nested blocks below it.
func (w *pdfWriter) listItem(item *doctree.Node, prefix string) {
	first := true
	for _, c := range item.Content {
		if first && (c.Type == doctree.NodeParagraph || c.Type == doctree.NodeText) {
			w.pdf.SetFont("Helvetica", fontStyle(c), 10)
			w.pdf.MultiCell(0, 5, w.tr(prefix+strings.TrimSpace(c.TextContent())), "", "L", false)
			first = false
			continue
		}
		if first {
			w.pdf.SetFont("Helvetica", "", 10)
			w.pdf.MultiCell(0, 5, w.tr(strings.TrimSpace(prefix)), "", "L", false)
			first = false
		}
		w.block(c)
	}
	if first {
		w.pdf.SetFont("Helvetica", "", 10)
		w.pdf.MultiCell(0, 5, w.tr(strings.TrimSpace(prefix)), "", "L", false)
	}
}

func (w *pdfWriter) table(n *doctree.Node) {
	var rows []*doctree.Node
	doctree.Walk(n, func(c *doctree.Node) bool {
		if c.Type == doctree.NodeTableRow {
			rows = append(rows, c)
			return false
		}
		return true
	})
	cols := 0
	for _, row := range rows {
		if len(row.Content) > cols {
			cols = len(row.Content)
		}
	}
	if cols == 0 {
		return
	}

	pageW, _ := w.pdf.GetPageSize()
	cellW := (pageW - 2*pdfMargin - w.indent) / float64(cols)
	w.pdf.Ln(2)
	for _, row := range rows {
		w.pdf.SetX(pdfMargin + w.indent)
		for i := 0; i < cols; i++ {
			text, style, align := "", "", "L"
			if i < len(row.Content) {
				cell := row.Content[i]
				text = strings.Join(strings.Fields(cell.TextContent()), " ")
				if cell.Type == doctree.NodeTableHeadCell {
					style = "B"
				}
				align = alignment(cell.Attrs.String("align"))
			}
			w.pdf.SetFont("Helvetica", style, 9)
			w.pdf.CellFormat(cellW, 6, w.tr(fitText(w.pdf, text, cellW-2)), "1", 0, align, false, 0, "")
		}
		w.pdf.Ln(-1)
	}
	w.pdf.Ln(2)
}

// indented runs fn with the left margin moved in one step.
func (w *pdfWriter) indented(fn func()) {
	w.indent += pdfIndent
	w.pdf.SetLeftMargin(pdfMargin + w.indent)
	w.pdf.SetX(pdfMargin + w.indent)
	fn()
	w.indent -= pdfIndent
	w.pdf.SetLeftMargin(pdfMargin + w.indent)
	w.pdf.SetX(pdfMargin + w.indent)
}

// fontStyle returns "B" or "I" when every text run of n is strong or
// emphasized.
func fontStyle(n *doctree.Node) string {
	strong, emph, seen := true, true, false
	doctree.Walk(n, func(c *doctree.Node) bool {
		if c.Type == doctree.NodeText && strings.TrimSpace(c.Text) != "" {
			seen = true
			strong = strong && c.HasMark(doctree.MarkStrong)
			emph = emph && c.HasMark(doctree.MarkEmph)
		}
		return true
	})
	switch {
	case !seen:
		return ""
	case strong && emph:
		return "BI"
	case strong:
		return "B"
	case emph:
		return "I"
	}
	return ""
}

// alignment maps a CSS text-align value to a gofpdf alignment string.
func alignment(align string) string {
	switch strings.ToLower(align) {
	case "center":
		return "C"
	case "right":
		return "R"
	case "justify":
		return "J"
	}
	return "L"
}

// fitText truncates s so it fits in width at the current font.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
