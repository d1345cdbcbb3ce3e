package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"feasibility-workers/internal/feasibility"
	"feasibility-workers/internal/models"
)

const fontFamily = "Helvetica"

type Config struct {
	BrandName string
	Currency  string
	// Now stamps the copyright year and the PDF creation date.
	Now func() time.Time
}

func DefaultConfig() Config {
	return Config{
		BrandName: "AlphaBeta Consulting",
		Currency:  "EUR",
		Now:       time.Now,
	}
}

// Result is one rendered document.
type Result struct {
	Type     DocumentType
	Filename string
	Bytes    []byte
	Pages    int
	Score    int
}

type Renderer struct {
	cfg Config
}

func NewRenderer(cfg Config) *Renderer {
	def := DefaultConfig()
	if cfg.BrandName == "" {
		cfg.BrandName = def.BrandName
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	return &Renderer{cfg: cfg}
}

// Render is a shorthand for NewRenderer(DefaultConfig()).Render.
func Render(set models.AnswerSet, t DocumentType) (*Result, error) {
	return NewRenderer(DefaultConfig()).Render(set, t)
}

// Layout computes the pages of a document without producing a PDF.
// Derived fields are recomputed from the editable answers first.
func (r *Renderer) Layout(set models.AnswerSet, t DocumentType, m Measurer) ([]Page, int) {
	set = feasibility.Recompute(set)
	score := feasibility.ComputeFeasibilityScore(set)

	var blocks []Block
	switch t {
	case TypeSummary:
		blocks = r.summaryBlocks(set, m)
	default:
		blocks = r.feasibilityBlocks(set, score)
	}
	return Paginate(blocks), score
}

func (r *Renderer) Render(set models.AnswerSet, t DocumentType) (*Result, error) {
	if _, err := ParseDocumentType(string(t)); err != nil {
		return nil, err
	}

	pdf := r.newPDF(t)
	pages, score := r.Layout(set, t, newPDFMeasurer(pdf))

	data, err := r.draw(pdf, t, pages)
	if err != nil {
		return nil, err
	}

	return &Result{
		Type:     t,
		Filename: Filename(t, set.BusinessName),
		Bytes:    data,
		Pages:    len(pages),
		Score:    score,
	}, nil
}

func (r *Renderer) newPDF(t DocumentType) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(r.cfg.Now())
	pdf.SetTitle(t.Title(), true)
	pdf.SetAuthor(r.cfg.BrandName, true)
	return pdf
}

func (r *Renderer) draw(pdf *fpdf.Fpdf, t DocumentType, pages []Page) ([]byte, error) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	year := r.cfg.Now().Year()

	for _, p := range pages {
		pdf.AddPage()
		r.drawHeader(pdf, tr, t.Title())
		r.drawFooter(pdf, tr, p.Number, year)
		for _, op := range p.Ops {
			drawOp(pdf, tr, op)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFillColor(brandBlue.R, brandBlue.G, brandBlue.B)
	pdf.Rect(0, 0, PageWidth, HeaderHeight, "F")
	pdf.SetTextColor(white.R, white.G, white.B)
	pdf.SetFont(fontFamily, "", 24)
	pdf.Text(MarginX, brandY, tr(r.cfg.BrandName))
	pdf.SetFont(fontFamily, "", 16)
	pdf.Text(MarginX, titleY, tr(title))
}

func (r *Renderer) drawFooter(pdf *fpdf.Fpdf, tr func(string) string, page, year int) {
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(footerGray.R, footerGray.G, footerGray.B)
	drawCentered(pdf, tr, footerPageY, fmt.Sprintf("Page %d", page))
	drawCentered(pdf, tr, footerCopyrightY, fmt.Sprintf("© %d %s", year, r.cfg.BrandName))
}

func drawOp(pdf *fpdf.Fpdf, tr func(string) string, op Op) {
	switch op.Kind {
	case OpRoundedRect:
		pdf.SetFillColor(op.Color.R, op.Color.G, op.Color.B)
		pdf.RoundedRect(op.X, op.Y, op.W, op.H, op.Radius, "1234", "F")
	case OpText:
		pdf.SetFont(fontFamily, string(op.Style), op.Size)
		pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
		if op.Align == AlignCenter {
			drawCentered(pdf, tr, op.Y, op.Text)
			return
		}
		pdf.Text(op.X, op.Y, tr(op.Text))
	}
}

func drawCentered(pdf *fpdf.Fpdf, tr func(string) string, y float64, s string) {
	s = tr(s)
	pdf.Text(CenterX-pdf.GetStringWidth(s)/2, y, s)
}

// pdfMeasurer measures with the core font metrics of the target document.
type pdfMeasurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFMeasurer(pdf *fpdf.Fpdf) *pdfMeasurer {
	return &pdfMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *pdfMeasurer) StringWidth(s string, size float64, style FontStyle) float64 {
	m.pdf.SetFont(fontFamily, string(style), size)
	return m.pdf.GetStringWidth(m.tr(s))
}
