// Package document lays out and renders the feasibility test and the
// operational summary as paginated PDFs.
//
// Rendering is split in two passes. Layout turns an answer-set into pages
// of positioned drawing operations without touching a PDF surface; Draw
// paints those pages with go-pdf/fpdf.
package document

import (
	"fmt"
	"strings"
	"unicode"
)

// DocumentType selects which document is produced.
type DocumentType string

const (
	TypeFeasibility DocumentType = "feasibility"
	TypeSummary     DocumentType = "summary"
)

// ParseDocumentType validates a wire value.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case TypeFeasibility, TypeSummary:
		return DocumentType(s), nil
	default:
		return "", fmt.Errorf("unknown document type %q", s)
	}
}

// Title is the text printed in the header band.
func (t DocumentType) Title() string {
	if t == TypeSummary {
		return "Résumé Opérationnel"
	}
	return "Test de Faisabilité (au mois)"
}

func (t DocumentType) filePrefix() string {
	if t == TypeSummary {
		return "Resume-Operationnel"
	}
	return "Test-Faisabilite"
}

// Filename derives the saved file name: each whitespace run in the
// business name becomes a single hyphen.
func Filename(t DocumentType, businessName string) string {
	return fmt.Sprintf("%s-%s.pdf", t.filePrefix(), slug(businessName))
}

func slug(name string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Page template, in millimetres on an A4 portrait page.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	HeaderHeight = 40.0
	ContentTop   = 55.0
	MaxY         = 280.0
	MarginX      = 20.0
	ContentWidth = 170.0
	CenterX      = 105.0

	brandY           = 20.0
	titleY           = 32.0
	footerPageY      = 285.0
	footerCopyrightY = 292.0
)

var (
	brandBlue  = Color{37, 99, 235}
	white      = Color{255, 255, 255}
	black      = Color{0, 0, 0}
	footerGray = Color{128, 128, 128}
	panelGray  = Color{240, 240, 240}
)
