package document

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"feasibility-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer gives every rune a width of size/5 mm.
type fixedMeasurer struct{}

func (fixedMeasurer) StringWidth(s string, size float64, _ FontStyle) float64 {
	return float64(utf8.RuneCountInString(s)) * size / 5
}

func testRenderer() *Renderer {
	return NewRenderer(Config{
		Now: func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) },
	})
}

func findOp(pages []Page, txt string) (page int, op Op, ok bool) {
	for _, p := range pages {
		for _, o := range p.Ops {
			if o.Kind == OpText && o.Text == txt {
				return p.Number, o, true
			}
		}
	}
	return 0, Op{}, false
}

func assertWithinContent(t *testing.T, pages []Page) {
	t.Helper()
	for _, p := range pages {
		require.NotEmpty(t, p.Ops, "page %d is empty", p.Number)
		for _, o := range p.Ops {
			assert.GreaterOrEqual(t, o.Y, ContentTop, "page %d: %q", p.Number, o.Text)
			assert.LessOrEqual(t, o.Y+o.H, MaxY, "page %d: %q", p.Number, o.Text)
		}
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		docType DocumentType
		name    string
		want    string
	}{
		{TypeFeasibility, "Ma Startup Innovante", "Test-Faisabilite-Ma-Startup-Innovante.pdf"},
		{TypeSummary, "Ma Startup Innovante", "Resume-Operationnel-Ma-Startup-Innovante.pdf"},
		{TypeFeasibility, "Boulangerie  du\tCoin", "Test-Faisabilite-Boulangerie-du-Coin.pdf"},
		{TypeSummary, " Atelier ", "Resume-Operationnel--Atelier-.pdf"},
		{TypeFeasibility, "", "Test-Faisabilite-.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.docType, tt.name))
	}
}

func TestParseDocumentType(t *testing.T) {
	dt, err := ParseDocumentType("summary")
	require.NoError(t, err)
	assert.Equal(t, TypeSummary, dt)

	_, err = ParseDocumentType("invoice")
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		999:      "999",
		1000:     "1 000",
		1234567:  "1 234 567",
		1234.5:   "1 234.5",
		-12345:   "-12 345",
		0.125:    "0.125",
		100000.0: "100 000",
	}

	for in, want := range tests {
		assert.Equal(t, want, FormatNumber(in), "input %v", in)
	}
}

func TestLabels_FallBackToCode(t *testing.T) {
	assert.Equal(t, "Produit", BusinessTypeLabel(models.BusinessTypeProduct))
	assert.Equal(t, "", BusinessTypeLabel(models.BusinessTypeUnset))
	assert.Equal(t, "Commissions & intermédiation", ActivityCategoryLabel("commission"))
	assert.Equal(t, "artisanat", ActivityCategoryLabel("artisanat"))
	assert.Equal(t, "Internet", WhereLabel("online"))
	assert.Equal(t, "moon", WhereLabel("moon"))
}

func TestTeamLine(t *testing.T) {
	s := models.NewAnswerSet()
	assert.Equal(t, "", TeamLine(s))

	s.WorkingAlone = true
	s.NumberOfPartners = 2
	s.NumberOfEmployees = 1
	assert.Equal(t, "Fondateur, 2 associe(s), 1 salarie(s)", TeamLine(s))
}

func TestWrap(t *testing.T) {
	m := fixedMeasurer{}

	assert.Equal(t, []string{""}, Wrap(m, "", 10, StyleNormal, 20))
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, Wrap(m, "aaaa bbbb cccc", 10, StyleNormal, 20))
	assert.Equal(t, []string{"a", "", "b"}, Wrap(m, "a\n\nb", 10, StyleNormal, 20))
	assert.Equal(t,
		[]string{"xy", "abcdefghij", "klmnopqrst", "uvwxy"},
		Wrap(m, "xy abcdefghijklmnopqrstuvwxy", 10, StyleNormal, 20))
}

func TestPaginate(t *testing.T) {
	blocks := []Block{
		{Advance: 100, Ops: []Op{{Kind: OpText, Text: "a"}}},
		{Required: 120, Advance: 120, Ops: []Op{{Kind: OpText, Text: "b", Y: 5}}},
		{Required: 300, Advance: 10, Ops: []Op{{Kind: OpText, Text: "c"}}},
	}

	pages := Paginate(blocks)

	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, 55.0, pages[0].Ops[0].Y)
	assert.Equal(t, 160.0, pages[0].Ops[1].Y)
	// does not fit below b, and is taller than a page: placed at the top, never an empty page
	assert.Equal(t, "c", pages[1].Ops[0].Text)
	assert.Equal(t, ContentTop, pages[1].Ops[0].Y)
}

func TestLayout_FeasibilitySinglePage(t *testing.T) {
	s := models.NewAnswerSet()
	s.BusinessName = "Atelier Vélo"
	s.DesiredSalary = 2500
	s.AverageBasket = 45
	s.CustomersPerMonth = 120
	s.MonthlyCharges = 1800

	pages, score := testRenderer().Layout(s, TypeFeasibility, fixedMeasurer{})

	require.Len(t, pages, 1)
	assertWithinContent(t, pages)

	_, name, ok := findOp(pages, "Atelier Vélo")
	require.True(t, ok)
	assert.Equal(t, ContentTop, name.Y)
	assert.Equal(t, StyleBold, name.Style)

	_, revenue, ok := findOp(pages, "5 400 EUR")
	require.True(t, ok)
	assert.Equal(t, 90.0, revenue.Y)
	assert.Equal(t, valueX, revenue.X)

	_, charges, ok := findOp(pages, "1 800 EUR")
	require.True(t, ok)
	assert.Equal(t, 135.0, charges.Y)

	_, panelTitle, ok := findOp(pages, "Score de Faisabilité")
	require.True(t, ok)
	assert.Equal(t, 172.0, panelTitle.Y)
	assert.Equal(t, AlignCenter, panelTitle.Align)

	_, scoreOp, ok := findOp(pages, "65/100")
	require.True(t, ok, "score %d", score)
	assert.Equal(t, 65, score)
	assert.Equal(t, 185.0, scoreOp.Y)

	_, rec, ok := findOp(pages, Recommendations(score)[0])
	require.True(t, ok)
	assert.Equal(t, 212.0, rec.Y)
	assert.True(t, strings.HasPrefix(rec.Text, "• "))
}

func TestLayout_SummaryDefaultsBreakBeforeNextSteps(t *testing.T) {
	pages, _ := testRenderer().Layout(models.NewAnswerSet(), TypeSummary, fixedMeasurer{})

	require.Len(t, pages, 2)
	assertWithinContent(t, pages)

	page, total, ok := findOp(pages, "Total: 0 EUR")
	require.True(t, ok)
	assert.Equal(t, 1, page)
	assert.Equal(t, 253.0, total.Y)

	page, steps, ok := findOp(pages, "Prochaines Étapes Recommandées")
	require.True(t, ok)
	assert.Equal(t, 2, page)
	assert.Equal(t, ContentTop+8, steps.Y)

	_, placeholder, ok := findOp(pages, NotSpecified)
	require.True(t, ok)
	assert.Equal(t, 87.0, placeholder.Y)

	_, team, ok := findOp(pages, "Equipe: ")
	require.True(t, ok)
	assert.Equal(t, 122.0, team.Y)
}

func TestLayout_SummaryLongTextBreaksOnce(t *testing.T) {
	s := models.NewAnswerSet()
	s.WhatYouSell = strings.TrimSuffix(strings.Repeat("ligne\n", 25), "\n")

	pages, _ := testRenderer().Layout(s, TypeSummary, fixedMeasurer{})
	assertWithinContent(t, pages)

	first := pages[0].Ops[len(pages[0].Ops)-1]
	assert.Equal(t, 79.0, first.Y, "page 1 ends with the type line")

	require.GreaterOrEqual(t, len(pages), 2)
	assert.Equal(t, "ligne", pages[1].Ops[0].Text)
	assert.Equal(t, ContentTop, pages[1].Ops[0].Y)
}

func TestLayout_SummarySeasonAndCity(t *testing.T) {
	s := models.NewAnswerSet()
	s.Where = []string{"local", "online"}
	s.WhereCity = "Lyon"
	s.IsSeasonal = true
	s.HighMonths = []string{"Juin", "Juillet"}

	pages, _ := testRenderer().Layout(s, TypeSummary, fixedMeasurer{})

	_, where, ok := findOp(pages, "Où: Local, Internet (Lyon)")
	require.True(t, ok)
	_, when, ok := findOp(pages, "Quand: Mois forts - Juin, Juillet")
	require.True(t, ok)
	assert.Equal(t, where.Y+8, when.Y)
}

func TestLayout_HugeParagraphIsChunked(t *testing.T) {
	s := models.NewAnswerSet()
	s.CompetitiveAdvantage = strings.TrimSuffix(strings.Repeat("avantage\n", 100), "\n")

	pages, _ := testRenderer().Layout(s, TypeSummary, fixedMeasurer{})

	assertWithinContent(t, pages)
	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	s := models.NewAnswerSet()
	s.BusinessName = "Ma Startup Innovante"
	s.WhatYouSell = "Des vélos électriques reconditionnés, livrés à domicile."

	for _, dt := range []DocumentType{TypeFeasibility, TypeSummary} {
		t.Run(string(dt), func(t *testing.T) {
			res, err := testRenderer().Render(s, dt)
			require.NoError(t, err)

			assert.True(t, bytes.HasPrefix(res.Bytes, []byte("%PDF")))
			assert.Equal(t, Filename(dt, s.BusinessName), res.Filename)
			assert.GreaterOrEqual(t, res.Pages, 1)
			assert.Equal(t, dt, res.Type)
		})
	}
}

func TestRender_UnknownType(t *testing.T) {
	_, err := testRenderer().Render(models.NewAnswerSet(), DocumentType("invoice"))
	assert.Error(t, err)
}
