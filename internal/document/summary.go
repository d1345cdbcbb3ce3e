package document

import (
	"fmt"
	"strings"

	"feasibility-workers/internal/models"
)

const summaryLine = 8.0

var nextSteps = []string{
	"1. Planifier un rendez-vous de validation (30 min, gratuit)",
	"2. Affiner votre business plan avec notre accompagnement",
	"3. Commencer l'implémentation avec un coaching personnalisé",
	"4. Lancer votre activité avec confiance",
}

// TeamLine lists who works on the project, e.g. "Fondateur, 2 associe(s)".
func TeamLine(set models.AnswerSet) string {
	var parts []string
	if set.WorkingAlone {
		parts = append(parts, "Fondateur")
	}
	if set.NumberOfPartners > 0 {
		parts = append(parts, fmt.Sprintf("%d associe(s)", set.NumberOfPartners))
	}
	if set.NumberOfEmployees > 0 {
		parts = append(parts, fmt.Sprintf("%d salarie(s)", set.NumberOfEmployees))
	}
	return strings.Join(parts, ", ")
}

func heading(s string) Op {
	return text(MarginX, 0, s, 12, StyleBold)
}

func (r *Renderer) wrapBody(m Measurer, s string) []string {
	return Wrap(m, orNotSpecified(s), 10, StyleNormal, ContentWidth)
}

func (r *Renderer) summaryBlocks(set models.AnswerSet, m Measurer) []Block {
	money := func(v float64) string { return FormatNumber(v) + " " + r.cfg.Currency }

	blocks := []Block{
		{Advance: 16, Ops: []Op{text(MarginX, 0, set.BusinessName, 16, StyleBold)}},
		{
			Required: 30,
			Advance:  2 * summaryLine,
			Ops: []Op{
				heading("Produit/Service"),
				text(MarginX, summaryLine, BusinessTypeLabel(set.BusinessType)+" - "+ActivityCategoryLabel(set.ActivityCategory), 10, StyleNormal),
			},
		},
	}
	blocks = append(blocks, paragraphBlocks(r.wrapBody(m, set.WhatYouSell), 10, summaryLine, summaryLine, summaryLine)...)

	blocks = append(blocks, Block{Required: 30, Advance: summaryLine, Ops: []Op{heading("Description de l'activité")}})
	team := paragraphBlocks(r.wrapBody(m, set.TeamDescription), 10, summaryLine, 15, 3)
	last := &team[len(team)-1]
	last.Ops = append(last.Ops, text(MarginX, last.Advance, "Equipe: "+TeamLine(set), 10, StyleNormal))
	last.Advance += 16
	blocks = append(blocks, team...)

	where := make([]string, 0, len(set.Where))
	for _, w := range set.Where {
		where = append(where, WhereLabel(w))
	}
	whereLine := "Où: " + strings.Join(where, ", ")
	if set.WhereCity != "" {
		whereLine += " (" + set.WhereCity + ")"
	}
	model := Block{
		Required: 60,
		Ops: []Op{
			heading("Business Model"),
			text(MarginX, 8, "Panier moyen: "+money(set.AverageBasket), 10, StyleNormal),
			text(MarginX, 16, fmt.Sprintf("Nombre de clients vises: %s clients/mois", FormatNumber(float64(set.CustomersPerMonth))), 10, StyleNormal),
			text(MarginX, 24, "Chiffre d'affaires: "+money(set.RevenueToUse)+" / mois", 10, StyleNormal),
			text(MarginX, 35, "Clientèle:", 10, StyleBold),
			text(MarginX, 43, whereLine, 10, StyleNormal),
		},
		Advance: 51,
	}
	if set.IsSeasonal && len(set.HighMonths) > 0 {
		high := set.HighMonths
		if len(high) > models.MaxSeasonMonths {
			high = high[:models.MaxSeasonMonths]
		}
		model.Ops = append(model.Ops, text(MarginX, 51, "Quand: Mois forts - "+strings.Join(high, ", "), 10, StyleNormal))
		model.Advance += summaryLine
	}
	blocks = append(blocks, model)
	blocks = append(blocks, paragraphBlocks(r.wrapBody(m, set.FirstClientsDescription), 10, summaryLine, summaryLine, summaryLine)...)

	blocks = append(blocks, Block{Required: 30, Advance: summaryLine, Ops: []Op{heading("Avantage Concurrentiel")}})
	blocks = append(blocks, paragraphBlocks(r.wrapBody(m, set.CompetitiveAdvantage), 10, summaryLine, summaryLine, summaryLine)...)

	blocks = append(blocks, Block{
		Required: 40,
		Advance:  37,
		Ops: []Op{
			heading("Besoin Financier"),
			text(MarginX, 8, "Apport personnel: "+money(set.PersonalContribution), 10, StyleNormal),
			text(MarginX, 16, "Besoin de financement: "+money(set.FinancialNeedAtLaunch), 10, StyleNormal),
			text(MarginX, 24, "Total: "+money(set.PersonalContribution+set.FinancialNeedAtLaunch), 10, StyleBold),
		},
	})

	steps := Block{
		Required: 60,
		Advance:  50,
		Ops: []Op{
			panel(0, 50, panelGray),
			text(MarginX+5, 8, "Prochaines Étapes Recommandées", 12, StyleBold),
		},
	}
	for i, s := range nextSteps {
		steps.Ops = append(steps.Ops, text(MarginX+5, 18+float64(i)*summaryLine, s, 10, StyleNormal))
	}
	blocks = append(blocks, steps)

	return blocks
}
