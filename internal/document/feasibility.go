package document

import (
	"fmt"

	"feasibility-workers/internal/feasibility"
	"feasibility-workers/internal/models"
)

const valueX = 120.0

var recommendations = map[feasibility.Tier][2]string{
	feasibility.TierPositive: {
		"+ Votre projet présente un bon potentiel de faisabilité.",
		"+ Nous recommandons de passer à l'étape suivante.",
	},
	feasibility.TierAdjust: {
		"• Votre projet a du potentiel mais nécessite des ajustements.",
		"• Planifiez un rendez-vous de validation pour affiner votre stratégie.",
	},
	feasibility.TierRevise: {
		"! Votre projet nécessite une révision approfondie.",
		"! Contactez-nous pour un accompagnement personnalisé.",
	},
}

// Recommendations returns the two advice lines printed for a score.
func Recommendations(score int) [2]string {
	return recommendations[feasibility.TierFor(score)]
}

func (r *Renderer) feasibilityBlocks(set models.AnswerSet, score int) []Block {
	money := func(v float64) string { return FormatNumber(v) + " " + r.cfg.Currency }

	blocks := []Block{
		{Advance: 20, Ops: []Op{text(MarginX, 0, set.BusinessName, 16, StyleBold)}},
		// metrics and score panel should start together
		{Required: 100},
	}

	metric := func(label, value string, step float64) Block {
		return Block{
			Required: step,
			Advance:  step,
			Ops: []Op{
				text(MarginX, 0, label, 12, StyleBold),
				text(valueX, 0, value, 14, StyleNormal),
			},
		}
	}
	blocks = append(blocks,
		metric("Salaire vise (A)", money(set.DesiredSalary), 15),
		metric("Chiffre d'affaires (B)", money(set.RevenueToUse), 15),
		metric("Nombre de clients (N)", FormatNumber(float64(set.CustomersPerMonth)), 15),
		metric("Panier moyen (M)", money(set.AverageBasket), 15),
		metric("Charges (Z)", money(set.MonthlyCharges), 25),
	)

	blocks = append(blocks, Block{
		Required: 70,
		Advance:  40,
		Ops: []Op{
			panel(0, 30, brandBlue),
			centered(12, "Score de Faisabilité", 16, white),
			centered(25, fmt.Sprintf("%d/100", score), 24, white),
		},
	})

	advice := Recommendations(score)
	blocks = append(blocks, Block{
		Required: 40,
		Advance:  32,
		Ops: []Op{
			text(MarginX, 0, "Recommandations", 14, StyleBold),
			text(MarginX, 12, advice[0], 10, StyleNormal),
			text(MarginX, 22, advice[1], 10, StyleNormal),
		},
	})

	return blocks
}
