package document

import (
	"math"
	"strconv"
	"strings"

	"feasibility-workers/internal/models"
)

// NotSpecified replaces empty free-text answers.
const NotSpecified = "Non spécifié"

var businessTypeLabels = map[models.BusinessType]string{
	models.BusinessTypeProduct: "Produit",
	models.BusinessTypeService: "Service",
}

var activityCategoryLabels = map[string]string{
	"direct-sale": "Vente directe",
	"commission":  "Commissions & intermédiation",
	"premium":     "Services premium & expertise",
	"other":       "Autres",
}

var whereLabels = map[string]string{
	"local":   "Local",
	"region":  "Région",
	"country": "Pays",
	"online":  "Internet",
}

// Unknown codes print as-is.

func BusinessTypeLabel(t models.BusinessType) string {
	if l, ok := businessTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func ActivityCategoryLabel(c string) string {
	if l, ok := activityCategoryLabels[c]; ok {
		return l
	}
	return c
}

func WhereLabel(w string) string {
	if l, ok := whereLabels[w]; ok {
		return l
	}
	return w
}

// FormatNumber prints v with a space between each group of three digits of
// the integer part. The fractional part is printed as the shortest exact
// decimal and is never grouped.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotSpecified
	}
	return s
}
