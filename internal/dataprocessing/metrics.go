package dataprocessing

import (
	"strings"

	"pdxpulse/pkg/contracts/domain"
)

// ComputeTotals sums impressions and reach over rows. Average frequency is
// impressions per reached person, 0 when nothing was reached.
func ComputeTotals(rows []domain.NormalizedRow) domain.Totals {
	var t domain.Totals
	for _, row := range rows {
		t.Impressions += row.Impressions
		t.Reach += row.Reach
	}
	if t.Reach > 0 {
		t.AverageFrequency = t.Impressions / t.Reach
	}
	t.Locations = len(rows)
	return t
}

// Distribution sums each bracket column over rows, in column order.
func Distribution(rows []domain.NormalizedRow, columns []string) []domain.BracketTotal {
	out := make([]domain.BracketTotal, 0, len(columns))
	for _, column := range columns {
		var total float64
		for _, row := range rows {
			if v, ok := row.Value(column); ok {
				total += ParseNumber(v)
			}
		}
		out = append(out, domain.BracketTotal{Label: BracketLabel(column), Total: total})
	}
	return out
}

// BracketLabel derives the display label of a bracket column:
// "Faixa Etária (18_24)" is "18-24", "Plataforma (ios)" is "iOS".
func BracketLabel(column string) string {
	open := strings.IndexByte(column, '(')
	if open < 0 {
		return column
	}
	inner := strings.TrimSuffix(column[open+1:], ")")
	switch strings.ToLower(inner) {
	case "ios":
		return "iOS"
	case "android":
		return "Android"
	}
	return strings.ReplaceAll(inner, "_", "-")
}
