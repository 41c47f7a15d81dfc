package dataprocessing

import (
	"sort"
	"strings"

	"pdxpulse/pkg/contracts/domain"
)

// notApplicable and placeholder are sentinel cells skipped by Aggregate.
const (
	notApplicable = "n/a"
	placeholder   = "-"
)

// LabelTranslator maps a canonical label to a display label. ok is false
// when no translation exists and the canonical label should be kept.
type LabelTranslator func(label string) (display string, ok bool)

// NewTranslator builds a case-insensitive LabelTranslator from a lookup table.
func NewTranslator(table map[string]string) LabelTranslator {
	folded := make(map[string]string, len(table))
	for k, v := range table {
		folded[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return func(label string) (string, bool) {
		v, ok := folded[strings.ToLower(label)]
		return v, ok
	}
}

// Aggregate counts label occurrences across the given columns of every row
// and returns the topN most frequent labels.
//
// Every accepted cell is one vote: repeats of a label and votes from
// different columns ("#1 Marca", "#2 Marca") all share one percentage base.
// Ties keep the order in which labels were first seen, so the result is
// deterministic for a given row order. translate may be nil.
func Aggregate(rows []domain.NormalizedRow, keys []string, topN int, translate LabelTranslator) domain.AggregateResult {
	counts := make(map[string]int)
	var order []string
	total := 0

	for _, row := range rows {
		for _, key := range keys {
			cell := strings.TrimSpace(row.Text(key))
			if skipCell(cell) {
				continue
			}
			label := CanonicalLabel(cell)
			if label == "" {
				continue
			}
			if translate != nil {
				if display, ok := translate(label); ok {
					label = display
				}
			}
			if _, seen := counts[label]; !seen {
				order = append(order, label)
			}
			counts[label]++
			total++
		}
	}

	entries := make([]domain.AggregateEntry, 0, len(order))
	denominator := float64(max(total, 1))
	for _, label := range order {
		c := counts[label]
		entries = append(entries, domain.AggregateEntry{
			Label:      label,
			Count:      c,
			Percentage: float64(c) / denominator * 100,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if topN < 0 {
		topN = 0
	}
	if len(entries) > topN {
		entries = entries[:topN]
	}

	return domain.AggregateResult{Entries: entries, TotalValid: total}
}

func skipCell(cell string) bool {
	return cell == "" || cell == placeholder || strings.EqualFold(cell, notApplicable)
}

// CountByState counts rows per non-empty state, most frequent first with ties
// in first-seen order.
func CountByState(rows []domain.NormalizedRow) []domain.LabelCount {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		state := strings.TrimSpace(row.State)
		if state == "" {
			continue
		}
		if _, seen := counts[state]; !seen {
			order = append(order, state)
		}
		counts[state]++
	}

	result := make([]domain.LabelCount, 0, len(order))
	for _, state := range order {
		result = append(result, domain.LabelCount{Label: state, Count: counts[state]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}
