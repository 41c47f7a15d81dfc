package dataprocessing

import (
	"sort"
	"strings"

	"pdxpulse/pkg/contracts/domain"
)

// Predicate decides whether a row belongs to a filtered view.
type Predicate func(row domain.NormalizedRow) bool

// AcceptAll is the identity predicate.
func AcceptAll(domain.NormalizedRow) bool { return true }

// FilterColumn maps a filter selection to the count column it constrains:
// gender "Masculino" is "Gênero (Masculino)", age "18-24" is
// "Faixa Etária (18_24)" and socio "A" is "Nível Socioeconômico (A)".
func FilterColumn(category domain.FilterCategory, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	switch category {
	case domain.FilterGender:
		return "Gênero (" + value + ")", true
	case domain.FilterAge:
		return "Faixa Etária (" + strings.ReplaceAll(value, "-", "_") + ")", true
	case domain.FilterSocio:
		return "Nível Socioeconômico (" + value + ")", true
	}
	return "", false
}

// BuildPredicate composes the active audience filters with AND. A row passes
// a category when the mapped column is present and non-zero. An empty state
// accepts every row.
func BuildPredicate(filters domain.FilterState) Predicate {
	columns := make([]string, 0, len(filters))
	for _, category := range filters.Active() {
		if column, ok := FilterColumn(category, filters[category]); ok {
			columns = append(columns, column)
		}
	}
	if len(columns) == 0 {
		return AcceptAll
	}
	return func(row domain.NormalizedRow) bool {
		for _, column := range columns {
			v, ok := row.Value(column)
			if !ok || ParseNumber(v) == 0 {
				return false
			}
		}
		return true
	}
}

// LocationPredicate restricts rows to the selected states, cities and
// neighborhoods. Each non-empty level must match.
func LocationPredicate(f domain.LocationFilter) Predicate {
	if f.IsZero() {
		return AcceptAll
	}
	states, cities, hoods := toSet(f.States), toSet(f.Cities), toSet(f.Neighborhoods)
	return func(row domain.NormalizedRow) bool {
		return inSet(states, row.State) && inSet(cities, row.City) && inSet(hoods, row.Neighborhood)
	}
}

// And combines predicates; all must accept.
func And(preds ...Predicate) Predicate {
	active := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	switch len(active) {
	case 0:
		return AcceptAll
	case 1:
		return active[0]
	}
	return func(row domain.NormalizedRow) bool {
		for _, p := range active {
			if !p(row) {
				return false
			}
		}
		return true
	}
}

// FilterRows returns the rows accepted by pred in their original order. The
// input slice is not modified.
func FilterRows(rows []domain.NormalizedRow, pred Predicate) []domain.NormalizedRow {
	if pred == nil {
		return rows
	}
	out := make([]domain.NormalizedRow, 0, len(rows))
	for _, row := range rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// LocationOptions lists the selectable states, cities and neighborhoods.
// Cities narrow to the selected states; neighborhoods narrow to the selected
// cities, or to the selected states when no city is chosen.
func LocationOptions(rows []domain.NormalizedRow, f domain.LocationFilter) domain.LocationOptions {
	states, cities := toSet(f.States), toSet(f.Cities)

	opts := domain.LocationOptions{
		States: distinct(rows, AcceptAll, func(r domain.NormalizedRow) string { return r.State }),
	}

	byState := Predicate(AcceptAll)
	if len(states) > 0 {
		byState = func(r domain.NormalizedRow) bool { return inSet(states, r.State) }
	}
	opts.Cities = distinct(rows, byState, func(r domain.NormalizedRow) string { return r.City })

	byCity := byState
	if len(cities) > 0 {
		byCity = func(r domain.NormalizedRow) bool { return inSet(cities, r.City) }
	}
	opts.Neighborhoods = distinct(rows, byCity, func(r domain.NormalizedRow) string { return r.Neighborhood })

	return opts
}

func distinct(rows []domain.NormalizedRow, pred Predicate, field func(domain.NormalizedRow) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, row := range rows {
		if !pred(row) {
			continue
		}
		v := strings.TrimSpace(field(row))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// inSet treats an empty set as "no restriction".
func inSet(set map[string]struct{}, v string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[v]
	return ok
}
