package domain

import "sort"

// FilterCategory names an audience filter dimension.
type FilterCategory string

const (
	FilterGender FilterCategory = "gender"
	FilterAge    FilterCategory = "age"
	FilterSocio  FilterCategory = "socio"
)

// FilterCategories lists the supported categories.
var FilterCategories = []FilterCategory{FilterGender, FilterAge, FilterSocio}

// Valid reports whether c is a supported category.
func (c FilterCategory) Valid() bool {
	for _, known := range FilterCategories {
		if c == known {
			return true
		}
	}
	return false
}

// FilterState maps each category to its selected value. A category absent
// from the map is unset. FilterState values are never mutated; use Toggle,
// Clear and With to derive new states.
type FilterState map[FilterCategory]string

// Toggle applies a selection: selecting the active value clears the
// category, selecting anything else sets it.
func (s FilterState) Toggle(category FilterCategory, value string) FilterState {
	if current, ok := s[category]; ok && current == value {
		return s.Clear(category)
	}
	return s.With(category, value)
}

// With returns a copy with category set to value. An empty value clears it.
func (s FilterState) With(category FilterCategory, value string) FilterState {
	next := s.clone()
	if value == "" {
		delete(next, category)
		return next
	}
	next[category] = value
	return next
}

// Clear returns a copy with category unset.
func (s FilterState) Clear(category FilterCategory) FilterState {
	next := s.clone()
	delete(next, category)
	return next
}

// Active returns the set categories in a stable order.
func (s FilterState) Active() []FilterCategory {
	cats := make([]FilterCategory, 0, len(s))
	for c, v := range s {
		if v != "" {
			cats = append(cats, c)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

func (s FilterState) clone() FilterState {
	next := make(FilterState, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	return next
}

// LocationFilter restricts rows to the selected states, cities and
// neighborhoods. An empty list places no restriction on that level.
type LocationFilter struct {
	States        []string `json:"states"`
	Cities        []string `json:"cities"`
	Neighborhoods []string `json:"neighborhoods"`
}

// IsZero reports whether the filter accepts every row.
func (f LocationFilter) IsZero() bool {
	return len(f.States) == 0 && len(f.Cities) == 0 && len(f.Neighborhoods) == 0
}

// LocationOptions are the selectable values for each location level.
type LocationOptions struct {
	States        []string `json:"states"`
	Cities        []string `json:"cities"`
	Neighborhoods []string `json:"neighborhoods"`
}
