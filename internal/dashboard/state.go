package dashboard

import (
	"strings"

	"pdxpulse/pkg/contracts/domain"
)

// Snapshot is the complete dashboard state at one Version. Snapshots are
// shared between goroutines and must not be modified after construction.
type Snapshot struct {
	Dataset  *domain.Dataset       `json:"dataset,omitempty"`
	Filters  domain.FilterState    `json:"filters"`
	Location domain.LocationFilter `json:"location"`
	Version  uint64                `json:"version"`
}

// Initial is the empty session: no dataset, every filter unset.
func Initial() Snapshot {
	return Snapshot{Filters: domain.FilterState{}}
}

// Loaded reports whether a dataset is present
func (s Snapshot) Loaded() bool {
	return s.Dataset != nil
}

// Rows returns the dataset rows, nil when nothing is loaded
func (s Snapshot) Rows() []domain.NormalizedRow {
	if s.Dataset == nil {
		return nil
	}
	return s.Dataset.Rows
}

// Reduce applies e to s. Events that do not apply (a filter on an unknown
// category, a filter change without a dataset, a nil dataset) return s
// unchanged, Version included.
func Reduce(s Snapshot, e Event) Snapshot {
	next := s
	switch ev := e.(type) {
	case DatasetLoaded:
		if ev.Dataset == nil {
			return s
		}
		next.Dataset = ev.Dataset
		next.Filters = domain.FilterState{}
		next.Location = domain.LocationFilter{}

	case DatasetReset:
		next.Dataset = nil
		next.Filters = domain.FilterState{}
		next.Location = domain.LocationFilter{}

	case FilterSelected:
		if !s.Loaded() || !ev.Category.Valid() || strings.TrimSpace(ev.Value) == "" {
			return s
		}
		if !ev.Set {
			next.Filters = s.Filters.Toggle(ev.Category, ev.Value)
			break
		}
		if s.Filters[ev.Category] == ev.Value {
			return s
		}
		next.Filters = s.Filters.With(ev.Category, ev.Value)

	case FilterCleared:
		if !s.Loaded() || !ev.Category.Valid() {
			return s
		}
		next.Filters = s.Filters.Clear(ev.Category)

	case LocationChanged:
		if !s.Loaded() {
			return s
		}
		next.Location = cleanLocation(ev.Location)

	default:
		return s
	}

	next.Version = s.Version + 1
	return next
}

// cleanLocation copies the lists, trimming blanks and duplicates.
func cleanLocation(f domain.LocationFilter) domain.LocationFilter {
	return domain.LocationFilter{
		States:        cleanList(f.States),
		Cities:        cleanList(f.Cities),
		Neighborhoods: cleanList(f.Neighborhoods),
	}
}

func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
