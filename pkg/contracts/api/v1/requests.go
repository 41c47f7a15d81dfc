// Package api contains the HTTP request and response contracts of the
// dashboard API. Version v1 represents the current stable API version.
package api

import (
	"pdxpulse/pkg/contracts/domain"
)

// FilterRequest selects or toggles one audience filter value.
type FilterRequest struct {
	Category string `json:"category" validate:"required,oneof=gender age socio"`
	Value    string `json:"value" validate:"required,max=64,nocontrol"`
	// Toggle clears the category when Value is already selected.
	Toggle bool `json:"toggle,omitempty"`
}

// LocationRequest replaces the location filter. Empty lists clear a level.
type LocationRequest struct {
	States        []string `json:"states" validate:"omitempty,max=64,dive,max=128,nocontrol"`
	Cities        []string `json:"cities" validate:"omitempty,max=256,dive,max=128,nocontrol"`
	Neighborhoods []string `json:"neighborhoods" validate:"omitempty,max=1024,dive,max=128,nocontrol"`
}

// ToFilter converts the request into the domain location filter.
func (r LocationRequest) ToFilter() domain.LocationFilter {
	return domain.LocationFilter{
		States:        r.States,
		Cities:        r.Cities,
		Neighborhoods: r.Neighborhoods,
	}
}

// RowsResponse is one page of filtered rows.
type RowsResponse struct {
	Total  int                    `json:"total"`
	Offset int                    `json:"offset"`
	Limit  int                    `json:"limit"`
	Rows   []domain.NormalizedRow `json:"rows"`
}

// GeoResponse carries the map view of the filtered rows.
type GeoResponse struct {
	Points []domain.MapPoint `json:"points"`
	Domain domain.GeoDomain  `json:"domain"`
	Center domain.LatLng     `json:"center"`
}

// LocationsResponse lists the selectable cascade options and the current selection.
type LocationsResponse struct {
	Selected domain.LocationFilter  `json:"selected"`
	Options  domain.LocationOptions `json:"options"`
}

// DashboardStateResponse describes the current dashboard state.
type DashboardStateResponse struct {
	Version  uint64                `json:"version"`
	Loaded   bool                  `json:"loaded"`
	Dataset  *domain.Dataset       `json:"dataset,omitempty"`
	Filters  domain.FilterState    `json:"filters"`
	Location domain.LocationFilter `json:"location"`
}
