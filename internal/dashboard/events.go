package dashboard

import "pdxpulse/pkg/contracts/domain"

// Event is a state transition request for Reduce
type Event interface {
	// Name identifies the event in logs, metrics and websocket messages.
	Name() string
}

// DatasetLoaded replaces the current dataset and clears every filter.
type DatasetLoaded struct {
	Dataset *domain.Dataset
}

// DatasetReset discards the dataset and every filter.
type DatasetReset struct{}

// FilterSelected toggles Value on Category: re-selecting the active value
// clears the category. With Set the value is assigned instead, and
// re-selecting it is ignored.
type FilterSelected struct {
	Category domain.FilterCategory
	Value    string
	Set      bool
}

// FilterCleared unsets Category.
type FilterCleared struct {
	Category domain.FilterCategory
}

// LocationChanged replaces the location filter.
type LocationChanged struct {
	Location domain.LocationFilter
}

func (DatasetLoaded) Name() string   { return "dataset_loaded" }
func (DatasetReset) Name() string    { return "dataset_reset" }
func (FilterSelected) Name() string  { return "filter_selected" }
func (FilterCleared) Name() string   { return "filter_cleared" }
func (LocationChanged) Name() string { return "location_changed" }
