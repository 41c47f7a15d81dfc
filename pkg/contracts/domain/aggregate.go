package domain

// AggregateEntry is one ranked label with its vote count and its share of all
// valid votes.
type AggregateEntry struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AggregateResult is a top-N view over one or more categorical columns.
// TotalValid counts every accepted cell, including those outside the top N.
type AggregateResult struct {
	Entries    []AggregateEntry `json:"entries"`
	TotalValid int              `json:"total_valid"`
}

// BracketTotal is the summed audience count of one bracket column.
type BracketTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// LabelCount pairs a label with an occurrence count.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Totals are the headline KPI figures of a (possibly filtered) dataset.
type Totals struct {
	Impressions      float64 `json:"impressions"`
	Reach            float64 `json:"reach"`
	AverageFrequency float64 `json:"average_frequency"`
	Locations        int     `json:"locations"`
}
