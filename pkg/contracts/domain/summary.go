package domain

// TopList is the aggregate of one ranked group.
type TopList struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	AggregateResult
}

// Distributions groups the bracket totals shown by the audience charts.
type Distributions struct {
	Gender   []BracketTotal `json:"gender"`
	Age      []BracketTotal `json:"age"`
	Socio    []BracketTotal `json:"socio"`
	Platform []BracketTotal `json:"platform"`
}

// Summary is everything the dashboard renders for one snapshot.
type Summary struct {
	DatasetID     string          `json:"dataset_id"`
	FileName      string          `json:"file_name"`
	Filters       FilterState     `json:"filters"`
	Location      LocationFilter  `json:"location"`
	Totals        Totals          `json:"totals"`
	Distributions Distributions   `json:"distributions"`
	TopLists      []TopList       `json:"top_lists"`
	ByState       []LabelCount    `json:"by_state"`
	Points        []MapPoint      `json:"points"`
	Domain        GeoDomain       `json:"domain"`
	Center        LatLng          `json:"center"`
	Options       LocationOptions `json:"location_options"`
}
