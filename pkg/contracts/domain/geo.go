package domain

// Point is a longitude/latitude pair.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// LatLng is a map center.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DefaultCenter is used when there are no points to average (center of Brazil).
var DefaultCenter = LatLng{Lat: -14.235, Lng: -51.9253}

// GeoDomain is the axis range pair used by scatter and map views.
type GeoDomain struct {
	Longitude [2]float64 `json:"longitude"`
	Latitude  [2]float64 `json:"latitude"`
}

// MapPoint is a PDX marker with its tooltip text.
type MapPoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
}
