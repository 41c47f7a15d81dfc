package dataprocessing

import (
	"math"
	"sort"
	"strings"

	"pdxpulse/pkg/contracts/domain"
)

// domainPadding is the share of each axis span added on both ends.
const domainPadding = 0.1

// iqrFence is the Tukey fence multiplier used for outlier exclusion.
const iqrFence = 1.5

// ComputeDomain returns an outlier-robust longitude/latitude range for the
// points. Each axis is filtered independently to [Q1-1.5·IQR, Q3+1.5·IQR]
// using positional quartiles (sorted[n/4], sorted[3n/4]) and then padded by
// 10% of its span. An axis whose filter removes everything falls back to
// its raw min/max. Non-finite coordinates are ignored; no usable points
// yields the zero domain.
func ComputeDomain(points []domain.Point) domain.GeoDomain {
	lngs := make([]float64, 0, len(points))
	lats := make([]float64, 0, len(points))
	for _, p := range points {
		if !isFinite(p.Lng) || !isFinite(p.Lat) {
			continue
		}
		lngs = append(lngs, p.Lng)
		lats = append(lats, p.Lat)
	}
	if len(lngs) == 0 {
		return domain.GeoDomain{}
	}

	return domain.GeoDomain{
		Longitude: robustRange(lngs),
		Latitude:  robustRange(lats),
	}
}

func robustRange(values []float64) [2]float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	q1 := sorted[n/4]
	q3 := sorted[(3*n)/4]
	iqr := q3 - q1
	lower, upper := q1-iqrFence*iqr, q3+iqrFence*iqr

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range sorted {
		if v < lower || v > upper {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return [2]float64{sorted[0], sorted[n-1]}
	}

	pad := (hi - lo) * domainPadding
	return [2]float64{lo - pad, hi + pad}
}

// ComputeCenter returns the arithmetic mean of the points, or
// domain.DefaultCenter when there is nothing to average.
func ComputeCenter(points []domain.Point) domain.LatLng {
	var sumLat, sumLng float64
	n := 0
	for _, p := range points {
		if !isFinite(p.Lng) || !isFinite(p.Lat) {
			continue
		}
		sumLat += p.Lat
		sumLng += p.Lng
		n++
	}
	if n == 0 {
		return domain.DefaultCenter
	}
	return domain.LatLng{Lat: sumLat / float64(n), Lng: sumLng / float64(n)}
}

// Points extracts the coordinate pairs of rows.
func Points(rows []domain.NormalizedRow) []domain.Point {
	points := make([]domain.Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, domain.Point{Lng: row.Lng, Lat: row.Lat})
	}
	return points
}

// MapPoints builds marker data for rows with finite coordinates.
func MapPoints(rows []domain.NormalizedRow) []domain.MapPoint {
	points := make([]domain.MapPoint, 0, len(rows))
	for _, row := range rows {
		if !isFinite(row.Lat) || !isFinite(row.Lng) {
			continue
		}
		points = append(points, domain.MapPoint{
			Lat:     row.Lat,
			Lng:     row.Lng,
			Name:    row.Name,
			Address: joinAddress(row.Street, row.City),
		})
	}
	return points
}

func joinAddress(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
