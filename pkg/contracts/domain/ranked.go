package domain

import "fmt"

// RankedGroup is a family of parallel ranked columns ("#1 Marca", "#2 Marca",
// "#3 Marca") aggregated together as independent votes.
type RankedGroup struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
}

// Ranked group keys used by the API and the summary.
const (
	GroupBrands          = "brands"
	GroupModels          = "models"
	GroupCarriers        = "carriers"
	GroupOfflineBehavior = "offline_behavior"
	GroupAppUsage        = "app_usage"
)

// RankedColumns builds the "#<n> <base>" column names for ranks 1..depth.
func RankedColumns(base string, depth int) []string {
	cols := make([]string, 0, depth)
	for i := 1; i <= depth; i++ {
		cols = append(cols, fmt.Sprintf("%s%d %s", RankedPrefix, i, base))
	}
	return cols
}

// DefaultRankedGroups returns the ranked groups present in the standard export.
func DefaultRankedGroups() []RankedGroup {
	return []RankedGroup{
		{Key: GroupBrands, Title: "Top Marcas", Columns: RankedColumns("Marca", 3)},
		{Key: GroupModels, Title: "Top Modelos", Columns: RankedColumns("Modelo", 3)},
		{Key: GroupCarriers, Title: "Top Operadoras", Columns: RankedColumns("Operadora", 3)},
		{Key: GroupOfflineBehavior, Title: "Perfil de Interesses", Columns: RankedColumns("Comportamento Offline", 3)},
		{Key: GroupAppUsage, Title: "Uso de Apps", Columns: RankedColumns("Uso de Apps", 3)},
	}
}

// FindRankedGroup looks up a ranked group by key.
func FindRankedGroup(groups []RankedGroup, key string) (RankedGroup, bool) {
	for _, g := range groups {
		if g.Key == key {
			return g, true
		}
	}
	return RankedGroup{}, false
}
