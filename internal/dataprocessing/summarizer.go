package dataprocessing

import (
	"pdxpulse/pkg/contracts/domain"
)

// DefaultTopN is the length of the ranked lists shown on the dashboard.
const DefaultTopN = 5

// SummaryOptions configures Summarize.
type SummaryOptions struct {
	TopN       int
	Groups     []domain.RankedGroup
	Translator LabelTranslator
}

// DefaultSummaryOptions returns the dashboard defaults.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		TopN:   DefaultTopN,
		Groups: domain.DefaultRankedGroups(),
	}
}

// Summarize computes every dashboard aggregate from rows.
//
// Audience and location filters narrow the KPI totals, ranked lists, state
// counts and map data. The bracket distributions are always computed on the
// unfiltered rows so the charts used to pick a filter keep showing every
// bracket. Location options cascade from the location filter only.
func Summarize(rows []domain.NormalizedRow, filters domain.FilterState, location domain.LocationFilter, opts SummaryOptions) domain.Summary {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Groups == nil {
		opts.Groups = domain.DefaultRankedGroups()
	}

	filtered := FilterRows(rows, And(BuildPredicate(filters), LocationPredicate(location)))
	points := Points(filtered)

	summary := domain.Summary{
		Filters:  filters,
		Location: location,
		Totals:   ComputeTotals(filtered),
		Distributions: domain.Distributions{
			Gender:   Distribution(rows, domain.GenderColumns),
			Age:      Distribution(rows, domain.AgeColumns),
			Socio:    Distribution(rows, domain.SocioColumns),
			Platform: Distribution(rows, domain.PlatformColumns),
		},
		TopLists: make([]domain.TopList, 0, len(opts.Groups)),
		ByState:  CountByState(filtered),
		Points:   MapPoints(filtered),
		Domain:   ComputeDomain(points),
		Center:   ComputeCenter(points),
		Options:  LocationOptions(rows, location),
	}
	if summary.Filters == nil {
		summary.Filters = domain.FilterState{}
	}

	for _, group := range opts.Groups {
		summary.TopLists = append(summary.TopLists, domain.TopList{
			Key:             group.Key,
			Title:           group.Title,
			AggregateResult: Aggregate(filtered, group.Columns, opts.TopN, opts.Translator),
		})
	}

	return summary
}
