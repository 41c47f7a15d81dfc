// Package dataprocessing turns decoded PDX records into the clean dataset and
// the aggregates behind the dashboard.
//
// # Architecture
//
// The package is organized into five components:
//
// 1. Value parsing: locale-aware number reading that never fails (values.go)
// 2. Normalizer: raw record to typed row, with required-column checks
// 3. Aggregator: top-N ranking with shared percentage base
// 4. Geo bounds: IQR outlier-robust map domain and center
// 5. Filters: audience and location predicates
//
// Summarize ties them together for one dashboard snapshot.
//
// # Usage
//
//	n := dataprocessing.NewNormalizer(logger, recorder)
//	rows, stats, err := n.NormalizeBatch(records)
//	if err != nil {
//	    return err // *domain.MissingRequiredFieldError
//	}
//	summary := dataprocessing.Summarize(rows, filters, location, dataprocessing.DefaultSummaryOptions())
//
// # Data Flow
//
//	RawRecords → Normalizer → NormalizedRows → Predicate → Aggregate / ComputeDomain → Summary
//
// # Error Handling
//
// Numeric parsing fails soft: unparsable cells become 0 and are reported to
// a FallbackRecorder. Only a missing PDX_LAT or PDX_LNG column is an error,
// and it rejects the whole batch.
//
// Every function here is pure and synchronous; none mutates its input rows.
package dataprocessing
