// Package files reads PDX exports from uploads and disk.
//
// Decode turns a CSV or XLSX file into raw records keyed by header name,
// ready for the normalizer in internal/dataprocessing. CSV files may use
// "," or ";" as delimiter and may carry a UTF-8 BOM. XLSX files are read
// from their first worksheet with numeric cells typed as float64.
//
// Discovery finds exports in a directory and picks the newest one, which
// the command-line summary tool uses when given a folder.
//
// Example usage:
//
//	records, err := files.DecodeFile("exports/pdx.xlsx")
//	if err != nil {
//	    return err
//	}
//
//	discovery := files.NewDiscovery(".")
//	path, err := discovery.ResolveInput("exports")
package files
