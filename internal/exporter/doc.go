// Package exporter writes dashboard data as CSV.
//
// Every export starts with a UTF-8 BOM so spreadsheet tools detect the
// encoding of accented column names. ExportRows streams normalized rows with
// a stable header; ExportTopList and WriteTopList write one ranked list.
package exporter
