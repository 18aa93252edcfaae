// Package history stores past rendering runs in a local SQLite database.
//
// Each run is kept as its full JSON report plus a few indexed summary
// columns, so run listings never have to decode every stored report.
package history
