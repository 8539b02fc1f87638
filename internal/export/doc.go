// Package export flattens raw API payloads into CSV-ready tables and
// writes the per-endpoint JSON and CSV artifacts of an export run.
package export
