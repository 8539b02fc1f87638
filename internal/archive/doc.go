// Package archive records export run history in PostgreSQL.
//
// The archive is optional: a run that cannot reach the database still
// completes and leaves its artifacts on disk. The table keeps one row
// per run so operators can audit when exports happened and whether any
// collection came back partial.
package archive
