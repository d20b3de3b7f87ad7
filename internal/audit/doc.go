// Package audit checks the IBANs already stored in a table column.
//
// Rows are read through a server-side cursor in batches of
// AuditConfig.BatchSize and validated with the Go engine, so an audit works
// whether or not pgiban is installed in the database.
package audit
