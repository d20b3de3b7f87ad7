// Package db opens PostgreSQL connection pools for the install, uninstall
// and audit commands.
//
// ResolveConnectionParams merges flags, environment and pgiban.yaml into a
// pgiban.ConnectionConfig; NewConnector picks the connector for its
// AuthMethod (password, AWS IAM token, Azure Entra ID token, Cloud SQL IAM
// dialer). Connects are retried on transient failures through internal/retry.
package db
