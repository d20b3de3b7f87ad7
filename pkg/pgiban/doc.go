// Package pgiban holds the public contract shared by the pgiban engine and its
// adapters: the IBAN specification types, sentinel errors, exit codes and the
// interfaces implemented by the internal packages (logger, connector,
// installer, auditor, approver, retry).
//
// The validation engine itself lives under internal/; library users reach it
// through package github.com/vvka-141/pgiban/pkg/iban.
package pgiban
