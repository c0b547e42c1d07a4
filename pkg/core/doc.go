// Package core defines the shared vocabulary of sqlassist.
//
// This package contains:
//   - Source positions and ranges (Position, Range) and offset conversion
//   - Diagnostics produced by parsing and validation (Diagnostic, Severity, ErrorType)
//   - Table references recovered from a statement (TableReference, AliasMap)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// Every other package depends on core, not the reverse.
package core
