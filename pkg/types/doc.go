// Package types defines the shared error taxonomy and resource limits used
// across the nbtkit packages.
//
// Design goals:
//   - Typed errors with stable categories (truncated/malformed/duplicate/...).
//   - Paranoid bounds checking; never panic on malformed input.
//   - Limits are plain values so callers can tune them per document.
//
// This package has no dependencies beyond the standard library.
package types
