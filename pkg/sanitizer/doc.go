// Package sanitizer provides input normalization and HTML escaping for
// user-supplied free text.
//
// All functions are idempotent where that makes sense (normalization) and
// never return errors: invalid input degrades to an empty or escaped string.
//
// Escaping covers the characters that can break out of HTML text content:
//   - & < > and the double quote become entities
//   - newlines become <br> when the multi-line variant is used
package sanitizer
