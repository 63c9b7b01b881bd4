// Package validation turns raw form text into domain entities.
//
// Parsing never throws: each form's Parse returns the entity together with
// the collected domain.FieldErrors. Every field is checked, so a single pass
// reports every problem on the form. A non-empty error set means the entity
// must not be persisted.
package validation
