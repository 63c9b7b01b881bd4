// Package domain defines the core entity types for the sales administration core.
//
// # Core Types
//
// Department is a named organisational unit. Seller belongs to exactly one
// Department and carries contact, birth date and base salary attributes.
//
// An entity with a nil ID has not been persisted yet. The repository layer
// assigns the generated key on insert; nothing else in this package knows
// about tables or columns.
//
// # Errors
//
// ValidationError, PersistenceError and IntegrityError form the error taxonomy
// shared by the validation pipeline, the repository and the service layer.
// Callers classify them with errors.As or the Is* helpers.
//
// # Design Principles
//
// - Plain data records with no persistence awareness
// - No database or external dependencies beyond value types
package domain
