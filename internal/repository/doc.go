// Package repository defines the data access interfaces for salesdesk.
//
// There is one DAO interface per entity type, each with the same capability
// set: Insert, Update, DeleteByID, FindByID and FindAll. The SQL
// implementation lives in the sqlstore subpackage and supports SQLite and
// PostgreSQL through a small dialect layer.
//
// # Error Contract
//
// Implementations never swallow store failures. Every failure surfaces as a
// *domain.PersistenceError, or as a *domain.IntegrityError when a foreign-key
// constraint blocked the statement. Absence on lookup is (nil, nil).
//
// # Testing
//
// The sqlstore implementation is tested against in-memory SQLite for
// round-trip behaviour and against go-sqlmock for dialect SQL and failure
// paths.
package repository
