// Package core provides the business logic for filing customs import declarations.
//
// This package is the heart of the service, containing all domain logic
// independent of any transport or storage mechanism. It can be used by web
// handlers, command line tools, or tests without modification.
//
// # Architecture
//
// The package is organized around four collaborating pieces:
//
//   - Monetary Allocator: [AllocateProportional] and [AllocateEqually] split a
//     total into cent-exact shares using the largest-remainder method.
//   - Entity Reconciler: [Reconciler] resolves importer and exporter payloads
//     against a [PartyBook] snapshot so repeated submissions converge.
//   - Declaration Aggregate Manager: [Service] owns the lifecycle of
//     declarations and their tariff line items.
//   - Document preparation: [Service.PrepareDocument] persists the current
//     master bill and gathers everything the customsdoc assembler needs.
//
// # Ingestion
//
// Payloads arrive as loosely typed JSON. Every scalar is decoded into a
// [Field], and a single normalization pass turns inputs into the persisted
// types: absent text becomes "", amounts are parsed with currency symbols and
// thousands separators removed, and anything unparseable becomes zero.
//
// # Persistence
//
// The service only needs a [DocumentStore]: whole-document reads and writes
// keyed by collection name. Each operation reads the collections it touches,
// mutates an in-memory copy and writes the result back. Concurrent writers
// are not serialized; the last write wins.
//
// # Error Handling
//
// Operations return [NotFoundError] and [ValidationError] values that match
// [ErrNotFound] and [ErrValidation] under errors.Is. Store failures wrap
// [ErrStoreRead] or [ErrStoreWrite]. Technical errors are mapped to coded,
// user-friendly messages by [MapError].
package core
