// Package kernel provides core domain primitives for the restaurant system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package currently contains a single primitive:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//
// The primitive enforces domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. It is immutable and thread-safe,
// making it suitable for concurrent use.
package kernel
