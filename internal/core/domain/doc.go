// Package domain defines the core business entities for Scout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Candidate: A person in the searchable corpus
//   - Filters: Structured constraints extracted from a query
//   - ExpandedQuery: A query after normalisation and synonym expansion
//   - SearchResult: A ranked, labelled, explained match
//   - BehaviorSnapshot: A user's recent searches and saved candidates
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
