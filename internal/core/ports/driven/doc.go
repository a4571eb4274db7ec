// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CandidateStore: Candidate persistence
//   - HistoryStore: Search history and saved-candidate persistence
//   - CorpusProvider: Current immutable index snapshot over the corpus
//   - LexicalIndex: Keyword (BM25) ranking over candidates
//   - VectorIndex: Embedding similarity ranking over candidates
//   - EmbeddingService: Turns query text into vectors. The built-in
//     feature-hash provider means this never has to be nil.
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
