// Package results provides storage for completed solves.
//
// The results package implements:
//   - Thread-safe result storage and retrieval
//   - Unique result ID generation
//   - Optional file-backed persistence
//   - Cleanup of expired results
//
// Core Types:
//
// Manager is the main store handling all result operations. Records are
// service.SolveRecord values: a short ID, a creation time and the full solve
// response, including the per-move path and rendered frames used for
// playback.
//
// Result Identifiers:
//
// Results use 4-character hexadecimal IDs for easy reference, generated with
// cryptographic randomness. Lookups are case-insensitive.
//
// Concurrency:
//
// The manager is thread-safe. Records are immutable once created, so readers
// never observe partial updates.
//
// Usage:
//
//	manager := results.NewManager()
//
//	record, err := manager.Create("", resp)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	record, err = manager.Get(record.ID)
//
// With persistence enabled, records survive restarts:
//
//	persistence, err := results.NewFilePersistence("results")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager = results.NewManagerWithPersistence(persistence)
//	manager.LoadPersisted()
package results
