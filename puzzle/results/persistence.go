package results

import "github.com/gridrush/rushhour/puzzle/service"

// ResultPersistence defines the interface for persisting solve results
type ResultPersistence interface {
	// Save persists a result to storage
	Save(record *service.SolveRecord) error

	// Load retrieves a result from storage by ID
	Load(id string) (*service.SolveRecord, error)

	// Delete removes a result from storage
	Delete(id string) error

	// ListAll returns all persisted result IDs
	ListAll() ([]string, error)

	// Exists checks if a result exists in storage
	Exists(id string) bool
}
