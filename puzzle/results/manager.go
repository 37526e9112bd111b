package results

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridrush/rushhour/puzzle/service"
)

var (
	ErrResultNotFound      = errors.New("result not found")
	ErrResultAlreadyExists = errors.New("result already exists")
)

var log = logrus.New()

// Manager keeps completed solves addressable by short IDs
type Manager struct {
	records     map[string]*service.SolveRecord
	persistence ResultPersistence
	mu          sync.RWMutex
}

// NewManager creates a new in-memory result store
func NewManager() *Manager {
	return &Manager{
		records: make(map[string]*service.SolveRecord),
	}
}

// NewManagerWithPersistence creates a new result store backed by persistence
func NewManagerWithPersistence(persistence ResultPersistence) *Manager {
	return &Manager{
		records:     make(map[string]*service.SolveRecord),
		persistence: persistence,
	}
}

// Create stores a response under the given ID. An empty ID gets a fresh
// 4-character one.
func (m *Manager) Create(id string, resp *service.SolveResponse) (*service.SolveRecord, error) {
	if id == "" {
		id = m.generateResultID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if result already exists (case-insensitive)
	if m.recordExists(id) {
		return nil, ErrResultAlreadyExists
	}

	record := &service.SolveRecord{
		ID:        id,
		CreatedAt: time.Now(),
		Response:  resp,
	}

	m.records[strings.ToLower(id)] = record

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(record); err != nil {
			// Log error but don't fail the creation
			log.Warnf("Failed to persist result %s: %v", id, err)
		}
	}

	return record, nil
}

// Get retrieves a result by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.SolveRecord, error) {
	m.mu.RLock()
	record, exists := m.records[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return record, nil
	}

	// Try loading from persistence if not in memory
	if m.persistence != nil && m.persistence.Exists(id) {
		record, err := m.persistence.Load(id)
		if err != nil {
			return nil, err
		}

		// Add to memory cache
		m.mu.Lock()
		m.records[strings.ToLower(id)] = record
		m.mu.Unlock()

		return record, nil
	}

	return nil, ErrResultNotFound
}

// List returns all stored results
func (m *Manager) List() []*service.SolveRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.SolveRecord, 0, len(m.records))
	for _, record := range m.records {
		result = append(result, record)
	}

	return result
}

// Delete removes a result
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	inMemory := false

	if _, exists := m.records[lowerID]; exists {
		delete(m.records, lowerID)
		inMemory = true
	}

	// Delete from persistence if it exists
	if m.persistence != nil && m.persistence.Exists(id) {
		return m.persistence.Delete(id)
	}

	if !inMemory {
		return ErrResultNotFound
	}

	return nil
}

// CleanupExpired removes results older than the given age and reports how
// many were removed. Persisted copies are left alone.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, record := range m.records {
		if record.CreatedAt.Before(cutoff) {
			delete(m.records, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of stored results
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// LoadPersisted loads all persisted results into memory
func (m *Manager) LoadPersisted() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		if _, exists := m.records[strings.ToLower(id)]; exists {
			continue
		}

		record, err := m.persistence.Load(id)
		if err != nil {
			log.Warnf("Failed to load persisted result %s: %v", id, err)
			continue
		}

		m.records[strings.ToLower(id)] = record
		loaded++
	}

	if loaded > 0 {
		log.Infof("Loaded %d persisted results from storage", loaded)
	}

	return nil
}

// generateResultID generates a random 4-character result ID
func (m *Manager) generateResultID() string {
	// Generate 2 random bytes (4 hex characters)
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// recordExists checks if a result exists (case-insensitive)
func (m *Manager) recordExists(id string) bool {
	_, exists := m.records[strings.ToLower(id)]
	return exists
}
