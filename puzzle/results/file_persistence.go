package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridrush/rushhour/puzzle/service"
)

// FilePersistence implements ResultPersistence using file system storage.
// Records serialize as one pretty-printed JSON file per result, which keeps
// them greppable and easy to prune by hand.
type FilePersistence struct {
	resultsDir string
}

// NewFilePersistence creates a new file-based result persistence layer
func NewFilePersistence(resultsDir string) (*FilePersistence, error) {
	// Create results directory if it doesn't exist
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	return &FilePersistence{resultsDir: resultsDir}, nil
}

// Save persists a result to a JSON file
func (fp *FilePersistence) Save(record *service.SolveRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	filePath := fp.getFilePath(record.ID)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}

	return nil
}

// Load retrieves a result from a JSON file
func (fp *FilePersistence) Load(id string) (*service.SolveRecord, error) {
	filePath := fp.getFilePath(id)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var record service.SolveRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &record, nil
}

// Delete removes a result file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrResultNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove result file: %w", err)
	}

	return nil
}

// ListAll returns all persisted result IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.resultsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}

	return ids, nil
}

// Exists checks if a result file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a result ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.resultsDir, fmt.Sprintf("%s.json", id))
}
