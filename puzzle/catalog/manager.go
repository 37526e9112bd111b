package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gridrush/rushhour/puzzle/engine"
	"github.com/gridrush/rushhour/puzzle/service"
)

// ErrBoardNotFound is returned when no board file exists under the requested
// name. Malformed board files surface as *engine.MalformedBoardError.
var ErrBoardNotFound = errors.New("board not found")

// builtinClassic is the fallback default layout, used when the board
// directory carries no classic.txt.
const builtinClassic = `AA...O
P..Q.O
PXXQ.O
P..Q..
B...CC
B.RR..`

// Manager handles puzzle board loading and caching
type Manager struct {
	boardDir     string
	defaultBoard *engine.Board
	boards       map[string]*engine.Board
	mu           sync.RWMutex
}

// NewManager creates a new board catalog manager
func NewManager(boardDir string) (*Manager, error) {
	// Ensure board directory exists
	if _, err := os.Stat(boardDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("board directory does not exist: %s", boardDir)
	}

	m := &Manager{
		boardDir: boardDir,
		boards:   make(map[string]*engine.Board),
	}

	// Load default board
	if err := m.loadDefaultBoard(); err != nil {
		return nil, fmt.Errorf("failed to load default board: %w", err)
	}

	return m, nil
}

// LoadBoard loads a board by name
func (m *Manager) LoadBoard(name string) (*engine.Board, error) {
	m.mu.RLock()
	// Check cache first
	if board, exists := m.boards[name]; exists {
		m.mu.RUnlock()
		return board, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if board, exists := m.boards[name]; exists {
		return board, nil
	}

	// Add .txt extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".txt") {
		filename = name + ".txt"
	}

	boardPath := filepath.Join(m.boardDir, filename)

	// Read board file
	data, err := os.ReadFile(boardPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	// Parse board
	board, err := engine.ParseBoard(strings.TrimSuffix(filename, ".txt"), string(data))
	if err != nil {
		return nil, err
	}

	// Cache the board
	m.boards[name] = board
	return board, nil
}

// ListBoards returns information about all available boards
func (m *Manager) ListBoards() ([]*service.BoardInfo, error) {
	entries, err := os.ReadDir(m.boardDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read board directory: %w", err)
	}

	var boards []*service.BoardInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		// Remove .txt extension for board name
		name := strings.TrimSuffix(entry.Name(), ".txt")

		// Try to load the board to get details
		board, err := m.LoadBoard(name)
		if err != nil {
			// Skip malformed boards
			continue
		}

		boards = append(boards, &service.BoardInfo{
			Filename:     entry.Name(),
			BoardID:      name, // This is the identifier to use for solve requests
			Name:         board.Name,
			Width:        board.Width,
			Height:       board.Height,
			VehicleCount: board.NumVehicles(),
		})
	}

	return boards, nil
}

// GetDefault returns the default board
func (m *Manager) GetDefault() *engine.Board {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultBoard
}

// SetDefault sets the default board by name
func (m *Manager) SetDefault(name string) error {
	board, err := m.LoadBoard(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultBoard = board
	return nil
}

// RefreshCache reloads all cached boards from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.boards = make(map[string]*engine.Board)
	m.mu.Unlock()

	return m.loadDefaultBoard()
}

// SaveBoard parses a board layout and writes it to disk
func (m *Manager) SaveBoard(name, text string) (*engine.Board, error) {
	// Add .txt extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".txt") {
		filename = name + ".txt"
	}

	// Validate the layout before saving
	board, err := engine.ParseBoard(strings.TrimSuffix(filename, ".txt"), text)
	if err != nil {
		return nil, err
	}

	boardPath := filepath.Join(m.boardDir, filename)
	if err := os.WriteFile(boardPath, []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("failed to write board file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.boards[name] = board
	m.mu.Unlock()

	return board, nil
}

// loadDefaultBoard loads the default board
func (m *Manager) loadDefaultBoard() error {
	// Try to load classic.txt as default
	board, err := m.LoadBoard("classic")
	if err != nil {
		// Try to load the first available board
		boards, listErr := m.ListBoards()
		if listErr != nil || len(boards) == 0 {
			m.setBuiltinDefault()
			return nil
		}

		board, err = m.LoadBoard(boards[0].BoardID)
		if err != nil {
			m.setBuiltinDefault()
			return nil
		}
	}

	m.mu.Lock()
	m.defaultBoard = board
	m.mu.Unlock()
	return nil
}

// setBuiltinDefault installs the built-in classic layout as the default.
// The constant is known good, so a parse failure here is a programming
// error.
func (m *Manager) setBuiltinDefault() {
	board, err := engine.ParseBoard("classic", builtinClassic)
	if err != nil {
		panic(fmt.Sprintf("built-in classic board failed to parse: %v", err))
	}

	m.mu.Lock()
	m.defaultBoard = board
	m.mu.Unlock()
}
