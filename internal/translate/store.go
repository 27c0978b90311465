package translate

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/ziggurat/internal"
)

// Memory is a persistent translation memory backed by SQLite. Fragments
// already translated in an earlier run (or earlier in a failed run) are
// served locally instead of re-billed against the API.
type Memory struct {
	db *sql.DB
}

// DefaultMemoryPath returns the default location of the translation memory
// database, following the XDG cache convention.
func DefaultMemoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".ziggurat", "memory.db")
	}
	return filepath.Join(home, ".cache", "ziggurat", "memory.db")
}

// OpenMemory opens (and if needed creates) the translation memory at path
func OpenMemory(path string) (*Memory, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create memory directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation memory: %w", err)
	}

	query := `CREATE TABLE IF NOT EXISTS translations (
		key text PRIMARY KEY,
		source text NOT NULL,
		target_lang text NOT NULL,
		provider text NOT NULL,
		translated text NOT NULL,
		created_at integer NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create translations table: %w", err)
	}

	return &Memory{db: db}, nil
}

// Get retrieves a stored translation, if present
func (m *Memory) Get(text, targetLang, provider string) (string, bool) {
	key := internal.FragmentKey(text, targetLang, provider)

	var translated string
	err := m.db.QueryRow(
		"SELECT translated FROM translations WHERE key = ?", key,
	).Scan(&translated)
	if err != nil {
		return "", false
	}
	return translated, true
}

// Put stores a translation, overwriting any previous entry for the fragment
func (m *Memory) Put(text, targetLang, provider, translated string) error {
	key := internal.FragmentKey(text, targetLang, provider)

	_, err := m.db.Exec(
		`INSERT OR REPLACE INTO translations
		 (key, source, target_lang, provider, translated, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		key, text, targetLang, provider, translated, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}
	return nil
}

// Count returns the number of stored translations
func (m *Memory) Count() (int, error) {
	var n int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM translations").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count translations: %w", err)
	}
	return n, nil
}

// Close closes the underlying database
func (m *Memory) Close() error {
	return m.db.Close()
}
