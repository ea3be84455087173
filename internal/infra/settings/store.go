package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Settings is the persisted shape the host shell reads and writes.
type Settings struct {
	SaveDir string `json:"save_dir"`
}

// Store holds the app settings JSON file. A missing or corrupt file falls
// back to the default save directory.
type Store struct {
	path string

	mu  sync.Mutex
	cur Settings
}

func New(path, defaultSaveDir string) *Store {
	s := &Store{path: path, cur: Settings{SaveDir: defaultSaveDir}}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var loaded Settings
	if err := json.Unmarshal(raw, &loaded); err == nil && loaded.SaveDir != "" {
		s.cur = loaded
	}
	return s
}

func (s *Store) SaveDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.SaveDir
}

// SetSaveDir resolves the directory to an absolute path, creates it and
// rewrites the settings file.
func (s *Store) SetSaveDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.SaveDir = abs

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
