package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agenthands/tribunal/internal/core/model"
)

// ErrNotFound is returned when no result has been persisted for the
// requested (problem, stage) key.
var ErrNotFound = errors.New("stage result not found")

// Store persists stage results keyed by (problem id, stage). A stored
// result, when reloaded, must round-trip to an identical value.
type Store interface {
	Save(problemID string, stage model.Stage, result interface{}) error
	Load(problemID string, stage model.Stage, out interface{}) error
}

// FileStore keeps one JSON file per (problem, stage), named the way the
// operator expects to find raw outputs: <id>_stage<N>_<label>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir '%s': %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(problemID string, stage model.Stage) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_stage%d_%s.json", problemID, int(stage), stage.Label()))
}

func (s *FileStore) Save(problemID string, stage model.Stage, result interface{}) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stage result: %w", err)
	}
	return WriteFileAtomic(s.path(problemID, stage), data)
}

func (s *FileStore) Load(problemID string, stage model.Stage, out interface{}) error {
	path := s.path(problemID, stage)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("failed to read stage result '%s': %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal stage result '%s': %w", path, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func memKey(problemID string, stage model.Stage) string {
	return fmt.Sprintf("%s/%d", problemID, int(stage))
}

func (s *MemStore) Save(problemID string, stage model.Stage, result interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[memKey(problemID, stage)] = data
	return nil
}

func (s *MemStore) Load(problemID string, stage model.Stage, out interface{}) error {
	s.mu.RLock()
	data, ok := s.data[memKey(problemID, stage)]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s stage %d: %w", problemID, int(stage), ErrNotFound)
	}
	return json.Unmarshal(data, out)
}

// WriteFileAtomic writes data via a temp file in the same directory and
// renames it over the destination, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in '%s': %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file to '%s': %w", path, err)
	}
	return nil
}
