package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agenthands/tribunal/internal/core/model"
)

// CheckpointFile persists batch progress. Writes are serialized and atomic
// so a crash mid-batch loses at most the in-flight problem.
type CheckpointFile struct {
	path string
	mu   sync.Mutex
}

func NewCheckpointFile(path string) *CheckpointFile {
	return &CheckpointFile{path: path}
}

func (c *CheckpointFile) Write(cp model.Checkpoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint dir: %w", err)
	}
	if err := WriteFileAtomic(c.path, data); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}

// Load returns the persisted checkpoint, or ok=false if none exists yet.
func (c *CheckpointFile) Load() (model.Checkpoint, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Checkpoint{}, false, nil
		}
		return model.Checkpoint{}, false, fmt.Errorf("failed to read checkpoint '%s': %w", c.path, err)
	}

	var cp model.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("failed to unmarshal checkpoint '%s': %w", c.path, err)
	}
	return cp, true, nil
}
