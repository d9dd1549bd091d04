package dataset

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/agenthands/tribunal/internal/core/model"
)

// Load reads the problem dataset from a JSON file of the form
// {"problems": [...]}.
func Load(path string) ([]model.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problems file '%s': %w", path, err)
	}

	var file struct {
		Problems []model.Problem `json:"problems"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse problems file '%s': %w", path, err)
	}

	log.Printf("Loaded %d problems from %s", len(file.Problems), path)
	return file.Problems, nil
}

// FindByID returns the problem with the given id.
func FindByID(problems []model.Problem, id string) (model.Problem, bool) {
	for _, p := range problems {
		if p.ID == id {
			return p, true
		}
	}
	return model.Problem{}, false
}
