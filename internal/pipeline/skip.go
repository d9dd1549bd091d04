package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agenthands/tribunal/internal/core/model"
)

// SkipSet names the stages the operator wants loaded from persistence
// rather than executed.
type SkipSet map[model.Stage]bool

func NewSkipSet(stages ...model.Stage) SkipSet {
	s := make(SkipSet, len(stages))
	for _, st := range stages {
		s[st] = true
	}
	return s
}

func (s SkipSet) Contains(stage model.Stage) bool {
	return s[stage]
}

// ParseSkipSet parses a comma-separated list of stage indices, e.g. "0,1".
func ParseSkipSet(raw string) (SkipSet, error) {
	s := make(SkipSet)
	if strings.TrimSpace(raw) == "" {
		return s, nil
	}
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid stage index %q: %w", part, err)
		}
		if n < 0 || n > int(model.StageJudgment) {
			return nil, fmt.Errorf("stage index %d out of range 0..%d", n, int(model.StageJudgment))
		}
		s[model.Stage(n)] = true
	}
	return s, nil
}
