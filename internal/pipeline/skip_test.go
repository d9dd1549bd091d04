package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tribunal/internal/core/model"
)

func TestParseSkipSet(t *testing.T) {
	s, err := ParseSkipSet("0, 1")

	require.NoError(t, err)
	assert.True(t, s.Contains(model.StageRoles))
	assert.True(t, s.Contains(model.StageSolutions))
	assert.False(t, s.Contains(model.StageReviews))
}

func TestParseSkipSetEmpty(t *testing.T) {
	s, err := ParseSkipSet("")

	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestParseSkipSetRejectsOutOfRange(t *testing.T) {
	_, err := ParseSkipSet("5")
	assert.Error(t, err)

	_, err = ParseSkipSet("-1")
	assert.Error(t, err)
}

func TestParseSkipSetRejectsGarbage(t *testing.T) {
	_, err := ParseSkipSet("0,one")
	assert.Error(t, err)
}
