package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tversky-labs/skipgram/internal/werrors"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateRejectsNoOutputLayer(t *testing.T) {
	cfg := Default()
	cfg.HierarchicalSoftmax = false
	cfg.Negative = 0
	err := cfg.Validate()
	require := assert.New(t)
	require.Error(err)
	var invalid *werrors.InvalidConfig
	require.ErrorAs(err, &invalid)
}

func TestValidateRejectsNonPositiveDimension(t *testing.T) {
	cfg := Default()
	cfg.Dimension = 0
	assert.Error(t, cfg.Validate())
}
