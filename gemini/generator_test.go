package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_ReturnsErrorWhenPromptEmpty(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(nil, "")

	_, err := g.Generate(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, profiled.EINVALID, profiled.ErrorCode(err))
	assert.Contains(t, profiled.ErrorMessage(err), "prompt required")
}

func TestGenerator_Generate_ReturnsErrorWhenClientMissing(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(nil, "")

	_, err := g.Generate(context.Background(), "List skills.")

	require.Error(t, err)
	assert.Equal(t, profiled.EUNAVAILABLE, profiled.ErrorCode(err))
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "skill names only")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
}
