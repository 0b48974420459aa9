//go:build integration

package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_RejectsPromptOverTokenBudget(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)
	g := gemini.NewGenerator(nil, "", gemini.WithTokenBudget(tc, 3))

	_, err = g.Generate(context.Background(), "Based on the following profile information, generate a list of relevant skills.")

	require.Error(t, err)
	assert.Equal(t, profiled.EINVALID, profiled.ErrorCode(err))
	assert.Contains(t, profiled.ErrorMessage(err), "budget")
}
