package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms/pkg/domain"
)

// RunQuestionGeneratorContract runs a suite of tests to verify that a QuestionGenerator
// implementation adheres to the defined interface contract.
func RunQuestionGeneratorContract(t *testing.T, gen QuestionGenerator) {
	ctx := context.Background()
	field := domain.FieldSpec{
		Name:        "email",
		Type:        domain.TypeString,
		Description: "Email address for contact",
		Examples:    []string{"user@example.com", "alice@company.co"},
	}
	data := map[string]any{"name": "Alice"}

	t.Run("Non-Empty Question", func(t *testing.T) {
		q, err := gen.Generate(ctx, field, data)
		require.NoError(t, err)
		assert.NotEmpty(t, q)
	})

	t.Run("Repeatable", func(t *testing.T) {
		first, err := gen.Generate(ctx, field, data)
		require.NoError(t, err)
		second, err := gen.Generate(ctx, field, data)
		require.NoError(t, err)
		assert.Equal(t, first, second, "same inputs should phrase the same question")
	})

	t.Run("Does Not Mutate Data", func(t *testing.T) {
		in := map[string]any{"name": "Alice"}
		_, err := gen.Generate(ctx, field, in)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Alice"}, in)
	})
}
