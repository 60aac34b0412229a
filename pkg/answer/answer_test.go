package answer_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms/pkg/answer"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/ports"
	"github.com/aretw0/aiforms/pkg/schema"
)

func field(name string, typ domain.TypeTag) domain.FieldSpec {
	return domain.FieldSpec{Name: name, Type: typ}
}

func TestFallback_Boolean(t *testing.T) {
	f := field("newsletter", domain.TypeBoolean)

	for _, in := range []string{"yes", "YES", "True", "1", "y", "Y", "  yes  "} {
		got, err := answer.Fallback(f, in)
		require.NoError(t, err, in)
		assert.Equal(t, true, got, in)
	}
	for _, in := range []string{"no", "No", "FALSE", "0", "n", "N"} {
		got, err := answer.Fallback(f, in)
		require.NoError(t, err, in)
		assert.Equal(t, false, got, in)
	}
	for _, in := range []string{"maybe", "", "yess", "2", "on"} {
		_, err := answer.Fallback(f, in)
		require.Error(t, err, in)
		assert.Contains(t, err.Error(), "Expected yes/no")
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestFallback_Numbers(t *testing.T) {
	t.Run("Integer", func(t *testing.T) {
		got, err := answer.Fallback(field("age", domain.TypeInteger), " 30 ")
		require.NoError(t, err)
		assert.Equal(t, 30, got)

		got, err = answer.Fallback(field("delta", domain.TypeInteger), "-7")
		require.NoError(t, err)
		assert.Equal(t, -7, got)

		got, err = answer.Fallback(field("population", domain.TypeInteger), "1_000")
		require.NoError(t, err)
		assert.Equal(t, 1000, got)
	})

	t.Run("Integer Beyond Int Range", func(t *testing.T) {
		for _, raw := range []string{"9999999999999999999", "-9999999999999999999"} {
			got, err := answer.Fallback(field("big", domain.TypeInteger), raw)
			require.NoError(t, err, raw)
			require.IsType(t, &big.Int{}, got)
			assert.Equal(t, raw, got.(*big.Int).String())
			assert.NoError(t, schema.Int().Validate(got))
		}
	})

	t.Run("Integer Rejected", func(t *testing.T) {
		_, err := answer.Fallback(field("age", domain.TypeInteger), " abc ")
		require.Error(t, err)
		assert.Equal(t, "Expected a number, got: abc", err.Error())

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "age", vErr.Field)

		_, err = answer.Fallback(field("age", domain.TypeInteger), "3.5")
		assert.Error(t, err)

		for _, raw := range []string{"_1000", "1000_", "1__000", "1_a"} {
			_, err = answer.Fallback(field("age", domain.TypeInteger), raw)
			assert.Error(t, err, raw)
		}
	})

	t.Run("Float", func(t *testing.T) {
		got, err := answer.Fallback(field("height", domain.TypeFloat), "1.75")
		require.NoError(t, err)
		assert.Equal(t, 1.75, got)

		got, err = answer.Fallback(field("height", domain.TypeFloat), "2")
		require.NoError(t, err)
		assert.Equal(t, 2.0, got)
	})

	t.Run("Float Rejected", func(t *testing.T) {
		_, err := answer.Fallback(field("height", domain.TypeFloat), "tall")
		require.Error(t, err)
		assert.Equal(t, "Expected a decimal number, got: tall", err.Error())
	})
}

func TestFallback_List(t *testing.T) {
	f := field("skills", domain.TypeList)

	tests := []struct {
		in   string
		want []string
	}{
		{"python, go ,sql", []string{"python", "go", "sql"}},
		{"  solo  ", []string{"solo"}},
		{"", []string{}},
		{"   ", []string{}},
		{"a,", []string{"a", ""}},
		{"42", []string{"42"}},
	}
	for _, tt := range tests {
		got, err := answer.Fallback(f, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestFallback_StringIsTotal(t *testing.T) {
	for _, typ := range []domain.TypeTag{domain.TypeString, domain.TypeOther} {
		got, err := answer.Fallback(field("x", typ), "  Alice Johnson \n")
		require.NoError(t, err)
		assert.Equal(t, "Alice Johnson", got)

		got, err = answer.Fallback(field("x", typ), "")
		require.NoError(t, err)
		assert.Equal(t, "", got)
	}
}

func TestPipeline(t *testing.T) {
	ctx := context.Background()
	age := field("age", domain.TypeInteger)

	t.Run("No Parser Uses Fallback", func(t *testing.T) {
		p := answer.NewPipeline()
		got, err := p.Parse(ctx, age, "28", nil)
		require.NoError(t, err)
		assert.Equal(t, 28, got)
	})

	t.Run("Parser Result Wins", func(t *testing.T) {
		var seen map[string]any
		parser := ports.AnswerParserFunc(func(ctx context.Context, raw string, f domain.FieldSpec, data map[string]any) (any, error) {
			seen = data
			return 28, nil
		})
		p := answer.NewPipeline(answer.WithParser(parser))
		got, err := p.Parse(ctx, age, "twenty eight", map[string]any{"name": "Alice"})
		require.NoError(t, err)
		assert.Equal(t, 28, got)
		assert.Equal(t, "Alice", seen["name"])
	})

	t.Run("Parser Error Falls Back", func(t *testing.T) {
		parser := ports.AnswerParserFunc(func(context.Context, string, domain.FieldSpec, map[string]any) (any, error) {
			return nil, errors.New("model unavailable")
		})
		p := answer.NewPipeline(answer.WithParser(parser))

		got, err := p.Parse(ctx, age, "31", nil)
		require.NoError(t, err)
		assert.Equal(t, 31, got)

		_, err = p.Parse(ctx, age, "abc", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Expected a number")
	})

	t.Run("Parser Panic Falls Back", func(t *testing.T) {
		parser := ports.AnswerParserFunc(func(context.Context, string, domain.FieldSpec, map[string]any) (any, error) {
			panic("boom")
		})
		p := answer.NewPipeline(answer.WithParser(parser))
		got, err := p.Parse(ctx, field("name", domain.TypeString), " Bob ", nil)
		require.NoError(t, err)
		assert.Equal(t, "Bob", got)
	})

	t.Run("SetParser Nil Disables", func(t *testing.T) {
		parser := ports.AnswerParserFunc(func(context.Context, string, domain.FieldSpec, map[string]any) (any, error) {
			return 99, nil
		})
		p := answer.NewPipeline(answer.WithParser(parser))
		p.SetParser(nil)
		got, err := p.Parse(ctx, age, "5", nil)
		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})
}
