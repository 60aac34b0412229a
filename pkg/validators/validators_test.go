package validators_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/validators"
)

func TestFunc(t *testing.T) {
	v := validators.Func(func(x any) bool {
		s, _ := x.(string)
		return len(s) > 5
	}, "Value must be longer than 5 characters")

	assert.EqualError(t, v.Validate("short"), "Value must be longer than 5 characters")
	assert.NoError(t, v.Validate("long enough"))
}

func TestEmail(t *testing.T) {
	v := validators.Email()

	for _, ok := range []string{"test@example.com", "user.name@domain.co.uk"} {
		assert.NoError(t, v.Validate(ok), ok)
	}
	for _, bad := range []any{"invalid-email", "@domain.com", "user@", "a@b@c.com", "user@localhost", 123} {
		assert.Error(t, v.Validate(bad), bad)
	}
	assert.EqualError(t, v.Validate("invalid"), "'invalid' is not a valid email address")
}

func TestRange(t *testing.T) {
	t.Run("Both Bounds", func(t *testing.T) {
		v := validators.Range(0, 100)
		for _, ok := range []any{50, "75", 0, 100, 99.5, int64(1), big.NewInt(42)} {
			assert.NoError(t, v.Validate(ok), ok)
		}
		for _, bad := range []any{-1, 101, "not a number", nil, true} {
			assert.EqualError(t, v.Validate(bad), "Value must be between 0 and 100", bad)
		}
	})

	t.Run("Min Only", func(t *testing.T) {
		v := validators.Min(18)
		assert.NoError(t, v.Validate(18))
		assert.NoError(t, v.Validate(100))
		assert.EqualError(t, v.Validate(17), "Value must be at least 18")
	})

	t.Run("Max Only", func(t *testing.T) {
		v := validators.Max(65)
		assert.NoError(t, v.Validate(30))
		assert.NoError(t, v.Validate(65))
		assert.EqualError(t, v.Validate(66), "Value must be at most 65")
	})

	t.Run("Fractional Bounds", func(t *testing.T) {
		assert.EqualError(t, validators.Range(0.5, 1.5).Validate(2), "Value must be between 0.5 and 1.5")
	})

	t.Run("Unbounded", func(t *testing.T) {
		v := &validators.RangeValidator{}
		assert.NoError(t, v.Validate(1e9))
		assert.EqualError(t, v.Validate("x"), "Invalid numeric value")
	})
}

func TestFieldAndCheck(t *testing.T) {
	err := validators.Field("age", 7, validators.Min(0), validators.Range(13, 120))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "age", vErr.Field)
	assert.Equal(t, "Value must be between 13 and 120", vErr.Reason)

	assert.NoError(t, validators.Check(
		validators.Field("age", 30, validators.Range(13, 120)),
		validators.Field("email", "a@b.io", validators.Email()),
	))

	err = validators.Check(
		validators.Field("age", 7, validators.Range(13, 120)),
		validators.Field("email", "nope", validators.Email()),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Value must be between 13 and 120")
	assert.Contains(t, err.Error(), "'nope' is not a valid email address")
}

type signup struct {
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func (s *signup) Validate() error {
	return validators.Check(
		validators.Field("email", s.Email, validators.Email()),
		validators.Field("age", s.Age, validators.Range(13, 120)),
	)
}

func TestModelValidation(t *testing.T) {
	ctx := context.Background()
	form, err := aiforms.New[signup]()
	require.NoError(t, err)

	_, err = form.Start(ctx)
	require.NoError(t, err)
	_, err = form.Respond(ctx, "bob")
	require.NoError(t, err)
	resp, err := form.Respond(ctx, "7")
	require.NoError(t, err)

	assert.False(t, resp.IsComplete)
	assert.Equal(t, []string{
		"'bob' is not a valid email address",
		"Value must be between 13 and 120",
	}, resp.Errors)
	assert.Equal(t, "age", resp.Field())

	resp, err = form.Respond(ctx, "30")
	require.NoError(t, err)
	assert.Equal(t, []string{"'bob' is not a valid email address"}, resp.Errors)
}
