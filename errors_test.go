package ibx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ibx"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := ibx.NoSuchTable("users")
		assert.Equal(t, `ibx: table "users" not found`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := ibx.NewNotFoundError(ibx.KindView, "v")
		assert.True(t, errors.Is(err, ibx.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := ibx.NewNotFoundError(ibx.KindSequence, "gen")
		assert.True(t, ibx.IsNotFound(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, ibx.IsNotFound(wrapped))

		// Sentinel error
		assert.True(t, ibx.IsNotFound(ibx.ErrNotFound))

		// Non-matching error
		assert.False(t, ibx.IsNotFound(errors.New("other error")))
		assert.False(t, ibx.IsNotFound(nil))
	})
}

func TestCompileError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := ibx.NewCompileError("create index", "index %q has no columns", "ix")
		assert.Equal(t, `ibx: compile create index: index "ix" has no columns`, err.Error())
		assert.Equal(t, "ibx: compile: bad", (&ibx.CompileError{Msg: "bad"}).Error())
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := ibx.NewUnsupportedError("insert", "RETURNING is not supported")
		assert.True(t, ibx.IsCompileError(err))
		assert.ErrorIs(t, err, ibx.ErrUnsupported)
		assert.NotErrorIs(t, ibx.NewCompileError("insert", "x"), ibx.ErrUnsupported)
	})

	t.Run("IsCompileError", func(t *testing.T) {
		assert.True(t, ibx.IsCompileError(fmt.Errorf("wrap: %w", ibx.NewCompileError("", "x"))))
		assert.False(t, ibx.IsCompileError(errors.New("x")))
		assert.False(t, ibx.IsCompileError(nil))
	})
}

func TestUnknownTypeWarning(t *testing.T) {
	w := &ibx.UnknownTypeWarning{Table: "t", Column: "c", Type: "QUAD"}
	assert.Equal(t, `ibx: unknown type "QUAD" in column "c" of "t"`, w.Error())
	assert.Equal(t, `ibx: unknown type "QUAD"`, (&ibx.UnknownTypeWarning{Type: "QUAD"}).Error())
	assert.True(t, ibx.IsUnknownTypeWarning(w))
	assert.False(t, ibx.IsUnknownTypeWarning(nil))
}

func TestConfigurationError(t *testing.T) {
	err := ibx.NewConfigurationError("host", "missing")
	assert.Equal(t, "ibx: configuration: host: missing", err.Error())
	assert.True(t, ibx.IsConfigurationError(fmt.Errorf("open: %w", err)))
	assert.False(t, ibx.IsConfigurationError(errors.New("x")))
}

func TestInvariantError(t *testing.T) {
	err := &ibx.InvariantError{Msg: "unrecognized default value", Raw: "VORGABE 1"}
	assert.Equal(t, `ibx: invariant violated: unrecognized default value: "VORGABE 1"`, err.Error())
	assert.True(t, ibx.IsInvariantError(err))
	assert.False(t, ibx.IsInvariantError(ibx.NoSuchTable("t")))
}

func TestIdentifierError(t *testing.T) {
	err := &ibx.IdentifierError{Name: "abcd", Max: 3}
	assert.Equal(t, `ibx: identifier "abcd" is 4 bytes long, exceeding the maximum of 3`, err.Error())
	assert.True(t, ibx.IsIdentifierError(err))
	assert.False(t, ibx.IsIdentifierError(nil))
}

func TestAggregateError(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		err := ibx.NewAggregateError()
		assert.Nil(t, err)
	})

	t.Run("all nil", func(t *testing.T) {
		err := ibx.NewAggregateError(nil, nil, nil)
		assert.Nil(t, err)
	})

	t.Run("single error", func(t *testing.T) {
		single := errors.New("single")
		err := ibx.NewAggregateError(single)
		assert.Equal(t, single, err)
	})

	t.Run("multiple errors", func(t *testing.T) {
		err1 := ibx.NoSuchTable("a")
		err2 := errors.New("second")
		err := ibx.NewAggregateError(err1, err2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ibx: multiple errors:")
		assert.Contains(t, err.Error(), "[2] second")
		assert.True(t, ibx.IsNotFound(err))
		assert.ErrorIs(t, err, err2)
	})

	t.Run("filters nil", func(t *testing.T) {
		err1 := errors.New("only")
		err := ibx.NewAggregateError(nil, err1, nil)
		assert.Equal(t, err1, err)
	})
}
