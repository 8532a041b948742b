package errors_test

import (
	"fmt"
	"testing"

	liberrors "github.com/jrsteele09/go-login-client/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, liberrors.Wrapf(nil, "loading %s", "config"))
	})

	t.Run("keeps the chain", func(t *testing.T) {
		err := liberrors.Wrapf(liberrors.ErrMissingEndpoint, "loading %s", "config")
		require.EqualError(t, err, "loading config: missing endpoint")
		require.True(t, liberrors.Is(err, liberrors.ErrMissingEndpoint))
	})

	t.Run("as finds wrapped types", func(t *testing.T) {
		err := liberrors.Wrapf(fmt.Errorf("inner: %w", &customErr{"x"}), "outer")
		var target *customErr
		require.True(t, liberrors.As(err, &target))
		require.Equal(t, "x", target.msg)
	})
}

type customErr struct{ msg string }

func (c *customErr) Error() string { return c.msg }
