package redirect_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/go-login-client/redirect"
	"github.com/stretchr/testify/require"
)

func TestInterceptor(t *testing.T) {
	t.Run("handles a redirect once", func(t *testing.T) {
		i, err := redirect.NewInterceptor("http://localhost:8085/callback")
		require.NoError(t, err)
		require.True(t, i.Armed())

		cb, err := i.Intercept("http://localhost:8085/callback?code=ABC123")
		require.NoError(t, err)
		require.Equal(t, redirect.KindCode, cb.Kind)
		require.False(t, i.Armed())

		cb, err = i.Intercept("http://localhost:8085/callback?code=ABC123")
		require.NoError(t, err)
		require.Equal(t, redirect.KindIgnored, cb.Kind)
	})

	t.Run("arm allows the next attempt", func(t *testing.T) {
		i, err := redirect.NewInterceptor("")
		require.NoError(t, err)

		_, err = i.Intercept("https://host/cb?error=access_denied")
		require.NoError(t, err)
		i.Arm()

		cb, err := i.Intercept("https://host/cb?code=NEXT")
		require.NoError(t, err)
		require.Equal(t, "NEXT", cb.Code)
	})

	t.Run("other urls do not consume the attempt", func(t *testing.T) {
		i, err := redirect.NewInterceptor("http://localhost:8085/callback")
		require.NoError(t, err)

		for _, u := range []string{
			"https://www.facebook.com/dialog/oauth?client_id=1",
			"http://localhost:8085/other?code=NOPE",
			"http://evil.example.com/callback?code=NOPE",
			"http://localhost:8085/callback",
		} {
			cb, err := i.Intercept(u)
			require.NoError(t, err)
			require.Equal(t, redirect.KindIgnored, cb.Kind, u)
		}
		require.True(t, i.Armed())

		cb, err := i.Intercept("http://LOCALHOST:8085/callback/?code=OK")
		require.NoError(t, err)
		require.Equal(t, "OK", cb.Code)
	})

	t.Run("concurrent redirects yield one response", func(t *testing.T) {
		i, err := redirect.NewInterceptor("")
		require.NoError(t, err)

		var handled atomic.Int32
		var wg sync.WaitGroup
		for n := 0; n < 16; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cb, err := i.Intercept("https://host/cb?code=C")
				if err == nil && cb.Kind == redirect.KindCode {
					handled.Add(1)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), handled.Load())
	})
}
