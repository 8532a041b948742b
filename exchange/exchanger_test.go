package exchange_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-login-client/exchange"
	"github.com/jrsteele09/go-login-client/oauthmodel"
	"github.com/stretchr/testify/require"
	xoauth2 "golang.org/x/oauth2"
)

const (
	testClientID     = "227791440613076"
	testClientSecret = "test-secret"
	testRedirectURI  = "http://localhost:8085/callback"
	testCode         = "ABC123"
)

// tokenEndpoint answers every request with the given status and JSON body and
// records the last form it received.
func tokenEndpoint(t *testing.T, status int, body string) (*httptest.Server, *url.Values) {
	t.Helper()
	return typedTokenEndpoint(t, status, "application/json", body)
}

func typedTokenEndpoint(t *testing.T, status int, contentType, body string) (*httptest.Server, *url.Values) {
	t.Helper()
	var received url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		received = r.PostForm
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func tokenRequest(endpoint string) oauthmodel.TokenRequest {
	return oauthmodel.NewTokenRequest(endpoint, testCode, testClientID, testClientSecret, testRedirectURI, "authorization_code")
}

func TestExchange_FullResponse(t *testing.T) {
	srv, received := tokenEndpoint(t, http.StatusOK, `{"access_token":"T","expires_in":"3600","refresh_token":"R"}`)

	tok, err := exchange.New().Exchange(context.Background(), tokenRequest(srv.URL))
	require.NoError(t, err)
	require.Equal(t, "T", tok.AccessToken)
	require.Equal(t, "3600", tok.ExpiresIn)
	require.Equal(t, "R", tok.RefreshToken)

	form := *received
	require.Equal(t, testCode, form.Get("code"))
	require.Equal(t, testClientID, form.Get("client_id"))
	require.Equal(t, testClientSecret, form.Get("client_secret"))
	require.Equal(t, testRedirectURI, form.Get("redirect_uri"))
	require.Equal(t, "authorization_code", form.Get("grant_type"))
	require.Empty(t, form.Get("code_verifier"))
}

func TestExchange_NumericExpiry(t *testing.T) {
	srv, _ := tokenEndpoint(t, http.StatusOK, `{"access_token":"T","expires_in":5183999,"refresh_token":"R"}`)

	tok, err := exchange.New().Exchange(context.Background(), tokenRequest(srv.URL))
	require.NoError(t, err)
	require.Equal(t, "5183999", tok.ExpiresIn)
}

func TestExchange_BodyIsAlwaysJSON(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{"json as text/plain", "text/plain", `{"access_token":"T","expires_in":"3600","refresh_token":"R"}`, nil},
		{"json without content type", "", `{"access_token":"T","expires_in":"3600","refresh_token":"R"}`, nil},
		{"form body", "application/x-www-form-urlencoded", "access_token=T&expires_in=3600&refresh_token=R", exchange.ErrMalformedResponse},
		{"json array", "application/json", `["T","3600","R"]`, exchange.ErrMalformedResponse},
		{"null", "application/json", `null`, exchange.ErrMalformedResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := typedTokenEndpoint(t, http.StatusOK, tc.contentType, tc.body)

			tok, err := exchange.New().Exchange(context.Background(), tokenRequest(srv.URL))
			if tc.wantErr != nil {
				require.Nil(t, tok)
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "T", tok.AccessToken)
			require.Equal(t, "3600", tok.ExpiresIn)
			require.Equal(t, "R", tok.RefreshToken)
		})
	}
}

func TestExchange_ExpiresInKeptAsText(t *testing.T) {
	cases := map[string]string{
		`"3600.0"`: "3600.0",
		`"never"`:  "never",
		`3600.5`:   "3600.5",
		`true`:     "true",
	}
	for raw, want := range cases {
		t.Run(want, func(t *testing.T) {
			srv, _ := tokenEndpoint(t, http.StatusOK, `{"access_token":"T","expires_in":`+raw+`,"refresh_token":"R"}`)

			tok, err := exchange.New().Exchange(context.Background(), tokenRequest(srv.URL))
			require.NoError(t, err)
			require.Equal(t, want, tok.ExpiresIn)
		})
	}
}

func TestExchange_RequestParameters(t *testing.T) {
	t.Run("empty values are sent", func(t *testing.T) {
		srv, received := tokenEndpoint(t, http.StatusOK, `{"access_token":"T","expires_in":"1","refresh_token":"R"}`)
		req := oauthmodel.NewTokenRequest(srv.URL, "", "", "", "", "")

		_, err := exchange.New().Exchange(context.Background(), req)
		require.NoError(t, err)
		for _, name := range []string{"code", "client_id", "client_secret", "redirect_uri", "grant_type"} {
			require.Contains(t, *received, name)
			require.Empty(t, received.Get(name))
		}
	})

	t.Run("credentials in header", func(t *testing.T) {
		var user, pass string
		var form url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, _ = r.BasicAuth()
			_ = r.ParseForm()
			form = r.PostForm
			_, _ = w.Write([]byte(`{"access_token":"T","expires_in":"1","refresh_token":"R"}`))
		}))
		t.Cleanup(srv.Close)

		_, err := exchange.New(exchange.WithAuthStyle(xoauth2.AuthStyleInHeader)).Exchange(context.Background(), tokenRequest(srv.URL))
		require.NoError(t, err)
		require.Equal(t, testClientID, user)
		require.Equal(t, testClientSecret, pass)
		require.NotContains(t, form, "client_secret")
		require.Equal(t, testCode, form.Get("code"))
	})

	t.Run("empty code is sent as-is", func(t *testing.T) {
		srv, received := tokenEndpoint(t, http.StatusOK, `{"access_token":"T","expires_in":"1","refresh_token":"R"}`)
		req := tokenRequest(srv.URL)
		req.Code = ""

		_, err := exchange.New().Exchange(context.Background(), req)
		require.NoError(t, err)
		require.Contains(t, *received, "code")
		require.Empty(t, received.Get("code"))
	})

	t.Run("custom grant type and verifier", func(t *testing.T) {
		srv, received := tokenEndpoint(t, http.StatusOK, `{"access_token":"T","expires_in":"1","refresh_token":"R"}`)
		req := tokenRequest(srv.URL)
		req.GrantType = "fb_exchange_code"
		req.CodeVerifier = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

		_, err := exchange.New().Exchange(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, "fb_exchange_code", received.Get("grant_type"))
		require.Equal(t, req.CodeVerifier, received.Get("code_verifier"))
	})
}

func TestExchange_IncompleteResponse(t *testing.T) {
	cases := map[string]string{
		"missing refresh_token": `{"access_token":"T","expires_in":"3600"}`,
		"missing expires_in":    `{"access_token":"T","refresh_token":"R"}`,
		"missing access_token":  `{"expires_in":"3600","refresh_token":"R"}`,
		"malformed json":        `{"access_token":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := tokenEndpoint(t, http.StatusOK, body)

			tok, err := exchange.New().Exchange(context.Background(), tokenRequest(srv.URL))
			require.Nil(t, tok)
			require.ErrorIs(t, err, exchange.ErrMalformedResponse)
			require.Equal(t, exchange.FailureMalformed, exchange.KindOf(err))

			tok, ok := exchange.New().TryExchange(context.Background(), tokenRequest(srv.URL))
			require.False(t, ok)
			require.Nil(t, tok)
		})
	}
}

func TestExchange_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	ex := exchange.New(exchange.WithTimeout(2 * time.Second))

	start := time.Now()
	tok, ok := ex.TryExchange(context.Background(), tokenRequest(endpoint))
	require.False(t, ok)
	require.Nil(t, tok)
	require.Less(t, time.Since(start), 2*time.Second)

	_, err := ex.Exchange(context.Background(), tokenRequest(endpoint))
	require.ErrorIs(t, err, exchange.ErrTransport)
	require.Equal(t, exchange.FailureTransport, exchange.KindOf(err))
}

func TestExchange_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	ex := exchange.New(exchange.WithTimeout(100 * time.Millisecond))

	start := time.Now()
	tok, err := ex.Exchange(context.Background(), tokenRequest(srv.URL))
	require.Nil(t, tok)
	require.ErrorIs(t, err, exchange.ErrTransport)
	require.Less(t, time.Since(start), time.Second)
}

func TestExchange_Rejected(t *testing.T) {
	srv, _ := tokenEndpoint(t, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"code already used"}`)

	_, err := exchange.New().Exchange(context.Background(), tokenRequest(srv.URL))
	require.ErrorIs(t, err, exchange.ErrRejected)

	var rejected *exchange.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusBadRequest, rejected.StatusCode)
	require.Equal(t, "invalid_grant", rejected.ErrorCode)
	require.Equal(t, "code already used", rejected.ErrorDescription)
}

func TestExchange_RejectedWithSuccessStatus(t *testing.T) {
	srv, _ := tokenEndpoint(t, http.StatusOK, `{"error":"invalid_grant"}`)

	_, err := exchange.New().Exchange(context.Background(), tokenRequest(srv.URL))
	require.ErrorIs(t, err, exchange.ErrRejected)
}

func TestExchange_RejectedWithoutOAuthBody(t *testing.T) {
	srv, _ := typedTokenEndpoint(t, http.StatusBadGateway, "text/html", "<html>bad gateway</html>")

	_, err := exchange.New().Exchange(context.Background(), tokenRequest(srv.URL))
	var rejected *exchange.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusBadGateway, rejected.StatusCode)
	require.Empty(t, rejected.ErrorCode)
}

func TestExchange_SingleUseCode(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) > 1 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"T","expires_in":"3600","refresh_token":"R"}`))
	}))
	t.Cleanup(srv.Close)

	ex := exchange.New()
	_, err := ex.Exchange(context.Background(), tokenRequest(srv.URL))
	require.NoError(t, err)

	// A reused code may fail; only the classification is checked.
	_, err = ex.Exchange(context.Background(), tokenRequest(srv.URL))
	if err != nil {
		require.Equal(t, exchange.FailureRejected, exchange.KindOf(err))
	}
}

func TestExchangeAsync(t *testing.T) {
	t.Run("delivers one result then closes", func(t *testing.T) {
		srv, _ := tokenEndpoint(t, http.StatusOK, `{"access_token":"T","expires_in":"3600","refresh_token":"R"}`)

		results := exchange.New().ExchangeAsync(context.Background(), tokenRequest(srv.URL))
		res, ok := <-results
		require.True(t, ok)
		require.NoError(t, res.Err)
		require.Equal(t, "T", res.Token.AccessToken)

		_, ok = <-results
		require.False(t, ok)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)

		ctx, cancel := context.WithCancel(context.Background())
		results := exchange.New().ExchangeAsync(ctx, tokenRequest(srv.URL))
		cancel()

		select {
		case res := <-results:
			require.ErrorIs(t, res.Err, exchange.ErrTransport)
		case <-time.After(2 * time.Second):
			t.Fatal("exchange did not finish after cancellation")
		}
	})
}

func TestKindOf(t *testing.T) {
	require.Equal(t, exchange.FailureNone, exchange.KindOf(nil))
	require.Equal(t, exchange.FailureUnknown, exchange.KindOf(context.Canceled))
	require.Equal(t, exchange.FailureRejected, exchange.KindOf(&exchange.RejectedError{StatusCode: 400}))
}
