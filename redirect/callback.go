// Package redirect recognises the provider's redirect back to the client and
// pulls the authorization code (or the refusal) out of it.
package redirect

import (
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-login-client/oauth2"
)

// Kind classifies a navigation seen at the redirect boundary.
type Kind int

const (
	// KindIgnored is any navigation that is not an authorization response.
	KindIgnored Kind = iota
	// KindCode carries an authorization code.
	KindCode
	// KindDenied means the user refused consent (error=access_denied).
	KindDenied
	// KindError is any other provider error.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindCode:
		return "code"
	case KindDenied:
		return "denied"
	case KindError:
		return "error"
	}
	return "ignored"
}

// Callback is the parsed authorization response.
type Callback struct {
	Kind             Kind
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// Parse reads the authorization response from a redirect URL's query string.
// A code takes precedence over an error parameter. The code is not validated.
func Parse(rawURL string) (Callback, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Callback{}, fmt.Errorf("parse redirect url: %w", err)
	}
	return FromQuery(u.Query()), nil
}

// FromQuery classifies already decoded callback parameters.
func FromQuery(q url.Values) Callback {
	cb := Callback{
		State:            q.Get(oauth2.ParamState),
		Error:            q.Get(oauth2.ParamError),
		ErrorDescription: q.Get(oauth2.ParamErrorDescription),
	}
	switch {
	case q.Has(oauth2.ParamCode):
		cb.Kind = KindCode
		cb.Code = q.Get(oauth2.ParamCode)
	case cb.Error == oauth2.ErrorAccessDenied:
		cb.Kind = KindDenied
	case cb.Error != "":
		cb.Kind = KindError
	default:
		cb.Kind = KindIgnored
	}
	return cb
}
