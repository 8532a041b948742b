// Package callback serves the redirect URI on the loopback interface so the
// provider's redirect can be intercepted outside of an embedded browser.
package callback

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-login-client/loginflow"
	"github.com/rs/zerolog/log"
)

// RedirectHandler consumes one redirect URL.
type RedirectHandler interface {
	HandleRedirect(ctx context.Context, rawURL string) (loginflow.Outcome, error)
}

// Result is the first terminal outcome seen by the server.
type Result struct {
	Outcome loginflow.Outcome
	Err     error
}

type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	addr    string
	handler RedirectHandler
	results chan Result
}

// New registers the callback route for redirectURI's path. The listening
// address is redirectURI's host.
func New(redirectURI string, handler RedirectHandler, env string) (*Server, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("[callback New] parse redirect uri: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("[callback New] redirect uri %q has no host", redirectURI)
	}

	s := &Server{
		env:     env,
		mux:     http.NewServeMux(),
		addr:    listenAddr(u),
		handler: handler,
		results: make(chan Result, 1),
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	s.RegisterRouteHandler("GET "+path, ChainMiddleware(s.CallbackHandler(), s.Middleware()...))
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

// Addr is the host:port the redirect URI points at.
func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

// Results yields the first terminal outcome. Later outcomes are dropped.
func (s *Server) Results() <-chan Result {
	return s.results
}

// ListenAndServe listens on Addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("net.Listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{Handler: s, ReadHeaderTimeout: 10 * time.Second}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("Callback listener started")
		errs <- server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		return shutdown(server)
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server.Serve: %w", err)
	}
}

func (s *Server) publish(res Result) {
	select {
	case s.results <- res:
	default:
	}
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func listenAddr(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}
	if u.Scheme == "https" {
		return net.JoinHostPort(u.Hostname(), "443")
	}
	return net.JoinHostPort(u.Hostname(), "80")
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
