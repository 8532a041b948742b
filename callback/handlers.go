package callback

import (
	"html/template"
	"net/http"

	"github.com/jrsteele09/go-login-client/loginflow"
	"github.com/rs/zerolog/log"
)

var resultPage = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</body>
</html>
`))

type pageData struct {
	Title   string
	Message string
}

func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawURL := getScheme(r) + "://" + r.Host + r.URL.RequestURI()
		outcome, err := s.handler.HandleRedirect(r.Context(), rawURL)

		if outcome.Terminal() {
			s.publish(Result{Outcome: outcome, Err: err})
		}

		switch outcome.Kind {
		case loginflow.OutcomeLoggedIn:
			renderPage(w, http.StatusOK, pageData{"Authenticated", "Login complete. You can close this window."})
		case loginflow.OutcomeDenied:
			renderPage(w, http.StatusForbidden, pageData{"Access denied", "Authorization was refused."})
		case loginflow.OutcomeFailed:
			renderPage(w, http.StatusBadRequest, pageData{"Login failed", "The login could not be completed."})
		default:
			message := "No pending login for this request."
			if err != nil {
				message = "The callback was rejected."
			}
			renderPage(w, http.StatusBadRequest, pageData{"Nothing to do", message})
		}
	}
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := resultPage.Execute(w, data); err != nil {
		log.Err(err).Msg("Failed to render callback page")
	}
}
