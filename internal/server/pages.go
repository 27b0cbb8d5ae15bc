package server

import (
	"net/http"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "index.html", nil)
}

// handleNotFound is the fallback for every path no other route claims.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderErrorPage(w, r, http.StatusNotFound, "Page non trouvée")
}

// renderPage executes the named template with flashes and the current
// session identity merged into the data map.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	flashes, err := s.sessions.Flashes(w, r)
	if err != nil {
		s.logger.Error("failed to drain flashes", "error", err)
	}
	data["Flashes"] = flashes
	if user, ok := s.sessions.Current(r); ok {
		data["User"] = user
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("failed to render template", "template", name, "error", err)
	}
}

// renderErrorPage renders the shared error template with the given
// status code and message.
func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	data := map[string]any{
		"Code":    status,
		"Message": message,
	}
	if user, ok := s.sessions.Current(r); ok {
		data["User"] = user
	}
	if err := s.templates.ExecuteTemplate(w, "error.html", data); err != nil {
		s.logger.Error("failed to render error page", "error", err)
	}
}
