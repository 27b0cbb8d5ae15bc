package server

import (
	"net/http"
	"strings"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "Entrez une recherche valide")
		return
	}

	results, err := s.search.Search(r.Context(), query)
	if err != nil {
		s.logger.Error("search request failed", "query", query, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Erreur lors de la recherche. Veuillez réessayer.")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"videos": results})
}
