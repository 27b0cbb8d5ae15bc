package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
)

type playlistRequest struct {
	CreateNew  bool   `json:"createNew"`
	Name       string `json:"name"`
	PlaylistID int64  `json:"playlistId"`
	VideoID    string `json:"videoId"`
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	user, _ := sessionUser(r)

	playlists, err := s.playlists.ListByUser(user.ID)
	if err != nil {
		s.logger.Error("failed to list playlists", "user", user.ID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Une erreur interne est survenue")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
}

// handleCreateOrFillPlaylist serves both playlist creation and adding a
// video to an existing playlist, dispatched on the createNew field.
func (s *Server) handleCreateOrFillPlaylist(w http.ResponseWriter, r *http.Request) {
	user, _ := sessionUser(r)

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Données manquantes")
		return
	}

	if req.CreateNew {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = "Ma Playlist"
		}

		id, err := s.playlists.Create(user.ID, name)
		if err != nil {
			s.logger.Error("failed to create playlist", "user", user.ID, "error", err)
			s.respondError(w, http.StatusInternalServerError, "Une erreur interne est survenue")
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "playlistId": id})
		return
	}

	if req.PlaylistID == 0 || req.VideoID == "" || req.Title == "" || req.Thumbnail == "" {
		s.respondError(w, http.StatusBadRequest, "Données manquantes")
		return
	}

	owned, err := s.playlists.OwnedBy(req.PlaylistID, user.ID)
	if err != nil {
		s.logger.Error("failed to check playlist ownership", "user", user.ID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Une erreur interne est survenue")
		return
	}
	if !owned {
		s.respondError(w, http.StatusNotFound, "Playlist non trouvée")
		return
	}

	item := models.PlaylistItem{
		PlaylistID: req.PlaylistID,
		VideoID:    req.VideoID,
		Title:      req.Title,
		Thumbnail:  req.Thumbnail,
	}
	if err := s.playlists.AddItem(item); err != nil {
		s.logger.Error("failed to add playlist item", "playlist", req.PlaylistID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Une erreur interne est survenue")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
