package server

import (
	"encoding/json"
	"net/http"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
)

type favoriteRequest struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	user, _ := sessionUser(r)

	favorites, err := s.favorites.ListByUser(user.ID)
	if err != nil {
		s.logger.Error("failed to list favorites", "user", user.ID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Une erreur interne est survenue")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"favorites": favorites})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	user, _ := sessionUser(r)

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Données manquantes")
		return
	}
	if req.VideoID == "" || req.Title == "" || req.Thumbnail == "" || req.Channel == "" {
		s.respondError(w, http.StatusBadRequest, "Données manquantes")
		return
	}

	// The cache row carries whatever metadata came with the request.
	// Duration and views are not part of the favorite payload, so first
	// insertion stores the placeholder values.
	video := models.Video{
		ID:        req.VideoID,
		Title:     req.Title,
		Thumbnail: req.Thumbnail,
		Channel:   req.Channel,
		Duration:  "00:00",
		Views:     "0",
	}
	if err := s.videos.EnsureCached(video); err != nil {
		s.logger.Error("failed to cache video", "video", req.VideoID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Une erreur interne est survenue")
		return
	}

	if err := s.favorites.Add(user.ID, req.VideoID); err != nil {
		s.logger.Error("failed to add favorite", "user", user.ID, "video", req.VideoID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Une erreur interne est survenue")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user, _ := sessionUser(r)

	videoID := r.URL.Query().Get("videoId")
	if videoID == "" {
		s.respondError(w, http.StatusBadRequest, "ID vidéo manquant")
		return
	}

	if err := s.favorites.Remove(user.ID, videoID); err != nil {
		s.logger.Error("failed to remove favorite", "user", user.ID, "video", videoID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Une erreur interne est survenue")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
