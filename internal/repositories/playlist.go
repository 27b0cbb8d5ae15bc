package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
)

// PlaylistRepository handles persistence for playlists and their items.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new [PlaylistRepository] with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// ListByUser retrieves all playlists owned by the given user.
func (r *PlaylistRepository) ListByUser(userID int64) ([]models.Playlist, error) {
	query := `
		SELECT id, name FROM playlists WHERE user_id = ? ORDER BY id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		p.UserID = userID
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// Create inserts a new playlist for the given owner and returns its id.
func (r *PlaylistRepository) Create(userID int64, name string) (int64, error) {
	query := `
		INSERT INTO playlists (user_id, name, created_at) VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query, userID, name, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert playlist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted playlist id: %w", err)
	}

	return id, nil
}

// OwnedBy reports whether the playlist exists and belongs to the given user.
// Ownership is checked as a precondition before any item mutation.
func (r *PlaylistRepository) OwnedBy(playlistID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM playlists WHERE id = ? AND user_id = ?)",
		playlistID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check playlist ownership: %w", err)
	}

	return exists, nil
}

// AddItem inserts a video into a playlist. Adding a video that is already in
// the playlist is a no-op success (UNIQUE(playlist_id, video_id) + OR IGNORE).
func (r *PlaylistRepository) AddItem(item models.PlaylistItem) error {
	query := `
		INSERT OR IGNORE INTO playlist_items (playlist_id, video_id, title, thumbnail, added_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, item.PlaylistID, item.VideoID, item.Title, item.Thumbnail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert playlist item: %w", err)
	}

	return nil
}

// Items retrieves the videos in a playlist in insertion order.
func (r *PlaylistRepository) Items(playlistID int64) ([]models.PlaylistItem, error) {
	query := `
		SELECT id, playlist_id, video_id, title, thumbnail, added_at
		FROM playlist_items
		WHERE playlist_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist items: %w", err)
	}
	defer rows.Close()

	items := []models.PlaylistItem{}
	for rows.Next() {
		var item models.PlaylistItem
		if err := rows.Scan(&item.ID, &item.PlaylistID, &item.VideoID, &item.Title, &item.Thumbnail, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}
