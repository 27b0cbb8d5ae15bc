package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
)

// FavoriteRepository handles persistence for per-user favorites.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new [FavoriteRepository] with the given database connection
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add marks a video as a favorite of the given user. Favoriting an already
// favorited video is a no-op success (UNIQUE(user_id, video_id) + OR IGNORE).
func (r *FavoriteRepository) Add(userID int64, videoID string) error {
	query := `
		INSERT OR IGNORE INTO favorites (user_id, video_id, added_at) VALUES (?, ?, ?)
	`

	_, err := r.db.Exec(query, userID, videoID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}

	return nil
}

// ListByUser retrieves the user's favorites joined against the video cache.
// Favorites whose video cache row is missing are not produced (inner join).
func (r *FavoriteRepository) ListByUser(userID int64) ([]models.FavoriteVideo, error) {
	query := `
		SELECT v.id, v.title, v.thumbnail, v.channel
		FROM favorites f
		JOIN videos v ON f.video_id = v.id
		WHERE f.user_id = ?
		ORDER BY f.id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []models.FavoriteVideo{}
	for rows.Next() {
		var fv models.FavoriteVideo
		if err := rows.Scan(&fv.VideoID, &fv.Title, &fv.Thumbnail, &fv.Channel); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return favorites, nil
}

// Remove deletes the (user, video) favorite if present. Removing a favorite
// that does not exist is not an error.
func (r *FavoriteRepository) Remove(userID int64, videoID string) error {
	query := `
		DELETE FROM favorites WHERE user_id = ? AND video_id = ?
	`

	if _, err := r.db.Exec(query, userID, videoID); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	return nil
}
