package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
)

// VideoRepository handles persistence for the denormalized video cache.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new [VideoRepository] with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// EnsureCached inserts the video into the cache if it is not already there.
// An existing row is left untouched: the cache is populated lazily on the
// first favorite and never refreshed afterwards.
func (r *VideoRepository) EnsureCached(video models.Video) error {
	query := `
		INSERT OR IGNORE INTO videos (id, title, thumbnail, channel, duration, views, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		video.ID, video.Title, video.Thumbnail, video.Channel,
		video.Duration, video.Views, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// Get retrieves a cached video by id.
// A missing row surfaces as [shared.ErrNotFound].
func (r *VideoRepository) Get(id string) (*models.Video, error) {
	query := `
		SELECT id, title, thumbnail, channel, duration, views, last_updated
		FROM videos
		WHERE id = ?
	`

	var video models.Video
	err := r.db.QueryRow(query, id).Scan(
		&video.ID, &video.Title, &video.Thumbnail, &video.Channel,
		&video.Duration, &video.Views, &video.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: video %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query video: %w", err)
	}

	return &video, nil
}
