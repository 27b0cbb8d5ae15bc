package models

import "time"

// User is a registered account.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never the plaintext
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SessionUser is the subset of [User] carried in the cookie session.
type SessionUser struct {
	ID       int64
	Username string
}

// Playlist is a named collection of videos owned by one user.
type Playlist struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// PlaylistItem is a video reference inside a playlist.
type PlaylistItem struct {
	ID         int64     `json:"id" db:"id"`
	PlaylistID int64     `json:"playlistId" db:"playlist_id"`
	VideoID    string    `json:"videoId" db:"video_id"`
	Title      string    `json:"title" db:"title"`
	Thumbnail  string    `json:"thumbnail" db:"thumbnail"`
	AddedAt    time.Time `json:"addedAt" db:"added_at"`
}

// Favorite marks a video as saved by a user.
type Favorite struct {
	ID      int64     `json:"id" db:"id"`
	UserID  int64     `json:"-" db:"user_id"`
	VideoID string    `json:"videoId" db:"video_id"`
	AddedAt time.Time `json:"addedAt" db:"added_at"`
}

// Video is the denormalized cache of last-known video metadata. Rows are
// inserted the first time a video is favorited and are not refreshed.
type Video struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Thumbnail   string    `json:"thumbnail" db:"thumbnail"`
	Channel     string    `json:"channel" db:"channel"`
	Duration    string    `json:"duration" db:"duration"`
	Views       string    `json:"views" db:"views"`
	LastUpdated time.Time `json:"-" db:"last_updated"`
}

// SearchResult is one reshaped YouTube search hit sent to the browser.
// Duration and views are already display-formatted ("MM:SS", space-grouped).
type SearchResult struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Thumbnail     string `json:"thumbnail"`
	Channel       string `json:"channel"`
	Duration      string `json:"duration"`
	Views         string `json:"views"`
	PublishedAt   string `json:"publishedAt"`
	PublishedText string `json:"publishedText,omitempty"`
}

// FavoriteVideo is a favorites listing row: the favorites table joined
// against the video cache.
type FavoriteVideo struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
}
