// Package models defines domain entities and transfer objects for the video search service.
//
// The package contains two categories of types:
//
// 1. Persistent entities, backed by SQLite rows:
//   - [User] : account with unique username/email and a bcrypt password hash
//   - [Playlist] : named collection owned by exactly one user
//   - [PlaylistItem] : video reference inside a playlist, unique per (playlist, video)
//   - [Favorite] : per-user saved video, unique per (user, video)
//   - [Video] : denormalized last-known video metadata, populated lazily on first favorite
//
// 2. Transfer objects exchanged with the browser:
//   - [SessionUser] : the identity stored in the cookie session
//   - [SearchResult] : one reshaped YouTube search hit (formatted duration/views)
//   - [FavoriteVideo] : a favorites listing row joined against the video cache
//
// Password hashes never leave the server: [User.Password] is excluded from JSON.
package models
