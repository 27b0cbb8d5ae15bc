// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository wraps a shared *sql.DB pool and scopes every read and
// mutation to the owning user, so a session identity can never reach another
// user's rows through these methods.
//
// Key implementations:
//   - [UserRepository] : account persistence, unique-constraint conflicts surfaced as [shared.ErrConflict]
//   - [PlaylistRepository] : playlists and playlist items, idempotent item adds
//   - [FavoriteRepository] : per-user favorites, idempotent add and remove
//   - [VideoRepository] : lazily populated video metadata cache
//
// Duplicate inserts are resolved by the store's UNIQUE constraints with
// INSERT OR IGNORE rather than application-level check-then-act, so
// concurrent duplicate adds race safely.
package repositories
