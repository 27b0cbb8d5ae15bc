// Package services defines the [Searcher] interface for video search
// providers and implements it for the YouTube Data API v3.
//
// # Searcher Interface
//
// Handlers depend on the interface rather than the concrete client so tests
// can substitute a double without network access.
//
// # YouTube Implementation
//
// [YouTubeService] authenticates with a static API key passed as the `key`
// query parameter on every request. A search is resolved in two phases:
//
//  1. search.list : up to 15 medium-duration video results for the query,
//     preferring the French locale and region
//  2. videos.list : one bulk contentDetails+statistics lookup for all ids
//
// Results are merged by video id. Durations are reshaped to "MM:SS" and view
// counts to space-grouped digits by the formatter package before they leave
// this package.
//
// # Error Handling
//
// Any upstream failure (transport error, non-2xx status, malformed body)
// wraps [shared.ErrUpstream]. There is no retry loop and no partial-result
// fallback: the first failure is terminal for the request. The HTTP client
// applies an explicit 10 second timeout rather than inheriting transport
// defaults.
package services
