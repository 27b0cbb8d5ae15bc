// Package server provides HTTP routing, middleware, sessions and handlers for the web application.
//
// # Router Infrastructure
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method-prefixed patterns.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern.
//
// # Sessions
//
// [SessionManager] wraps a gorilla/sessions cookie store. The session holds
// the authenticated user's id and username, lives for the configured number
// of days (7 by default) and is renewed on each sign-in. Flash messages ride
// the same cookie.
//
// # Route Guards
//
// Protected HTML pages redirect unauthenticated visitors to /login with a
// `next` parameter; protected API endpoints answer 401 JSON instead of
// redirecting, so browser fetch calls see a structured error.
//
// # Error Boundary
//
// Handlers map the shared error taxonomy to HTTP statuses at the route
// boundary: validation failures to 400, missing/foreign rows to 404,
// upstream search failures to 500 with a generic retry message. Unexpected
// store errors are logged with detail server-side while the client only
// receives a generic message.
package server
