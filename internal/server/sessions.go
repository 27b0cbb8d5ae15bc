package server

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
)

const sessionName = "session"

// Flash is a one-shot message displayed on the next rendered page.
// Level is one of "success", "info", "warning", "error".
type Flash struct {
	Level   string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// SessionManager wraps a gorilla/sessions cookie store holding the
// authenticated identity and flash messages.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a cookie session store signed with secret.
// Sessions expire after lifetime and are renewed each time a user signs in.
func NewSessionManager(secret string, lifetime time.Duration) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store}
}

// Current returns the signed-in user carried by the request's session cookie.
// A missing, expired or tampered cookie yields ok == false.
func (m *SessionManager) Current(r *http.Request) (models.SessionUser, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return models.SessionUser{}, false
	}

	id, ok := session.Values["user_id"].(int64)
	if !ok {
		return models.SessionUser{}, false
	}

	username, _ := session.Values["username"].(string)
	return models.SessionUser{ID: id, Username: username}, true
}

// SignIn establishes a fresh session for the user.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, user models.SessionUser) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	return session.Save(r, w)
}

// SignOut drops the identity from the session and leaves a farewell flash.
// Signing out an unauthenticated session is harmless.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request, message string) error {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, "user_id")
	delete(session.Values, "username")
	if message != "" {
		session.AddFlash(Flash{Level: "info", Message: message})
	}
	return session.Save(r, w)
}

// AddFlash queues a one-shot message for the next rendered page.
func (m *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, level, message string) error {
	session, _ := m.store.Get(r, sessionName)
	session.AddFlash(Flash{Level: level, Message: message})
	return session.Save(r, w)
}

// Flashes drains and returns the queued flash messages.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) ([]Flash, error) {
	session, _ := m.store.Get(r, sessionName)

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	if err := session.Save(r, w); err != nil {
		return nil, err
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes, nil
}
