package server

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.Current(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	s.renderPage(w, r, "login.html", map[string]any{
		"Next": r.URL.Query().Get("next"),
	})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.Current(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := strings.TrimSpace(r.FormValue("password"))

	if username == "" || password == "" {
		s.flash(w, r, "error", "Veuillez remplir tous les champs")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	user, err := s.users.GetByUsername(username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("login lookup failed", "error", err)
		s.flash(w, r, "error", "Une erreur est survenue lors de la connexion")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	// Same generic message whether the username is unknown or the password
	// wrong, so the response does not reveal which usernames exist.
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.flash(w, r, "error", "Identifiants incorrects")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := s.sessions.SignIn(w, r, models.SessionUser{ID: user.ID, Username: user.Username}); err != nil {
		s.logger.Error("failed to establish session", "error", err)
		s.flash(w, r, "error", "Une erreur est survenue lors de la connexion")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	s.flash(w, r, "success", "Connexion réussie!")

	next := r.URL.Query().Get("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.Current(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	s.renderPage(w, r, "register.html", nil)
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.Current(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := strings.TrimSpace(r.FormValue("password"))
	confirm := strings.TrimSpace(r.FormValue("confirm_password"))

	// All validation failures are accumulated before redirecting, so the
	// visitor sees every problem at once. The store is never touched here.
	var validationErrors []string
	if utf8.RuneCountInString(username) < 3 {
		validationErrors = append(validationErrors, "Le nom d'utilisateur doit contenir au moins 3 caractères")
	}
	if email == "" || !strings.Contains(email, "@") {
		validationErrors = append(validationErrors, "Veuillez entrer un email valide")
	}
	if utf8.RuneCountInString(password) < 6 {
		validationErrors = append(validationErrors, "Le mot de passe doit contenir au moins 6 caractères")
	}
	if password != confirm {
		validationErrors = append(validationErrors, "Les mots de passe ne correspondent pas")
	}

	if len(validationErrors) > 0 {
		for _, msg := range validationErrors {
			s.flash(w, r, "error", msg)
		}
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		s.flash(w, r, "error", "Une erreur est survenue lors de l'inscription")
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	user := &models.User{Username: username, Email: email, Password: string(hash)}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			s.flash(w, r, "error", "Ce nom d'utilisateur ou email est déjà utilisé")
		} else {
			s.logger.Error("failed to create user", "error", err)
			s.flash(w, r, "error", "Une erreur est survenue lors de l'inscription")
		}
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	s.flash(w, r, "success", "Inscription réussie! Vous pouvez maintenant vous connecter")
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.SignOut(w, r, "Vous avez été déconnecté avec succès"); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
