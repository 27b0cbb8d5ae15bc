package server

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/steave-git/Streaming-Musical-Web/internal/repositories"
	"github.com/steave-git/Streaming-Musical-Web/internal/services"
	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed public
var publicFS embed.FS

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	config    *shared.Config
	logger    *log.Logger
	sessions  *SessionManager
	users     *repositories.UserRepository
	playlists *repositories.PlaylistRepository
	favorites *repositories.FavoriteRepository
	videos    *repositories.VideoRepository
	search    services.Searcher
	templates *template.Template
	public    fs.FS
}

// Options contains the dependencies for creating a [Server].
type Options struct {
	Config *shared.Config
	Logger *log.Logger
	DB     *sql.DB
	Search services.Searcher
}

// New creates a [Server] wired to the given database pool and search client.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.DB == nil {
		return nil, fmt.Errorf("database is required")
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	public, err := fs.Sub(publicFS, "public")
	if err != nil {
		return nil, fmt.Errorf("failed to mount static assets: %w", err)
	}

	lifetime := time.Duration(opts.Config.Session.LifetimeDays) * 24 * time.Hour

	return &Server{
		config:    opts.Config,
		logger:    opts.Logger,
		sessions:  NewSessionManager(opts.Config.Session.Secret, lifetime),
		users:     repositories.NewUserRepository(opts.DB),
		playlists: repositories.NewPlaylistRepository(opts.DB),
		favorites: repositories.NewFavoriteRepository(opts.DB),
		videos:    repositories.NewVideoRepository(opts.DB),
		search:    opts.Search,
		templates: templates,
		public:    public,
	}, nil
}

// Routes registers every route on a fresh [BasicRouter].
func (s *Server) Routes() *BasicRouter {
	r := NewBasicRouter()

	r.Use(s.logRequests)

	r.Handle(http.MethodGet, "/static/", http.StripPrefix("/static/", http.FileServerFS(s.public)))

	r.Handle(http.MethodGet, "/login", http.HandlerFunc(s.handleLoginPage))
	r.Handle(http.MethodPost, "/login", http.HandlerFunc(s.handleLoginSubmit))
	r.Handle(http.MethodGet, "/register", http.HandlerFunc(s.handleRegisterPage))
	r.Handle(http.MethodPost, "/register", http.HandlerFunc(s.handleRegisterSubmit))
	r.Handle(http.MethodGet, "/logout", s.requirePage(s.handleLogout))

	r.Handle(http.MethodGet, "/{$}", s.requirePage(s.handleHome))
	r.Handle("", "/", http.HandlerFunc(s.handleNotFound))

	r.Handle(http.MethodGet, "/search", s.requireAPI(s.handleSearch))

	r.Handle(http.MethodGet, "/api/playlists", s.requireAPI(s.handleListPlaylists))
	r.Handle(http.MethodPost, "/api/playlists", s.requireAPI(s.handleCreateOrFillPlaylist))

	r.Handle(http.MethodGet, "/api/favorites", s.requireAPI(s.handleListFavorites))
	r.Handle(http.MethodPost, "/api/favorites", s.requireAPI(s.handleAddFavorite))
	r.Handle(http.MethodDelete, "/api/favorites", s.requireAPI(s.handleRemoveFavorite))

	return r
}

// respondJSON writes v as a JSON response with the given status.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondError writes a JSON error payload with the given status.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// flash queues a one-shot message, logging a cookie save failure instead of
// failing the request over it.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, level, message string) {
	if err := s.sessions.AddFlash(w, r, level, message); err != nil {
		s.logger.Error("failed to save flash", "error", err)
	}
}
