package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
	mocks "github.com/steave-git/Streaming-Musical-Web/internal/testing"
)

// newTestServer builds a server over an in-memory database and returns it
// alongside the searcher double wired into /search.
func newTestServer(t *testing.T) (*httptest.Server, *mocks.MockSearcher) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Each connection to :memory: gets its own database.
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	config := shared.DefaultConfig()
	config.Session.Secret = "test-secret"
	config.Credentials.YouTube.APIKey = "test-key"

	searcher := &mocks.MockSearcher{}

	logger := shared.NewLogger(io.Discard)
	srv, err := New(Options{Config: config, Logger: logger, DB: db, Search: searcher})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	return ts, searcher
}

// newTestClient returns a cookie-carrying client that does not follow
// redirects, so tests can assert on 302 responses directly.
func newTestClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// signUp registers and logs in a user, leaving the session cookie in the
// client's jar.
func signUp(t *testing.T, ts *httptest.Server, client *http.Client, username string) {
	t.Helper()

	form := url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	}
	resp, err := client.PostForm(ts.URL+"/register", form)
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login after registration, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	login := url.Values{"username": {username}, "password": {"secret123"}}
	resp, err = client.PostForm(ts.URL+"/login", login)
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to / after login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()

	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestAuth(t *testing.T) {
	t.Run("RegisterValidation", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		form := url.Values{
			"username":         {"ab"},
			"email":            {"not-an-email"},
			"password":         {"123"},
			"confirm_password": {"456"},
		}
		resp, err := client.PostForm(ts.URL+"/register", form)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/register" {
			t.Errorf("expected redirect back to /register, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
		}

		// The flashes land on the register page itself.
		page, err := client.Get(ts.URL + "/register")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		body, _ := io.ReadAll(page.Body)
		page.Body.Close()

		for _, msg := range []string{
			"Le nom d&#39;utilisateur doit contenir au moins 3 caractères",
			"Veuillez entrer un email valide",
			"Le mot de passe doit contenir au moins 6 caractères",
			"Les mots de passe ne correspondent pas",
		} {
			if !strings.Contains(string(body), msg) {
				t.Errorf("expected flash %q on register page", msg)
			}
		}
	})

	t.Run("RegisterValidationCountsCharacters", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		// Two accented characters take four bytes; the minimum length is
		// three characters, not three bytes.
		form := url.Values{
			"username":         {"éé"},
			"email":            {"ee@example.com"},
			"password":         {"secret123"},
			"confirm_password": {"secret123"},
		}
		resp, err := client.PostForm(ts.URL+"/register", form)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/register" {
			t.Errorf("expected a two-character username to be rejected, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
		}

		// Three accented characters (six bytes) are enough.
		form.Set("username", "ééé")
		resp, err = client.PostForm(ts.URL+"/register", form)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
			t.Errorf("expected a three-character username to be accepted, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
		}
	})

	t.Run("RegisterAndLogin", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		signUp(t, ts, client, "alice")

		resp, err := client.Get(ts.URL + "/")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 on home page, got %d", resp.StatusCode)
		}
		if !strings.Contains(string(body), "alice") {
			t.Error("expected home page to show the username")
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		signUp(t, ts, client, "alice")

		other := newTestClient(t)
		form := url.Values{
			"username":         {"alice"},
			"email":            {"other@example.com"},
			"password":         {"secret123"},
			"confirm_password": {"secret123"},
		}
		resp, err := other.PostForm(ts.URL+"/register", form)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/register" {
			t.Errorf("expected redirect back to /register on conflict, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		signUp(t, ts, client, "alice")

		fresh := newTestClient(t)
		login := url.Values{"username": {"alice"}, "password": {"wrong-password"}}
		resp, err := fresh.PostForm(ts.URL+"/login", login)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
			t.Errorf("expected redirect back to /login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
		}
	})

	t.Run("Logout", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		signUp(t, ts, client, "alice")

		resp, err := client.Get(ts.URL + "/logout")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
			t.Fatalf("expected redirect to /login after logout, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
		}

		// The session is gone: the home page bounces to login again.
		resp, err = client.Get(ts.URL + "/")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusFound {
			t.Errorf("expected redirect for signed-out visitor, got %d", resp.StatusCode)
		}
	})
}

func TestGuards(t *testing.T) {
	t.Run("PageRedirectsWithNext", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		resp, err := client.Get(ts.URL + "/")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound {
			t.Fatalf("expected 302, got %d", resp.StatusCode)
		}
		if got := resp.Header.Get("Location"); !strings.HasPrefix(got, "/login?next=") {
			t.Errorf("expected login redirect with next parameter, got %q", got)
		}
	})

	t.Run("APIReturns401JSON", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		for _, path := range []string{"/search?q=test", "/api/playlists", "/api/favorites"} {
			resp, err := client.Get(ts.URL + path)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("%s: expected 401, got %d", path, resp.StatusCode)
			}
			payload := decodeJSON(t, resp)
			if payload["error"] != "Authentification requise" {
				t.Errorf("%s: unexpected error message %v", path, payload["error"])
			}
		}
	})

	t.Run("UnknownPathIs404Page", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)

		resp, err := client.Get(ts.URL + "/nope")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
		if !strings.Contains(string(body), "Page non trouvée") {
			t.Error("expected the French 404 page")
		}
	})
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("EmptyQuery", func(t *testing.T) {
		ts, searcher := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		resp, err := client.Get(ts.URL + "/search?q=%20%20")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		payload := decodeJSON(t, resp)
		if payload["error"] != "Entrez une recherche valide" {
			t.Errorf("unexpected error message %v", payload["error"])
		}
		if len(searcher.Queries) != 0 {
			t.Error("searcher should not be called for an empty query")
		}
	})

	t.Run("Results", func(t *testing.T) {
		ts, searcher := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		searcher.Results = []models.SearchResult{
			{ID: "abc123", Title: "Test Video", Channel: "Test Channel", Duration: "03:45", Views: "1 234"},
		}

		resp, err := client.Get(ts.URL + "/search?q=test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		payload := decodeJSON(t, resp)

		videos, ok := payload["videos"].([]any)
		if !ok || len(videos) != 1 {
			t.Fatalf("expected one video in response, got %v", payload["videos"])
		}
		video := videos[0].(map[string]any)
		if video["id"] != "abc123" || video["duration"] != "03:45" {
			t.Errorf("unexpected video payload %v", video)
		}
		if len(searcher.Queries) != 1 || searcher.Queries[0] != "test" {
			t.Errorf("unexpected recorded queries %v", searcher.Queries)
		}
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		ts, searcher := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		searcher.Err = fmt.Errorf("quota exceeded: %w", shared.ErrUpstream)

		resp, err := client.Get(ts.URL + "/search?q=test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", resp.StatusCode)
		}
		payload := decodeJSON(t, resp)
		if payload["error"] != "Erreur lors de la recherche. Veuillez réessayer." {
			t.Errorf("unexpected error message %v", payload["error"])
		}
	})
}

func TestPlaylistEndpoints(t *testing.T) {
	t.Run("CreateAndList", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		resp := postJSON(t, client, ts.URL+"/api/playlists", `{"createNew": true, "name": "Rock"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		payload := decodeJSON(t, resp)
		if payload["success"] != true || payload["playlistId"] == nil {
			t.Fatalf("unexpected creation payload %v", payload)
		}

		resp, err := client.Get(ts.URL + "/api/playlists")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		payload = decodeJSON(t, resp)
		playlists, ok := payload["playlists"].([]any)
		if !ok || len(playlists) != 1 {
			t.Fatalf("expected one playlist, got %v", payload["playlists"])
		}
		if playlists[0].(map[string]any)["name"] != "Rock" {
			t.Errorf("unexpected playlist %v", playlists[0])
		}
	})

	t.Run("DefaultName", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		resp := postJSON(t, client, ts.URL+"/api/playlists", `{"createNew": true}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		resp.Body.Close()

		resp, err := client.Get(ts.URL + "/api/playlists")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		payload := decodeJSON(t, resp)
		playlists := payload["playlists"].([]any)
		if playlists[0].(map[string]any)["name"] != "Ma Playlist" {
			t.Errorf("expected default playlist name, got %v", playlists[0])
		}
	})

	t.Run("AddItemMissingFields", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		resp := postJSON(t, client, ts.URL+"/api/playlists", `{"playlistId": 1, "videoId": "abc"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		payload := decodeJSON(t, resp)
		if payload["error"] != "Données manquantes" {
			t.Errorf("unexpected error message %v", payload["error"])
		}
	})

	t.Run("OwnershipEnforced", func(t *testing.T) {
		ts, _ := newTestServer(t)
		alice := newTestClient(t)
		signUp(t, ts, alice, "alice")

		resp := postJSON(t, alice, ts.URL+"/api/playlists", `{"createNew": true, "name": "Alice"}`)
		payload := decodeJSON(t, resp)
		playlistID := int(payload["playlistId"].(float64))

		bob := newTestClient(t)
		signUp(t, ts, bob, "bob")

		body := fmt.Sprintf(`{"playlistId": %d, "videoId": "abc", "title": "T", "thumbnail": "u"}`, playlistID)
		resp = postJSON(t, bob, ts.URL+"/api/playlists", body)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 for another user's playlist, got %d", resp.StatusCode)
		}
		payload = decodeJSON(t, resp)
		if payload["error"] != "Playlist non trouvée" {
			t.Errorf("unexpected error message %v", payload["error"])
		}
	})

	t.Run("AddItem", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		resp := postJSON(t, client, ts.URL+"/api/playlists", `{"createNew": true}`)
		payload := decodeJSON(t, resp)
		playlistID := int(payload["playlistId"].(float64))

		body := fmt.Sprintf(`{"playlistId": %d, "videoId": "abc", "title": "T", "thumbnail": "u"}`, playlistID)
		for i := 0; i < 2; i++ {
			resp = postJSON(t, client, ts.URL+"/api/playlists", body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200 on add (attempt %d), got %d", i+1, resp.StatusCode)
			}
			payload = decodeJSON(t, resp)
			if payload["success"] != true {
				t.Errorf("expected success payload, got %v", payload)
			}
		}
	})
}

func TestFavoriteEndpoints(t *testing.T) {
	favorite := `{"videoId": "abc123", "title": "Test Video", "thumbnail": "http://t", "channel": "Test Channel"}`

	t.Run("AddListRemove", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		resp := postJSON(t, client, ts.URL+"/api/favorites", favorite)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		resp.Body.Close()

		resp, err := client.Get(ts.URL + "/api/favorites")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		payload := decodeJSON(t, resp)
		favorites, ok := payload["favorites"].([]any)
		if !ok || len(favorites) != 1 {
			t.Fatalf("expected one favorite, got %v", payload["favorites"])
		}
		entry := favorites[0].(map[string]any)
		if entry["videoId"] != "abc123" || entry["channel"] != "Test Channel" {
			t.Errorf("unexpected favorite payload %v", entry)
		}

		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/favorites?videoId=abc123", nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		resp, err = client.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 on delete, got %d", resp.StatusCode)
		}
		resp.Body.Close()

		resp, err = client.Get(ts.URL + "/api/favorites")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		payload = decodeJSON(t, resp)
		if favorites := payload["favorites"].([]any); len(favorites) != 0 {
			t.Errorf("expected empty favorites after delete, got %v", favorites)
		}
	})

	t.Run("DuplicateAddIsIdempotent", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		for i := 0; i < 2; i++ {
			resp := postJSON(t, client, ts.URL+"/api/favorites", favorite)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200 on add (attempt %d), got %d", i+1, resp.StatusCode)
			}
			resp.Body.Close()
		}

		resp, err := client.Get(ts.URL + "/api/favorites")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		payload := decodeJSON(t, resp)
		if favorites := payload["favorites"].([]any); len(favorites) != 1 {
			t.Errorf("expected a single favorite, got %v", favorites)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		resp := postJSON(t, client, ts.URL+"/api/favorites", `{"videoId": "abc123"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		payload := decodeJSON(t, resp)
		if payload["error"] != "Données manquantes" {
			t.Errorf("unexpected error message %v", payload["error"])
		}
	})

	t.Run("DeleteWithoutID", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newTestClient(t)
		signUp(t, ts, client, "alice")

		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/favorites", nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		payload := decodeJSON(t, resp)
		if payload["error"] != "ID vidéo manquant" {
			t.Errorf("unexpected error message %v", payload["error"])
		}
	})
}
