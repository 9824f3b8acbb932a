// Package stub hosts a local in-memory rendition of the content API. It
// backs the `wva stub` subcommand so the client can be exercised without the
// production backend, and serves as a realistic counterparty in tests.
package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"seaskills/internal/app"
)

type account struct {
	user         app.AuthUser
	passwordHash []byte
}

// Server holds the fixture state. All maps are guarded by mu; handlers are
// safe for concurrent use.
type Server struct {
	mu         sync.Mutex
	accounts   map[string]account            // by email
	tokens     map[string]int                // bearer token -> user id
	pushTokens map[int]string                // user id -> expo token
	activities map[int][]app.SeaSkillsActivity
	stories    []app.NewsStory
}

const (
	// DemoEmail and DemoPassword sign in to the built-in account.
	DemoEmail    = "cadet@wartimevessels.org"
	DemoPassword = "sparrows-nest"
)

func NewServer() *Server {
	s := &Server{
		accounts:   map[string]account{},
		tokens:     map[string]int{},
		pushTokens: map[int]string{},
		activities: map[int][]app.SeaSkillsActivity{},
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	demo := app.AuthUser{ID: 1, Name: "Demo Cadet", Email: DemoEmail}
	s.accounts[DemoEmail] = account{user: demo, passwordHash: hash}

	thirty := 30
	completed := "2026-07-14T10:00:00Z"
	s.activities[demo.ID] = []app.SeaSkillsActivity{
		{ActivityID: 1, WeekNumber: 1, Code: "rnps", Title: "The Royal Navy Patrol Service", Status: app.ActivityFinished, MinutesSpent: &thirty, CompletedAt: &completed},
		{ActivityID: 2, WeekNumber: 2, Code: "dynamo", Title: "Operation Dynamo", Status: app.ActivityPending},
		{ActivityID: 3, WeekNumber: 3, Code: "arctic", Title: "Arctic Convoys", Status: app.ActivityPending},
	}

	categories := []string{"Archive", "Community", "Restoration"}
	tags := [][]string{nil, {"For Sale"}, {"Loss Report"}, {"For Sale", "Loss Report"}}
	for i := 1; i <= 120; i++ {
		excerpt := fmt.Sprintf("Dispatch %d from the wartime maritime archive.", i)
		s.stories = append(s.stories, app.NewsStory{
			ID:       i,
			Title:    fmt.Sprintf("Chronicle Dispatch %d", i),
			Slug:     fmt.Sprintf("chronicle-dispatch-%d", i),
			Excerpt:  &excerpt,
			Tags:     tags[i%len(tags)],
			Category: app.StringCategory(categories[i%len(categories)]),
		})
	}
}

// Router mounts the API under /api, mirroring the production paths.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/news", s.handleNewsList).Methods("GET")
	api.HandleFunc("/news/{slug}", s.handleNewsBySlug).Methods("GET")
	api.HandleFunc("/sea-skills/status/{userId}", s.handleSeaSkillsStatus).Methods("GET")
	api.HandleFunc("/expo-token", s.handleGetPushToken).Methods("GET")
	api.HandleFunc("/expo-token", s.handleSetPushToken).Methods("PUT")
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid login payload.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[strings.ToLower(strings.TrimSpace(body.Email))]
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(body.Password)) != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "These credentials do not match our records.")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = acct.user.ID
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  acct.user,
	})
}

// bearerUser resolves the Authorization header to a user id, or reports the
// failure itself.
func (s *Server) bearerUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return 0, false
	}
	s.mu.Lock()
	userID, ok := s.tokens[token]
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return 0, false
	}
	return userID, true
}

func (s *Server) handleNewsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	page, _ := strconv.Atoi(q.Get("page"))
	if page <= 0 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if perPage <= 0 {
		perPage = 15
	}

	s.mu.Lock()
	filtered := make([]app.NewsStory, 0, len(s.stories))
	for _, story := range s.stories {
		if category != "" {
			normalized := app.NormalizeNewsCategory(story.Category)
			if !strings.EqualFold(normalized.Value, category) {
				continue
			}
		}
		filtered = append(filtered, story)
	}
	s.mu.Unlock()

	total := len(filtered)
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": filtered[start:end],
		"meta": map[string]int{
			"current_page": page,
			"last_page":    lastPage,
			"per_page":     perPage,
			"total":        total,
		},
	})
}

func (s *Server) handleNewsBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, story := range s.stories {
		if story.Slug == slug {
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": story})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Story not found.")
}

func (s *Server) handleSeaSkillsStatus(w http.ResponseWriter, r *http.Request) {
	authedID, ok := s.bearerUser(w, r)
	if !ok {
		return
	}
	requestedID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil || requestedID != authedID {
		writeMessage(w, http.StatusForbidden, "You may only view your own lesson status.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var user app.AuthUser
	for _, acct := range s.accounts {
		if acct.user.ID == authedID {
			user = acct.user
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		"activities": s.activities[authedID],
	})
}

func (s *Server) handleGetPushToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.bearerUser(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	token, exists := s.pushTokens[userID]
	s.mu.Unlock()
	if !exists {
		writeJSON(w, http.StatusOK, map[string]interface{}{"expo_token": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"expo_token": token})
}

func (s *Server) handleSetPushToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.bearerUser(w, r)
	if !ok {
		return
	}
	var body struct {
		ExpoToken *string `json:"expo_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid token payload.")
		return
	}
	s.mu.Lock()
	if body.ExpoToken == nil || *body.ExpoToken == "" {
		delete(s.pushTokens, userID)
	} else {
		s.pushTokens[userID] = *body.ExpoToken
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Token updated.",
		"expo_token": body.ExpoToken,
	})
}

// ListenAndServe runs the stub on addr until the listener fails or ctx is
// cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
