// Package mockapi serves an in-memory student collection with the same
// routes as the real backend. It backs `khabri serve` and the tests.
package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultPrefix is where the collection is mounted.
const DefaultPrefix = "/api/posts"

// Post is one stored record.
type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type postInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Server is an in-memory collection. Ids start at 1 and are never reused.
type Server struct {
	mu     sync.RWMutex
	posts  []Post
	nextID int64
	logger *zap.Logger
}

// New creates an empty server, optionally seeded. A seed post whose id is
// already taken replaces the earlier one.
func New(logger *zap.Logger, seed ...Post) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{nextID: 1, logger: logger}
	for _, p := range seed {
		s.insert(p.Title, p.Content, p.ID)
	}
	return s
}

// Posts returns a copy of the collection in insertion order.
func (s *Server) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Post{}, s.posts...)
}

// Handler builds the router with the collection mounted at DefaultPrefix.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.requestLogger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Route(DefaultPrefix, func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.remove)
	})
	return router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("HTTP Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", chimiddleware.GetReqID(r.Context())),
		)
	})
}

// --- Handlers ---

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Posts())
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}
	post := s.insert(input.Title, input.Content, 0)
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Title = input.Title
			s.posts[i].Content = input.Content
			writeJSON(w, http.StatusOK, s.posts[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "Post not found")
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Post not found")
}

// --- Helpers ---

func (s *Server) insert(title, content string, id int64) Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id <= 0 {
		id = s.nextID
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}
	post := Post{ID: id, Title: title, Content: content}
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i] = post
			return post
		}
	}
	s.posts = append(s.posts, post)
	return post
}

func decodeInput(w http.ResponseWriter, r *http.Request) (postInput, bool) {
	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return postInput{}, false
	}
	if err := validateInput(input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return postInput{}, false
	}
	return input, true
}

// validateInput requires both fields to be non-empty once trimmed; the stored
// values keep their original spacing.
func validateInput(input postInput) error {
	trimmed := postInput{
		Title:   strings.TrimSpace(input.Title),
		Content: strings.TrimSpace(input.Content),
	}
	err := validate.Struct(trimmed)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%s is required", strings.ToLower(fieldErrs[0].Field()))
	}
	return err
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
