package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/ytget/scrolly/internal/model"
)

// Request limits
const (
	maxJSONBody      = 12 << 20
	maxMultipartBody = 32 << 20
	uploadsPrefix    = "uploads/"
)

// Config holds configuration for creating a Server.
type Config struct {
	// UploadDir receives multipart images. It must exist.
	UploadDir string
	// BcryptCost is the password hashing cost. Zero means bcrypt.DefaultCost.
	BcryptCost int
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time
}

type account struct {
	user         model.User
	passwordHash []byte
}

// Server is an in-memory implementation of the backend API
type Server struct {
	uploadDir string
	cost      int
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	accounts map[model.ID]*account
	byEmail  map[string]model.ID
	tokens   map[string]model.ID
	posts    []*model.Post
}

// NewServer creates an empty server
func NewServer(config Config) (*Server, error) {
	if config.UploadDir == "" {
		return nil, fmt.Errorf("feedstub: UploadDir is required")
	}
	if info, err := os.Stat(config.UploadDir); err != nil {
		return nil, fmt.Errorf("feedstub: upload dir: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("feedstub: upload dir %q is not a directory", config.UploadDir)
	}

	cost := config.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Server{
		uploadDir: config.UploadDir,
		cost:      cost,
		logger:    logger,
		now:       now,
		accounts:  make(map[model.ID]*account),
		byEmail:   make(map[string]model.ID),
		tokens:    make(map[string]model.ID),
	}, nil
}

// Router returns the HTTP handler for all API routes
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/api/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(s.requireToken)
	authed.HandleFunc("/posts/create", s.handleCreatePost).Methods(http.MethodPost)
	authed.HandleFunc("/posts/feed", s.handleFeed).Methods(http.MethodGet)
	authed.HandleFunc("/posts/{id}/like", s.handleLike).Methods(http.MethodPost)
	authed.HandleFunc("/posts/{id}/comment", s.handleComment).Methods(http.MethodPost)
	authed.HandleFunc("/profile/{userId}", s.handleProfile).Methods(http.MethodGet)

	r.HandleFunc("/uploads/{name}", s.handleUpload).Methods(http.MethodGet)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", s.now().Sub(start))
	})
}

type ctxUserKey struct{}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		s.mu.RLock()
		userID, ok := s.tokens[token]
		s.mu.RUnlock()
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, userID)))
	})
}

func currentUser(r *http.Request) model.ID {
	id, _ := r.Context().Value(ctxUserKey{}).(model.ID)
	return id
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := s.register(req)
	switch {
	case errors.Is(err, errMissingFields):
		writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
		return
	case errors.Is(err, errEmailTaken):
		writeMessage(w, http.StatusConflict, "User already exists")
		return
	case err != nil:
		s.logger.Error("register failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}

var (
	errMissingFields = errors.New("missing fields")
	errEmailTaken    = errors.New("email already registered")
)

func (s *Server) register(req model.RegisterRequest) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" || email == "" || req.Password == "" {
		return model.User{}, errMissingFields
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[email]; taken {
		return model.User{}, errEmailTaken
	}
	user := model.User{
		ID:         newID(),
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		ProfilePic: req.ProfilePic,
	}
	s.accounts[user.ID] = &account{user: user, passwordHash: hash}
	s.byEmail[email] = user.ID
	s.logger.Info("user registered", "id", user.ID, "email", email)
	return user, nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.RLock()
	acc := s.accounts[s.byEmail[email]]
	s.mu.RUnlock()
	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token := uuid.Must(uuid.NewV7()).String()
	s.mu.Lock()
	s.tokens[token] = acc.user.ID
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": acc.user})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var text, image string

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
		if err := r.ParseMultipartForm(maxMultipartBody); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid form: "+err.Error())
			return
		}
		text = r.FormValue("text")
		saved, err := s.saveUpload(r)
		if err != nil {
			s.logger.Error("saving upload failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Could not store image")
			return
		}
		image = saved
	default:
		var payload model.PostPayload
		if err := decodeJSON(r, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		text, image = payload.Text, payload.ImageURL
	}

	if strings.TrimSpace(text) == "" && image == "" {
		writeMessage(w, http.StatusBadRequest, "Post must have text or an image")
		return
	}

	userID := currentUser(r)
	s.mu.Lock()
	author := s.authorLocked(userID)
	post := &model.Post{
		ID:        newID(),
		Text:      text,
		Image:     image,
		Author:    author,
		Likes:     []model.ID{},
		Comments:  []model.Comment{},
		CreatedAt: s.now().UTC(),
	}
	s.posts = append(s.posts, post)
	out := post.Clone()
	s.mu.Unlock()

	s.logger.Info("post created", "id", post.ID, "author", userID, "image", image != "")
	writeJSON(w, http.StatusCreated, out)
}

// saveUpload stores the "image" form file and returns its server
// reference, or "" when the form has no image.
func (s *Server) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := newID().String() + ext
	out, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return uploadsPrefix + name, nil
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	posts := s.sortedPostsLocked(func(*model.Post) bool { return true })
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	postID := model.ID(mux.Vars(r)["id"])
	userID := currentUser(r)

	s.mu.Lock()
	post := s.postLocked(postID)
	if post == nil {
		s.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.LikedBy(userID) {
		likes := post.Likes[:0]
		for _, id := range post.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		post.Likes = likes
	} else {
		post.Likes = append(post.Likes, userID)
	}
	likes := append([]model.ID{}, post.Likes...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"likes": likes})
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	postID := model.ID(mux.Vars(r)["id"])
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeMessage(w, http.StatusBadRequest, "Comment text is required")
		return
	}

	s.mu.Lock()
	post := s.postLocked(postID)
	if post == nil {
		s.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	comment := model.Comment{
		ID:        newID(),
		Text:      strings.TrimSpace(req.Text),
		Author:    s.authorLocked(currentUser(r)),
		CreatedAt: s.now().UTC(),
	}
	post.Comments = append(post.Comments, comment)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"comment": comment})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := model.ID(mux.Vars(r)["userId"])

	s.mu.RLock()
	acc := s.accounts[userID]
	var posts []*model.Post
	if acc != nil {
		posts = s.sortedPostsLocked(func(p *model.Post) bool {
			return p.Author != nil && p.Author.ID == userID
		})
	}
	s.mu.RUnlock()

	if acc == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": acc.user, "posts": posts})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	name := path.Base(mux.Vars(r)["name"])
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.uploadDir, name))
}

// authorLocked returns the author record for userID. Callers hold s.mu.
func (s *Server) authorLocked(userID model.ID) *model.Author {
	if acc := s.accounts[userID]; acc != nil {
		return &model.Author{User: acc.user}
	}
	return &model.Author{User: model.User{ID: userID}}
}

// postLocked finds a post by id. Callers hold s.mu.
func (s *Server) postLocked(id model.ID) *model.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// sortedPostsLocked returns copies of the matching posts, newest first.
// Callers hold s.mu.
func (s *Server) sortedPostsLocked(keep func(*model.Post) bool) []*model.Post {
	out := make([]*model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func newID() model.ID {
	return model.ID(uuid.Must(uuid.NewV7()).String())
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("encoding response failed", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
