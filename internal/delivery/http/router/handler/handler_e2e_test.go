package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"bookmarkd/config"
	"bookmarkd/internal/delivery/http/middleware"
	"bookmarkd/internal/delivery/http/router"
	"bookmarkd/internal/delivery/http/router/handler"
	"bookmarkd/internal/delivery/http/validator"
	"bookmarkd/internal/domain/entity"
	domainerrors "bookmarkd/internal/domain/errors"
	"bookmarkd/internal/domain/repository"
	"bookmarkd/internal/infra/auth"
	mockRepo "bookmarkd/internal/mocks/repository"
	"bookmarkd/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserRepo is an in-memory UserRepository with the same observable
// behavior as the GORM implementation, including the unique-email rule.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[int64]*entity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrCredentialsTaken
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return domainerrors.ErrCredentialsTaken
		}
	}

	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

// memBookmarkRepo is an in-memory BookmarkRepository.
type memBookmarkRepo struct {
	mu        sync.Mutex
	nextID    int64
	bookmarks map[int64]*entity.Bookmark
}

func newMemBookmarkRepo() *memBookmarkRepo {
	return &memBookmarkRepo{nextID: 1, bookmarks: make(map[int64]*entity.Bookmark)}
}

func (r *memBookmarkRepo) ListByUserID(_ context.Context, userID int64) ([]*entity.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []*entity.Bookmark
	for _, bookmark := range r.bookmarks {
		if bookmark.UserID == userID {
			copied := *bookmark
			owned = append(owned, &copied)
		}
	}

	return owned, nil
}

func (r *memBookmarkRepo) FindByID(_ context.Context, id int64) (*entity.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookmark, ok := r.bookmarks[id]
	if !ok {
		return nil, repository.ErrBookmarkNotFound
	}
	copied := *bookmark

	return &copied, nil
}

func (r *memBookmarkRepo) FindOwnedByID(_ context.Context, userID int64, id int64) (*entity.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookmark, ok := r.bookmarks[id]
	if !ok || bookmark.UserID != userID {
		return nil, repository.ErrBookmarkNotFound
	}
	copied := *bookmark

	return &copied, nil
}

func (r *memBookmarkRepo) Create(_ context.Context, bookmark *entity.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookmark.ID = r.nextID
	r.nextID++
	bookmark.CreatedAt = time.Now()
	bookmark.UpdatedAt = bookmark.CreatedAt
	copied := *bookmark
	r.bookmarks[bookmark.ID] = &copied

	return nil
}

func (r *memBookmarkRepo) Update(_ context.Context, bookmark *entity.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookmark.UpdatedAt = time.Now()
	copied := *bookmark
	r.bookmarks[bookmark.ID] = &copied

	return nil
}

func (r *memBookmarkRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookmarks[id]; !ok {
		return repository.ErrBookmarkNotFound
	}
	delete(r.bookmarks, id)

	return nil
}

// newTestServer wires real services, real crypto and in-memory repositories
// behind the full Echo route table.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.JWT.Secret = "e2e-test-secret"
	cfg.JWT.AccessTTL = 15 * time.Minute

	hasher := auth.NewArgon2Hasher(cfg)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userRepo := newMemUserRepo()
	bookmarkRepo := newMemBookmarkRepo()
	txManager := &mockRepo.PassthroughTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			UserRepository:     userRepo,
			BookmarkRepository: bookmarkRepo,
		},
	}

	authUsecase := impl.NewAuthService(userRepo, hasher, tokenService, logger)
	bookmarkUsecase := impl.NewBookmarkService(txManager, bookmarkRepo, logger)
	userUsecase := impl.NewUserService(txManager, userRepo, logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	router.NewRouter(router.RouterParams{
		AuthHandler:     handler.NewAuthHandler(authUsecase, logger),
		UserHandler:     handler.NewUserHandler(userUsecase, logger),
		BookmarkHandler: handler.NewBookmarkHandler(bookmarkUsecase, logger),
		AuthMiddleware:  middleware.NewAuthMiddleware(tokenService),
	}).RegisterRoutes(e)

	return e
}

func doRequest(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAPI_SignupSigninBookmarkFlow(t *testing.T) {
	e := newTestServer(t)

	// Signup
	rec := doRequest(e, http.MethodPost, "/auth/signup", "", `{"email":"vlad@gmail.com","password":"123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"user"`)
	assert.Contains(t, rec.Body.String(), "vlad@gmail.com")
	assert.NotContains(t, rec.Body.String(), "hash")

	// Duplicate signup
	rec = doRequest(e, http.MethodPost, "/auth/signup", "", `{"email":"vlad@gmail.com","password":"123"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credentials has taken")

	// Signin with wrong password
	rec = doRequest(e, http.MethodPost, "/auth/signin", "", `{"email":"vlad@gmail.com","password":"wrong"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credentials incorrect")

	// Signin with unknown email reads identically
	rec = doRequest(e, http.MethodPost, "/auth/signin", "", `{"email":"nobody@gmail.com","password":"123"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credentials incorrect")

	// Signin
	rec = doRequest(e, http.MethodPost, "/auth/signin", "", `{"email":"vlad@gmail.com","password":"123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokenBody struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokenBody))
	require.NotEmpty(t, tokenBody.AccessToken)
	token := tokenBody.AccessToken

	// Current user
	rec = doRequest(e, http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vlad@gmail.com")

	// Edit profile
	rec = doRequest(e, http.MethodPatch, "/users", token, `{"firstName":"Vladimir","email":"vlad@codewithvlad.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Vladimir")
	assert.Contains(t, rec.Body.String(), "vlad@codewithvlad.com")

	// Empty bookmark list
	rec = doRequest(e, http.MethodGet, "/bookmarks", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Create bookmark
	rec = doRequest(e, http.MethodPost, "/bookmarks", token,
		`{"title":"NestJs Course for Beginners","link":"https://www.youtube.com/watch?v=GHTA143_b-s"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	// Get bookmark by id
	rec = doRequest(e, http.MethodGet, "/bookmarks/1", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NestJs Course for Beginners")

	// Edit bookmark
	rec = doRequest(e, http.MethodPatch, "/bookmarks/1", token,
		`{"description":"Learn NestJs by building a CRUD REST API"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Learn NestJs by building a CRUD REST API")
	assert.Contains(t, rec.Body.String(), "NestJs Course for Beginners")

	// Delete bookmark
	rec = doRequest(e, http.MethodDelete, "/bookmarks/1", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// Deleted bookmark reads as null
	rec = doRequest(e, http.MethodGet, "/bookmarks/1", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestAPI_OwnershipIsolation(t *testing.T) {
	e := newTestServer(t)

	signin := func(email string) string {
		rec := doRequest(e, http.MethodPost, "/auth/signup", "", `{"email":"`+email+`","password":"123"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = doRequest(e, http.MethodPost, "/auth/signin", "", `{"email":"`+email+`","password":"123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var tokenBody struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokenBody))

		return tokenBody.AccessToken
	}

	ownerToken := signin("owner@gmail.com")
	otherToken := signin("other@gmail.com")

	rec := doRequest(e, http.MethodPost, "/bookmarks", ownerToken,
		`{"title":"private","link":"https://example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Reads by another user hide the bookmark entirely
	rec = doRequest(e, http.MethodGet, "/bookmarks/1", otherToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = doRequest(e, http.MethodGet, "/bookmarks", otherToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "private")

	// Writes by another user are rejected explicitly
	rec = doRequest(e, http.MethodPatch, "/bookmarks/1", otherToken, `{"title":"stolen"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access to resources denied")

	rec = doRequest(e, http.MethodDelete, "/bookmarks/1", otherToken, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access to resources denied")

	// The owner still sees the original bookmark
	rec = doRequest(e, http.MethodGet, "/bookmarks/1", ownerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "private")
}

func TestAPI_AuthGuards(t *testing.T) {
	e := newTestServer(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users"},
		{http.MethodGet, "/bookmarks"},
		{http.MethodGet, "/bookmarks/1"},
		{http.MethodPost, "/bookmarks"},
		{http.MethodPatch, "/bookmarks/1"},
		{http.MethodDelete, "/bookmarks/1"},
	}

	for _, route := range protected {
		rec := doRequest(e, route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}

	rec := doRequest(e, http.MethodGet, "/users/me", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAPI_Validation(t *testing.T) {
	e := newTestServer(t)

	// Signup requires a well-formed email and a password
	rec := doRequest(e, http.MethodPost, "/auth/signup", "", `{"email":"not-an-email","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/auth/signup", "", `{"email":"vlad@gmail.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/auth/signin", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Bookmark creation requires title and link
	signupRec := doRequest(e, http.MethodPost, "/auth/signup", "", `{"email":"vlad@gmail.com","password":"123"}`)
	require.Equal(t, http.StatusCreated, signupRec.Code)
	signinRec := doRequest(e, http.MethodPost, "/auth/signin", "", `{"email":"vlad@gmail.com","password":"123"}`)
	require.Equal(t, http.StatusOK, signinRec.Code)

	var tokenBody struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(signinRec.Body.Bytes(), &tokenBody))

	rec = doRequest(e, http.MethodPost, "/bookmarks", tokenBody.AccessToken, `{"title":"no link"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Bookmark ids must be numeric
	rec = doRequest(e, http.MethodGet, "/bookmarks/abc", tokenBody.AccessToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The error body carries the status code alongside the message
	assert.Contains(t, rec.Body.String(), `"statusCode":400`)
}

func TestAPI_HealthCheck(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
