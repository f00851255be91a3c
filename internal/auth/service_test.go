package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inamate/pathconv/internal/db"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]db.User // by id
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]db.User)}
}

func (m *memUsers) CreateUser(_ context.Context, arg db.CreateUserParams) (db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == arg.Email {
			return db.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	u := db.User{ID: arg.ID, Email: arg.Email, Password: arg.Password, DisplayName: arg.DisplayName}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return db.User{}, pgx.ErrNoRows
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return db.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func newTestService() *Service {
	s := NewService(newMemUsers(), "test-secret")
	s.bcryptCost = bcrypt.MinCost
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	reg, err := s.Register(ctx, "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", reg.User.Email)
	assert.True(t, strings.HasPrefix(reg.User.ID, "user_"))

	userID, err := s.ValidateToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)

	_, err = s.Register(ctx, "ada@example.com", "another pass", "Ada 2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := s.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, reg.User, login.User)

	_, err = s.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := s.GetUser(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.DisplayName)

	_, err = s.GetUser(ctx, "user_missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateTokenRejects(t *testing.T) {
	s := newTestService()

	other := NewService(newMemUsers(), "other-secret")
	foreign, err := other.issueToken("user_x")
	require.NoError(t, err)
	_, err = s.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_x",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString(s.jwtSecret)
	require.NoError(t, err)
	_, err = s.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestService()
	token, err := s.issueToken("user_abc")
	require.NoError(t, err)

	var seen string
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
	}))

	tests := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tt.status, rec.Code, tt.header)
	}
	assert.Equal(t, "user_abc", seen)
}

func TestHandlerRegister(t *testing.T) {
	h := NewHandler(newTestService())

	tests := []struct {
		body   string
		status int
	}{
		{`{`, http.StatusBadRequest},
		{`{"email":"a@b.c"}`, http.StatusBadRequest},
		{`{"email":"a@b.c","password":"short","displayName":"A"}`, http.StatusBadRequest},
		{`{"email":"a@b.c","password":"long enough","displayName":"A"}`, http.StatusCreated},
		{`{"email":"a@b.c","password":"long enough","displayName":"A"}`, http.StatusConflict},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body)))
		assert.Equal(t, tt.status, rec.Code, tt.body)
	}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.c","password":"long enough"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var result AuthResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.NotEmpty(t, result.Token)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	h.Me(rec, req.WithContext(WithUserID(req.Context(), result.User.ID)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerStatuses(t *testing.T) {
	h := NewHandler(newTestService())

	call := func(fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return rec
	}

	rec := call(h.Register, `{"email":"  Dana@Example.COM ","password":"long enough","displayName":"Dana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var result AuthResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "dana@example.com", result.User.Email)

	tests := []struct {
		name   string
		fn     http.HandlerFunc
		body   string
		status int
	}{
		{"blank display name", h.Register, `{"email":"x@y.z","password":"long enough","displayName":"  "}`, http.StatusBadRequest},
		{"case-insensitive login", h.Login, `{"email":"DANA@example.com","password":"long enough"}`, http.StatusOK},
		{"wrong password", h.Login, `{"email":"dana@example.com","password":"not it at all"}`, http.StatusUnauthorized},
		{"unknown email", h.Login, `{"email":"nobody@example.com","password":"long enough"}`, http.StatusUnauthorized},
		{"missing password", h.Login, `{"email":"dana@example.com"}`, http.StatusBadRequest},
		{"bad body", h.Login, `[`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, call(tt.fn, tt.body).Code)
		})
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	h.Me(rec, req.WithContext(WithUserID(req.Context(), "user_gone")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
