package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/internal/user/usecase/command"
	"github.com/tair/nutribakery/internal/user/usecase/query"
	"github.com/tair/nutribakery/internal/user/usertest"
	"github.com/tair/nutribakery/pkg/auth"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/mailer"
	"github.com/tair/nutribakery/pkg/middleware"
)

type fixture struct {
	router *mux.Router
	repo   *usertest.Repository
	tokens *auth.TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := usertest.NewRepository()
	tokens := auth.NewTokenManager("secret", time.Hour)
	h := NewUserHandlerWithDI(UserCommands{
		Register: command.NewRegisterUserHandler(repo, &usertest.IDs{}),
		Login:    command.NewLoginUserHandler(repo, tokens),
		Forgot:   command.NewForgotPasswordHandler(repo, mailer.LogSender{}),
		Reset:    command.NewResetPasswordHandler(repo),
		Promote:  command.NewPromoteUserHandler(repo),
		Address:  command.NewUpdateAddressHandler(repo),
		Update:   command.NewUpdateUserHandler(repo),
	}, UserQueries{
		Get:    query.NewGetUserHandler(repo),
		Exists: query.NewUserExistsHandler(repo),
		List:   query.NewListUsersHandler(repo),
		Count:  query.NewCountUsersHandler(repo),
	}, nil)

	router := mux.NewRouter()
	h.RegisterRoutes(router, middleware.Guard{Authn: middleware.NewAuthenticator(tokens)})
	return &fixture{router: router, repo: repo, tokens: tokens}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, httpx.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var resp httpx.Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestSignupLoginMe(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/api/users/signup", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret1", "phone_number": "077",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := f.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "alice@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "NBU_001", data["user_id"])

	rec, resp = f.do(t, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := resp.Data.(map[string]interface{})
	assert.Equal(t, "alice", me["username"])
	assert.NotContains(t, me, "password")
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/users/signup", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret1", "phone_number": "077",
	}, "")

	rec, resp := f.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "alice@example.com", "password": "wrong12",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", resp.Message)
}

func TestListUsersAccess(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.Create(context.Background(), &domain.User{UserID: "NBU_001", Username: "alice", Email: "a@x.io", PhoneNumber: "1"}))

	rec, resp := f.do(t, http.MethodGet, "/api/users?user_id=NBU_001", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"exists": true}, resp.Data)

	rec, _ = f.do(t, http.MethodGet, "/api/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userToken, err := f.tokens.GenerateToken("NBU_001", "alice", auth.RoleUser)
	require.NoError(t, err)
	rec, _ = f.do(t, http.MethodGet, "/api/users", nil, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := f.tokens.GenerateToken("NBU_900", "root", auth.RoleAdmin)
	require.NoError(t, err)
	rec, resp = f.do(t, http.MethodGet, "/api/users?page=1", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	page := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, page["totalPages"])
}

func TestPromoteRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.Create(context.Background(), &domain.User{UserID: "NBU_001", Username: "alice", Email: "a@x.io", PhoneNumber: "1"}))

	userToken, err := f.tokens.GenerateToken("NBU_001", "alice", auth.RoleUser)
	require.NoError(t, err)
	rec, _ := f.do(t, http.MethodPost, "/api/users/promote", map[string]string{"username": "alice"}, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := f.tokens.GenerateToken("NBU_900", "root", auth.RoleAdmin)
	require.NoError(t, err)
	rec, resp := f.do(t, http.MethodPost, "/api/users/promote", map[string]string{"username": "alice"}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User alice has been promoted to admin.", resp.Message)

	stored, err := f.repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())
}
