package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/services"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerErr error
	loginErr    error
	user        *models.User
}

func (s *stubAuthService) Register(_ context.Context, _ services.RegisterInput) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.user, nil
}

func (s *stubAuthService) Login(_ context.Context, _ services.LoginInput) (*models.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.user, nil
}

const handlerTestSecret = "handler-test-secret"

func TestAuthHandlerRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := &stubAuthService{user: &models.User{ID: 1, Username: "alice"}}
		h := NewAuthHandler(stub, handlerTestSecret)

		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"username":"alice","password":"correct horse","full_name":"Alice","email":"alice@example.com"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var body struct {
			User models.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "alice", body.User.Username)
	})

	t.Run("conflict", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{registerErr: services.ErrUsernameTaken}, handlerTestSecret)

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"alice"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{}, handlerTestSecret)

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Run("issues a verifiable token", func(t *testing.T) {
		stub := &stubAuthService{user: &models.User{ID: 7, Username: "alice"}}
		h := NewAuthHandler(stub, handlerTestSecret)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"alice","password":"correct horse"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "alice", body.User.Username)

		token, err := jwt.Parse(body.Token, func(t *jwt.Token) (interface{}, error) {
			return []byte(handlerTestSecret), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)
		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, float64(7), claims["user_id"])
		assert.Equal(t, "alice", claims["name"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{loginErr: services.ErrInvalidCredentials}, handlerTestSecret)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"alice","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
