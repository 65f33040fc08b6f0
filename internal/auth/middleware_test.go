package auth_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pec-events/portal/internal/auth"
	"github.com/pec-events/portal/internal/config"
	"github.com/pec-events/portal/internal/model"
)

func TestMiddleware(t *testing.T) {
	tokens := auth.NewTokens(config.AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 15})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var gotUserID string
	var gotRole model.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = auth.UserID(r.Context())
		gotRole, _ = auth.Role(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := auth.Middleware(tokens, logger)(next)

	t.Run("BearerToken", func(t *testing.T) {
		signed, err := tokens.Generate(&model.User{ID: "judge1", Role: model.RoleJudge})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "judge1", gotUserID)
		assert.Equal(t, model.RoleJudge, gotRole)
	})

	t.Run("CookieToken", func(t *testing.T) {
		signed, err := tokens.Generate(&model.User{ID: "student1", Role: model.RoleStudent})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: signed})
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "student1", gotUserID)
	})

	t.Run("MissingToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
