package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_admin/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	tok, err := issuer.Generate("sess-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	id, err := issuer.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret")

	expired, err := issuer.Generate("sess-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = issuer.Validate(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewTokenIssuer("other").Generate("sess-1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = issuer.Validate(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ID:        "sess-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Validate(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Validate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newGuardedRouter(t *testing.T) (*gin.Engine, *TokenIssuer, *session.Manager) {
	t.Helper()
	issuer := NewTokenIssuer("secret")
	mgr := session.NewManager(session.NewMemoryStore(), time.Hour)

	r := gin.New()
	r.GET("/me", RequireSession(issuer, mgr), func(c *gin.Context) {
		s, ok := CurrentSession(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"name": s.Name})
	})
	return r, issuer, mgr
}

func TestRequireSession(t *testing.T) {
	r, issuer, mgr := newGuardedRouter(t)
	s, err := mgr.Create(context.Background(), session.Session{AdminID: "a1", Name: "Admin"})
	require.NoError(t, err)
	tok, err := issuer.Generate(s.ID, s.ExpiresAt)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"Admin"}`, w.Body.String())
	})

	t.Run("query token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?token="+tok, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("destroyed session", func(t *testing.T) {
		require.NoError(t, mgr.Destroy(context.Background(), s.ID))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Session expired")
	})
}

func TestEnableCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	h := EnableCORS([]string{"http://admin.local"}, next)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://admin.local")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "http://admin.local", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.local")
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://admin.local")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
