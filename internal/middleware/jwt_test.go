package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"phonebook/config"
	"phonebook/internal/domain/user"
	appErrors "phonebook/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	users map[ulid.ULID]*user.User
	err   error
}

func (f *fakeResolver) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, appErrors.ErrUserNotFound
	}
	return u, nil
}

func newTestJwtService(t *testing.T, resolver UserResolver) *JwtService {
	t.Helper()
	svc, err := NewJwtService(config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}, resolver)
	require.NoError(t, err)
	return svc
}

func TestNewJwtService_Validates(t *testing.T) {
	_, err := NewJwtService(config.JWTConfig{Expiration: time.Hour}, &fakeResolver{})
	assert.Error(t, err)

	_, err = NewJwtService(config.JWTConfig{Secret: "s"}, &fakeResolver{})
	assert.Error(t, err)
}

func TestGenerateAndParse(t *testing.T) {
	svc := newTestJwtService(t, &fakeResolver{})
	id := ulid.Make()

	tok, err := svc.GenerateToken(id)
	require.NoError(t, err)

	got, err := svc.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestGenerateToken_IsUniquePerCall(t *testing.T) {
	svc := newTestJwtService(t, &fakeResolver{})
	id := ulid.Make()

	a, err := svc.GenerateToken(id)
	require.NoError(t, err)
	b, err := svc.GenerateToken(id)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseToken_Expired(t *testing.T) {
	svc := newTestJwtService(t, &fakeResolver{})
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := svc.GenerateToken(ulid.Make())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ParseToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := newTestJwtService(t, &fakeResolver{})
	tok, err := issuer.GenerateToken(ulid.Make())
	require.NoError(t, err)

	other, err := NewJwtService(config.JWTConfig{Secret: "another", Expiration: time.Hour}, &fakeResolver{})
	require.NoError(t, err)

	_, err = other.ParseToken(tok)
	assert.Error(t, err)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestJwtService(t, &fakeResolver{})

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           ulid.Make().String(),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ParseToken(tok)
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	id := ulid.Make()
	u := &user.User{Id: id, Email: "a@x.com"}
	resolver := &fakeResolver{users: map[ulid.ULID]*user.User{id: u}}
	svc := newTestJwtService(t, resolver)
	ctx := context.Background()

	current, err := svc.GenerateToken(id)
	require.NoError(t, err)
	u.Token = current

	t.Run("current session", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, current)
		require.NoError(t, err)
		assert.Equal(t, id, got.Id)
	})

	t.Run("rotated session", func(t *testing.T) {
		stale, err := svc.GenerateToken(id)
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, stale)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("logged out", func(t *testing.T) {
		u.Token = ""
		defer func() { u.Token = current }()
		_, err := svc.Authenticate(ctx, current)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		tok, err := svc.GenerateToken(ulid.Make())
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, tok)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("store failure is not a 401", func(t *testing.T) {
		failing := newTestJwtService(t, &fakeResolver{err: appErrors.NewDatabaseError(errors.New("down"))})
		_, err := failing.Authenticate(ctx, current)
		assert.ErrorIs(t, err, appErrors.ErrDatabase)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "bearer abc"},
		{header: "Bearer "},
		{header: "Basic abc"},
		{header: "abc"},
		{header: ""},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	id := ulid.Make()
	u := &user.User{Id: id, Email: "a@x.com"}
	svc := newTestJwtService(t, &fakeResolver{users: map[ulid.ULID]*user.User{id: u}})
	tok, err := svc.GenerateToken(id)
	require.NoError(t, err)
	u.Token = tok

	router := gin.New()
	router.GET("/private", AuthMiddleware(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserID)})
	})

	t.Run("accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, id.String(), body["user_id"])
	})

	for name, header := range map[string]string{
		"missing":   "",
		"no scheme": tok,
		"garbage":   "Bearer garbage",
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Not authorized", body["message"])
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/contacts", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/contacts", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
