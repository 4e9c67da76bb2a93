package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"phonebook/config"
	"phonebook/internal/domain/user"
	appErrors "phonebook/internal/errors"
	"phonebook/internal/logger"
	"phonebook/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const (
	ContextUserID = "user_id"
	ContextUser   = "user"
	ContextToken  = "token"
)

type UserResolver interface {
	GetByID(ctx context.Context, id ulid.ULID) (*user.User, error)
}

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// JwtService signs and verifies HS256 session tokens and resolves them to the
// user whose current session they are.
type JwtService struct {
	secret     []byte
	expiration time.Duration
	users      UserResolver
	now        func() time.Time
}

func NewJwtService(cfg config.JWTConfig, users UserResolver) (*JwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: secret must not be empty")
	}
	if cfg.Expiration <= 0 {
		return nil, errors.New("jwt: expiration must be positive")
	}
	return &JwtService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		users:      users,
		now:        time.Now,
	}, nil
}

// GenerateToken issues a token for userID. Every call yields a distinct token
// so a new login always rotates the stored session.
func (s *JwtService) GenerateToken(userID ulid.ULID) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		UserID: userID.String(),
	})
	return token.SignedString(s.secret)
}

// ParseToken verifies signature and expiry and returns the embedded user id.
func (s *JwtService) ParseToken(tokenString string) (ulid.ULID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return ulid.ULID{}, err
	}
	if !token.Valid {
		return ulid.ULID{}, jwt.ErrTokenSignatureInvalid
	}
	return pkg.ParseULID(claims.UserID)
}

// Authenticate resolves tokenString to its user. The token must also be the
// session currently stored for that user, so tokens from before the latest
// login or logout are refused even while their expiry is still ahead.
func (s *JwtService) Authenticate(ctx context.Context, tokenString string) (*user.User, error) {
	userID, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, appErrors.ErrUnauthorized.WithError(err)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return nil, appErrors.ErrUnauthorized.WithError(err)
		}
		return nil, err
	}

	if !u.HasSession(tokenString) {
		return nil, appErrors.ErrUnauthorized
	}
	return u, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

// AuthMiddleware guards a route group with the bearer session token found in
// the Authorization header.
func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}

		u, err := jwtSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserID, u.Id.String())
		c.Set(ContextUser, u)
		c.Set(ContextToken, token)
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Warn().Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_rejected")

	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.StatusCode, payload)
}
