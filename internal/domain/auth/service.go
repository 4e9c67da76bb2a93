package auth

import (
	"context"
	"errors"
	"strings"

	"phonebook/internal/avatar"
	"phonebook/internal/domain/user"
	appErrors "phonebook/internal/errors"
	"phonebook/internal/logger"
	"phonebook/internal/mail"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type TokenIssuer interface {
	GenerateToken(userID ulid.ULID) (string, error)
}

// Service drives the account lifecycle: signup, email verification, login,
// logout and profile changes.
//
// Accounts start unverified and become verified exactly once, when the
// verification token mailed at signup is presented. There is no way back.
type Service struct {
	UserService *user.Service
	Hasher      Hasher
	Tokens      TokenIssuer
	Mailer      mail.Mailer
	Avatars     avatar.Storage
	BaseURL     string

	newVerificationToken func() string
}

func NewService(
	userSvc *user.Service,
	hasher Hasher,
	tokens TokenIssuer,
	mailer mail.Mailer,
	avatars avatar.Storage,
	baseURL string,
) *Service {
	return &Service{
		UserService:          userSvc,
		Hasher:               hasher,
		Tokens:               tokens,
		Mailer:               mailer,
		Avatars:              avatars,
		BaseURL:              strings.TrimRight(baseURL, "/"),
		newVerificationToken: uuid.NewString,
	}
}

// Register creates an unverified account and mails its verification link.
// The account is persisted before the mail is sent; a delivery failure is
// reported but the account stays, and ResendVerification can recover it.
func (s *Service) Register(ctx context.Context, reg Registration) (user.Profile, error) {
	if strings.TrimSpace(reg.Email) == "" {
		return user.Profile{}, appErrors.NewValidationError("email", "is required")
	}
	if err := PasswordRequirements(reg.Password); err != nil {
		return user.Profile{}, err
	}
	if reg.Subscription != "" && !reg.Subscription.IsValid() {
		return user.Profile{}, appErrors.NewValidationError("subscription", "must be one of: starter pro business")
	}

	exists, err := s.UserService.EmailExists(ctx, reg.Email)
	if err != nil {
		return user.Profile{}, err
	}
	if exists {
		return user.Profile{}, appErrors.ErrEmailInUse
	}

	hash, err := s.Hasher.Hash(reg.Password)
	if err != nil {
		return user.Profile{}, err
	}

	verificationToken := s.newVerificationToken()
	entity := &user.User{
		Email:             reg.Email,
		Password:          hash,
		Subscription:      reg.Subscription,
		AvatarURL:         avatar.GravatarURL(reg.Email),
		VerificationToken: &verificationToken,
	}
	if err := s.UserService.Create(ctx, entity); err != nil {
		return user.Profile{}, err
	}

	logger.Info().Str("user_id", entity.Id.String()).Msg("user registered")

	if err := s.sendVerification(ctx, entity.Email, verificationToken); err != nil {
		return user.Profile{}, err
	}

	return entity.Profile(), nil
}

// Verify consumes a verification token. A token works once: afterwards no
// user carries it and the lookup fails with not found.
func (s *Service) Verify(ctx context.Context, token string) error {
	entity, err := s.UserService.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if err := s.UserService.MarkVerified(ctx, entity.Id, token); err != nil {
		return err
	}
	logger.Info().Str("user_id", entity.Id.String()).Msg("email verified")
	return nil
}

func (s *Service) ResendVerification(ctx context.Context, email string) error {
	entity, err := s.UserService.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if entity.Verify {
		return appErrors.ErrAlreadyVerified
	}
	if entity.VerificationToken == nil || *entity.VerificationToken == "" {
		return appErrors.ErrInternalServer.WithError(errors.New("unverified user without verification token"))
	}
	return s.sendVerification(ctx, entity.Email, *entity.VerificationToken)
}

// Login checks credentials and issues a new session token, replacing any
// previous one. Only one session per user is valid at a time.
func (s *Service) Login(ctx context.Context, login Login) (string, error) {
	entity, err := s.UserService.GetByEmail(ctx, login.Email)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return "", appErrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.Hasher.Compare(entity.Password, login.Password); err != nil {
		return "", err
	}
	if !entity.Verify {
		return "", appErrors.ErrEmailNotVerified
	}

	token, err := s.Tokens.GenerateToken(entity.Id)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	if err := s.UserService.SetSessionToken(ctx, entity.Id, token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context, userID ulid.ULID) error {
	return s.UserService.ClearSessionToken(ctx, userID)
}

func (s *Service) Current(ctx context.Context, userID ulid.ULID) (user.Profile, error) {
	entity, err := s.UserService.GetByID(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}
	return entity.Profile(), nil
}

// UpdateAvatar moves upload to avatar storage as "<userID>.<ext>" and records
// the new reference. Re-uploads overwrite the previous file.
func (s *Service) UpdateAvatar(ctx context.Context, userID ulid.ULID, upload Upload) (string, error) {
	fileName, err := avatar.FileName(userID.String(), upload.OriginalName)
	if err != nil {
		return "", appErrors.NewValidationError("avatar", "file name must have an extension")
	}

	ref, err := s.Avatars.Store(ctx, upload.TempPath, fileName)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}

	if err := s.UserService.UpdateAvatar(ctx, userID, ref); err != nil {
		return "", err
	}
	return ref, nil
}

func (s *Service) sendVerification(ctx context.Context, to, token string) error {
	msg, err := mail.VerificationEmail(s.BaseURL, to, token)
	if err != nil {
		return appErrors.ErrMailDelivery.WithError(err)
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		logger.Error().Err(err).Str("to", to).Msg("verification email failed")
		return appErrors.ErrMailDelivery.WithError(err)
	}
	return nil
}
