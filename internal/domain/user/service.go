package user

import (
	"context"
	"strings"

	appErrors "phonebook/internal/errors"
	"phonebook/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

// Create assigns identity and timestamps and persists u. The password is
// expected to be hashed already.
func (s *Service) Create(ctx context.Context, u *User) error {
	u.Id = pkg.GenerateULIDObject()
	u.Email = NormalizeEmail(u.Email)
	u.Subscription = u.Subscription.OrDefault()

	now := pkg.SetTimestamps()
	u.CreatedAt = now
	u.UpdatedAt = now

	return s.Repository.Create(ctx, u)
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.Repository.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) GetByVerificationToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, appErrors.ErrUserNotFound
	}
	return s.Repository.GetByVerificationToken(ctx, token)
}

// EmailExists distinguishes "no such user" from a lookup failure.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
		return false, nil
	}
	return false, err
}

func (s *Service) SetSessionToken(ctx context.Context, id ulid.ULID, token string) error {
	return s.updateFields(ctx, id, map[string]interface{}{FieldToken: token})
}

func (s *Service) ClearSessionToken(ctx context.Context, id ulid.ULID) error {
	return s.updateFields(ctx, id, map[string]interface{}{FieldToken: ""})
}

// MarkVerified flips the verification flag and consumes token in one write.
// The write only lands while the user still holds token, so of two concurrent
// calls with the same token one fails with ErrUserNotFound.
func (s *Service) MarkVerified(ctx context.Context, id ulid.ULID, token string) error {
	if token == "" {
		return appErrors.ErrUserNotFound
	}
	fields := map[string]interface{}{
		FieldVerify:            true,
		FieldVerificationToken: nil,
		FieldUpdatedAt:         pkg.SetTimestamps(),
	}
	return s.Repository.UpdateFieldsWhere(ctx, id, map[string]interface{}{FieldVerificationToken: token}, fields)
}

func (s *Service) UpdateAvatar(ctx context.Context, id ulid.ULID, avatarURL string) error {
	return s.updateFields(ctx, id, map[string]interface{}{FieldAvatarURL: avatarURL})
}

func (s *Service) updateFields(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error {
	fields[FieldUpdatedAt] = pkg.SetTimestamps()
	return s.Repository.UpdateFields(ctx, id, fields)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
