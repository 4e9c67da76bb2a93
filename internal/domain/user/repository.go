package user

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// Column names accepted by Repository.UpdateFields.
const (
	FieldToken             = "token"
	FieldVerify            = "verify"
	FieldVerificationToken = "verification_token"
	FieldAvatarURL         = "avatar_url"
	FieldUpdatedAt         = "updated_at"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	UpdateFields(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error
	// UpdateFieldsWhere is UpdateFields restricted to a row that also holds
	// every column value in match. A row that no longer matches is not found.
	UpdateFieldsWhere(ctx context.Context, id ulid.ULID, match, fields map[string]interface{}) error
}
