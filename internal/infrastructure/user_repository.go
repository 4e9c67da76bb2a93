package infrastructure

import (
	"context"
	"errors"
	"time"

	"phonebook/internal/domain/shared"
	"phonebook/internal/domain/user"
	appErrors "phonebook/internal/errors"
	"phonebook/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

type userDB struct {
	Id                string    `gorm:"type:varchar(26);primaryKey"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Password          string    `gorm:"type:varchar(255);not null"`
	Subscription      string    `gorm:"type:varchar(10);default:'starter';not null"`
	AvatarURL         string    `gorm:"type:varchar(512)"`
	Token             string    `gorm:"type:text"`
	Verify            bool      `gorm:"not null;default:false"`
	VerificationToken *string   `gorm:"type:varchar(64);uniqueIndex:idx_users_verification_token"`
	CreatedAt         time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime;not null"`
}

func (userDB) TableName() string {
	return "users"
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &user.User{
		Id:                id,
		Email:             udb.Email,
		Password:          udb.Password,
		Subscription:      user.Subscription(udb.Subscription),
		AvatarURL:         udb.AvatarURL,
		Token:             udb.Token,
		Verify:            udb.Verify,
		VerificationToken: udb.VerificationToken,
		CreatedAt:         udb.CreatedAt,
		UpdatedAt:         udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:                u.Id.String(),
		Email:             u.Email,
		Password:          u.Password,
		Subscription:      string(u.Subscription),
		AvatarURL:         u.AvatarURL,
		Token:             u.Token,
		Verify:            u.Verify,
		VerificationToken: u.VerificationToken,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	if err := r.DB.WithContext(ctx).Create(udb).Error; err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.ErrEmailInUse.WithError(err)
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	return r.first(ctx, "verification_token = ?", token)
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var udb userDB
	if err := r.DB.WithContext(ctx).Where(query, arg).First(&udb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&udb)
}

// UpdateFields writes only the given columns of one user. Map values are
// written as-is, zero values and nil included.
func (r *UserRepository) UpdateFields(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error {
	return r.UpdateFieldsWhere(ctx, id, nil, fields)
}

func (r *UserRepository) UpdateFieldsWhere(ctx context.Context, id ulid.ULID, match, fields map[string]interface{}) error {
	query := r.DB.WithContext(ctx).Model(&userDB{}).Where("id = ?", id.String())
	if len(match) > 0 {
		query = query.Where(match)
	}
	result := query.Updates(fields)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}
