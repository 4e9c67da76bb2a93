package user_test

import (
	"context"
	"errors"
	"testing"

	"phonebook/internal/domain/user"
	appErrors "phonebook/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	createFn       func(ctx context.Context, u *user.User) error
	getByEmailFn   func(ctx context.Context, email string) (*user.User, error)
	updateFieldsFn func(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error
	updateWhereFn  func(ctx context.Context, id ulid.ULID, match, fields map[string]interface{}) error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error {
	if f.updateFieldsFn != nil {
		return f.updateFieldsFn(ctx, id, fields)
	}
	return nil
}

func (f *fakeUserRepo) UpdateFieldsWhere(ctx context.Context, id ulid.ULID, match, fields map[string]interface{}) error {
	if f.updateWhereFn != nil {
		return f.updateWhereFn(ctx, id, match, fields)
	}
	return nil
}

func TestService_Create_AssignsDefaults(t *testing.T) {
	var stored *user.User
	svc := user.NewService(&fakeUserRepo{
		createFn: func(ctx context.Context, u *user.User) error {
			stored = u
			return nil
		},
	})

	u := &user.User{Email: "  A@X.com ", Password: "hash"}
	require.NoError(t, svc.Create(context.Background(), u))

	require.NotNil(t, stored)
	assert.NotEqual(t, ulid.ULID{}, stored.Id)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, user.SubscriptionStarter, stored.Subscription)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestService_EmailExists(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepo{
			getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return &user.User{Email: email}, nil
			},
		})
		exists, err := svc.EmailExists(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("not found", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepo{})
		exists, err := svc.EmailExists(ctx, "a@x.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("lookup failure", func(t *testing.T) {
		dbErr := appErrors.NewDatabaseError(errors.New("connection reset"))
		svc := user.NewService(&fakeUserRepo{
			getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return nil, dbErr
			},
		})
		_, err := svc.EmailExists(ctx, "a@x.com")
		assert.ErrorIs(t, err, appErrors.ErrDatabase)
	})
}

func TestService_MarkVerified_WritesBothFields(t *testing.T) {
	var got, gotMatch map[string]interface{}
	svc := user.NewService(&fakeUserRepo{
		updateWhereFn: func(ctx context.Context, id ulid.ULID, match, fields map[string]interface{}) error {
			gotMatch = match
			got = fields
			return nil
		},
	})

	require.NoError(t, svc.MarkVerified(context.Background(), ulid.Make(), "tok-1"))

	assert.Equal(t, map[string]interface{}{user.FieldVerificationToken: "tok-1"}, gotMatch)
	assert.Equal(t, true, got[user.FieldVerify])
	assert.Contains(t, got, user.FieldVerificationToken)
	assert.Nil(t, got[user.FieldVerificationToken])
	assert.Contains(t, got, user.FieldUpdatedAt)
}

func TestService_MarkVerified_StaleToken(t *testing.T) {
	svc := user.NewService(&fakeUserRepo{
		updateWhereFn: func(ctx context.Context, id ulid.ULID, match, fields map[string]interface{}) error {
			return appErrors.ErrUserNotFound
		},
	})

	err := svc.MarkVerified(context.Background(), ulid.Make(), "gone")
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)

	err = svc.MarkVerified(context.Background(), ulid.Make(), "")
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
}

func TestService_ClearSessionToken(t *testing.T) {
	var got map[string]interface{}
	svc := user.NewService(&fakeUserRepo{
		updateFieldsFn: func(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error {
			got = fields
			return nil
		},
	})

	require.NoError(t, svc.ClearSessionToken(context.Background(), ulid.Make()))
	assert.Equal(t, "", got[user.FieldToken])
}

func TestUser_HasSession(t *testing.T) {
	u := &user.User{Token: "abc"}
	assert.True(t, u.HasSession("abc"))
	assert.False(t, u.HasSession("abd"))
	assert.False(t, u.HasSession(""))

	loggedOut := &user.User{}
	assert.False(t, loggedOut.HasSession(""))
}

func TestSubscription(t *testing.T) {
	assert.True(t, user.SubscriptionPro.IsValid())
	assert.False(t, user.Subscription("gold").IsValid())
	assert.Equal(t, user.SubscriptionStarter, user.Subscription("").OrDefault())
	assert.Equal(t, user.SubscriptionBusiness, user.SubscriptionBusiness.OrDefault())
}
