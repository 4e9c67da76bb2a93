package contact

import (
	"context"

	"phonebook/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Repository methods taking an owner only ever see that owner's contacts; a
// contact held by someone else is reported as not found.
type Repository interface {
	Create(ctx context.Context, contact *Contact) error
	ListByOwner(ctx context.Context, owner ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*Contact, int64, error)
	GetByIDAndOwner(ctx context.Context, id, owner ulid.ULID) (*Contact, error)
	Replace(ctx context.Context, id, owner ulid.ULID, fields Fields) (*Contact, error)
	UpdateFavorite(ctx context.Context, id, owner ulid.ULID, favorite bool) (*Contact, error)
	DeleteByIDAndOwner(ctx context.Context, id, owner ulid.ULID) error
}
