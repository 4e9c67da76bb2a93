package contact

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

// Create stamps owner onto the new contact; whatever owner the caller might
// have put in fields is irrelevant.
func (s *Service) Create(ctx context.Context, owner ulid.ULID, fields Fields) (*Contact, error) {
	if pkg.IsEmptyULID(owner) {
		return nil, appErrors.ErrUnauthorized
	}

	fields, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	entity := &Contact{
		Id:        pkg.GenerateULIDObject(),
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Favorite:  fields.Favorite,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// List returns the owner's contacts oldest first. A nil pagination returns all
// of them.
func (s *Service) List(ctx context.Context, owner ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*Contact, int64, error) {
	return s.Repository.ListByOwner(ctx, owner, filters, pagination)
}

func (s *Service) Get(ctx context.Context, id, owner ulid.ULID) (*Contact, error) {
	return s.Repository.GetByIDAndOwner(ctx, id, owner)
}

func (s *Service) Replace(ctx context.Context, id, owner ulid.ULID, fields Fields) (*Contact, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}
	return s.Repository.Replace(ctx, id, owner, fields)
}

func (s *Service) SetFavorite(ctx context.Context, id, owner ulid.ULID, favorite bool) (*Contact, error) {
	return s.Repository.UpdateFavorite(ctx, id, owner, favorite)
}

func (s *Service) Delete(ctx context.Context, id, owner ulid.ULID) error {
	return s.Repository.DeleteByIDAndOwner(ctx, id, owner)
}

// normalizeFields trims the text fields. Each one must still be non-empty
// afterwards.
func normalizeFields(fields Fields) (Fields, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Email = strings.TrimSpace(fields.Email)
	fields.Phone = strings.TrimSpace(fields.Phone)

	switch {
	case fields.Name == "":
		return fields, appErrors.NewValidationError("name", "is required")
	case fields.Email == "":
		return fields, appErrors.NewValidationError("email", "is required")
	case fields.Phone == "":
		return fields, appErrors.NewValidationError("phone", "is required")
	}
	return fields, nil
}
