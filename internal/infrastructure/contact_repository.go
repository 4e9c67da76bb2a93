package infrastructure

import (
	"context"
	"errors"
	"time"

	"phonebook/internal/domain/contact"
	appErrors "phonebook/internal/errors"
	"phonebook/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

type contactDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(64);not null"`
	Favorite  bool      `gorm:"not null;default:false;index:idx_contacts_owner_favorite,priority:2"`
	Owner     string    `gorm:"type:varchar(26);not null;index:idx_contacts_owner_favorite,priority:1"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

func (contactDB) TableName() string {
	return "contacts"
}

func toDomainContact(cdb *contactDB) (*contact.Contact, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	owner, err := pkg.ParseULID(cdb.Owner)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &contact.Contact{
		Id:        id,
		Name:      cdb.Name,
		Email:     cdb.Email,
		Phone:     cdb.Phone,
		Favorite:  cdb.Favorite,
		Owner:     owner,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBContact(c *contact.Contact) *contactDB {
	return &contactDB{
		Id:        c.Id.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Favorite:  c.Favorite,
		Owner:     c.Owner.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	if err := r.DB.WithContext(ctx).Create(toDBContact(c)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *ContactRepository) ListByOwner(ctx context.Context, owner ulid.ULID, filters *contact.Filters, pagination *pkg.PaginationParams) ([]*contact.Contact, int64, error) {
	query := r.DB.WithContext(ctx).Model(&contactDB{}).Where("owner = ?", owner.String())
	if filters != nil && filters.Favorite != nil {
		query = query.Where("favorite = ?", *filters.Favorite)
	}

	contacts, total, err := pkg.Paginate(query.Session(&gorm.Session{}), pagination, "created_at ASC, id ASC", toDomainContact)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok {
			return nil, 0, appErr
		}
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return contacts, total, nil
}

func (r *ContactRepository) GetByIDAndOwner(ctx context.Context, id, owner ulid.ULID) (*contact.Contact, error) {
	var cdb contactDB
	err := r.DB.WithContext(ctx).
		Where("id = ? AND owner = ?", id.String(), owner.String()).
		First(&cdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrContactNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainContact(&cdb)
}

func (r *ContactRepository) Replace(ctx context.Context, id, owner ulid.ULID, fields contact.Fields) (*contact.Contact, error) {
	return r.updateAndReload(ctx, id, owner, map[string]interface{}{
		"name":     fields.Name,
		"email":    fields.Email,
		"phone":    fields.Phone,
		"favorite": fields.Favorite,
	})
}

func (r *ContactRepository) UpdateFavorite(ctx context.Context, id, owner ulid.ULID, favorite bool) (*contact.Contact, error) {
	return r.updateAndReload(ctx, id, owner, map[string]interface{}{"favorite": favorite})
}

func (r *ContactRepository) updateAndReload(ctx context.Context, id, owner ulid.ULID, fields map[string]interface{}) (*contact.Contact, error) {
	fields["updated_at"] = pkg.SetTimestamps()

	result := r.DB.WithContext(ctx).
		Model(&contactDB{}).
		Where("id = ? AND owner = ?", id.String(), owner.String()).
		Updates(fields)
	if result.Error != nil {
		return nil, appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, appErrors.ErrContactNotFound
	}
	return r.GetByIDAndOwner(ctx, id, owner)
}

func (r *ContactRepository) DeleteByIDAndOwner(ctx context.Context, id, owner ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND owner = ?", id.String(), owner.String()).
		Delete(&contactDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrContactNotFound
	}
	return nil
}
