package pkg

import (
	"strconv"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type PaginationParams struct {
	Page  int
	Limit int
}

// ParsePagination reads page/limit query values. It returns nil when neither
// is given, meaning no paging. Missing or non-positive values fall back to
// defaults.
func ParsePagination(page, limit string) *PaginationParams {
	if page == "" && limit == "" {
		return nil
	}
	p := &PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	p.Normalize()
	return p
}

func (p *PaginationParams) Offset() int {
	if p == nil {
		return 0
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return (p.Page - 1) * p.Limit
}

func (p *PaginationParams) Normalize() {
	if p == nil {
		return
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

// Paginate counts the rows matched by query, then loads one page of them and
// converts each row with converter. A nil pagination loads every row.
func Paginate[T any, D any](
	query *gorm.DB,
	pagination *PaginationParams,
	orderBy string,
	converter func(*D) (*T, error),
) ([]*T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := query.Order(orderBy)
	if pagination != nil {
		pagination.Normalize()
		page = page.Offset(pagination.Offset()).Limit(pagination.Limit)
	}

	var rows []D
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*T, 0, len(rows))
	for i := range rows {
		item, err := converter(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}

	return out, total, nil
}
