package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "id"
)

// PageRequest selects one page of a list query. Zero values mean
// page 0, DefaultPageSize rows, ordered by id ascending.
type PageRequest struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder SortOrder
}

// SortColumns maps the public sort keys accepted by a query to table columns.
type SortColumns map[string]string

// Page is one slice of a list query together with totals.
type Page[T any] struct {
	Content    []T   `json:"content"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Normalize fills defaults and validates sort parameters against columns.
func (p PageRequest) Normalize(columns SortColumns) (PageRequest, error) {
	if p.Page < 0 {
		return p, entities.NewInvalidFieldError("page")
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if _, ok := columns[p.SortBy]; !ok {
		return p, entities.NewInvalidFieldError("sortBy")
	}

	switch SortOrder(strings.ToLower(string(p.SortOrder))) {
	case "", SortAsc:
		p.SortOrder = SortAsc
	case SortDesc:
		p.SortOrder = SortDesc
	default:
		return p, entities.NewInvalidFieldError("sortOrder")
	}
	return p, nil
}

// Paginate counts the rows matched by query and loads the requested page into a Page.
// Scopes are applied to the row query only, never to the count.
func Paginate[T any](query *gorm.DB, req PageRequest, columns SortColumns, scopes ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	req, err := req.Normalize(columns)
	if err != nil {
		return Page[T]{}, err
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	items := make([]T, 0, req.PageSize)
	order := fmt.Sprintf("%s %s", columns[req.SortBy], strings.ToUpper(string(req.SortOrder)))
	err = query.Session(&gorm.Session{}).
		Scopes(scopes...).
		Order(order).
		Limit(req.PageSize).
		Offset(req.Page * req.PageSize).
		Find(&items).Error
	if err != nil {
		return Page[T]{}, err
	}

	totalPages := int((total + int64(req.PageSize) - 1) / int64(req.PageSize))
	return Page[T]{
		Content:    items,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// TranslateError maps gorm failures onto the domain error taxonomy.
func TranslateError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entities.NewNotFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", strings.ToLower(resource), entities.ErrDuplicate)
	default:
		return err
	}
}
