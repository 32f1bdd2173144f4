package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption narrows a statement before it is executed.
type QueryOption func(*gorm.DB) *gorm.DB

// Repository is the CRUD surface shared by the simple soft-deletable records
// (providers, employees, stock).
type Repository[T any] interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID, opts ...QueryOption) (*T, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Page, opts ...QueryOption) ([]T, int64, error)
	Create(ctx context.Context, db *gorm.DB, resource *T) error
	Save(ctx context.Context, db *gorm.DB, resource *T) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

type store[T any] struct{}

func ProvideStore[T any]() Repository[T] {
	return &store[T]{}
}

func (r *store[T]) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID, opts ...QueryOption) (*T, error) {
	var result T
	stmt := apply(db.WithContext(ctx).Model(new(T)).Where("id = ?", id), opts)
	if err := stmt.Take(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) List(ctx context.Context, db *gorm.DB, page pagination.Page, opts ...QueryOption) ([]T, int64, error) {
	var total int64
	if err := apply(db.WithContext(ctx).Model(new(T)), opts).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	err := apply(db.WithContext(ctx).Model(new(T)), opts).
		Order("created_at desc, id desc").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *store[T]) Create(ctx context.Context, db *gorm.DB, resource *T) error {
	return db.WithContext(ctx).Create(resource).Error
}

func (r *store[T]) Save(ctx context.Context, db *gorm.DB, resource *T) error {
	return db.WithContext(ctx).Save(resource).Error
}

func (r *store[T]) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	var dummy T
	return db.WithContext(ctx).Where("id = ?", id).Delete(&dummy).Error
}

func apply(stmt *gorm.DB, opts []QueryOption) *gorm.DB {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		stmt = opt(stmt)
	}
	return stmt
}

// NotDeleted hides soft-deleted rows.
func NotDeleted() QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// Search matches q case-insensitively against any of the given columns.
func Search(q string, columns ...string) QueryOption {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" || len(columns) == 0 {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		clauses := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, column := range columns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, "%"+q+"%")
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// Where adds an arbitrary condition.
func Where(query string, args ...any) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}
