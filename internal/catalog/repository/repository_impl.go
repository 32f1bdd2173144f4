package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	repository.Repository[domain.Service]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.Service]()}
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var services []domain.Service
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, q string) ([]domain.Service, error) {
	stmt := db.WithContext(ctx).Model(&domain.Service{})
	for _, opt := range []repository.QueryOption{repository.NotDeleted(), repository.Search(q, "name")} {
		if opt != nil {
			stmt = opt(stmt)
		}
	}
	var services []domain.Service
	if err := stmt.Order("name asc, id asc").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
