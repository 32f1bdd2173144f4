package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	repository.Repository[Service]
	// FindByIDs returns every matching service, soft-deleted ones included.
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Service, error)
	// ListActive returns the services that are not deleted and whose name
	// matches q.
	ListActive(ctx context.Context, db *gorm.DB, q string) ([]Service, error)
}
