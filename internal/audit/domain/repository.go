package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *Record) error
	List(ctx context.Context, db *gorm.DB, entityType EntityType, entityID snowflake.ID, limit int) ([]Record, error)
}
