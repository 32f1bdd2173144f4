package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Service appends and reads the audit trail.
type Service interface {
	// Record writes entry on its own. Failures are logged and never returned
	// so the mutation being described is not affected.
	Record(ctx context.Context, entry Entry)
	// List returns the newest records of one entity first.
	List(ctx context.Context, entityType EntityType, entityID snowflake.ID, limit int) ([]Record, error)
}

var (
	ErrInvalidEntity = errors.New("invalid_entity")
	ErrInvalidLimit  = errors.New("invalid_limit")
)
