package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	repository.Repository[Booking]
	// FindOverlapping returns the live, non-cancelled bookings whose range
	// overlaps [start, end). excludeID is skipped when non-zero.
	FindOverlapping(ctx context.Context, db *gorm.DB, start, end time.Time, excludeID snowflake.ID) ([]Booking, error)
	// LockServices serialises writers of the same services until db's
	// transaction ends. It is a no-op where the dialect has no advisory locks.
	LockServices(ctx context.Context, db *gorm.DB, serviceIDs []snowflake.ID) error
}
