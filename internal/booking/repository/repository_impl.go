package repository

import (
	"context"
	"slices"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/booking/domain"
	dbpkg "github.com/smallbiznis/hoteldesk/pkg/db"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	repository.Repository[domain.Booking]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.Booking]()}
}

func (r *repo) FindOverlapping(ctx context.Context, db *gorm.DB, start, end time.Time, excludeID snowflake.ID) ([]domain.Booking, error) {
	stmt := db.WithContext(ctx).Model(&domain.Booking{}).
		Where("deleted_at IS NULL").
		Where("status <> ?", domain.StatusCancelled).
		Where("start_at < ? AND end_at > ?", end.UTC(), start.UTC())
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var bookings []domain.Booking
	if err := stmt.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repo) LockServices(ctx context.Context, db *gorm.DB, serviceIDs []snowflake.ID) error {
	if len(serviceIDs) == 0 || !dbpkg.IsPostgres(db) {
		return nil
	}
	ids := slices.Clone(serviceIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		if err := db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", id.Int64()).Error; err != nil {
			return err
		}
	}
	return nil
}
