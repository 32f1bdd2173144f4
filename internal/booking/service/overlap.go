package service

import (
	"context"
	"slices"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/booking/domain"
	catalogdomain "github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	"gorm.io/gorm"
)

// ensureAvailable fails with a ConflictError when another live booking holds
// one of b's exclusive services during b's range. Cancelled bookings never
// hold a service. Must run inside the transaction that writes b.
func (s *Service) ensureAvailable(ctx context.Context, tx *gorm.DB, b *domain.Booking) error {
	if b.Status == domain.StatusCancelled {
		return nil
	}
	ids := domain.ExclusiveServiceIDs(b.Items)
	if len(ids) == 0 {
		return nil
	}
	if err := s.repo.LockServices(ctx, tx, ids); err != nil {
		return err
	}

	conflicting, err := s.conflicts(ctx, tx, b.StartAt, b.EndAt, ids, b.ID)
	if err != nil {
		return err
	}
	if len(conflicting) > 0 {
		return &domain.ConflictError{ServiceIDs: conflicting}
	}
	return nil
}

// conflicts returns the subset of serviceIDs already booked in [start, end),
// ignoring the booking excludeID.
func (s *Service) conflicts(ctx context.Context, db *gorm.DB, start, end time.Time, serviceIDs []snowflake.ID, excludeID snowflake.ID) ([]snowflake.ID, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	bookings, err := s.repo.FindOverlapping(ctx, db, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	busy := busyServices(bookings, start, end)

	var out []snowflake.ID
	for _, id := range serviceIDs {
		if _, ok := busy[id]; ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// busyServices collects the services referenced by bookings that overlap
// [start, end). The range is re-checked here so the result does not depend on
// how the store compares timestamps.
func busyServices(bookings []domain.Booking, start, end time.Time) map[snowflake.ID]struct{} {
	busy := make(map[snowflake.ID]struct{})
	for _, b := range bookings {
		if b.Status == domain.StatusCancelled || b.Deleted() {
			continue
		}
		if !domain.Overlaps(start, end, b.StartAt, b.EndAt) {
			continue
		}
		for _, item := range b.Items {
			busy[item.ServiceID] = struct{}{}
		}
	}
	return busy
}

func (s *Service) Availability(ctx context.Context, req domain.AvailabilityRequest) (*domain.Availability, error) {
	if !req.StartAt.Before(req.EndAt) {
		return nil, domain.ErrInvalidTimeRange
	}

	services, err := s.serviceRepo.ListActive(ctx, s.db, req.Q)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.FindOverlapping(ctx, s.db, req.StartAt, req.EndAt, 0)
	if err != nil {
		return nil, err
	}
	busy := busyServices(bookings, req.StartAt, req.EndAt)

	result := &domain.Availability{
		NonOverlapServices:     []catalogdomain.Service{},
		OverlapAllowedServices: []catalogdomain.Service{},
	}
	for _, svc := range services {
		if svc.AllowOverlap {
			result.OverlapAllowedServices = append(result.OverlapAllowedServices, svc)
			continue
		}
		if _, taken := busy[svc.ID]; !taken {
			result.NonOverlapServices = append(result.NonOverlapServices, svc)
		}
	}
	return result, nil
}
