package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/hoteldesk/internal/audit/diff"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	"github.com/smallbiznis/hoteldesk/internal/booking/domain"
	"github.com/smallbiznis/hoteldesk/internal/events"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Update applies patch to one booking. Items are re-priced against the live
// catalog, totals are always re-derived, and availability is re-checked
// whenever the items, the range, a cancellation or a restore could create a
// double booking. One audit record describes every changed field.
func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Booking, error) {
	bookingID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	var (
		before  domain.Booking
		updated *domain.Booking
		tracker diff.Tracker
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		// Only admins see deleted bookings, so only admins can restore them.
		if current == nil || (current.Deleted() && (!patch.Restore || !isAdmin(ctx))) {
			return domain.ErrNotFound
		}
		before = *current
		next := *current

		applyFields(&next, patch)
		if patch.StartAt != nil {
			next.StartAt = patch.StartAt.UTC()
		}
		if patch.EndAt != nil {
			next.EndAt = patch.EndAt.UTC()
		}
		if !next.StartAt.Before(next.EndAt) {
			return domain.ErrInvalidTimeRange
		}

		if patch.DiscountAmount != nil {
			next.DiscountAmount = *patch.DiscountAmount
		}
		if patch.Items != nil {
			items, err := s.buildItems(ctx, tx, *patch.Items)
			if err != nil {
				return err
			}
			next.Items = datatypes.JSONSlice[domain.Item](items)
			next.Subtotal, next.Total = totals(items, next.DiscountAmount)
		} else if patch.DiscountAmount != nil {
			next.Total = pricing.Total(next.Subtotal, next.DiscountAmount)
		}
		if patch.Restore {
			next.DeletedAt = nil
		}

		if needsAvailabilityCheck(before, next, patch) {
			if err := s.ensureAvailable(ctx, tx, &next); err != nil {
				return err
			}
		}

		trackChanges(&tracker, before, next)
		if tracker.Empty() {
			updated = &before
			return nil
		}

		next.UpdatedAt = s.clock.Now()
		if err := s.repo.Save(ctx, tx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		s.recordConflict(ctx, err)
		return nil, err
	}
	if tracker.Empty() {
		return updated, nil
	}

	action := auditdomain.ActionUpdated
	eventType := events.EventBookingUpdated
	if keys := tracker.Keys(); len(keys) == 1 && keys[0] == "deletedAt" {
		action = auditdomain.ActionRestored
		eventType = events.EventBookingRestored
	}
	s.audit(ctx, updated.ID, action, tracker.Changes())
	s.metrics.RecordBookingMutation(ctx, string(action))
	s.outbox.Publish(ctx, eventType, eventPayload(updated))
	return updated, nil
}

func validatePatch(patch domain.Patch) error {
	if patch.CustomerName != nil && strings.TrimSpace(*patch.CustomerName) == "" {
		return domain.ErrInvalidCustomer
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.ErrInvalidStatus
	}
	if patch.DiscountAmount != nil && patch.DiscountAmount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if patch.Items != nil && len(*patch.Items) == 0 {
		return domain.ErrInvalidItems
	}
	return nil
}

func applyFields(b *domain.Booking, patch domain.Patch) {
	if patch.CustomerName != nil {
		b.CustomerName = strings.TrimSpace(*patch.CustomerName)
	}
	if patch.CustomerPhone != nil {
		b.CustomerPhone = strings.TrimSpace(*patch.CustomerPhone)
	}
	if patch.CustomerEmail != nil {
		b.CustomerEmail = strings.TrimSpace(*patch.CustomerEmail)
	}
	if patch.EventName != nil {
		b.EventName = strings.TrimSpace(*patch.EventName)
	}
	if patch.Notes != nil {
		b.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
}

func needsAvailabilityCheck(before, next domain.Booking, patch domain.Patch) bool {
	if next.Status == domain.StatusCancelled {
		return false
	}
	rangeChanged := !before.StartAt.Equal(next.StartAt) || !before.EndAt.Equal(next.EndAt)
	reactivated := before.Status == domain.StatusCancelled
	return patch.Items != nil || rangeChanged || reactivated || (patch.Restore && before.Deleted())
}

func trackChanges(t *diff.Tracker, before, next domain.Booking) {
	t.Track("status", before.Status, next.Status)
	t.Track("eventName", before.EventName, next.EventName)
	t.Track("customerName", before.CustomerName, next.CustomerName)
	t.Track("customerPhone", before.CustomerPhone, next.CustomerPhone)
	t.Track("customerEmail", before.CustomerEmail, next.CustomerEmail)
	t.Track("notes", before.Notes, next.Notes)
	t.Track("items", []domain.Item(before.Items), []domain.Item(next.Items))
	t.Track("startAt", before.StartAt, next.StartAt)
	t.Track("endAt", before.EndAt, next.EndAt)
	t.Track("discountAmount", before.DiscountAmount, next.DiscountAmount)
	t.Track("subtotal", before.Subtotal, next.Subtotal)
	t.Track("total", before.Total, next.Total)
	t.Track("deletedAt", before.DeletedAt, next.DeletedAt)
}
