package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	auditcontext "github.com/smallbiznis/hoteldesk/internal/auditcontext"
	bookingdomain "github.com/smallbiznis/hoteldesk/internal/booking/domain"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/internal/events"
	"github.com/smallbiznis/hoteldesk/internal/media"
	obsmetrics "github.com/smallbiznis/hoteldesk/internal/observability/metrics"
	"github.com/smallbiznis/hoteldesk/internal/payment/domain"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	BookingRepo bookingdomain.Repository
	Images      media.ImageStore
	Clock       clock.Clock
	Settings    *config.SettingsHolder `optional:"true"`
	Outbox      *events.Outbox         `optional:"true"`
	Metrics     *obsmetrics.Metrics    `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	bookingRepo bookingdomain.Repository
	images      media.ImageStore
	clock       clock.Clock
	settings    *config.SettingsHolder
	outbox      *events.Outbox
	metrics     *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		bookingRepo: p.BookingRepo,
		images:      p.Images,
		clock:       p.Clock,
		settings:    p.Settings,
		outbox:      p.Outbox,
		metrics:     p.Metrics,
	}
}

func (s *Service) CreatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error) {
	now := s.clock.Now()
	payment := &domain.Payment{
		ID:          s.genID.Generate(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Kind:        req.Kind,
		Frequency:   req.Frequency,
		Direction:   req.Direction,
		Amount:      req.Amount,
		StartDate:   req.StartDate.UTC(),
		EndDate:     utcPtr(req.EndDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validatePayment(payment); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, s.db, payment); err != nil {
		return nil, err
	}
	s.log.Info("payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("kind", string(payment.Kind)),
	)
	return payment, nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	paymentID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.findPayment(ctx, s.db, paymentID)
}

func (s *Service) ListPayments(ctx context.Context, req domain.ListPaymentsRequest) (pagination.Result[domain.Payment], error) {
	limits := s.settings.Get().Pagination
	page := req.Page.Normalize(limits.DefaultLimit, limits.MaxLimit)

	if req.Kind != "" && !req.Kind.Valid() {
		return pagination.Result[domain.Payment]{}, domain.ErrInvalidKind
	}
	if req.Direction != "" && !req.Direction.Valid() {
		return pagination.Result[domain.Payment]{}, domain.ErrInvalidDirection
	}

	opts := []repository.QueryOption{repository.Search(req.Q, "name", "description")}
	if req.Kind != "" {
		opts = append(opts, repository.Where("kind = ?", req.Kind))
	}
	if req.Direction != "" {
		opts = append(opts, repository.Where("direction = ?", req.Direction))
	}

	items, total, err := s.repo.List(ctx, s.db, page, opts...)
	if err != nil {
		return pagination.Result[domain.Payment]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *Service) UpdatePayment(ctx context.Context, id string, patch domain.PaymentPatch) (*domain.Payment, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		payment.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		payment.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Kind != nil {
		payment.Kind = *patch.Kind
		if payment.Kind == domain.KindOneTime && patch.Frequency == nil {
			payment.Frequency = ""
		}
	}
	if patch.Frequency != nil {
		payment.Frequency = *patch.Frequency
	}
	if patch.Direction != nil {
		payment.Direction = *patch.Direction
	}
	if patch.Amount != nil {
		payment.Amount = *patch.Amount
	}
	if patch.StartDate != nil {
		payment.StartDate = patch.StartDate.UTC()
	}
	if patch.ClearEndDate {
		payment.EndDate = nil
	} else if patch.EndDate != nil {
		payment.EndDate = utcPtr(patch.EndDate)
	}
	if err := validatePayment(payment); err != nil {
		return nil, err
	}

	payment.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) DeletePayment(ctx context.Context, id string) error {
	paymentID, err := parseID(id)
	if err != nil {
		return err
	}

	var removedLogs int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.findPayment(ctx, tx, paymentID); err != nil {
			return err
		}
		removedLogs, err = s.repo.DeleteLogsByPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, paymentID)
	})
	if err != nil {
		return err
	}

	s.log.Info("payment deleted",
		zap.String("payment_id", paymentID.String()),
		zap.Int64("logs_removed", removedLogs),
	)
	s.outbox.Publish(ctx, events.EventPaymentDeleted, map[string]any{
		"paymentId":   paymentID.String(),
		"logsRemoved": removedLogs,
	})
	return nil
}

func (s *Service) ListLogs(ctx context.Context, paymentID string) ([]domain.Log, error) {
	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.ListLogs(ctx, s.db, payment.ID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.Log{}
	}
	return logs, nil
}

func (s *Service) CreateLog(ctx context.Context, paymentID string, req domain.LogRequest) (*domain.Log, error) {
	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if !req.Type.Valid() {
		return nil, domain.ErrInvalidLogType
	}
	if !req.Mode.Valid() {
		return nil, domain.ErrInvalidMode
	}

	now := s.clock.Now()
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	entry := &domain.Log{
		ID:        s.genID.Generate(),
		PaymentID: payment.ID,
		Amount:    req.Amount,
		PaidAt:    paidAt.UTC(),
		Type:      req.Type,
		Mode:      req.Mode,
		Reference: strings.TrimSpace(req.Reference),
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
	}
	if err := s.repo.CreateLog(ctx, s.db, entry); err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(ctx, string(entry.Type))
	s.outbox.Publish(ctx, events.EventPaymentLogRecorded, map[string]any{
		"paymentId": payment.ID.String(),
		"logId":     entry.ID.String(),
		"type":      string(entry.Type),
		"amount":    entry.Amount.String(),
	})
	return entry, nil
}

func (s *Service) DeleteLog(ctx context.Context, paymentID, logID string) error {
	pid, err := parseID(paymentID)
	if err != nil {
		return err
	}
	lid, err := parseID(logID)
	if err != nil {
		return err
	}
	entry, err := s.repo.FindLog(ctx, s.db, pid, lid)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	return s.repo.DeleteLog(ctx, s.db, entry.ID)
}

func (s *Service) ListBookingPayments(ctx context.Context, bookingID string) (*domain.BookingPaymentSummary, error) {
	booking, err := s.activeBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListBookingPayments(ctx, s.db, booking.ID)
	if err != nil {
		return nil, err
	}
	return summarize(booking.Total, items), nil
}

func (s *Service) CreateBookingPayment(ctx context.Context, bookingID string, req domain.BookingPaymentRequest) (*domain.BookingPayment, error) {
	booking, err := s.activeBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, domain.ErrInvalidPaymentType
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if !req.Mode.Valid() {
		return nil, domain.ErrInvalidMode
	}
	if len(req.Images) == 0 {
		return nil, domain.ErrMissingProof
	}

	urls, err := s.images.StoreImages(ctx, "payments/"+booking.ID.String(), req.Images)
	if err != nil {
		return nil, err
	}

	var createdBy string
	if actor, ok := auditcontext.ActorFromContext(ctx); ok {
		createdBy = actor.ID
	}
	now := s.clock.Now()
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	payment := &domain.BookingPayment{
		ID:        s.genID.Generate(),
		BookingID: booking.ID,
		Type:      req.Type,
		Amount:    req.Amount,
		Mode:      req.Mode,
		PaidAt:    paidAt.UTC(),
		Notes:     strings.TrimSpace(req.Notes),
		Images:    domain.ImageList(urls),
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	if err := s.repo.CreateBookingPayment(ctx, s.db, payment); err != nil {
		s.log.Warn("booking payment not saved, removing proof images",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err),
		)
		s.images.RemoveImages(ctx, urls)
		return nil, err
	}

	s.metrics.RecordPayment(ctx, string(payment.Type))
	s.outbox.Publish(ctx, events.EventBookingPaymentRecorded, map[string]any{
		"bookingId": booking.ID.String(),
		"paymentId": payment.ID.String(),
		"type":      string(payment.Type),
		"amount":    payment.Amount.String(),
	})
	return payment, nil
}

func (s *Service) findPayment(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}

func (s *Service) activeBooking(ctx context.Context, id string) (*bookingdomain.Booking, error) {
	bookingID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.FindByID(ctx, s.db, bookingID, repository.NotDeleted())
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

func validatePayment(p *domain.Payment) error {
	if p.Name == "" {
		return domain.ErrInvalidName
	}
	if !p.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	switch p.Kind {
	case domain.KindRecurring:
		if !p.Frequency.Valid() {
			return domain.ErrInvalidFrequency
		}
	case domain.KindOneTime:
		if p.Frequency != "" {
			return domain.ErrInvalidFrequency
		}
	}
	if !p.Direction.Valid() {
		return domain.ErrInvalidDirection
	}
	if p.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if p.StartDate.IsZero() {
		return domain.ErrInvalidStartDate
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// summarize computes balance = total - paid + refunded.
func summarize(total decimal.Decimal, items []domain.BookingPayment) *domain.BookingPaymentSummary {
	if items == nil {
		items = []domain.BookingPayment{}
	}
	paid, refunded := decimal.Zero, decimal.Zero
	for _, item := range items {
		switch item.Type {
		case domain.BookingPaymentReceipt:
			paid = paid.Add(item.Amount)
		case domain.BookingPaymentRefund:
			refunded = refunded.Add(item.Amount)
		}
	}
	return &domain.BookingPaymentSummary{
		Items:    items,
		Total:    total,
		Paid:     paid,
		Refunded: refunded,
		Balance:  total.Sub(paid).Add(refunded),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}
