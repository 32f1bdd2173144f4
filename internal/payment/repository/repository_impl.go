package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/payment/domain"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	repository.Repository[domain.Payment]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.Payment]()}
}

func (r *repo) ListLogs(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) ([]domain.Log, error) {
	var logs []domain.Log
	err := db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("paid_at desc, id desc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *repo) FindLog(ctx context.Context, db *gorm.DB, paymentID, logID snowflake.ID) (*domain.Log, error) {
	var log domain.Log
	err := db.WithContext(ctx).
		Where("id = ? AND payment_id = ?", logID, paymentID).
		Take(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *repo) CreateLog(ctx context.Context, db *gorm.DB, log *domain.Log) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *repo) DeleteLog(ctx context.Context, db *gorm.DB, logID snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", logID).Delete(&domain.Log{}).Error
}

func (r *repo) DeleteLogsByPayment(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Where("payment_id = ?", paymentID).Delete(&domain.Log{})
	return res.RowsAffected, res.Error
}

func (r *repo) ListBookingPayments(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) ([]domain.BookingPayment, error) {
	var payments []domain.BookingPayment
	err := db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("paid_at asc, id asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) CreateBookingPayment(ctx context.Context, db *gorm.DB, payment *domain.BookingPayment) error {
	return db.WithContext(ctx).Create(payment).Error
}
