package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	repository.Repository[Payment]

	ListLogs(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) ([]Log, error)
	FindLog(ctx context.Context, db *gorm.DB, paymentID, logID snowflake.ID) (*Log, error)
	CreateLog(ctx context.Context, db *gorm.DB, log *Log) error
	DeleteLog(ctx context.Context, db *gorm.DB, logID snowflake.ID) error
	DeleteLogsByPayment(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) (int64, error)

	ListBookingPayments(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) ([]BookingPayment, error)
	CreateBookingPayment(ctx context.Context, db *gorm.DB, payment *BookingPayment) error
}
