package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	authdomain "github.com/smallbiznis/hoteldesk/internal/auth/domain"
	bookingdomain "github.com/smallbiznis/hoteldesk/internal/booking/domain"
	catalogdomain "github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	companydomain "github.com/smallbiznis/hoteldesk/internal/company/domain"
	employeedomain "github.com/smallbiznis/hoteldesk/internal/employee/domain"
	paymentdomain "github.com/smallbiznis/hoteldesk/internal/payment/domain"
	providerdomain "github.com/smallbiznis/hoteldesk/internal/provider/domain"
	stockdomain "github.com/smallbiznis/hoteldesk/internal/stock/domain"
	"github.com/smallbiznis/hoteldesk/pkg/db"
	"gorm.io/gorm"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Models lists every table owned by the application, in creation order.
func Models() []any {
	return []any{
		&authdomain.User{},
		&catalogdomain.Service{},
		&bookingdomain.Booking{},
		&auditdomain.Record{},
		&paymentdomain.Payment{},
		&paymentdomain.Log{},
		&paymentdomain.BookingPayment{},
		&stockdomain.Stock{},
		&providerdomain.Provider{},
		&employeedomain.Employee{},
		&companydomain.Profile{},
	}
}

// Migrate applies the embedded SQL migrations on PostgreSQL and falls back to
// gorm AutoMigrate on the other dialects.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	if !db.IsPostgres(conn) {
		if err := conn.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Closing the migrator would close the shared *sql.DB.

	return nil
}
