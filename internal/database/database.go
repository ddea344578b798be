// Package database wires up the collaborator persistence/cache connections
// the optimizer core never touches directly: Postgres for
// the staff/booking/customer registries, Redis for the schedule cache.
package database

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salonsys/scheduling-service/internal/config"
	"github.com/salonsys/scheduling-service/internal/models"
)

// Connect opens the Postgres connection backing the staff/booking/customer
// registries.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: failed to connect: %w", err)
	}
	return db, nil
}

// Migrate auto-migrates the persistence schema in dependency order: staff
// and customers have no foreign keys into bookings, so they go first.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("database: failed to create uuid extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.Staff{},
		&models.Skill{},
		&models.Availability{},
		&models.Customer{},
		&models.Booking{},
		&models.BookingService{},
	)
	if err != nil {
		return fmt.Errorf("database: failed to run auto-migrations: %w", err)
	}

	return createIndexes(db)
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_bookings_status_start ON bookings(status, scheduled_start)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_staff_skills_staff ON staff_skills(staff_id)",
		"CREATE INDEX IF NOT EXISTS idx_staff_availability_staff_day ON staff_availability(staff_id, day_of_week)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("database: failed to create index: %w", err)
		}
	}
	return nil
}

// ConnectRedis opens the Redis client backing the schedule cache.
func ConnectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("database: failed to parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}
