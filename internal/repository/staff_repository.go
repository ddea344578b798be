package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/salonsys/scheduling-service/internal/models"
)

// StaffRepository persists and retrieves staff records.
type StaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository.
func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create inserts a staff record along with its skills and availability.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if err := r.db.WithContext(ctx).Create(staff).Error; err != nil {
		return fmt.Errorf("repository: failed to create staff %s: %w", staff.Name, err)
	}
	return nil
}

// GetByID retrieves a staff record with its skills and availability preloaded.
func (r *StaffRepository) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Preload("Availability").
		First(&staff, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to fetch staff %s: %w", id, err)
	}
	return &staff, nil
}

// ListActive retrieves every staff record with its skills and availability
// preloaded. The optimizer only ever sees the full roster for a given day;
// scoping to "active" is left to the caller via soft-delete.
func (r *StaffRepository) ListActive(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Preload("Availability").
		Find(&staff).Error
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list staff: %w", err)
	}
	return staff, nil
}
