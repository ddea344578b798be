package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/salonsys/scheduling-service/internal/models"
)

// CustomerRepository persists and retrieves customer records.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a customer record.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("repository: failed to create customer %s: %w", customer.Name, err)
	}
	return nil
}

// GetByID retrieves a customer record.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to fetch customer %s: %w", id, err)
	}
	return &customer, nil
}
