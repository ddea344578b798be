package domain

import "fmt"

// Customer is the person a booking is made for.
type Customer struct {
	ID                 string
	Name               string
	Phone              string
	Email              string
	Priority           Priority
	PreferredStaffIDs  []string
	Notes              string
}

func NewCustomer(id, name, phone, email string, priority Priority, preferredStaffIDs []string, notes string) (Customer, error) {
	if id == "" {
		return Customer{}, fmt.Errorf("domain: customer id must not be empty")
	}
	if !priority.Valid() {
		return Customer{}, fmt.Errorf("domain: invalid priority %d", priority)
	}
	// Never share list identity with the caller's slice.
	ids := make([]string, len(preferredStaffIDs))
	copy(ids, preferredStaffIDs)
	return Customer{
		ID:                id,
		Name:              name,
		Phone:             phone,
		Email:             email,
		Priority:          priority,
		PreferredStaffIDs: ids,
		Notes:             notes,
	}, nil
}

// Prefers reports whether staffID is among the customer's preferred staff.
func (c Customer) Prefers(staffID string) bool {
	for _, id := range c.PreferredStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
