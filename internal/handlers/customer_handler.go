package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/salonsys/scheduling-service/internal/models"
	"github.com/salonsys/scheduling-service/internal/repository"
	"github.com/salonsys/scheduling-service/pkg/logger"
)

// CustomerHandler handles customer HTTP requests.
type CustomerHandler struct {
	repo   *repository.CustomerRepository
	logger *logger.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(repo *repository.CustomerRepository, logger *logger.Logger) *CustomerHandler {
	return &CustomerHandler{repo: repo, logger: logger}
}

// CreateCustomerRequest is the payload for POST /api/v1/customers.
type CreateCustomerRequest struct {
	Name              string   `json:"name" binding:"required"`
	Phone             string   `json:"phone"`
	Email             string   `json:"email"`
	Priority          int      `json:"priority"`
	PreferredStaffIDs []string `json:"preferredStaffIds"`
	Notes             string   `json:"notes"`
}

// CreateCustomer handles POST /api/v1/customers.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	priority := req.Priority
	if priority == 0 {
		priority = 2 // domain.Normal
	}

	customer := &models.Customer{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Priority:          priority,
		PreferredStaffIDs: pq.StringArray(req.PreferredStaffIDs),
		Notes:             req.Notes,
	}

	if err := h.repo.Create(c.Request.Context(), customer); err != nil {
		h.logger.Error("failed to create customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer: " + err.Error()})
		return
	}

	h.logger.Info("customer created", "customer_id", customer.ID)
	c.JSON(http.StatusCreated, customer)
}

// GetCustomer handles GET /api/v1/customers/:id.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	customer, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get customer", "customer_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get customer: " + err.Error()})
		return
	}
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}
