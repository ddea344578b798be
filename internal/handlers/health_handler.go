package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/salonsys/scheduling-service/pkg/logger"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	nats   *nats.Conn
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, nats *nats.Conn, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, nats: nats, logger: logger}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "scheduling-service"})
}

// Ready handles GET /health/ready. It checks the database connection since
// that is the one dependency every request path needs.
func (h *HealthHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
