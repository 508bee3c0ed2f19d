package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceName = "trail-service"

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler: cache == nil, если Redis не настроен
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	res := gin.H{
		"status":    "UP",
		"service":   serviceName,
		"database":  "UP",
		"cache":     "DISABLED",
		"timestamp": time.Now().UTC(),
	}

	if err := h.db.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		res["status"] = "DOWN"
		res["database"] = "DOWN"
	}

	// кэш необязателен: без него сервис работает, только медленнее
	if h.cache != nil {
		res["cache"] = "UP"
		if err := h.cache.Ping(ctx); err != nil {
			res["cache"] = "DOWN"
		}
	}

	c.JSON(status, res)
}
