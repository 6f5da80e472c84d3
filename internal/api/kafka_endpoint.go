package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/kafka"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultEventsLimit   = 10
	maxEventsLimit       = 1000
	defaultEventsTimeout = 1500 * time.Millisecond
	minEventsTimeout     = 100 * time.Millisecond
)

// PaymentEvents godoc
// @Summary      Read recent payment events from Kafka
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit       query     int  false  "Max messages (1-1000)"
// @Param        timeout_ms  query     int  false  "Read deadline in milliseconds"
// @Success      200         {object}  map[string]any
// @Failure      503         {object}  map[string]string
// @Failure      504         {object}  map[string]any
// @Router       /admin/payment-events [get]
func (h *Handlers) PaymentEvents(c *gin.Context) {
	if !h.Kafka.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Kafka not configured"})
		return
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 || limit > maxEventsLimit {
		limit = defaultEventsLimit
	}
	timeout := defaultEventsTimeout
	if ms, err := strconv.Atoi(c.Query("timeout_ms")); err == nil {
		timeout = max(time.Duration(ms)*time.Millisecond, minEventsTimeout)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	events, err := kafka.ReadFromStart(ctx, h.Kafka.Brokers, h.Kafka.Topic, limit)
	if err != nil {
		h.Log.Warn("payment events read failed", zap.String("topic", h.Kafka.Topic), zap.Error(err))
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"topic":    h.Kafka.Topic,
			"received": len(events),
			"error":    err.Error(),
			"events":   events,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": h.Kafka.Topic, "count": len(events), "events": events})
}
