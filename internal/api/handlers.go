package api

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/config"
	"github.com/AgentTarik/pizzeria-api/internal/hours"
	"github.com/AgentTarik/pizzeria-api/internal/payment"
	"github.com/AgentTarik/pizzeria-api/internal/pix"
	"github.com/AgentTarik/pizzeria-api/internal/storage"
	"github.com/AgentTarik/pizzeria-api/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PixGenerator produces the payment code of an order.
type PixGenerator interface {
	Generate(ctx context.Context, orderID uuid.UUID, customerName string) (payment.Result, error)
}

type Handlers struct {
	Log      *zap.Logger
	Payments PixGenerator
	Settings storage.SettingsRepo
	Hours    storage.HoursRepo
	V        *validator.Validate
	Location *time.Location
	Now      func() time.Time
	DBPing   func(ctx context.Context) error
	Kafka    config.Kafka
}

// health handler
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	db := "ok"
	if h.DBPing != nil {
		if err := h.DBPing(ctx); err != nil {
			db = "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"db":            db,
		"kafka_enabled": h.Kafka.Enabled(),
	})
}

// pix handler

// GeneratePix godoc
// @Summary      Generate the PIX code of an order
// @Description  Uses the stored order total. Falls back to a static BR Code when the provider fails.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path      string              true   "Order ID"
// @Param        payload  body      GeneratePixRequest  false  "Customer"
// @Success      200      {object}  GeneratePixResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /orders/{id}/pix [post]
func (h *Handlers) GeneratePix(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		telemetry.IncPixGenerateFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req GeneratePixRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		telemetry.IncPixGenerateFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		telemetry.IncPixGenerateFailed("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Payments.Generate(c.Request.Context(), orderID, req.CustomerName)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrOrderNotFound):
			telemetry.IncPixGenerateFailed("not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, payment.ErrInvalidAmount):
			telemetry.IncPixGenerateFailed("invalid_amount")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "order total must be positive"})
		default:
			telemetry.IncPixGenerateFailed("db")
			h.Log.Error("pix generation failed", zap.String("order_id", orderID.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate pix"})
		}
		return
	}

	if req.Amount != nil && pix.FormatAmount(res.Amount) != pix.FormatAmount(decimal.NewFromFloat(*req.Amount)) {
		h.Log.Warn("client amount ignored",
			zap.String("order_id", orderID.String()),
			zap.Float64("client_amount", *req.Amount),
			zap.String("order_total", res.Amount.StringFixed(2)))
	}

	out := GeneratePixResponse{
		PixCode:  res.Code,
		TxID:     res.TxID,
		Amount:   pix.FormatAmount(res.Amount),
		Provider: res.Provider,
		PixKey:   res.MaskedKey,
	}
	if png, err := pix.QRCodePNG(res.Code, pix.DefaultQRSize); err != nil {
		h.Log.Warn("qr code render failed", zap.Error(err))
	} else {
		out.QRCodePNG = base64.StdEncoding.EncodeToString(png)
	}
	c.JSON(http.StatusOK, out)
}

// store handlers

// StoreStatus godoc
// @Summary      Is the store taking orders now
// @Tags         store
// @Produce      json
// @Success      200  {object}  hours.Status
// @Router       /store/status [get]
func (h *Handlers) StoreStatus(c *gin.Context) {
	cal, err := h.calendar(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to load operating hours", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load operating hours"})
		return
	}

	manualOpen := true
	st, err := h.Settings.GetSettings(c.Request.Context())
	switch {
	case err == nil:
		manualOpen = st.IsOpen
	case !errors.Is(err, storage.ErrSettingsNotFound):
		h.Log.Error("failed to load settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}

	status := cal.Status(h.now(), manualOpen)
	telemetry.IncStoreStatusChecks(status.Open)
	c.JSON(http.StatusOK, status)
}

// StoreHours godoc
// @Summary      Weekly schedule and special closures
// @Tags         store
// @Produce      json
// @Success      200  {object}  HoursResponse
// @Router       /store/hours [get]
func (h *Handlers) StoreHours(c *gin.Context) {
	cal, err := h.calendar(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to load operating hours", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load operating hours"})
		return
	}
	if cal.Schedule == nil {
		cal.Schedule = hours.Schedule{}
	}
	if cal.Closures == nil {
		cal.Closures = []hours.Closure{}
	}
	c.JSON(http.StatusOK, HoursResponse{
		Schedule: cal.Schedule,
		Closures: cal.Closures,
		DayNames: hours.DayNames,
	})
}

func (h *Handlers) calendar(ctx context.Context) (hours.Calendar, error) {
	sched, err := h.Hours.ListHours(ctx)
	if err != nil {
		return hours.Calendar{}, err
	}
	closures, err := h.Hours.ListClosures(ctx)
	if err != nil {
		return hours.Calendar{}, err
	}
	return hours.Calendar{Schedule: sched, Closures: closures}, nil
}

// now is evaluated in the store's time zone so weekdays match the schedule.
func (h *Handlers) now() time.Time {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	if h.Location != nil {
		now = now.In(h.Location)
	}
	return now
}
