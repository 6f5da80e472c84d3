package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AgentTarik/pizzeria-api/internal/hours"
	"github.com/AgentTarik/pizzeria-api/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateHour godoc
// @Summary      Set the opening window of a weekday
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        day      path      int                true  "Weekday, 0 = Sunday"
// @Param        payload  body      UpdateHourRequest  true  "Window"
// @Success      200      {object}  hours.Entry
// @Failure      400      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /admin/hours/{day} [put]
func (h *Handlers) UpdateHour(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 0 || day > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be between 0 and 6"})
		return
	}

	var req UpdateHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	e := hours.Entry{Day: day, Open: req.Open, Close: req.Close, Enabled: *req.Enabled}
	if err := h.Hours.UpsertHour(c.Request.Context(), e); err != nil {
		h.Log.Error("failed to save operating hours", zap.Int("day", day), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save operating hours"})
		return
	}
	h.Log.Info("operating hours updated",
		zap.Int("day", day), zap.String("open", e.Open), zap.String("close", e.Close),
		zap.Bool("enabled", e.Enabled), zap.String("by", c.GetString("user_id")))
	c.JSON(http.StatusOK, e)
}

// AddClosure godoc
// @Summary      Close the store on a date
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      ClosureRequest  true  "Closure"
// @Success      201      {object}  hours.Closure
// @Failure      422      {object}  map[string]string
// @Router       /admin/closures [post]
func (h *Handlers) AddClosure(c *gin.Context) {
	var req ClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	cl := hours.Closure{Date: req.Date, Reason: req.Reason}
	if err := h.Hours.AddClosure(c.Request.Context(), cl); err != nil {
		h.Log.Error("failed to save closure", zap.String("date", cl.Date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save closure"})
		return
	}
	c.JSON(http.StatusCreated, cl)
}

// RemoveClosure godoc
// @Summary      Reopen a closed date
// @Tags         admin
// @Security     BearerAuth
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/closures/{date} [delete]
func (h *Handlers) RemoveClosure(c *gin.Context) {
	date := c.Param("date")
	err := h.Hours.RemoveClosure(c.Request.Context(), date)
	switch {
	case errors.Is(err, storage.ErrClosureNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "closure not found"})
		return
	case err != nil:
		h.Log.Error("failed to remove closure", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove closure"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSettings godoc
// @Summary      Store settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SettingsResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/settings [get]
func (h *Handlers) GetSettings(c *gin.Context) {
	st, err := h.Settings.GetSettings(c.Request.Context())
	switch {
	case errors.Is(err, storage.ErrSettingsNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "settings not found"})
		return
	case err != nil:
		h.Log.Error("failed to load settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settingsResponse(st))
}

// UpdateSettings godoc
// @Summary      Replace store settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      SettingsRequest  true  "Settings"
// @Success      200      {object}  SettingsResponse
// @Failure      422      {object}  map[string]string
// @Router       /admin/settings [put]
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	st := storage.Settings{Name: req.Name, PixKey: req.PixKey, PixName: req.PixName, IsOpen: *req.IsOpen}
	if err := h.Settings.UpdateSettings(c.Request.Context(), st); err != nil {
		h.Log.Error("failed to save settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	h.Log.Info("store settings updated", zap.Bool("is_open", st.IsOpen), zap.String("by", c.GetString("user_id")))
	c.JSON(http.StatusOK, settingsResponse(st))
}

func settingsResponse(st storage.Settings) SettingsResponse {
	return SettingsResponse{Name: st.Name, PixKey: st.PixKey, PixName: st.PixName, IsOpen: st.IsOpen}
}
