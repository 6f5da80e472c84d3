package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/storage"
	"github.com/AgentTarik/pizzeria-api/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer abstracts JWT emission.
type TokenIssuer interface {
	Issue(userID, role string) (string, time.Time, error)
}

// AuthHandlers handles staff login.
type AuthHandlers struct {
	Log    *zap.Logger
	Staff  storage.StaffRepo
	V      *validator.Validate
	Tokens TokenIssuer
	Now    func() time.Time
}

// Login godoc
// @Summary      Staff login with email and password
// @Description  Returns a short-lived JWT access token carrying the staff role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      LoginRequest  true  "Login payload"
// @Success      200      {object}  map[string]any
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := h.Staff.GetStaffByEmail(c.Request.Context(), email)
	if err != nil {
		if !errors.Is(err, storage.ErrStaffNotFound) {
			telemetry.IncStaffLogins("error")
			h.Log.Error("staff lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		telemetry.IncStaffLogins("invalid")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		telemetry.IncStaffLogins("invalid")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := h.Tokens.Issue(u.ID.String(), u.Role)
	if err != nil {
		h.Log.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	telemetry.IncStaffLogins("ok")
	h.Log.Info("staff login", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(exp.Sub(now).Seconds()),
		"user": gin.H{
			"id":    u.ID.String(),
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		},
	})
}
