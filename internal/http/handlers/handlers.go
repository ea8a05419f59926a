package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/placedir/backend/internal/db"
	"github.com/placedir/backend/internal/service"
)

type Handler struct {
	Store     *db.Store
	Places    *service.PlaceService
	Sections  *service.SectionService
	Users     *service.UserService
	Auth      *service.AuthService
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// writeServiceError maps classified service errors onto the envelope and
// everything else onto a 500.
func writeServiceError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		writeError(c, svcErr.Status, svcErr.Code, svcErr.Message, nil)
		return
	}
	writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed", err.Error())
}
