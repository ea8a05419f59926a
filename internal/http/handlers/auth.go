package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placedir/backend/internal/service"
)

// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} service.Session
// @Failure 409 {object} map[string]any
// @Router /api/auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var input service.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "User not provided", err.Error())
		return
	}
	session, err := h.Auth.SignUp(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} service.Session
// @Failure 409 {object} map[string]any
// @Router /api/auth/login [post]
func (h *Handler) LogIn(c *gin.Context) {
	var input service.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Credentials not provided", err.Error())
		return
	}
	session, err := h.Auth.LogIn(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
