package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placedir/backend/internal/service"
)

// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /api/users [get]
func (h *Handler) UsersList(c *gin.Context) {
	users, err := h.Users.GetUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) UserDetails(c *gin.Context) {
	user, err := h.Users.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UserCreate(c *gin.Context) {
	var input service.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "User not provided", err.Error())
		return
	}
	user, err := h.Users.CreateUser(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) UserUpdate(c *gin.Context) {
	var patch service.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "User not provided", err.Error())
		return
	}
	user, err := h.Users.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UserDelete(c *gin.Context) {
	user, err := h.Users.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
