package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/placedir/backend/internal/db"
	"github.com/placedir/backend/internal/models"
	"github.com/placedir/backend/internal/service"
)

// @Summary List places
// @Tags places
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {object} service.PlacePage
// @Router /api/places [get]
func (h *Handler) PlacesList(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid skip parameter", err.Error())
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid limit parameter", err.Error())
		return
	}

	page, err := h.Places.GetPlaces(c.Request.Context(), db.PlaceFilter{}, db.Page{Skip: skip, Limit: limit})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Place by id
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} models.Place
// @Failure 404 {object} map[string]any
// @Router /api/places/{id} [get]
func (h *Handler) PlaceDetails(c *gin.Context) {
	place, err := h.Places.GetPlaceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

// @Summary Create place
// @Tags places
// @Accept json
// @Produce json
// @Success 201 {object} models.Place
// @Failure 400 {object} map[string]any
// @Router /api/places [post]
func (h *Handler) PlaceCreate(c *gin.Context) {
	var input service.PlaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Place not provided", err.Error())
		return
	}
	place, err := h.Places.CreatePlace(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, place)
}

type placeUpdateRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=4,max=16"`
	Category  *string  `json:"category"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
	Safe      *bool    `json:"safe"`
}

// @Summary Update place
// @Tags places
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} models.Place
// @Router /api/places/{id} [put]
func (h *Handler) PlaceUpdate(c *gin.Context) {
	var req placeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Place not provided", err.Error())
		return
	}

	patch := db.PlacePatch{Name: req.Name, Category: req.Category, Safe: req.Safe}
	if req.Longitude != nil && req.Latitude != nil {
		// Client sends {longitude, latitude}; the store keeps lon/lat order.
		patch.Location = &models.LatLng{Longitude: *req.Longitude, Latitude: *req.Latitude}
	}

	place, err := h.Places.UpdatePlace(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

// @Summary Delete place
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} models.Place
// @Router /api/places/{id} [delete]
func (h *Handler) PlaceDelete(c *gin.Context) {
	place, err := h.Places.DeletePlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
	Skip  int    `json:"skip" binding:"min=0"`
	Limit int    `json:"limit" binding:"min=0"`
}

// @Summary Search places
// @Tags places
// @Accept json
// @Produce json
// @Success 200 {array} models.Place
// @Router /api/places/search [post]
func (h *Handler) PlacesSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Search query not provided", err.Error())
		return
	}
	places, err := h.Places.SearchPlaces(c.Request.Context(), req.Query, req.Skip, req.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

// A pointer so that a box at the zero meridian or equator still counts
// as present.
type locateRequest struct {
	Bounds *models.Bounds `json:"bounds" binding:"required"`
}

// @Summary Locate places inside a bounding box
// @Tags places
// @Accept json
// @Produce json
// @Success 200 {array} models.Place
// @Router /api/places/locate [post]
func (h *Handler) PlacesLocate(c *gin.Context) {
	var req locateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Bounds not provided", err.Error())
		return
	}
	if err := h.Validator.Struct(req.Bounds); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	places, err := h.Places.LocatePlaces(c.Request.Context(), *req.Bounds)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

// @Summary Sections of a place
// @Tags sections
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {array} models.Section
// @Router /api/places/{id}/sections [get]
func (h *Handler) PlaceSections(c *gin.Context) {
	sections, err := h.Sections.GetSectionsForPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

// @Summary Create section
// @Tags sections
// @Accept json
// @Produce json
// @Success 201 {object} models.Section
// @Router /api/sections [post]
func (h *Handler) SectionCreate(c *gin.Context) {
	var input service.SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Section not provided", err.Error())
		return
	}
	section, err := h.Sections.CreateSection(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// @Summary Create reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Success 201 {object} models.Reservation
// @Router /api/reservations [post]
func (h *Handler) ReservationCreate(c *gin.Context) {
	var input service.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Reservation not provided", err.Error())
		return
	}
	reservation, err := h.Sections.CreateReservation(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}
