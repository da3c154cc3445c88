package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrimarket/internal/errors"
	"agrimarket/internal/service"
)

// CropHandler handles crop listing endpoints.
type CropHandler struct {
	cropService service.CropService
}

// NewCropHandler creates a new crop handler.
func NewCropHandler(cropService service.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

// CreateCropRequest represents a new crop listing.
type CreateCropRequest struct {
	Crop        string   `json:"crop" validate:"required"`
	Quantity    float64  `json:"quantity" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Price       float64  `json:"price" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	Images      []string `json:"images"`
}

// UpdateCropRequest is the allow-list of mutable listing fields. Absent keys
// leave the column untouched; unknown keys are dropped at bind time.
type UpdateCropRequest struct {
	Crop        *string   `json:"crop"`
	Quantity    *float64  `json:"quantity"`
	Location    *string   `json:"location"`
	Price       *float64  `json:"price"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Available   *bool     `json:"available"`
	Unit        *string   `json:"unit"`
	Images      *[]string `json:"images"`
}

// cropID parses the :id path parameter. A non-numeric id behaves like a
// missing record.
func cropID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.ErrCropNotFound
	}
	return uint(id), nil
}

// List godoc
// @Summary List all available crops
// @Tags crops
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.Response
// @Router /crops [get]
func (h *CropHandler) List(c echo.Context) error {
	crops, err := h.cropService.ListAvailable(c.Request().Context())
	if err != nil {
		return errors.MapError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(crops),
		"data":    crops,
	})
}

// Get godoc
// @Summary Get a single crop
// @Tags crops
// @Produce json
// @Param id path int true "Crop ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Response
// @Router /crops/{id} [get]
func (h *CropHandler) Get(c echo.Context) error {
	id, err := cropID(c)
	if err != nil {
		return errors.MapError(err)
	}

	crop, err := h.cropService.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.MapError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    crop,
	})
}

// Create godoc
// @Summary Create a crop listing
// @Tags crops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCropRequest true "Crop data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /crops [post]
func (h *CropHandler) Create(c echo.Context) error {
	var req CreateCropRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewHTTP(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.MapError(errors.ErrMissingCropFields)
	}

	user := CurrentUser(c)
	crop, err := h.cropService.Create(c.Request().Context(), user.ID, service.CropCreate{
		Crop:        req.Crop,
		Quantity:    req.Quantity,
		Location:    req.Location,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Unit:        req.Unit,
		Images:      req.Images,
	})
	if err != nil {
		return errors.MapError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Crop added successfully",
		"data":    crop,
	})
}

// Update godoc
// @Summary Update an owned crop listing
// @Tags crops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Param request body UpdateCropRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /crops/{id} [put]
func (h *CropHandler) Update(c echo.Context) error {
	id, err := cropID(c)
	if err != nil {
		return errors.MapError(err)
	}

	var req UpdateCropRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewHTTP(http.StatusBadRequest, "Invalid request body")
	}

	user := CurrentUser(c)
	crop, err := h.cropService.Update(c.Request().Context(), user.ID, id, service.CropUpdate{
		Crop:        req.Crop,
		Quantity:    req.Quantity,
		Location:    req.Location,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Available:   req.Available,
		Unit:        req.Unit,
		Images:      req.Images,
	})
	if err != nil {
		if err == errors.ErrNotCropOwner {
			return errors.NewHTTP(http.StatusForbidden, "Not authorized to update this crop")
		}
		return errors.MapError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Crop updated successfully",
		"data":    crop,
	})
}

// Delete godoc
// @Summary Delete an owned crop listing
// @Tags crops
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /crops/{id} [delete]
func (h *CropHandler) Delete(c echo.Context) error {
	id, err := cropID(c)
	if err != nil {
		return errors.MapError(err)
	}

	user := CurrentUser(c)
	if err := h.cropService.Delete(c.Request().Context(), user.ID, id); err != nil {
		if err == errors.ErrNotCropOwner {
			return errors.NewHTTP(http.StatusForbidden, "Not authorized to delete this crop")
		}
		return errors.MapError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Crop deleted successfully",
	})
}

// ListMine godoc
// @Summary List the authenticated user's crops
// @Tags crops
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.Response
// @Router /crops/my-crops [get]
func (h *CropHandler) ListMine(c echo.Context) error {
	user := CurrentUser(c)
	crops, err := h.cropService.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return errors.MapError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(crops),
		"data":    crops,
	})
}

// UploadImages is a placeholder; the image pipeline is not implemented.
func (h *CropHandler) UploadImages(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Image upload not implemented yet"})
}

// DeleteImage is a placeholder; the image pipeline is not implemented.
func (h *CropHandler) DeleteImage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Image delete not implemented yet"})
}
