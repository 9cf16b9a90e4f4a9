package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/app/models/dto"
	"github.com/dowadream/errand-service/internal/app/services"
	"github.com/dowadream/errand-service/internal/middleware"
)

// ImageController handles image upload and metadata endpoints
type ImageController struct {
	imageService *services.ImageService
}

// NewImageController creates a new ImageController
func NewImageController(imageService *services.ImageService) *ImageController {
	return &ImageController{
		imageService: imageService,
	}
}

// UploadImage stores an image against an errand, offering or category
// @Summary Upload an image
// @Description Stores an uploaded image file and records it against its owner entity
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param imageType formData string true "Owner kind" Enums(ERRAND_REQUEST, SERVICE_OFFERING, CATEGORY)
// @Param ownerId formData int true "Owning entity ID"
// @Success 201 {object} dto.APIResponse{data=dto.ImageResponse} "Image uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid upload"
// @Failure 404 {object} dto.ErrorResponse "Owner entity not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /images [post]
func (c *ImageController) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var form struct {
		ImageType string `form:"imageType" binding:"required"`
		OwnerID   int64  `form:"ownerId" binding:"required,min=1"`
	}
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	imageType := models.ImageType(strings.ToUpper(strings.TrimSpace(form.ImageType)))

	image, err := c.imageService.UploadImage(ctx, fileHeader, imageType, form.OwnerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromImage(image)))
}

// GetImageByID retrieves image metadata
// @Summary Get image metadata by ID
// @Description Retrieves the stored metadata of an uploaded image
// @Tags images
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} dto.APIResponse{data=dto.ImageResponse} "Image retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid image ID"
// @Failure 404 {object} dto.ErrorResponse "Image not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /images/{id} [get]
func (c *ImageController) GetImageByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	image, err := c.imageService.GetImageByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromImage(image)))
}

// DeleteImage removes an image and its stored file
// @Summary Delete an image
// @Description Deletes an image's metadata and removes the stored file
// @Tags images
// @Produce json
// @Param id path int true "Image ID"
// @Success 204 "Image deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid image ID"
// @Failure 404 {object} dto.ErrorResponse "Image not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /images/{id} [delete]
func (c *ImageController) DeleteImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.imageService.DeleteImage(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
