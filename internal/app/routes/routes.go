package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dowadream/errand-service/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	errandController *controllers.ErrandController,
	offeringController *controllers.ServiceOfferingController,
	categoryController *controllers.CategoryController,
	reviewController *controllers.ReviewController,
	imageController *controllers.ImageController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	errands := v1.Group("/errands")
	{
		errands.POST("", errandController.CreateErrand)
		errands.GET("", errandController.GetAllErrands)
		errands.GET("/filter", errandController.GetFilteredErrands)
		errands.GET("/category/:categoryId", errandController.GetErrandsByCategory)
		errands.GET("/:id", errandController.GetErrandByID)
		errands.PUT("/:id", errandController.UpdateErrand)
		errands.DELETE("/:id", errandController.DeleteErrand)
		errands.POST("/:id/accept", errandController.AcceptErrand)
		errands.PATCH("/:id/status", errandController.UpdateErrandStatus)
	}

	offerings := v1.Group("/service-offerings")
	{
		offerings.POST("", offeringController.CreateOffering)
		offerings.GET("", offeringController.GetAllOfferings)
		offerings.GET("/filter", offeringController.GetFilteredOfferings)
		offerings.GET("/category/:categoryId", offeringController.GetOfferingsByCategory)
		offerings.GET("/:id", offeringController.GetOfferingByID)
		offerings.PUT("/:id", offeringController.UpdateOffering)
		offerings.DELETE("/:id", offeringController.DeleteOffering)
		offerings.POST("/:id/complete-task", offeringController.CompleteTask)
	}

	categories := v1.Group("/categories")
	{
		categories.POST("", categoryController.CreateCategory)
		categories.GET("", categoryController.GetAllCategories)
		categories.GET("/tree", categoryController.GetCategoryTree)
		categories.GET("/:id", categoryController.GetCategoryByID)
		categories.PUT("/:id", categoryController.UpdateCategory)
		categories.DELETE("/:id", categoryController.DeleteCategory)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.POST("", reviewController.CreateReview)
		reviews.GET("/errand/:errandId", reviewController.GetReviewsByErrand)
		reviews.GET("/service-offering/:serviceOfferingId", reviewController.GetReviewsByServiceOffering)
		reviews.GET("/:id", reviewController.GetReviewByID)
		reviews.PUT("/:id", reviewController.UpdateReview)
		reviews.DELETE("/:id", reviewController.DeleteReview)
	}

	images := v1.Group("/images")
	{
		images.POST("", imageController.UploadImage)
		images.GET("/:id", imageController.GetImageByID)
		images.DELETE("/:id", imageController.DeleteImage)
	}
}
