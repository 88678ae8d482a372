package routes

import (
	"rallyround/internal/handlers"
	"rallyround/internal/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/labstack/echo/v4"
)

func SetupUploadRoutes(api *echo.Group) {
	log := logger.New("upload_routes")

	uploadHandler := handlers.NewUploadHandler(
		types.ObjectCannedACLAuthenticatedRead,
	)

	mediaGroup := api.Group("/media")

	mediaGroup.POST("/upload", uploadHandler.UploadMedia)

	log.Success("Upload routes initialized successfully")
}
