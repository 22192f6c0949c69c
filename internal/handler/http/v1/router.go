package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check регистрируется до middleware: он публичный
	api.GET("/system/health", h.healthCheck)

	// Аутентификация по API-ключу, если ключи заданы
	if len(h.cfg.APIKeys) > 0 {
		api.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	// Маршруты верификации посещения
	attendance := api.Group("/attendance")
	{
		attendance.POST("/submit", h.submitAttendance)
		attendance.GET("/challenge", h.getChallenge)
		attendance.GET("/queue/status", h.getQueueStatus)
		attendance.GET("/stats", h.getStats)
	}

	// Маршруты для управления зонами (CRUD)
	zones := api.Group("/zones")
	{
		zones.POST("", h.createZone)
		zones.GET("", h.listZones)
		zones.GET("/:id", h.getZone)
		zones.PUT("/:id", h.updateZone)
		zones.DELETE("/:id", h.deleteZone)
	}

	// Маршрут регистрации субъектов
	api.POST("/subjects/enroll", h.enrollSubject)
}
