package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Публичные маршруты аутентификации
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}

	authorized := api.Group("")
	authorized.Use(SessionAuthMiddleware(h.userService, h.logger))
	{
		authorized.POST("/auth/logout", h.logout)

		// Профиль текущего пользователя
		authorized.GET("/users/me", h.getProfile)
		authorized.PUT("/users/me", h.updateProfile)

		// Маршруты для управления инцидентами (CRUD)
		incidents := authorized.Group("/incidents")
		{
			incidents.POST("", h.createIncident)
			incidents.GET("", h.listIncidents)
			incidents.GET("/search", h.searchIncident)
			incidents.GET("/stats", h.getStats)
			incidents.GET("/:id", h.getIncident)
			incidents.PUT("/:id", h.updateIncident)
			incidents.DELETE("/:id", h.deleteIncident)
			incidents.POST("/:id/close", h.closeIncident)
		}
	}

	// Маршрут разрешения почтового индекса (без аутентификации)
	api.GET("/pincode/:pincode", h.lookupPincode)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
