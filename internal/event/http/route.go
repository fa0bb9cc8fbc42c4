package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	events := rg.Group("/events", authMiddleware)
	{
		events.POST("", handler.Create)
		events.GET("", handler.List)
		events.GET("/:id", handler.Get)
		events.PATCH("/:id", handler.Update)
		events.DELETE("/:id", handler.Cancel)
	}
}
