package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	links := rg.Group("/links")
	{
		// Visitor-facing, no authentication.
		links.GET("/:id/slots", handler.Slots)
		links.POST("/:id/bookings", handler.Book)

		authed := links.Group("", authMiddleware)
		authed.POST("", handler.Create)
		authed.GET("", handler.List)
		authed.GET("/:id", handler.Get)
		authed.PUT("/:id", handler.Update)
		authed.DELETE("/:id", handler.Delete)
	}
}
