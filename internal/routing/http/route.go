package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	forms := rg.Group("/forms")
	{
		// Visitors submit answers without authenticating.
		forms.POST("/:id/submissions", handler.Submit)

		authed := forms.Group("", authMiddleware)
		authed.POST("", handler.Create)
		authed.GET("", handler.List)
		authed.GET("/:id", handler.Get)
		authed.PUT("/:id", handler.Update)
		authed.DELETE("/:id", handler.Delete)
	}
}
