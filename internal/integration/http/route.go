package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	integrations := rg.Group("/integrations", authMiddleware)
	{
		integrations.GET("", handler.List)
		integrations.POST("/:id/disconnect", handler.Disconnect)
		integrations.DELETE("/:id", handler.Delete)
	}

	// The OAuth consent flow lives in its own group. The callback is
	// public; the provider redirects the browser there after consent.
	calendar := rg.Group("/calendar")
	{
		calendar.GET("/:provider/connect", authMiddleware, handler.Connect)
		calendar.GET("/:provider/callback", handler.Callback)
	}
}
