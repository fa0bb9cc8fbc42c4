package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/owners")

	// === Public Routes ===
	group.POST("", h.Register)
	group.POST("/login", h.Login)

	// === Authenticated Routes ===
	me := group.Group("/me")
	me.Use(authMiddleware)
	{
		me.GET("", h.Me)
		me.PATCH("", h.UpdateMe)
		me.GET("/working-hours", h.GetWorkingHours)
		me.PUT("/working-hours", h.SetWorkingHours)
	}
}
