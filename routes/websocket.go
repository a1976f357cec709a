package routes

import (
	"github.com/gin-gonic/gin"

	"pagebinder-notes/pagebinder/services"
)

// RegisterWebSocketRoutes sets up the change-feed endpoint the tree view
// subscribes to.
func RegisterWebSocketRoutes(router *gin.Engine, wsService services.WebSocketServiceInterface) {
	router.GET("/api/v1/ws", func(c *gin.Context) {
		wsService.HandleConnection(c)
	})
}
