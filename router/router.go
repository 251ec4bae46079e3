package router

import (
	"chat-agent-backend/controller"
	"chat-agent-backend/middleware"

	"github.com/gin-gonic/gin"
)

func Register() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/session", controller.CreateSession)
		api.GET("/sessions", controller.GetSessions)
		api.DELETE("/session/:id", controller.DeleteSession)
		api.GET("/session/:id/messages", controller.GetSessionMessages)
		api.PUT("/session/:id/title", controller.UpdateSessionTitle)

		api.POST("/chat", controller.AgentChat)
	}

	return r
}
