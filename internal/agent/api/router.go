package api

import "github.com/gin-gonic/gin"

// SetupRouter configures and returns a Gin engine with the agent routes.
func SetupRouter(h *Handler) *gin.Engine {
	// Default middleware: logger and recovery.
	r := gin.Default()

	r.GET("/health", h.Health)

	apiV1 := r.Group("/api/v1")
	{
		agent := apiV1.Group("/agent")
		{
			agent.POST("/query", h.Query)
			agent.POST("/documents", h.UploadDocument)
			agent.GET("/statistics", h.Statistics)
			agent.DELETE("/documents", h.ClearDocuments)
		}
	}

	return r
}
