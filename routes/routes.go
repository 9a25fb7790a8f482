package routes

import (
	"go-crimewatch/config"
	"go-crimewatch/handlers"
	"go-crimewatch/neighborhoods"
	"go-crimewatch/snapshot"
	"go-crimewatch/socrata"

	"github.com/gin-gonic/gin"
)

func SetupRouter(client *socrata.Client, table *neighborhoods.Table, store *snapshot.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Crimewatch!",
		})
	})

	// api routes
	api := r.Group("/api/crimewatch")
	{
		api.GET("/dashboard", func(c *gin.Context) {
			handlers.Dashboard(c, client, table, store, cfg)
		})
		api.GET("/incidents", func(c *gin.Context) {
			handlers.Incidents(c, client, table, store, cfg)
		})
		api.GET("/map", func(c *gin.Context) {
			handlers.MapCoordinates(c, client, table, store, cfg)
		})
		api.GET("/categories", handlers.Categories)
		api.GET("/communities", func(c *gin.Context) {
			handlers.Communities(c, table)
		})
	}

	return r
}
