package handlers

import (
	"net/http"

	"go-crimewatch/neighborhoods"
	"go-crimewatch/socrata"

	"github.com/gin-gonic/gin"
)

// Categories lists the closed crime-category vocabulary the dashboard
// filters on.
func Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": socrata.Categories()})
}

// Communities lists the reference table rows, in table order, so the UI
// can populate its community selector from the same data the join uses.
func Communities(c *gin.Context, table *neighborhoods.Table) {
	c.JSON(http.StatusOK, gin.H{"communities": table.Records()})
}
