package handlers

import (
	"net/http"

	"homeplan/internal/api/models"
	"homeplan/internal/appliance"

	"github.com/gin-gonic/gin"
)

// ListAppliances handles GET /api/v1/appliances
func ListAppliances(c *gin.Context) {
	kinds := appliance.Kinds()
	infos := make([]models.ApplianceInfo, 0, len(kinds))
	for _, k := range kinds {
		stats, err := appliance.StatsFor(k)
		if err != nil {
			continue
		}
		infos = append(infos, models.ApplianceInfo{Kind: k, Stats: stats})
	}
	c.JSON(http.StatusOK, gin.H{"appliances": infos})
}
