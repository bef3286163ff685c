package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

type AnalyticsController struct {
	analytics services.AnalyticsService
}

func NewAnalyticsController(analytics services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

func (an *AnalyticsController) GetAnalytics(c *gin.Context) {
	snapshot, err := an.analytics.Snapshot(c.Request.Context())
	if err != nil {
		log.Printf("analytics snapshot failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load analytics")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, snapshot)
}
