package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elonavr/FitTrack-API/services"
)

type ResetController struct {
	reset *services.ResetService
}

func NewResetController(reset *services.ResetService) *ResetController {
	return &ResetController{reset: reset}
}

// POST /reset-day
func (ctl *ResetController) ResetDay(c *gin.Context) {
	resetAt, err := ctl.reset.Reset(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "daily tracking window reset",
		"lastResetTime": resetAt,
	})
}
