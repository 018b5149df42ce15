package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elonavr/FitTrack-API/services"
)

type MealController struct {
	meals  *services.MealService
	status *services.StatusService
}

func NewMealController(meals *services.MealService, status *services.StatusService) *MealController {
	return &MealController{meals: meals, status: status}
}

// POST /meals — body is a JSON array of {foodItemId, quantity}.
func (ctl *MealController) LogMeals(c *gin.Context) {
	var inputs []services.MealInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be an array of meal entries"})
		return
	}

	meals, status, err := ctl.meals.LogMeals(c.Request.Context(), currentUserID(c), inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "meal(s) logged and daily status updated",
		"meals":       meals,
		"dailyStatus": status,
	})
}

// GET /meals/daily-status
func (ctl *MealController) DailyStatus(c *gin.Context) {
	status, err := ctl.status.GetStatus(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dailyStatus": status})
}
