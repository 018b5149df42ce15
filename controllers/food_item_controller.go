package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/elonavr/FitTrack-API/services"
)

type FoodItemController struct {
	foods *services.FoodService
}

func NewFoodItemController(foods *services.FoodService) *FoodItemController {
	return &FoodItemController{foods: foods}
}

// POST /food-items
func (ctl *FoodItemController) Create(c *gin.Context) {
	var req struct {
		FoodName           string          `json:"foodName" binding:"required"`
		CaloriesPerServing decimal.Decimal `json:"caloriesPerServing"`
		ProteinPerServing  decimal.Decimal `json:"proteinPerServing"`
		CarbPerServing     decimal.Decimal `json:"carbPerServing"`
		FatPerServing      decimal.Decimal `json:"fatPerServing"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foodName and per-serving values are required"})
		return
	}

	item, err := ctl.foods.Create(
		c.Request.Context(), currentUserID(c), req.FoodName,
		req.CaloriesPerServing, req.ProteinPerServing, req.CarbPerServing, req.FatPerServing,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "food item created successfully", "foodItem": item})
}

// GET /food-items/:id
func (ctl *FoodItemController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food item id must be a positive number"})
		return
	}

	item, err := ctl.foods.Get(c.Request.Context(), currentUserID(c), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// GET /food-items
func (ctl *FoodItemController) List(c *gin.Context) {
	items, err := ctl.foods.ListAll(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foodItems": items})
}
