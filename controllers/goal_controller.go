package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/elonavr/FitTrack-API/services"
)

type GoalController struct {
	goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{goals: goals}
}

func goalID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal id must be a positive number"})
		return 0, false
	}
	return uint(id), true
}

// POST /goals
func (ctl *GoalController) Create(c *gin.Context) {
	var req struct {
		GoalName    string          `json:"goalName" binding:"required"`
		CalorieGoal decimal.Decimal `json:"calorieGoal"`
		ProteinGoal decimal.Decimal `json:"proteinGoal"`
		CarbGoal    decimal.Decimal `json:"carbGoal"`
		FatGoal     decimal.Decimal `json:"fatGoal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goalName and all macro goals are required"})
		return
	}

	plan, err := ctl.goals.Create(
		c.Request.Context(), currentUserID(c), req.GoalName,
		req.CalorieGoal, req.ProteinGoal, req.CarbGoal, req.FatGoal,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "goal plan created successfully", "goal": plan})
}

// GET /goals
func (ctl *GoalController) List(c *gin.Context) {
	plans, err := ctl.goals.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": plans})
}

// GET /goals/:id
func (ctl *GoalController) Get(c *gin.Context) {
	id, ok := goalID(c)
	if !ok {
		return
	}
	plan, err := ctl.goals.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": plan})
}

// PATCH /goals/:id/pause
func (ctl *GoalController) Pause(c *gin.Context) {
	id, ok := goalID(c)
	if !ok {
		return
	}
	plan, err := ctl.goals.Pause(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goal successfully paused", "goal": plan})
}

// PATCH /goals/:id/activate
func (ctl *GoalController) Activate(c *gin.Context) {
	id, ok := goalID(c)
	if !ok {
		return
	}
	plan, err := ctl.goals.Activate(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goal successfully activated, previous active goal was paused", "goal": plan})
}

// DELETE /goals/:id
func (ctl *GoalController) Delete(c *gin.Context) {
	id, ok := goalID(c)
	if !ok {
		return
	}
	if err := ctl.goals.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goal plan deleted"})
}
