package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elonavr/FitTrack-API/cache"
	"github.com/elonavr/FitTrack-API/controllers"
	"github.com/elonavr/FitTrack-API/middlewares"
	"github.com/elonavr/FitTrack-API/services"
)

func SetupRouter(db *gorm.DB, store cache.Store) *gin.Engine {
	foodSvc := services.NewFoodService(db, store)
	statusSvc := services.NewStatusService(db, store)
	goalSvc := services.NewGoalService(db, store)
	mealSvc := services.NewMealService(db, foodSvc, statusSvc)
	resetSvc := services.NewResetService(db, store)
	authSvc := services.NewAuthService(db)

	authCtl := controllers.NewAuthController(authSvc)
	foodCtl := controllers.NewFoodItemController(foodSvc)
	goalCtl := controllers.NewGoalController(goalSvc)
	mealCtl := controllers.NewMealController(mealSvc, statusSvc)
	resetCtl := controllers.NewResetController(resetSvc)

	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
	}

	// Everything else requires a verified user id
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/food-items", foodCtl.Create)
		api.GET("/food-items", foodCtl.List)
		api.GET("/food-items/:id", foodCtl.Get)

		api.POST("/goals", goalCtl.Create)
		api.GET("/goals", goalCtl.List)
		api.GET("/goals/:id", goalCtl.Get)
		api.PATCH("/goals/:id/pause", goalCtl.Pause)
		api.PATCH("/goals/:id/activate", goalCtl.Activate)
		api.DELETE("/goals/:id", goalCtl.Delete)

		api.POST("/meals", mealCtl.LogMeals)
		api.GET("/meals/daily-status", mealCtl.DailyStatus)

		api.POST("/reset-day", resetCtl.ResetDay)
	}

	return r
}
