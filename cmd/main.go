package main

import (
	"os"

	"github.com/elonavr/FitTrack-API/config"
	"github.com/elonavr/FitTrack-API/routes"
)

func main() {
	db := config.InitDB()
	store := config.InitCache()

	r := routes.SetupRouter(db, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
