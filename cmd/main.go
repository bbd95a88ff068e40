package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oceangrid/armada-backend/api"
	"github.com/oceangrid/armada-backend/db"
	"github.com/oceangrid/armada-backend/db/sqlc"
	mb "github.com/oceangrid/armada-backend/models/battleship"
	mc "github.com/oceangrid/armada-backend/models/connection"
)

func main() {
	if os.Getenv("STAGE") != "prod" {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}
	stage := os.Getenv("STAGE")
	if stage != "dev" && stage != "prod" {
		panic("stage must be either dev or prod")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// Analytics are optional; the server runs fine without a database.
	var analytics *sqlc.AnalyticsManager
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		dbManager := sqlc.NewDbManager(sqlc.New(db.MustConnectToDb(psqlUrl)))
		analytics = dbManager.Analytics
	} else {
		log.Println("DATABASE_URL not set, analytics disabled")
	}

	sessionManager := mc.NewArmadaSessionManager()
	go sessionManager.CleanupPeriodically()

	matchManager := mb.NewArmadaMatchManager()

	rp := api.NewRequestProcessor(sessionManager, matchManager, analytics)
	r := api.NewRouter(rp, analytics)

	log.Printf("listening on port %s", port)
	log.Fatalln(r.Run("0.0.0.0:" + port))
}
