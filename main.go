package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/api/handlers"
	"github.com/natan-gtecnologia/admin-panel-sub000/config"
)

func main() {
	_ = godotenv.Load()

	a := handlers.App{}
	a.Config = *config.New()

	//initialize database, cms client and router
	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	zap.S().Infow("admin-panel-sub000 is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
