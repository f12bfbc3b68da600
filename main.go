package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/whisprnet/whispr-api/api/handlers"

	"go.uber.org/zap"

	"github.com/whisprnet/whispr-api/config"
)

func main() {
	_ = godotenv.Load()

	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database, ledger and router
		log.Fatal(err)
	}

	zap.S().Infow("whispr-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
