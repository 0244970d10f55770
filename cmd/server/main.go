package main

import (
	"context"
	"log"

	"github.com/AliKaner/mc-case/internal/client/config"
	"github.com/AliKaner/mc-case/internal/server"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
