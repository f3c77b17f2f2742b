package main

import (
	"fmt"
	"net/http"

	"github.com/pulseclub/go-pulse/env"
	"github.com/pulseclub/go-pulse/server"
	"github.com/pulseclub/go-pulse/service/logger"
)

func main() {
	server.Init()

	port := env.GetInt("PORT")
	logger.For(nil).Infof("listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil); err != nil {
		panic(err)
	}
}
