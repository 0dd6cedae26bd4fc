package main

import (
	app "points-redemption-engine/internal/app/server"
	"points-redemption-engine/internal/config"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.Server.LogLevel)
	app.Run(cfg)
}
