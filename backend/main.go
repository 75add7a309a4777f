package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"todo-guard/backend/config"
	"todo-guard/backend/global"
	"todo-guard/backend/initialize"
	"todo-guard/backend/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml (optional)")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger = logger.New("info", "console", os.Stderr)
		global.Logger.Fatal().Err(err).Msg("startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, func(c *config.Config) {
				lvl := logger.SetLevel(c.Log.Level)
				global.Logger.Info().Str("level", lvl.String()).Msg("log level reloaded")
			}, func(err error) {
				global.Logger.Warn().Err(err).Msg("config reload failed")
			})
			if err != nil {
				global.Logger.Warn().Err(err).Msg("config watch stopped")
			}
		}()
	}

	if err := app.Run(ctx); err != nil {
		global.Logger.Fatal().Err(err).Msg("server stopped")
	}
	global.Logger.Info().Msg("bye")
}
