package initialize

import (
	"os"

	"todo-guard/backend/config"
	"todo-guard/backend/global"
	"todo-guard/backend/logger"
)

func setupLogger(cfg config.Log) {
	global.Logger = logger.New(cfg.Level, cfg.Format, os.Stderr).With().Str("service", "todo-guard").Logger()
}
