package controllers

import (
	"context"
	"net/http"
	"time"

	"todo-guard/backend/app/dto"
	"todo-guard/backend/global"

	"gorm.io/gorm"
)

type HTTPController struct{ DB *gorm.DB }

func NewHTTPController(db *gorm.DB) *HTTPController {
	return &HTTPController{DB: db}
}

// Healthz reports 200 while the database answers a ping.
func (c *HTTPController) Healthz(w http.ResponseWriter, r *http.Request) {
	if c.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := c.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			global.Logger.Warn().Err(err).Msg("health check failed")
			dto.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	dto.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
