package controllers

import (
	"errors"
	"net/http"

	"todo-guard/backend/app/dto"
	"todo-guard/backend/app/middleware"
	"todo-guard/backend/app/policy"
	"todo-guard/backend/app/services"
	"todo-guard/backend/app/throttle"
	"todo-guard/backend/global"
)

const (
	detailRoleRequired     = "Authentication Failed"
	detailPasswordMismatch = "Error on password change"
	detailTodoNotFound     = "Todo not found"
	detailUserNotFound     = "User not found"
	detailUserExists       = "could not create user"
	detailTooMany          = "Too many failed login attempts, try again later"
	detailInternal         = "Internal Server Error"
)

// writeError maps service and policy errors onto status codes. Anything it
// does not recognise is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *dto.ValidationError
	switch {
	case errors.As(err, &verr):
		dto.WriteDetail(w, http.StatusUnprocessableEntity, verr.Fields)
	case errors.Is(err, policy.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		middleware.Unauthorized(w, middleware.CredentialsDetail)
	case errors.Is(err, policy.ErrRoleRequired):
		middleware.Unauthorized(w, detailRoleRequired)
	case errors.Is(err, services.ErrPasswordMismatch):
		middleware.Unauthorized(w, detailPasswordMismatch)
	case errors.Is(err, services.ErrTodoNotFound):
		dto.WriteDetail(w, http.StatusNotFound, detailTodoNotFound)
	case errors.Is(err, services.ErrUserNotFound):
		dto.WriteDetail(w, http.StatusNotFound, detailUserNotFound)
	case errors.Is(err, services.ErrUserExists):
		dto.WriteDetail(w, http.StatusConflict, detailUserExists)
	case errors.Is(err, throttle.ErrTooManyAttempts):
		dto.WriteDetail(w, http.StatusTooManyRequests, detailTooMany)
	default:
		global.Logger.Error().Err(err).
			Str("request_id", middleware.RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		dto.WriteDetail(w, http.StatusInternalServerError, detailInternal)
	}
}
