package controllers

import (
	"net/http"

	"todo-guard/backend/app/dto"
	"todo-guard/backend/app/middleware"
	"todo-guard/backend/app/policy"
	"todo-guard/backend/app/services"
	"todo-guard/backend/global"
)

// UserController serves the account self-service endpoints under /user.
type UserController struct {
	Users  *services.UserService
	Policy policy.Policy
}

func NewUserController(users *services.UserService, p policy.Policy) *UserController {
	return &UserController{Users: users, Policy: p}
}

func (c *UserController) caller(w http.ResponseWriter, r *http.Request) (*policy.Identity, bool) {
	id := middleware.GetIdentity(r.Context())
	if err := c.Policy.CanManageAccount(id); err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return id, true
}

func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := c.caller(w, r)
	if !ok {
		return
	}
	p, err := c.Users.Profile(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dto.WriteJSON(w, http.StatusOK, p)
}

func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := c.caller(w, r)
	if !ok {
		return
	}
	var req dto.PasswordChangeRequest
	if err := dto.Decode(r.Body, dto.PasswordChangeSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.Users.ChangePassword(r.Context(), id.UserID, req.Password, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	global.Logger.Info().Uint("user_id", id.UserID).Msg("password changed")
	w.WriteHeader(http.StatusNoContent)
}

func (c *UserController) ChangePhoneNumber(w http.ResponseWriter, r *http.Request) {
	id, ok := c.caller(w, r)
	if !ok {
		return
	}
	var req dto.PhoneNumberRequest
	if err := dto.Decode(r.Body, dto.PhoneNumberSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.Users.ChangePhoneNumber(r.Context(), id.UserID, req.PhoneNumber); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
