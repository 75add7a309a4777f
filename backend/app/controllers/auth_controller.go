package controllers

import (
	"errors"
	"net/http"

	"todo-guard/backend/app/dto"
	jwtutil "todo-guard/backend/app/jwt"
	"todo-guard/backend/app/services"
	"todo-guard/backend/app/throttle"
	"todo-guard/backend/global"
)

type AuthController struct {
	Users   *services.UserService
	Signer  *jwtutil.Signer
	Limiter *throttle.LoginLimiter
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer, limiter *throttle.LoginLimiter) *AuthController {
	return &AuthController{Users: users, Signer: signer, Limiter: limiter}
}

// Register handles POST /auth/.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := dto.Decode(r.Body, dto.RegisterSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := c.Users.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	global.Logger.Info().Uint("user_id", u.ID).Str("username", u.Username).Msg("user registered")
	w.WriteHeader(http.StatusCreated)
}

// Login handles POST /auth/token with a form-encoded username and password.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, dto.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, r, dto.NewValidationError("body", "invalid form body"))
		return
	}
	form := dto.LoginForm{Username: r.PostForm.Get("username"), Password: r.PostForm.Get("password")}
	if err := dto.CheckRules(form); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	if err := c.Limiter.Check(ctx, form.Username); err != nil {
		if errors.Is(err, throttle.ErrTooManyAttempts) {
			writeError(w, r, err)
			return
		}
		global.Logger.Warn().Err(err).Msg("login throttle unavailable")
	}

	u, err := c.Users.Authenticate(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			if ferr := c.Limiter.Fail(ctx, form.Username); ferr != nil {
				global.Logger.Warn().Err(ferr).Msg("login throttle unavailable")
			}
			global.Logger.Debug().Str("username", form.Username).Msg("login rejected")
		}
		writeError(w, r, err)
		return
	}
	if err := c.Limiter.Reset(ctx, form.Username); err != nil {
		global.Logger.Warn().Err(err).Msg("login throttle unavailable")
	}

	token, err := c.Signer.Issue(u.Username, u.ID, u.Role, c.Signer.TTL())
	if err != nil {
		writeError(w, r, err)
		return
	}
	dto.WriteJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
