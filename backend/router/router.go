package router

import (
	"net/http"

	"todo-guard/backend/app/controllers"
	"todo-guard/backend/app/middleware"
)

func NewRouter(httpCtrl *controllers.HTTPController, authCtrl *controllers.AuthController, todoCtrl *controllers.TodoController, userCtrl *controllers.UserController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()
	public := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.WithRoute(pattern, h))
	}
	private := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.WithRoute(pattern, mw.RequireAuth(h)))
	}

	public("GET /healthz", httpCtrl.Healthz)

	// auth
	public("POST /auth", authCtrl.Register)
	public("POST /auth/{$}", authCtrl.Register)
	public("POST /auth/token", authCtrl.Login)

	// todos, scoped to the caller
	private("GET /{$}", todoCtrl.List)
	private("GET /todos/{id}", todoCtrl.Get)
	private("POST /todos", todoCtrl.Create)
	private("PUT /todos/{id}", todoCtrl.Update)
	private("DELETE /todos/{id}", todoCtrl.Delete)

	// account self-service
	private("GET /user", userCtrl.Profile)
	private("GET /user/{$}", userCtrl.Profile)
	private("PUT /user/password", userCtrl.ChangePassword)
	private("PUT /user/phone_number", userCtrl.ChangePhoneNumber)

	return middleware.Logging(middleware.Recover(mux))
}
