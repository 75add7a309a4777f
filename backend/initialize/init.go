package initialize

import (
	"context"
	"fmt"
	"net/http"

	"todo-guard/backend/app/controllers"
	"todo-guard/backend/app/db"
	jwtutil "todo-guard/backend/app/jwt"
	"todo-guard/backend/app/middleware"
	"todo-guard/backend/app/policy"
	"todo-guard/backend/app/repo"
	"todo-guard/backend/app/services"
	"todo-guard/backend/app/throttle"
	"todo-guard/backend/config"
	"todo-guard/backend/global"
	"todo-guard/backend/router"
	"todo-guard/backend/server"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Router  http.Handler
	Signer  *jwtutil.Signer
	Users   *services.UserService
	Todos   *services.TodoService
	Limiter *throttle.LoginLimiter
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.Log)

	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			global.Logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, login throttling degraded")
		}
	}
	return New(cfg, gdb, rdb), nil
}

// New wires an App from already opened stores. rdb may be nil.
func New(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client) *App {
	userRepo := repo.NewUserRepository(gdb)
	userSvc := services.NewUserService(userRepo, services.BcryptHasher{Cost: cfg.Auth.BcryptCost}, cfg.Auth.PhoneRegion)
	todoSvc := services.NewTodoService(repo.NewTodoRepository(gdb), userRepo)
	limiter := throttle.NewLoginLimiter(rdb, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)
	signer := jwtutil.NewSigner([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.TTL())

	httpCtrl := controllers.NewHTTPController(gdb)
	authCtrl := controllers.NewAuthController(userSvc, signer, limiter)
	todoCtrl := controllers.NewTodoController(todoSvc)
	userCtrl := controllers.NewUserController(userSvc, policy.New(cfg.Auth.AccountRole))
	mw := &middleware.Auth{Signer: signer}

	h := router.NewRouter(httpCtrl, authCtrl, todoCtrl, userCtrl, mw)

	return &App{Cfg: cfg, DB: gdb, Redis: rdb, Router: h, Signer: signer, Users: userSvc, Todos: todoSvc, Limiter: limiter}
}

// Run serves the router until ctx is cancelled and then releases the stores.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	return server.StartHTTPServer(ctx, a.Cfg.Server, a.Router)
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
