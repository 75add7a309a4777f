package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("jwt secret is not configured (set SECRET_KEY)")

type Server struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (s Server) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

type DB struct {
	Driver string
	DSN    string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

// TTL is the access-token lifetime.
func (j JWT) TTL() time.Duration { return time.Duration(j.ExpMin) * time.Minute }

type Auth struct {
	AccountRole string
	BcryptCost  int
	PhoneRegion string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Throttle struct {
	MaxAttempts int
	Window      time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	Server   Server
	DB       DB
	JWT      JWT
	Auth     Auth
	Redis    Redis
	Throttle Throttle
	Log      Log
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "todosapp.db")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "todosapp")
	v.SetDefault("jwt.exp_min", 30)
	v.SetDefault("auth.account_role", "admin")
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("auth.phone_region", "US")
	v.SetDefault("redis.db", 0)
	v.SetDefault("throttle.max_attempts", 5)
	v.SetDefault("throttle.window", 15*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads configuration from the optional yaml file at path and the
// process environment. SECRET_KEY and ACCESS_TOKEN_EXPIRE_MINUTES are read
// verbatim; every other key can be overridden with TODO_<SECTION>_<KEY>.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("todo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("jwt.secret", "SECRET_KEY")
	_ = v.BindEnv("jwt.exp_min", "ACCESS_TOKEN_EXPIRE_MINUTES")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Server: Server{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		DB: DB{
			Driver: strings.ToLower(v.GetString("db.driver")),
			DSN:    v.GetString("db.dsn"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
		},
		JWT: JWT{
			Secret: v.GetString("jwt.secret"),
			Issuer: v.GetString("jwt.issuer"),
			ExpMin: v.GetInt("jwt.exp_min"),
		},
		Auth: Auth{
			AccountRole: v.GetString("auth.account_role"),
			BcryptCost:  v.GetInt("auth.bcrypt_cost"),
			PhoneRegion: strings.ToUpper(v.GetString("auth.phone_region")),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Throttle: Throttle{
			MaxAttempts: v.GetInt("throttle.max_attempts"),
			Window:      v.GetDuration("throttle.window"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 30
	}
	if cfg.Auth.AccountRole == "" {
		cfg.Auth.AccountRole = "admin"
	}
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	return cfg, nil
}
