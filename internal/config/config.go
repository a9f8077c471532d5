package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// ErrMissingSecret is returned in online mode when a signing secret is unset.
var ErrMissingSecret = errors.New("missing signing secret")

// Development secrets used only in offline mode.
const (
	devJWTSecret   = "dev-session-secret-change-me"
	devTokenSecret = "dev-question-secret-change-me"
)

type Config struct {
	Mode     Mode   `mapstructure:"mode"`
	HTTPAddr string `mapstructure:"http_addr"`
	DB       DB     `mapstructure:"database"`
	Auth     Auth   `mapstructure:"auth"`
	Token    Token  `mapstructure:"token"`
	Quota    Quota  `mapstructure:"quota"`
	Set      Set    `mapstructure:"set"`
	CORS     CORS   `mapstructure:"cors"`

	// DevSecrets is set when a development default replaced a missing secret.
	DevSecrets bool `mapstructure:"-"`
}

type DB struct {
	Driver          string        `mapstructure:"driver"` // sqlite|postgres
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

type Auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`
}

type Token struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type Quota struct {
	FreeLimit int `mapstructure:"free_limit"`
}

type Set struct {
	MinSize     int `mapstructure:"min_size"`
	MaxSize     int `mapstructure:"max_size"`
	DefaultSize int `mapstructure:"default_size"`
}

type CORS struct {
	Origins []string `mapstructure:"origins"`
}

// Load reads ./config/config.yaml (optional), a .env file (optional) and
// the environment. Environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("mode", string(ModeOffline))
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_ttl", "168h")
	v.SetDefault("token.secret", "")
	v.SetDefault("token.ttl", "30m")
	v.SetDefault("quota.free_limit", 3)
	v.SetDefault("set.min_size", 10)
	v.SetDefault("set.max_size", 30)
	v.SetDefault("set.default_size", 10)
	v.SetDefault("cors.origins", "http://localhost:3000")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("mode", "MODE")
	_ = v.BindEnv("http_addr", "HTTP_ADDR")
	_ = v.BindEnv("database.driver", "DB_DRIVER")
	_ = v.BindEnv("database.dsn", "DB_DSN")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.jwt_ttl", "JWT_TTL")
	_ = v.BindEnv("token.secret", "REASONED_SECRET")
	_ = v.BindEnv("token.ttl", "TOKEN_TTL")
	_ = v.BindEnv("quota.free_limit", "FREE_ATTEMPT_LIMIT")
	_ = v.BindEnv("cors.origins", "CORS_ORIGINS")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORS.Origins = csv(v.GetStringSlice("cors.origins"))

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finish applies mode-dependent defaults and validates the result.
func (c *Config) finish() error {
	c.Mode = Mode(strings.ToLower(string(c.Mode)))
	if c.Mode != ModeOnline && c.Mode != ModeOffline {
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	if c.DB.DSN == "" && c.DB.Driver == "sqlite" {
		c.DB.DSN = "file:reasoned.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	for _, s := range []struct {
		name string
		val  *string
		dev  string
	}{
		{"JWT_SECRET", &c.Auth.JWTSecret, devJWTSecret},
		{"REASONED_SECRET", &c.Token.Secret, devTokenSecret},
	} {
		if *s.val != "" {
			continue
		}
		if c.Mode == ModeOnline {
			return fmt.Errorf("%w: %s", ErrMissingSecret, s.name)
		}
		*s.val = s.dev
		c.DevSecrets = true
	}

	if c.Set.MinSize <= 0 || c.Set.MinSize > c.Set.MaxSize {
		return fmt.Errorf("config: invalid set size bounds %d..%d", c.Set.MinSize, c.Set.MaxSize)
	}
	if c.Set.DefaultSize < c.Set.MinSize || c.Set.DefaultSize > c.Set.MaxSize {
		return fmt.Errorf("config: default set size %d outside %d..%d", c.Set.DefaultSize, c.Set.MinSize, c.Set.MaxSize)
	}
	if c.Quota.FreeLimit < 0 {
		return fmt.Errorf("config: negative free attempt limit")
	}
	if c.Token.TTL <= 0 || c.Auth.JWTTTL <= 0 {
		return fmt.Errorf("config: ttl must be positive")
	}
	return nil
}

// csv splits comma-joined entries that arrive as a single env value.
func csv(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
