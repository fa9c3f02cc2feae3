package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Database   Database
	Identity   Identity
	Session    Session
	Prometheus Prometheus
	Redis      Redis
}

type HTTPServer struct {
	Address         string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type Database struct {
	Username string
	Password string
	Host     string
	Port     string
	DbName   string
	MaxConns int32
	InMemory bool
	Migrate  bool
}

func (d Database) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.DbName)
}

type Identity struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	OrgURL       string
	APIToken     string
	Timeout      time.Duration
}

type Session struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type Prometheus struct {
	Address string
	Port    int
}

type Redis struct {
	Enabled        bool
	Address        string
	Port           int
	Password       string
	DB             int
	PoolSize       int
	UserTTL        time.Duration
	UserMissingTTL time.Duration
}

const envPrefix = "BLOG"

// Load reads config.yaml from the given directories (./config and . when none are given).
// A missing file is not an error: defaults and BLOG_* environment variables still apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		HTTPServer: HTTPServer{
			Address:         v.GetString("http_server.address"),
			Port:            v.GetInt("http_server.port"),
			ReadTimeout:     v.GetDuration("http_server.read_timeout"),
			WriteTimeout:    v.GetDuration("http_server.write_timeout"),
			IdleTimeout:     v.GetDuration("http_server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http_server.shutdown_timeout"),
		},
		Database: Database{
			Username: v.GetString("database.username"),
			Password: v.GetString("database.password"),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			DbName:   v.GetString("database.db_name"),
			MaxConns: v.GetInt32("database.max_conns"),
			InMemory: v.GetBool("database.in_memory"),
			Migrate:  v.GetBool("database.migrate"),
		},
		Identity: Identity{
			Issuer:       v.GetString("identity.issuer"),
			ClientID:     v.GetString("identity.client_id"),
			ClientSecret: v.GetString("identity.client_secret"),
			RedirectURL:  v.GetString("identity.redirect_url"),
			OrgURL:       v.GetString("identity.org_url"),
			APIToken:     v.GetString("identity.api_token"),
			Timeout:      v.GetDuration("identity.timeout"),
		},
		Session: Session{
			Secret:     v.GetString("session.secret"),
			TTL:        v.GetDuration("session.ttl"),
			CookieName: v.GetString("session.cookie_name"),
			Secure:     v.GetBool("session.secure"),
		},
		Prometheus: Prometheus{
			Address: v.GetString("prometheus.address"),
			Port:    v.GetInt("prometheus.port"),
		},
		Redis: Redis{
			Enabled:        v.GetBool("redis.enabled"),
			Address:        v.GetString("redis.address"),
			Port:           v.GetInt("redis.port"),
			Password:       v.GetString("redis.password"),
			DB:             v.GetInt("redis.db"),
			PoolSize:       v.GetInt("redis.pool_size"),
			UserTTL:        v.GetDuration("redis.user_ttl"),
			UserMissingTTL: v.GetDuration("redis.user_missing_ttl"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Printf("Error loading config: %s", err)
		os.Exit(1)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		return errors.New("session.secret must be set")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.HTTPServer.Port <= 0 {
		return errors.New("http_server.port must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("http_server.address", "0.0.0.0")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.read_timeout", 10*time.Second)
	v.SetDefault("http_server.write_timeout", 15*time.Second)
	v.SetDefault("http_server.idle_timeout", 60*time.Second)
	v.SetDefault("http_server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "admin")
	v.SetDefault("database.host", "blog-db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.db_name", "blog")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.in_memory", false)
	v.SetDefault("database.migrate", true)

	v.SetDefault("identity.issuer", "")
	v.SetDefault("identity.client_id", "")
	v.SetDefault("identity.client_secret", "")
	v.SetDefault("identity.redirect_url", "http://localhost:8080/oauth/callback")
	v.SetDefault("identity.org_url", "")
	v.SetDefault("identity.api_token", "")
	v.SetDefault("identity.timeout", 5*time.Second)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.cookie_name", "blog_session")
	v.SetDefault("session.secure", false)

	v.SetDefault("prometheus.address", "0.0.0.0")
	v.SetDefault("prometheus.port", 9103)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "redis")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.user_ttl", 15*time.Minute)
	v.SetDefault("redis.user_missing_ttl", time.Minute)
}
