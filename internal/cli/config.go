package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	chocosql "github.com/biyonik/go-choco-sql"
	"github.com/biyonik/go-choco-sql/dialect"
)

const (
	maxWalkDepth = 25
	envPrefix    = "CHOCO"
)

// configNames are tried in order in every directory during auto-discovery.
var configNames = []string{"choco.yaml", "choco.yml"}

// legacyEnv maps config keys to the environment variable names used by
// earlier deployments. They are consulted after the CHOCO_* names.
var legacyEnv = map[string]string{
	"database.name":     "DB_POSTGRES_DATABASE",
	"database.host":     "DB_POSTGRES_HOST",
	"database.port":     "DB_POSTGRES_PORT",
	"database.user":     "DB_POSTGRES_USERNAME",
	"database.password": "DB_POSTGRES_PASSWORD",
}

// Config represents the choco configuration from choco.yaml.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Query    QueryConfig    `mapstructure:"query" json:"query"`
	Cache    CacheConfig    `mapstructure:"cache" json:"cache"`
	Log      LogConfig      `mapstructure:"log" json:"log"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" json:"driver"`
	URL          string `mapstructure:"url" json:"url,omitempty"`
	Host         string `mapstructure:"host" json:"host"`
	Port         int    `mapstructure:"port" json:"port"`
	Name         string `mapstructure:"name" json:"name"`
	User         string `mapstructure:"user" json:"user"`
	Password     string `mapstructure:"password" json:"password,omitempty"`
	SSLMode      string `mapstructure:"sslmode" json:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns" json:"max_open_conns"`
}

// QueryConfig holds builder settings.
type QueryConfig struct {
	Dialect string `mapstructure:"dialect" json:"dialect,omitempty"`
	Schema  string `mapstructure:"schema" json:"schema,omitempty"`
	Output  string `mapstructure:"output" json:"output"`
	Strict  bool   `mapstructure:"strict" json:"strict"`
	Debug   bool   `mapstructure:"debug" json:"debug"`
}

// CacheConfig holds the optional Redis result cache settings.
type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr" json:"redis_addr,omitempty"`
	TTL       time.Duration `mapstructure:"ttl" json:"ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), legacy); err != nil {
			return nil, "", fmt.Errorf("binding %s: %w", key, err)
		}
	}

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "prefer")
	v.SetDefault("database.max_open_conns", 0)

	v.SetDefault("query.dialect", "")
	v.SetDefault("query.schema", "")
	v.SetDefault("query.output", "records")
	v.SetDefault("query.strict", false)
	v.SetDefault("query.debug", false)

	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl", time.Minute)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for choco.yaml or choco.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// Connection converts the database section into a chocosql connection config.
func (c *Config) Connection() *chocosql.Config {
	conn := chocosql.DefaultConfig()
	db := c.Database

	conn.Driver = db.Driver
	conn.URL = db.URL
	conn.Host = db.Host
	conn.Port = db.Port
	conn.Database = db.Name
	conn.Username = db.User
	conn.Password = db.Password
	conn.SSLMode = db.SSLMode
	if db.MaxOpenConns > 0 {
		conn.MaxOpenConns = db.MaxOpenConns
	}
	return conn
}

// Grammar returns the grammar named by query.dialect, falling back to the
// one matching database.driver.
func (c *Config) Grammar() (dialect.Grammar, error) {
	name := c.Query.Dialect
	if name == "" {
		name = c.Database.Driver
	}
	g, ok := dialect.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", name)
	}
	return g, nil
}

// Redacted returns a copy safe to print, with the password masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.Database.Password != "" {
		out.Database.Password = "********"
	}
	return out
}
