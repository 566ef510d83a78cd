package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"job-board/internal/infra/setup"
)

// Config 结构体用于存储从环境变量或文件加载的配置
type Config struct {
	AppEnv     string `yaml:"app_env"` // development / production
	ServerPort string `yaml:"server_port"`
	LogLevel   string `yaml:"log_level"`

	DBDriver   string `yaml:"db_driver"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DBDSN      string `yaml:"db_dsn"`
	SQLitePath string `yaml:"sqlite_path"`

	RedisAddr      string `yaml:"redis_addr"`
	RedisPassword  string `yaml:"redis_password"`
	RedisDB        int    `yaml:"redis_db"`
	RedisKeyPrefix string `yaml:"redis_key_prefix"`

	JWTSecret       string        `yaml:"jwt_secret"`
	SessionTTLHours int           `yaml:"session_ttl_hours"`
	RateLimitMax    int           `yaml:"rate_limit_max"`
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// DBConfig 数据库连接参数
func (c *Config) DBConfig() setup.DBConfig {
	return setup.DBConfig{
		Driver:     c.DBDriver,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Host:       c.DBHost,
		Port:       c.DBPort,
		Name:       c.DBName,
		DSN:        c.DBDSN,
		SQLitePath: c.SQLitePath,
		Debug:      c.LogLevel == "debug",
	}
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// LoadConfig 加载服务所需的完整配置：CONFIG_FILE 指定的 YAML 文件 (可选) 提供基础值，环境变量覆盖之。
func LoadConfig() (*Config, error) {
	cfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	return cfg, nil
}

// LoadDBConfig 与 LoadConfig 读取相同的来源，但只校验数据库和日志相关的配置，供 cmd/seed 使用。
func LoadDBConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)
	_ = godotenv.Load() // 忽略错误，允许只使用环境变量

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	overrideString(&cfg.AppEnv, "APP_ENV")
	overrideString(&cfg.ServerPort, "SERVER_PORT")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.DBDriver, "DB_DRIVER")
	overrideString(&cfg.DBUser, "DB_USER")
	overrideString(&cfg.DBPassword, "DB_PASSWORD")
	overrideString(&cfg.DBHost, "DB_HOST")
	overrideString(&cfg.DBPort, "DB_PORT")
	overrideString(&cfg.DBName, "DB_NAME")
	overrideString(&cfg.DBDSN, "DB_DSN")
	overrideString(&cfg.SQLitePath, "SQLITE_PATH")
	overrideString(&cfg.RedisAddr, "REDIS_ADDR")
	overrideString(&cfg.RedisPassword, "REDIS_PASSWORD")
	overrideString(&cfg.RedisKeyPrefix, "REDIS_KEY_PREFIX")
	overrideString(&cfg.JWTSecret, "JWT_SECRET")
	if err := overrideInt(&cfg.RedisDB, "REDIS_DB"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.SessionTTLHours, "SESSION_TTL_HOURS"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.RateLimitMax, "RATE_LIMIT_MAX"); err != nil {
		return nil, err
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q: %w", v, err)
		}
		cfg.RateLimitWindow = d
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	}

	// --- 设置默认值和进行必要检查 ---
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = setup.DriverMySQL
	}
	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = "jb:"
	}
	if cfg.SessionTTLHours <= 0 {
		cfg.SessionTTLHours = 24
	}
	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 100
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Second
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	switch cfg.DBDriver {
	case setup.DriverMySQL, setup.DriverPostgres, setup.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	// 验证日志级别
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info" // 修正配置值
	}

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}
