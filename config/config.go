package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	APIPort   int
	LogLevel  string
	LogFile   LogFileConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Email     EmailConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// LogFileConfig 日志文件配置
type LogFileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int // 单个文件最大大小，单位MB
	MaxBackups int
	MaxAge     int // 天
	Compress   bool
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver       string // mysql | pgx | sqlite3
	DSN          string // 设置后优先于下面的字段
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Host     string // SMTP服务器地址
	Port     int    // SMTP服务器端口
	Username string // 邮箱账号
	Password string // 邮箱密码
	From     string // 发件人
	FromName string // 发件人名称
}

// JWTConfig 管理员令牌配置
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// RateLimitConfig 登录限流配置
type RateLimitConfig struct {
	LoginLimit  int
	LoginWindow time.Duration
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string
}

// Load 从 .env、可选的 config.yaml 和环境变量加载配置
func Load() (*Config, error) {
	// .env 不存在时直接使用环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("LOG_FILE_ENABLED", false)
	v.SetDefault("LOG_FILE_PATH", "logs/app.log")
	v.SetDefault("LOG_FILE_MAX_SIZE", 100)
	v.SetDefault("LOG_FILE_MAX_BACKUPS", 7)
	v.SetDefault("LOG_FILE_MAX_AGE", 30)
	v.SetDefault("LOG_FILE_COMPRESS", true)

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "kazanion")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("EMAIL_HOST", "")
	v.SetDefault("EMAIL_PORT", 465)
	v.SetDefault("EMAIL_USERNAME", "")
	v.SetDefault("EMAIL_PASSWORD", "")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("EMAIL_FROM_NAME", "Kazanion")

	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("RATE_LIMIT_LOGIN", 5)
	v.SetDefault("RATE_LIMIT_LOGIN_WINDOW", "1m")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		APIPort:  v.GetInt("API_PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile: LogFileConfig{
			Enabled:    v.GetBool("LOG_FILE_ENABLED"),
			Path:       v.GetString("LOG_FILE_PATH"),
			MaxSize:    v.GetInt("LOG_FILE_MAX_SIZE"),
			MaxBackups: v.GetInt("LOG_FILE_MAX_BACKUPS"),
			MaxAge:     v.GetInt("LOG_FILE_MAX_AGE"),
			Compress:   v.GetBool("LOG_FILE_COMPRESS"),
		},
		Database: DatabaseConfig{
			Driver:       v.GetString("DB_DRIVER"),
			DSN:          v.GetString("DB_DSN"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Email: EmailConfig{
			Host:     v.GetString("EMAIL_HOST"),
			Port:     v.GetInt("EMAIL_PORT"),
			Username: v.GetString("EMAIL_USERNAME"),
			Password: v.GetString("EMAIL_PASSWORD"),
			From:     v.GetString("EMAIL_FROM"),
			FromName: v.GetString("EMAIL_FROM_NAME"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		RateLimit: RateLimitConfig{
			LoginLimit:  v.GetInt("RATE_LIMIT_LOGIN"),
			LoginWindow: v.GetDuration("RATE_LIMIT_LOGIN_WINDOW"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}
}

// splitList 解析逗号分隔的列表
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
