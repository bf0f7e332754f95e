package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（与 config/config.yaml 对应）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig `mapstructure:"database"` // 数据库配置
	Auth     AuthConfig     `mapstructure:"auth"`     // 管理端鉴权
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
	Schedule ScheduleConfig `mapstructure:"schedule"` // 赛程/看板相关参数
	Rounds   RoundsConfig   `mapstructure:"rounds"`   // 轮次状态机策略
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port  int    `mapstructure:"port"`  // 服务端口
	Mode  string `mapstructure:"mode"`  // Gin运行模式：debug/release/test
	Pprof bool   `mapstructure:"pprof"` // 是否注册 pprof 路由
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // postgres（默认）/sqlite（本地开发）
	DSN             string        `mapstructure:"dsn"`               // 连接DSN（URL 形式）
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	AutoMigrate     bool          `mapstructure:"auto_migrate"`      // serve 启动时是否自动建表
}

// AuthConfig 写操作共享口令（Authorization: Bearer <admin_password>）
type AuthConfig struct {
	AdminPassword string `mapstructure:"admin_password"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// ScheduleConfig 赛程与看板参数
type ScheduleConfig struct {
	LivePollInterval  time.Duration `mapstructure:"live_poll_interval"`  // 前端轮询直播轮次的建议间隔
	UpcomingLimit     int           `mapstructure:"upcoming_limit"`      // 看板“即将开始”条数
	TopStandingsLimit int           `mapstructure:"top_standings_limit"` // 看板奖牌榜前N
}

// RoundsConfig 轮次/比赛状态流转策略
type RoundsConfig struct {
	StrictTransitions bool `mapstructure:"strict_transitions"` // true 时只允许正向流转
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env / 环境变量覆盖
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom 从指定文件加载；path 为空时按默认路径查找 config.yaml
func LoadConfigFrom(path string) (*Config, error) {
	// 1. 加载 .env（若存在）
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// 2. 读取 config.yaml
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：env 覆盖 yaml
	overrideFromEnv(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.pprof", false)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("schedule.live_poll_interval", 30*time.Second)
	v.SetDefault("schedule.upcoming_limit", 10)
	v.SetDefault("schedule.top_standings_limit", 5)
	v.SetDefault("rounds.strict_transitions", false)
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Auth.AdminPassword = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
