// Package cli olympicshub 命令行入口：serve / migrate / seed / health
package cli

import (
	"fmt"
	"os"
	"strings"

	"OlympicsHub/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "olympicshub",
	Short: "Olympics schedule and medal standings service",
	Long: `olympicshub 维护奥运会赛程、对阵与奖牌，并实时计算奖牌榜。

Examples:

  olympicshub serve
  olympicshub migrate
  olympicshub seed --file config/seed.yaml
  olympicshub health --timeout 3s
`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(healthCmd)
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfigFrom(configPath)
}

// newLogger 按 log.level / log.format 构造 logrus
func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if err != nil && cfg.Level != "" {
		logger.Warnf("未知日志级别 %q，使用 info", cfg.Level)
	}
	return logger
}
