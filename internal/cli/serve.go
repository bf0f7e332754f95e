package cli

import (
	"fmt"

	"OlympicsHub/internal/api"
	"OlympicsHub/internal/database"
	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置文件
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// 2. 初始化日志
		logger := newLogger(cfg.Log)
		logger.Info("配置文件加载成功")

		// 3. 连接数据库（postgres 库不存在则先创建）
		debug := cfg.Server.Mode == gin.DebugMode
		db, err := database.Open(cfg.Database, debug, logger)
		if err != nil {
			return fmt.Errorf("连接数据库失败: %w", err)
		}
		logger.WithField("driver", cfg.Database.Driver).Info("数据库连接成功")

		// 4. 库表不存在则自动创建
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("数据库表结构迁移失败: %w", err)
			}
			logger.Info("数据库表结构检查完成（不存在则已创建）")
		}

		// 5. 组装服务并注册路由
		gin.SetMode(cfg.Server.Mode)
		svc := service.New(db, service.OptionsFromConfig(cfg), logger)
		r := api.NewRouter(db, svc, cfg, logger)
		logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

		// 6. 启动服务
		logger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	},
}
