package cli

import (
	"fmt"
	"os"

	"OlympicsHub/internal/database"
	"OlympicsHub/internal/model"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update all tables",
	Run: func(cmd *cobra.Command, args []string) {
		green := color.New(color.FgGreen, color.Bold)
		red := color.New(color.FgRed, color.Bold)

		cfg, err := loadConfig()
		if err != nil {
			red.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		logger := newLogger(cfg.Log)
		db, err := database.Open(cfg.Database, false, logger)
		if err != nil {
			red.Printf("❌ 连接数据库失败: %v\n", err)
			os.Exit(1)
		}
		if err := database.Migrate(db); err != nil {
			red.Printf("❌ 迁移失败: %v\n", err)
			os.Exit(1)
		}
		for _, m := range model.All() {
			fmt.Printf("   • %s\n", tableName(m))
		}
		green.Println("✅ 表结构已是最新")
	},
}

type tabler interface {
	TableName() string
}

func tableName(m interface{}) string {
	if t, ok := m.(tabler); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", m)
}
