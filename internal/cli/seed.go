package cli

import (
	"context"
	"os"

	"OlympicsHub/internal/database"
	"OlympicsHub/internal/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import reference countries and sports from a YAML fixture",
	Long: `Import reference data. Countries are upserted by code, sports by name,
so running it again only refreshes names, flags and icons.

Examples:
  olympicshub seed
  olympicshub seed --file ./my-seed.yaml
`,
	Run: func(cmd *cobra.Command, args []string) {
		green := color.New(color.FgGreen, color.Bold)
		red := color.New(color.FgRed, color.Bold)

		f, err := seed.Load(seedFile)
		if err != nil {
			red.Printf("❌ %v\n", err)
			os.Exit(1)
		}
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

		report, err := seed.NewSeeder(db, logger).Apply(context.Background(), f)
		if err != nil {
			red.Printf("❌ 导入失败: %v\n", err)
			os.Exit(1)
		}
		green.Printf("✅ 国家 %d 个，大项新增 %d 个、更新 %d 个\n",
			report.Countries, report.SportsCreated, report.SportsUpdated)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "config/seed.yaml", "YAML 夹具文件")
}
